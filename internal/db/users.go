package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateUser inserts a new account and returns it. The verification token
// hash and expiry are set separately via SetVerifyToken.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash, provider string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, provider)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, email, password_hash, provider, verified, created_at, updated_at`,
		name, email, passwordHash, provider,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Provider, &u.Verified,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when no account
// exists for the address.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, provider, verified,
		        created_at, updated_at, verify_expires_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Provider, &u.Verified,
		&u.CreatedAt, &u.UpdatedAt, &u.VerifyExpiry)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// GetUser retrieves a user by ID. Returns nil when the ID is unknown.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, provider, verified,
		        created_at, updated_at, verify_expires_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Provider, &u.Verified,
		&u.CreatedAt, &u.UpdatedAt, &u.VerifyExpiry)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// SetVerifyToken stores a hashed verification token and its expiry for a
// user, replacing any previous token.
func (db *DB) SetVerifyToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users
		 SET verify_token_hash = $2, verify_expires_at = $3, updated_at = NOW()
		 WHERE id = $1`,
		userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set verify token: %w", err)
	}
	return nil
}

// VerifyUserByToken marks the account holding the given token hash as
// verified, provided the token has not expired. Returns the verified user,
// or nil when the token is unknown, already used, or expired.
func (db *DB) VerifyUserByToken(ctx context.Context, tokenHash string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`UPDATE users
		 SET verified = TRUE, verify_token_hash = NULL, verify_expires_at = NULL,
		     updated_at = NOW()
		 WHERE verify_token_hash = $1 AND verify_expires_at > NOW()
		 RETURNING id, name, email, password_hash, provider, verified, created_at, updated_at`,
		tokenHash,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Provider, &u.Verified,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	return &u, nil
}

// UpdatePassword replaces a user's password hash. The account becomes a
// local account: a user who can reset a password can log in with one.
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, provider = 'local', updated_at = NOW()
		 WHERE id = $1`,
		userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreatePasswordReset records a pending reset request, invalidating any
// earlier unused requests for the same user.
func (db *DB) CreatePasswordReset(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE password_resets SET used_at = NOW()
		 WHERE user_id = $1 AND used_at IS NULL`,
		userID)
	if err != nil {
		return fmt.Errorf("failed to invalidate prior resets: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO password_resets (user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3)`,
		userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create password reset: %w", err)
	}
	return nil
}

// ConsumePasswordReset atomically marks a reset token as used and returns
// the request. Returns nil when the token is unknown, expired, or already
// used.
func (db *DB) ConsumePasswordReset(ctx context.Context, tokenHash string) (*PasswordReset, error) {
	var r PasswordReset
	err := db.pool.QueryRow(ctx,
		`UPDATE password_resets
		 SET used_at = NOW()
		 WHERE token_hash = $1 AND used_at IS NULL AND expires_at > NOW()
		 RETURNING id, user_id, token_hash, expires_at, used_at, created_at`,
		tokenHash,
	).Scan(&r.ID, &r.UserID, &r.TokenHash, &r.ExpiresAt, &r.UsedAt, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to consume password reset: %w", err)
	}
	return &r, nil
}
