package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jordan/talentbridge/internal/config"
	"github.com/jordan/talentbridge/internal/db"
)

// Verification links expire quickly; reset links even quicker.
const (
	verifyTokenTTL = 30 * time.Minute
	resetTokenTTL  = 15 * time.Minute
)

// providerLocal marks accounts created with email+password, as opposed to
// an OAuth provider.
const providerLocal = "local"

// DBClient is the subset of db.DB the user service depends on.
type DBClient interface {
	CreateUser(ctx context.Context, name, email, passwordHash, provider string) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	SetVerifyToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	VerifyUserByToken(ctx context.Context, tokenHash string) (*db.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	CreatePasswordReset(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ConsumePasswordReset(ctx context.Context, tokenHash string) (*db.PasswordReset, error)
}

// MailSender is the subset of email.Mailer the user service depends on.
// All sends are fire-and-forget.
type MailSender interface {
	SendVerification(to, name, verifyLink string)
	SendWelcome(to, name string)
	SendPasswordReset(to, name, resetLink string)
	SendLoginAlert(to, name, ip, when string)
}

// UserService provides business logic for account registration, email
// verification, login, and password recovery.
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
	mailer         MailSender
	frontendURL    string
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(dbc DBClient, passwordConfig *config.PasswordConfig, mailer MailSender, frontendURL string) *UserService {
	return &UserService{
		db:             dbc,
		passwordConfig: passwordConfig,
		mailer:         mailer,
		frontendURL:    strings.TrimRight(frontendURL, "/"),
	}
}

// newToken generates a random token and its stored hash. The raw token
// only ever leaves the server inside an email link.
func newToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, hashToken(raw), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account and emails a verification link.
// If the email already belongs to an unverified local account, a fresh
// link is sent instead and resent is true. A verified account or an OAuth
// account yields ErrEmailAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (resent bool, err error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	existing, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if existing.Provider != providerLocal {
			return false, &ErrEmailAlreadyExists{Email: email, Provider: existing.Provider}
		}
		if existing.Verified {
			return false, &ErrEmailAlreadyExists{Email: email}
		}
		if err := s.sendVerifyLink(ctx, existing.ID, email, existing.Name); err != nil {
			return false, err
		}
		return true, nil
	}

	passwordHash, err := s.passwordConfig.HashPassword(strings.TrimSpace(password))
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.db.CreateUser(ctx, name, email, passwordHash, providerLocal)
	if err != nil {
		return false, err
	}

	if err := s.sendVerifyLink(ctx, user.ID, email, name); err != nil {
		return false, err
	}
	return false, nil
}

func (s *UserService) sendVerifyLink(ctx context.Context, userID uuid.UUID, email, name string) error {
	raw, hash, err := newToken()
	if err != nil {
		return err
	}
	if err := s.db.SetVerifyToken(ctx, userID, hash, time.Now().Add(verifyTokenTTL)); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/verify-email?token=%s&email=%s", s.frontendURL, raw, url.QueryEscape(email))
	s.mailer.SendVerification(email, name, link)
	return nil
}

// Verify confirms an email address from a verification link token and
// sends the welcome email.
func (s *UserService) Verify(ctx context.Context, rawToken string) (*db.User, error) {
	if rawToken == "" {
		return nil, &ErrInvalidToken{Purpose: "verification"}
	}

	user, err := s.db.VerifyUserByToken(ctx, hashToken(rawToken))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &ErrInvalidToken{Purpose: "verification"}
	}

	s.mailer.SendWelcome(user.Email, user.Name)
	return user, nil
}

// Login authenticates a user. Unverified local accounts are rejected. A
// successful login triggers an alert email carrying the client IP.
func (s *UserService) Login(ctx context.Context, email, password, clientIP string) (*db.User, error) {
	user, err := s.db.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if user.Provider == providerLocal && !user.Verified {
		return nil, &ErrEmailNotVerified{}
	}
	if user.PasswordHash == "" {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	s.mailer.SendLoginAlert(user.Email, user.Name, clientIP, time.Now().Format(time.RFC1123))
	return user, nil
}

// ForgotPassword emails a reset link. To avoid revealing which addresses
// are registered, an unknown email is not an error. Unverified local
// accounts must verify first.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.db.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if user.Provider == providerLocal && !user.Verified {
		return &ErrEmailNotVerified{}
	}

	raw, hash, err := newToken()
	if err != nil {
		return err
	}
	if err := s.db.CreatePasswordReset(ctx, user.ID, hash, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s", s.frontendURL, raw, url.QueryEscape(user.Email))
	s.mailer.SendPasswordReset(user.Email, user.Name, link)
	return nil
}

// ResetPassword consumes a reset token and replaces the account password.
func (s *UserService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if rawToken == "" {
		return &ErrInvalidToken{Purpose: "reset"}
	}

	reset, err := s.db.ConsumePasswordReset(ctx, hashToken(rawToken))
	if err != nil {
		return err
	}
	if reset == nil {
		return &ErrInvalidToken{Purpose: "reset"}
	}

	passwordHash, err := s.passwordConfig.HashPassword(strings.TrimSpace(newPassword))
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.UpdatePassword(ctx, reset.UserID, passwordHash)
}
