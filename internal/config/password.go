package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int
}

// NewPasswordConfig creates a new password configuration from environment
// variables. It reads BCRYPT_COST (default: 12).
func NewPasswordConfig() (*PasswordConfig, error) {
	cost, err := envInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	if cost < bcrypt.MinCost || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d", cost)
	}

	return &PasswordConfig{BcryptCost: cost}, nil
}

// HashPassword hashes a password using bcrypt.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw)) == nil
}
