package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewJWTConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewJWTConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Setenv("JWT_EXPIRATION_HOURS", "abc")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}
