// Package config provides environment-driven configuration for the
// TalentBridge API server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the server configuration loaded from the environment.
type Config struct {
	Port        int
	DatabaseURL string

	// FrontendURL is the base URL used when building email verification
	// and password-reset links.
	FrontendURL string

	SMTP SMTPConfig
}

// SMTPConfig holds outgoing-mail settings. Mail is disabled when Host is
// empty.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether outgoing mail is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// Load reads server configuration from environment variables.
// DATABASE_URL is required; everything else has a default.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	smtpPort, err := envInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        port,
		DatabaseURL: databaseURL,
		FrontendURL: envString("FRONTEND_URL", "http://localhost:5173"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     envString("SMTP_FROM", "TalentBridge <no-reply@talentbridge.local>"),
		},
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
