// Package email sends transactional mail for account verification,
// password resets, and login alerts.
package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/jordan/talentbridge/internal/config"
)

// Mailer sends plain-text mail over SMTP. A disabled mailer (no SMTP host
// configured) logs and drops every message instead of failing requests.
type Mailer struct {
	cfg config.SMTPConfig
	log *zap.Logger

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a Mailer from SMTP configuration.
func New(cfg config.SMTPConfig, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

func (m *Mailer) deliver(to, subject, body string) error {
	if !m.cfg.Enabled() {
		m.log.Debug("mail disabled, dropping message",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// SendAsync delivers in a goroutine; a failed send is logged, never
// surfaced, so mail problems cannot block a request.
func (m *Mailer) SendAsync(to, subject, body string) {
	go func() {
		if err := m.deliver(to, subject, body); err != nil {
			m.log.Warn("mail delivery failed",
				zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		}
	}()
}

func orUser(name string) string {
	if name == "" {
		return "User"
	}
	return name
}

// SendVerification mails the email-verification link.
func (m *Mailer) SendVerification(to, name, verifyLink string) {
	body := fmt.Sprintf(`Hi %s,

Thanks for registering on TalentBridge.

Please verify your email using the link below:
%s

If you didn't create this account, ignore this email.

— TalentBridge Team
`, orUser(name), verifyLink)

	m.SendAsync(to, "TalentBridge - Verify your email", body)
}

// SendWelcome mails the post-verification welcome note.
func (m *Mailer) SendWelcome(to, name string) {
	body := fmt.Sprintf(`Hi %s,

Your account is created successfully on TalentBridge.

— TalentBridge Team
`, orUser(name))

	m.SendAsync(to, "Welcome to TalentBridge", body)
}

// SendPasswordReset mails the password-reset link.
func (m *Mailer) SendPasswordReset(to, name, resetLink string) {
	body := fmt.Sprintf(`Hi %s,

We received a request to reset your password.
Reset link (valid for a limited time):
%s

If you didn't request this, you can ignore this email.

— TalentBridge Team
`, orUser(name), resetLink)

	m.SendAsync(to, "TalentBridge - Reset your password", body)
}

// SendLoginAlert mails a new-login notice with request metadata.
func (m *Mailer) SendLoginAlert(to, name, ip, when string) {
	body := fmt.Sprintf(`Hi %s,

A new login to your TalentBridge account was detected.

IP: %s
Time: %s

If this was you, no action is needed.

— TalentBridge Team
`, orUser(name), ip, when)

	m.SendAsync(to, "TalentBridge - New login to your account", body)
}
