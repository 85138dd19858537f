package email

import (
	"net/smtp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jordan/talentbridge/internal/config"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newCapturingMailer(cfg config.SMTPConfig) (*Mailer, *[]capturedMail, *sync.WaitGroup) {
	m := New(cfg, zap.NewNop())
	var mu sync.Mutex
	var wg sync.WaitGroup
	sent := &[]capturedMail{}
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		mu.Lock()
		defer mu.Unlock()
		*sent = append(*sent, capturedMail{addr: addr, from: from, to: to, msg: string(msg)})
		wg.Done()
		return nil
	}
	return m, sent, &wg
}

func enabledSMTP() config.SMTPConfig {
	return config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "TalentBridge <no-reply@talentbridge.app>",
	}
}

func TestSendVerification(t *testing.T) {
	m, sent, wg := newCapturingMailer(enabledSMTP())

	wg.Add(1)
	m.SendVerification("jane@x.com", "Jane", "https://app/verify?token=abc")
	wg.Wait()

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Equal(t, "smtp.example.com:587", mail.addr)
	assert.Equal(t, []string{"jane@x.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: TalentBridge - Verify your email")
	assert.Contains(t, mail.msg, "Hi Jane,")
	assert.Contains(t, mail.msg, "https://app/verify?token=abc")
}

func TestSendLoginAlert_EmptyNameFallsBack(t *testing.T) {
	m, sent, wg := newCapturingMailer(enabledSMTP())

	wg.Add(1)
	m.SendLoginAlert("jane@x.com", "", "203.0.113.9", "2026-08-30T10:00:00Z")
	wg.Wait()

	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "Hi User,")
	assert.Contains(t, (*sent)[0].msg, "IP: 203.0.113.9")
}

func TestDeliver_DisabledDropsSilently(t *testing.T) {
	m := New(config.SMTPConfig{}, zap.NewNop())
	called := false
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	require.NoError(t, m.deliver("jane@x.com", "subject", "body"))
	assert.False(t, called)
}

func TestDeliver_HeadersBeforeBody(t *testing.T) {
	m, sent, wg := newCapturingMailer(enabledSMTP())

	wg.Add(1)
	m.SendWelcome("jane@x.com", "Jane")
	wg.Wait()

	require.Len(t, *sent, 1)
	parts := strings.SplitN((*sent)[0].msg, "\r\n\r\n", 2)
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0], "From: TalentBridge <no-reply@talentbridge.app>")
	assert.Contains(t, parts[1], "account is created successfully")
}
