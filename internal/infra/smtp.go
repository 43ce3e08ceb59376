package infra

import (
	"errors"
	"fmt"
	"net/smtp"

	"trazabilidad/internal/config"

	"github.com/jordan-wright/email"
)

// ErrMailerDisabled is returned when SMTP_HOST is not configured.
var ErrMailerDisabled = errors.New("mailer: SMTP_HOST not configured")

// Mailer sends plain-text notifications through the configured SMTP relay.
// Every send goes through the breaker so a dead relay does not pile up workers.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	breaker  *Breaker

	// send is swapped in tests.
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewMailer(cfg *config.Config, breaker *Breaker) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		breaker:  breaker,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool { return m.host != "" }

// Breaker exposes the breaker state for health checks.
func (m *Mailer) Breaker() *Breaker { return m.breaker }

// Send delivers a plain-text message, with an optional attachment read from disk.
func (m *Mailer) Send(to, subject, body, attachmentPath string) error {
	if !m.Enabled() {
		return ErrMailerDisabled
	}

	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if attachmentPath != "" {
		if _, err := e.AttachFile(attachmentPath); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", attachmentPath, err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return m.breaker.Do(func() error {
		return m.send(e, m.addr, auth)
	})
}
