package infra

import (
	"errors"
	"net/smtp"
	"testing"

	"trazabilidad/internal/config"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailerDisabledWithoutHost(t *testing.T) {
	m := NewMailer(&config.Config{}, NewBreaker("smtp", DefaultBreakerConfig()))
	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.Send("calidad@planta.test", "s", "b", ""), ErrMailerDisabled)
}

func TestMailerSendBuildsMessage(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.planta.test", SMTPPort: 2525, SMTPUser: "alertas@planta.test"}
	m := NewMailer(cfg, NewBreaker("smtp", DefaultBreakerConfig()))

	var got *email.Email
	var gotAddr string
	m.send = func(e *email.Email, addr string, _ smtp.Auth) error {
		got, gotAddr = e, addr
		return nil
	}

	require.NoError(t, m.Send("calidad@planta.test", "Lote 7 fallo", "detalle", ""))
	assert.Equal(t, "smtp.planta.test:2525", gotAddr)
	assert.Equal(t, []string{"calidad@planta.test"}, got.To)
	assert.Equal(t, "alertas@planta.test", got.From)
	assert.Equal(t, "Lote 7 fallo", got.Subject)
}

func TestMailerTripsBreaker(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.planta.test", SMTPPort: 25}
	m := NewMailer(cfg, NewBreaker("smtp", BreakerConfig{Trip: 1}))
	m.send = func(*email.Email, string, smtp.Auth) error { return errors.New("connection refused") }

	assert.Error(t, m.Send("a@b.test", "s", "b", ""))
	assert.ErrorIs(t, m.Send("a@b.test", "s", "b", ""), ErrCircuitOpen)
	assert.Equal(t, BreakerOpen, m.Breaker().State())
}
