package worker

// email_worker.go sends notification e-mails (quality alerts) queued on QueueEmail.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"trazabilidad/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail        string `json:"to_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

// Sender is satisfied by *infra.Mailer.
type Sender interface {
	Send(to, subject, body, attachmentPath string) error
}

type EmailWorker struct {
	sender Sender
}

func NewEmailWorker(sender Sender) *EmailWorker {
	return &EmailWorker{sender: sender}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var p EmailJobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if p.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	err := w.sender.Send(p.ToEmail, p.Subject, p.Body, p.AttachmentPath)
	switch {
	case errors.Is(err, infra.ErrMailerDisabled):
		// Retrying cannot help until SMTP is configured.
		log.Warn().Str("to", p.ToEmail).Str("subject", p.Subject).Msg("email_worker: SMTP disabled, dropping message")
		return nil
	case err != nil:
		return fmt.Errorf("email_worker: send to %s: %w", p.ToEmail, err)
	}
	log.Info().Str("to", p.ToEmail).Str("subject", p.Subject).Msg("email_worker: sent")
	return nil
}
