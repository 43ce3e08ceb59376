package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trazabilidad/internal/infra"
	"trazabilidad/internal/qr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	err  error
	sent []EmailJobPayload
}

func (f *fakeSender) Send(to, subject, body, attachment string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, EmailJobPayload{ToEmail: to, Subject: subject, Body: body, AttachmentPath: attachment})
	return nil
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestEmailWorker(t *testing.T) {
	ctx := context.Background()

	s := &fakeSender{}
	w := NewEmailWorker(s)
	require.NoError(t, w.Process(ctx, mustJSON(t, EmailJobPayload{ToEmail: "calidad@planta.test", Subject: "Lote 3", Body: "fallo"})))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "Lote 3", s.sent[0].Subject)

	// No recipient: nothing to do.
	require.NoError(t, w.Process(ctx, mustJSON(t, EmailJobPayload{Subject: "x"})))
	assert.Len(t, s.sent, 1)

	// SMTP not configured: dropped without retry.
	w = NewEmailWorker(&fakeSender{err: infra.ErrMailerDisabled})
	assert.NoError(t, w.Process(ctx, mustJSON(t, EmailJobPayload{ToEmail: "a@b.test"})))

	// Transport failures are retried.
	w = NewEmailWorker(&fakeSender{err: errors.New("dial tcp: refused")})
	assert.Error(t, w.Process(ctx, mustJSON(t, EmailJobPayload{ToEmail: "a@b.test"})))

	assert.Error(t, w.Process(ctx, json.RawMessage(`{`)))
}

func TestEtiquetaWorker(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	w := NewEtiquetaWorker(qr.NewFileWriter(dir, qr.DefaultConfig()))

	require.NoError(t, w.Process(ctx, mustJSON(t, EtiquetaJobPayload{LoteID: "a", Numero: 5, URL: "http://x/v1/lotes/a"})))
	assert.FileExists(t, filepath.Join(dir, "lote_5_a.png"))

	require.NoError(t, w.Process(ctx, mustJSON(t, EtiquetaJobPayload{LoteID: "b", Numero: 6})))
	assert.NoFileExists(t, filepath.Join(dir, "lote_6_b.png"))

	// Batch numbers repeat across operators; each lote keeps its own label.
	require.NoError(t, w.Process(ctx, mustJSON(t, EtiquetaJobPayload{LoteID: "c", Numero: 5, URL: "http://x/v1/lotes/c"})))
	assert.FileExists(t, filepath.Join(dir, "lote_5_a.png"))
	assert.FileExists(t, filepath.Join(dir, "lote_5_c.png"))

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	w = NewEtiquetaWorker(qr.NewFileWriter(blocker, qr.DefaultConfig()))
	assert.Error(t, w.Process(ctx, mustJSON(t, EtiquetaJobPayload{Numero: 1, URL: "u"})))
}
