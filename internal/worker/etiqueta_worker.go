package worker

// etiqueta_worker.go renders the traceability QR label of a newly created
// batch to QR_STORAGE_PATH/lote_{numero}_{id}.png.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"trazabilidad/internal/qr"

	"github.com/rs/zerolog/log"
)

// EtiquetaJobPayload is the job envelope sent to QueueEtiquetas.
type EtiquetaJobPayload struct {
	LoteID string `json:"lote_id"`
	Numero int    `json:"numero"`
	URL    string `json:"url"`
}

// Filename is the label's file name inside the QR directory.
func (p EtiquetaJobPayload) Filename() string {
	return fmt.Sprintf("lote_%d_%s.png", p.Numero, p.LoteID)
}

var errEtiquetaNoGuardada = errors.New("etiqueta_worker: label not saved")

type EtiquetaWorker struct {
	writer *qr.FileWriter
}

func NewEtiquetaWorker(writer *qr.FileWriter) *EtiquetaWorker {
	return &EtiquetaWorker{writer: writer}
}

func (w *EtiquetaWorker) Process(_ context.Context, raw json.RawMessage) error {
	var p EtiquetaJobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("etiqueta_worker: invalid payload: %w", err)
	}
	if p.URL == "" {
		log.Warn().Str("lote_id", p.LoteID).Msg("etiqueta_worker: empty url, skipping")
		return nil
	}
	// The writer already logged the cause.
	if !w.writer.Save(p.URL, p.Filename()) {
		return errEtiquetaNoGuardada
	}
	log.Info().Str("lote_id", p.LoteID).Str("file", w.writer.Path(p.Filename())).Msg("etiqueta_worker: label saved")
	return nil
}
