package dto

import "time"

// DateLayout is the wire format of manufacture and expiry dates.
const DateLayout = "2006-01-02"

// ── Request DTOs ──────────────────────────────────────────────────────────────

// EstatusCalidad: Paso | Pendiente | Fallo. EstadoLote: Vendido | Retirado | Activo (default).
type CrearLoteRequest struct {
	Numero            int     `json:"numero"             validate:"required,min=1"`
	FechaFabricacion  string  `json:"fecha_fabricacion"  validate:"required,datetime=2006-01-02"`
	FechaVencimiento  string  `json:"fecha_vencimiento"  validate:"required,datetime=2006-01-02"`
	CantidadProducida int     `json:"cantidad_producida" validate:"min=0"`
	EstatusCalidad    string  `json:"estatus_calidad"    validate:"required"`
	Observaciones     *string `json:"observaciones"      validate:"omitempty,max=255"`
	EstadoLote        string  `json:"estado_lote"`
	OperadorID        string  `json:"operador_id"        validate:"required,uuid"`
}

// ActualizarLoteRequest never carries fecha_registro_sistema: it is fixed at creation.
type ActualizarLoteRequest struct {
	Numero            *int    `json:"numero"             validate:"omitempty,min=1"`
	FechaFabricacion  *string `json:"fecha_fabricacion"  validate:"omitempty,datetime=2006-01-02"`
	FechaVencimiento  *string `json:"fecha_vencimiento"  validate:"omitempty,datetime=2006-01-02"`
	CantidadProducida *int    `json:"cantidad_producida" validate:"omitempty,min=0"`
	EstatusCalidad    *string `json:"estatus_calidad"`
	Observaciones     *string `json:"observaciones"      validate:"omitempty,max=255"`
	EstadoLote        *string `json:"estado_lote"`
	OperadorID        *string `json:"operador_id"        validate:"omitempty,uuid"`
}

type LoteFilter struct {
	OperadorID string `form:"operador_id" validate:"omitempty,uuid"`
	Estado     string `form:"estado"`
	Calidad    string `form:"calidad"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type LoteResponse struct {
	ID                   string    `json:"id"`
	Numero               int       `json:"numero"`
	FechaFabricacion     string    `json:"fecha_fabricacion"`
	FechaVencimiento     string    `json:"fecha_vencimiento"`
	CantidadProducida    int       `json:"cantidad_producida"`
	EstatusCalidad       string    `json:"estatus_calidad"`
	FechaRegistroSistema time.Time `json:"fecha_registro_sistema"`
	Observaciones        *string   `json:"observaciones"`
	EstadoLote           string    `json:"estado_lote"`
	OperadorID           string    `json:"operador_id"`
	// URL encoded in the batch's traceability label.
	TrazabilidadURL string `json:"trazabilidad_url"`
}
