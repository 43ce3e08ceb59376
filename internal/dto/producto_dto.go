package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Producto ────────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre   string          `json:"nombre"    validate:"required,max=50"`
	LoteID   string          `json:"lote_id"   validate:"required,uuid"`
	RecetaID *string         `json:"receta_id" validate:"omitempty,uuid"`
	Sabor    string          `json:"sabor"     validate:"required,max=50"`
	Cantidad int             `json:"cantidad"  validate:"required,min=1"`
	Precio   decimal.Decimal `json:"precio"    validate:"min=0"`
}

// ActualizarProductoRequest: QuitarReceta=true clears the recipe reference.
type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=1,max=50"`
	LoteID       *string          `json:"lote_id"       validate:"omitempty,uuid"`
	RecetaID     *string          `json:"receta_id"     validate:"omitempty,uuid"`
	QuitarReceta bool             `json:"quitar_receta"`
	Sabor        *string          `json:"sabor"         validate:"omitempty,min=1,max=50"`
	Cantidad     *int             `json:"cantidad"      validate:"omitempty,min=1"`
	Precio       *decimal.Decimal `json:"precio"        validate:"omitempty,min=0"`
}

type ProductoFilter struct {
	LoteID string `form:"lote_id" validate:"omitempty,uuid"`
}

type ProductoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	LoteID       string          `json:"lote_id"`
	RecetaID     *string         `json:"receta_id"`
	RecetaNombre *string         `json:"receta_nombre,omitempty"`
	Sabor        string          `json:"sabor"`
	Cantidad     int             `json:"cantidad"`
	Precio       decimal.Decimal `json:"precio"`
}

// ─── ProductoImagen ──────────────────────────────────────────────────────────

// Imagen is a path under img/producto_imagenes/ or an absolute URL.
type CrearImagenRequest struct {
	Imagen      string `json:"imagen"      validate:"required,max=255"`
	Principal   bool   `json:"principal"`
	Descripcion string `json:"descripcion" validate:"max=255"`
}

type ActualizarImagenRequest struct {
	Imagen      *string `json:"imagen"      validate:"omitempty,min=1,max=255"`
	Principal   *bool   `json:"principal"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
}

type ImagenResponse struct {
	ID          string    `json:"id"`
	ProductoID  string    `json:"producto_id"`
	Imagen      string    `json:"imagen"`
	Principal   bool      `json:"principal"`
	Descripcion string    `json:"descripcion"`
	CreatedAt   time.Time `json:"created_at"`
}
