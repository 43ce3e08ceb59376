package dto

// ── Ingrediente ───────────────────────────────────────────────────────────────

type CrearIngredienteRequest struct {
	Nombre       string `json:"nombre"        validate:"required,max=50"`
	UnidadMedida string `json:"unidad_medida" validate:"required,max=50"`
}

type ActualizarIngredienteRequest struct {
	Nombre       *string `json:"nombre"        validate:"omitempty,min=1,max=50"`
	UnidadMedida *string `json:"unidad_medida" validate:"omitempty,min=1,max=50"`
}

type IngredienteResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	UnidadMedida string `json:"unidad_medida"`
}

// ── Receta ────────────────────────────────────────────────────────────────────

type CrearRecetaRequest struct {
	Nombre      string `json:"nombre"      validate:"required,max=50"`
	Descripcion string `json:"descripcion" validate:"required,max=255"`
}

type ActualizarRecetaRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=1,max=50"`
	Descripcion *string `json:"descripcion" validate:"omitempty,min=1,max=255"`
}

type RecetaResponse struct {
	ID           string                      `json:"id"`
	Nombre       string                      `json:"nombre"`
	Descripcion  string                      `json:"descripcion"`
	Ingredientes []RecetaIngredienteResponse `json:"ingredientes,omitempty"`
}

// ── RecetaIngrediente ─────────────────────────────────────────────────────────

type AgregarIngredienteRequest struct {
	IngredienteID string `json:"ingrediente_id" validate:"required,uuid"`
	Cantidad      int16  `json:"cantidad"       validate:"required,min=1"`
}

type ActualizarCantidadRequest struct {
	Cantidad int16 `json:"cantidad" validate:"required,min=1"`
}

type RecetaIngredienteResponse struct {
	IngredienteID string `json:"ingrediente_id"`
	Nombre        string `json:"nombre,omitempty"`
	UnidadMedida  string `json:"unidad_medida,omitempty"`
	Cantidad      int16  `json:"cantidad"`
}
