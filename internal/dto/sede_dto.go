package dto

// ── Sede ──────────────────────────────────────────────────────────────────────

// Estado accepts "Active", "Inactive" or "Under Maintenance"; empty means Active.
type CrearSedeRequest struct {
	Nombre    string `json:"nombre"    validate:"required,max=100"`
	Direccion string `json:"direccion" validate:"required"`
	Ciudad    string `json:"ciudad"    validate:"required,max=50"`
	Capacidad *int   `json:"capacidad" validate:"omitempty,min=0"`
	Estado    string `json:"estado"    validate:"omitempty,max=20"`
}

type ActualizarSedeRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=1,max=100"`
	Direccion *string `json:"direccion" validate:"omitempty,min=1"`
	Ciudad    *string `json:"ciudad"    validate:"omitempty,min=1,max=50"`
	Capacidad *int    `json:"capacidad" validate:"omitempty,min=0"`
	Estado    *string `json:"estado"    validate:"omitempty,max=20"`
}

type SedeFilter struct {
	Estado string `form:"estado"`
}

type SedeResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Ciudad    string `json:"ciudad"`
	Capacidad *int   `json:"capacidad"`
	Estado    string `json:"estado"`
}

// ── Operador ──────────────────────────────────────────────────────────────────

type CrearOperadorRequest struct {
	UsuarioID string  `json:"usuario_id" validate:"required,uuid"`
	Cargo     *string `json:"cargo"      validate:"omitempty,max=50"`
	SedeID    string  `json:"sede_id"    validate:"required,uuid"`
	Telefono  string  `json:"telefono"   validate:"required,numeric,max=11"`
}

type ActualizarOperadorRequest struct {
	Cargo    *string `json:"cargo"    validate:"omitempty,max=50"`
	SedeID   *string `json:"sede_id"  validate:"omitempty,uuid"`
	Telefono *string `json:"telefono" validate:"omitempty,numeric,max=11"`
}

type OperadorResponse struct {
	ID         string  `json:"id"`
	UsuarioID  string  `json:"usuario_id"`
	Username   string  `json:"username,omitempty"`
	Cargo      *string `json:"cargo"`
	SedeID     string  `json:"sede_id"`
	SedeNombre string  `json:"sede_nombre,omitempty"`
	Telefono   string  `json:"telefono"`
}
