package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=150"`
	Nombre   string  `json:"nombre"   validate:"required,max=150"`
	Email    *string `json:"email"    validate:"omitempty,email,max=254"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nombre    string    `json:"nombre"`
	Email     *string   `json:"email,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}
