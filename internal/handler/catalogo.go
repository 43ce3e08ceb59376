package handler

import (
	"net/http"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serves ingredients, recipes and recipe lines.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// ── Ingredientes ──────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearIngrediente(c *gin.Context) {
	var req dto.CrearIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearIngrediente(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarIngredientes(c *gin.Context) {
	resp, err := h.svc.ListarIngredientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ObtenerIngrediente(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerIngrediente(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ActualizarIngrediente(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarIngrediente(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) EliminarIngrediente(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarIngrediente(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Recetas ───────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearReceta(c *gin.Context) {
	var req dto.CrearRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearReceta(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarRecetas(c *gin.Context) {
	resp, err := h.svc.ListarRecetas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ObtenerReceta(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerReceta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ActualizarReceta(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarReceta(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) EliminarReceta(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarReceta(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Ingredientes de receta ────────────────────────────────────────────────────

// AgregarIngrediente POST /v1/recetas/:id/ingredientes
func (h *CatalogoHandler) AgregarIngrediente(c *gin.Context) {
	recetaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AgregarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarIngrediente(c.Request.Context(), recetaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarIngredientesDeReceta(c *gin.Context) {
	recetaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarIngredientesDeReceta(c.Request.Context(), recetaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCantidad PUT /v1/recetas/:id/ingredientes/:ingrediente_id
func (h *CatalogoHandler) ActualizarCantidad(c *gin.Context) {
	recetaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ingredienteID, ok := parseID(c, "ingrediente_id")
	if !ok {
		return
	}
	var req dto.ActualizarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCantidad(c.Request.Context(), recetaID, ingredienteID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) QuitarIngrediente(c *gin.Context) {
	recetaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ingredienteID, ok := parseID(c, "ingrediente_id")
	if !ok {
		return
	}
	if err := h.svc.QuitarIngrediente(c.Request.Context(), recetaID, ingredienteID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
