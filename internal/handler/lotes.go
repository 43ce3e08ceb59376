package handler

import (
	"fmt"
	"net/http"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/service"

	"github.com/gin-gonic/gin"
)

type LotesHandler struct{ svc service.LoteService }

func NewLotesHandler(svc service.LoteService) *LotesHandler { return &LotesHandler{svc: svc} }

// Crear godoc
// @Summary      Registrar un lote de producción
// @Description  Registra el lote y encola la generación de su etiqueta QR. Un estatus de calidad Fallo dispara una alerta por correo.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Param        body body     dto.CrearLoteRequest true "Datos del lote"
// @Success      201  {object} dto.LoteResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/lotes [post]
func (h *LotesHandler) Crear(c *gin.Context) {
	var req dto.CrearLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar lotes
// @Tags         lotes
// @Produce      json
// @Param        operador_id query string false "UUID del operador"
// @Param        estado      query string false "Vendido | Retirado | Activo"
// @Param        calidad     query string false "Paso | Pendiente | Fallo"
// @Success      200 {array}  dto.LoteResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/lotes [get]
func (h *LotesHandler) Listar(c *gin.Context) {
	var f dto.LoteFilter
	if !bindQuery(c, &f) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarActivos godoc
// @Summary      Lotes activos
// @Description  Lotes en estado Activo ordenados por número.
// @Tags         lotes
// @Produce      json
// @Success      200 {array} dto.LoteResponse
// @Router       /v1/lotes/activos [get]
func (h *LotesHandler) ListarActivos(c *gin.Context) {
	resp, err := h.svc.ListarActivos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener lote
// @Tags         lotes
// @Produce      json
// @Param        id  path     string true "UUID del lote"
// @Success      200 {object} dto.LoteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/lotes/{id} [get]
func (h *LotesHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar lote
// @Description  La fecha de registro en el sistema no se modifica.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Param        id   path     string                    true "UUID del lote"
// @Param        body body     dto.ActualizarLoteRequest true "Campos a modificar"
// @Success      200  {object} dto.LoteResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/lotes/{id} [put]
func (h *LotesHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar lote
// @Description  Rechazado con 409 mientras existan productos del lote.
// @Tags         lotes
// @Param        id  path string true "UUID del lote"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/lotes/{id} [delete]
func (h *LotesHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ficha godoc
// @Summary      Ficha PDF del lote
// @Description  Datos del lote, productos fabricados y QR de trazabilidad.
// @Tags         lotes
// @Produce      application/pdf
// @Param        id  path string true "UUID del lote"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/lotes/{id}/ficha [get]
func (h *LotesHandler) Ficha(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pdf, err := h.svc.Ficha(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=lote_%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
