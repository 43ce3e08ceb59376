package handler

import (
	"net/http"

	"trazabilidad/internal/apierror"
	"trazabilidad/internal/dto"
	"trazabilidad/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct {
	svc      service.ProductoService
	imagenes service.ImagenService
}

func NewProductosHandler(svc service.ProductoService, imagenes service.ImagenService) *ProductosHandler {
	return &ProductosHandler{svc: svc, imagenes: imagenes}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
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

// Listar GET /v1/productos?lote_id=
func (h *ProductosHandler) Listar(c *gin.Context) {
	var f dto.ProductoFilter
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

func (h *ProductosHandler) Obtener(c *gin.Context) {
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

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
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

// Eliminar DELETE /v1/productos/:id (images go with it)
func (h *ProductosHandler) Eliminar(c *gin.Context) {
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

// ── Imágenes ──────────────────────────────────────────────────────────────────

// AgregarImagen POST /v1/productos/:id/imagenes
func (h *ProductosHandler) AgregarImagen(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearImagenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.imagenes.Agregar(c.Request.Context(), productoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) ListarImagenes(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.imagenes.Listar(c.Request.Context(), productoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ImagenPrincipal GET /v1/productos/:id/imagenes/principal
func (h *ProductosHandler) ImagenPrincipal(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, found, err := h.imagenes.Principal(c.Request.Context(), productoID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, apierror.New("El producto no tiene imagen principal"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarcarPrincipal PATCH /v1/productos/:id/imagenes/:imagen_id/principal
func (h *ProductosHandler) MarcarPrincipal(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	imagenID, ok := parseID(c, "imagen_id")
	if !ok {
		return
	}
	resp, err := h.imagenes.MarcarPrincipal(c.Request.Context(), productoID, imagenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarImagen PUT /v1/imagenes/:id
func (h *ProductosHandler) ActualizarImagen(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarImagenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.imagenes.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarImagen DELETE /v1/imagenes/:id
func (h *ProductosHandler) EliminarImagen(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.imagenes.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
