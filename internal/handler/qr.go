package handler

import (
	"net/http"

	"trazabilidad/internal/qr"

	"github.com/gin-gonic/gin"
)

// QRHandler renders arbitrary text as a QR PNG.
type QRHandler struct {
	cfg         qr.Config
	defaultData string
}

func NewQRHandler(cfg qr.Config, defaultData string) *QRHandler {
	return &QRHandler{cfg: cfg, defaultData: defaultData}
}

// Generar godoc
// @Summary      Generar código QR
// @Description  Codifica el parámetro data (o el valor por defecto configurado) como PNG.
// @Tags         qr
// @Produce      png
// @Param        data query string false "Texto a codificar"
// @Success      200 {file} binary
// @Failure      413 {object} apierror.APIError
// @Failure      500 {object} apierror.APIError
// @Router       /qr [get]
func (h *QRHandler) Generar(c *gin.Context) {
	data := c.Query("data")
	if data == "" {
		data = h.defaultData
	}
	png, err := qr.Render(data, h.cfg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
