package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/middleware"
	"trazabilidad/internal/qr"
	"trazabilidad/internal/repository"
	"trazabilidad/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decodeQR(t *testing.T, body []byte) string {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	res, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)
	return res.GetText()
}

func qrEngine(cfg qr.Config) *gin.Engine {
	h := NewQRHandler(cfg, "https://www.pamec.com.co")
	r := gin.New()
	r.GET("/qr", h.Generar)
	r.GET("/generar_qr", h.Generar)
	return r
}

func TestQRDefaultData(t *testing.T) {
	r := qrEngine(qr.DefaultConfig())
	for _, path := range []string{"/qr", "/generar_qr", "/qr?data="} {
		w := get(r, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "https://www.pamec.com.co", decodeQR(t, w.Body.Bytes()))
	}
}

func TestQRCustomData(t *testing.T) {
	w := get(qrEngine(qr.DefaultConfig()), "/qr?data=Lote%2042")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lote 42", decodeQR(t, w.Body.Bytes()))
}

func TestQRPayloadTooLarge(t *testing.T) {
	cfg := qr.DefaultConfig()
	cfg.MaxBytes = 16
	w := get(qrEngine(cfg), "/qr?data="+strings.Repeat("x", 17))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		detail   string
		attached bool
	}{
		{&service.Error{Msg: "lote no encontrado", Err: repository.ErrNotFound}, http.StatusNotFound, "lote no encontrado", false},
		{&service.Error{Msg: "ya existe", Err: fmt.Errorf("%w: pk", repository.ErrUniqueViolation)}, http.StatusConflict, "ya existe", false},
		{repository.ErrReferenceViolation, http.StatusConflict, "", false},
		{&service.Error{Msg: "fecha mala", Field: "fecha_vencimiento", Err: service.ErrValidation}, http.StatusUnprocessableEntity, "fecha mala", false},
		{fmt.Errorf("%w: 4000 bytes", qr.ErrPayloadTooLarge), http.StatusRequestEntityTooLarge, "", true},
		{fmt.Errorf("%w: boom", qr.ErrEncoding), http.StatusInternalServerError, "No se pudo generar el codigo QR", true},
		{fmt.Errorf("pq: relation does not exist"), http.StatusInternalServerError, "Error interno del servidor", true},
	}
	for _, tc := range cases {
		var attached int
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Next()
			attached = len(c.Errors)
		})
		r.Use(middleware.ErrorHandler())
		r.GET("/", func(c *gin.Context) { respondError(c, tc.err) })
		w := get(r, "/")
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		if tc.attached {
			assert.Equal(t, 1, attached, tc.err.Error())
		} else {
			assert.Zero(t, attached, tc.err.Error())
		}

		var body struct {
			Detail string            `json:"detail"`
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		if tc.detail != "" {
			assert.Equal(t, tc.detail, body.Detail)
		}
		assert.NotContains(t, body.Detail, "pq:")
		if tc.status == http.StatusUnprocessableEntity {
			assert.Equal(t, "fecha mala", body.Fields["fecha_vencimiento"])
		}
	}
}

func TestParseIDRejectsGarbage(t *testing.T) {
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		if _, ok := parseID(c, "id"); ok {
			c.Status(http.StatusOK)
		}
	})
	assert.Equal(t, http.StatusBadRequest, get(r, "/x/no-es-uuid").Code)
	assert.Equal(t, http.StatusOK, get(r, "/x/6f1c2d3e-4b5a-4c6d-8e7f-0a1b2c3d4e5f").Code)
}

func TestValidatorAcceptsDecimal(t *testing.T) {
	type req struct {
		Precio decimal.Decimal `validate:"min=0"`
	}
	assert.NoError(t, validate.Struct(req{Precio: decimal.NewFromInt(10)}))
	assert.Error(t, validate.Struct(req{Precio: decimal.NewFromInt(-1)}))
}

func TestCrearProductoAceptaPrecioCero(t *testing.T) {
	req := dto.CrearProductoRequest{
		Nombre: "Muestra", LoteID: "6f1c2d3e-4b5a-4c6d-8e7f-0a1b2c3d4e5f", Sabor: "Coco", Cantidad: 1,
		Precio: decimal.Zero,
	}
	assert.NoError(t, validate.Struct(req))

	req.Precio = decimal.NewFromInt(-5)
	assert.Error(t, validate.Struct(req))
}
