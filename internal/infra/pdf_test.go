package infra

import (
	"bytes"
	"testing"
	"time"

	"trazabilidad/internal/model"
	"trazabilidad/internal/qr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fichaLote() *model.Lote {
	obs := "Horno 2"
	return &model.Lote{
		Numero:               17,
		FechaFabricacion:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		FechaVencimiento:     time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		CantidadProducida:    240,
		EstatusCalidad:       model.CalidadPaso,
		FechaRegistroSistema: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Observaciones:        &obs,
		EstadoLote:           model.LoteActivo,
	}
}

func TestGenerateFichaLotePDF(t *testing.T) {
	png, err := qr.Render("http://localhost:8000/v1/lotes/abc", qr.DefaultConfig())
	require.NoError(t, err)

	out, err := GenerateFichaLotePDF(FichaLote{
		Lote:     fichaLote(),
		Operador: "jperez",
		Productos: []model.Producto{
			{Nombre: "Galleta", Sabor: "Vainilla", Cantidad: 250, Precio: decimal.NewFromInt(3500)},
			{Nombre: "Galleta", Sabor: "Chocolate", Cantidad: 250, Precio: decimal.RequireFromString("3650.50")},
		},
		QRPNG:  png,
		QRText: "http://localhost:8000/v1/lotes/abc",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestGenerateFichaLotePDFWithoutQRAndProducts(t *testing.T) {
	out, err := GenerateFichaLotePDF(FichaLote{Lote: fichaLote()})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	_, err = GenerateFichaLotePDF(FichaLote{})
	assert.Error(t, err)
}
