package infra

// pdf.go renders the batch sheet ("ficha de lote") served at /v1/lotes/:id/ficha:
//   - header with batch number and states
//   - manufacture / expiry / registration dates, operator and quantity
//   - product table (name, flavour, grams, price)
//   - traceability QR in the top-right corner

import (
	"bytes"
	"fmt"

	"trazabilidad/internal/model"

	"github.com/go-pdf/fpdf"
)

// FichaLote is everything printed on a batch sheet.
type FichaLote struct {
	Lote      *model.Lote
	Operador  string
	Productos []model.Producto
	QRPNG     []byte // optional; omitted when nil
	QRText    string
}

// GenerateFichaLotePDF lays out an A4 batch sheet and returns the PDF bytes.
func GenerateFichaLotePDF(f FichaLote) ([]byte, error) {
	if f.Lote == nil {
		return nil, fmt.Errorf("pdf: nil lote")
	}
	l := f.Lote

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(fmt.Sprintf("Lote %d", l.Numero), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── QR ────────────────────────────────────────────────────────────────────
	const qrSize = 35.0
	if len(f.QRPNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader("qr_lote", opts, bytes.NewReader(f.QRPNG))
		pdf.ImageOptions("qr_lote", pageW-15-qrSize, 15, qrSize, qrSize, false, opts, 0, "")
	}

	// ── Header ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW-qrSize, 9, tr(fmt.Sprintf("Ficha de lote N° %d", l.Numero)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW-qrSize, 6, tr("Estado: "+string(l.EstadoLote)+"   Calidad: "+string(l.EstatusCalidad)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Batch data ────────────────────────────────────────────────────────────
	labelW := 48.0
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-qrSize-labelW, 6, tr(value), "", 1, "L", false, 0, "")
	}
	row("Fecha de fabricación:", l.FechaFabricacion.Format("02/01/2006"))
	row("Fecha de vencimiento:", l.FechaVencimiento.Format("02/01/2006"))
	row("Registrado en sistema:", l.FechaRegistroSistema.Format("02/01/2006 15:04"))
	row("Cantidad producida:", fmt.Sprintf("%d", l.CantidadProducida))
	row("Operador:", f.Operador)
	if l.Observaciones != nil && *l.Observaciones != "" {
		row("Observaciones:", *l.Observaciones)
	}

	if y := 15 + qrSize + 4; pdf.GetY() < y {
		pdf.SetY(y)
	}
	pdf.Ln(4)

	// ── Products ──────────────────────────────────────────────────────────────
	col1 := contentW * 0.40
	col2 := contentW * 0.25
	col3 := contentW * 0.15
	col4 := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(col1, 7, "Producto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(col2, 7, "Sabor", "1", 0, "L", true, 0, "")
	pdf.CellFormat(col3, 7, "Gramos", "1", 0, "R", true, 0, "")
	pdf.CellFormat(col4, 7, "Precio", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if len(f.Productos) == 0 {
		pdf.CellFormat(contentW, 7, tr("Sin productos registrados"), "1", 1, "C", false, 0, "")
	}
	for _, p := range f.Productos {
		pdf.CellFormat(col1, 6, tr(p.Nombre), "1", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, tr(p.Sabor), "1", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", p.Cantidad), "1", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+p.Precio.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	if f.QRText != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(contentW, 4, tr("Trazabilidad: "+f.QRText), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
