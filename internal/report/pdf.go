package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Column widths in mm, landscape A4.
var pdfWidths = []float64{35, 30, 152, 40}

// WritePDF renders the document as a landscape A4 PDF table: centered
// title, period subtitle, green header band, right-aligned amounts and
// a footer caption on every page.
func WritePDF(w io.Writer, doc *Document) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 10, tr("Control de Finanzas - Reporte de Transacciones"), "", 0, "L", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(doc.Period), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Header band
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(22, 163, 74)
	pdf.SetTextColor(255, 255, 255)
	headers := []string{"Fecha", "Tipo", "Descripción", "Monto"}
	for i, h := range headers {
		align := "L"
		if i == len(headers)-1 {
			align = "R"
		}
		pdf.CellFormat(pdfWidths[i], 9, tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range doc.Rows {
		cells := []string{row.Date, row.Type, row.Description, row.Amount}
		for i, c := range cells {
			align := "L"
			if i == len(cells)-1 {
				align = "R"
			}
			pdf.CellFormat(pdfWidths[i], 8, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
