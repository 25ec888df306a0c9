package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Table geometry and colors for the PDF rendering.
var pdfColWidths = []float64{28, 62, 36, 32, 32}

const pdfRowHeight = 8.0

// WritePDF renders the report as a paginated striped table.
func WritePDF(rep Report, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, rep.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "Total Spending: Rs. "+rep.Total.String())
	pdf.Ln(8)
	pdf.Cell(0, 8, "Generated on: "+rep.GeneratedAt.Format("January 2, 2006 3:04 PM"))
	pdf.Ln(12)

	writeHeader(pdf)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(30, 41, 59)
	for i, row := range rep.Rows {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeHeader(pdf)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(30, 41, 59)
		}
		fill := i%2 == 1
		pdf.SetFillColor(241, 245, 249)
		cells := []string{row.Date, row.Item, row.Category, row.PaymentMode, row.Amount}
		for j, cell := range cells {
			pdf.CellFormat(pdfColWidths[j], pdfRowHeight, cell, "", 0, "L", fill, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func writeHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	// Violet header, matching the app accent color.
	pdf.SetFillColor(124, 58, 237)
	pdf.SetTextColor(255, 255, 255)
	for j, h := range Header() {
		pdf.CellFormat(pdfColWidths[j], pdfRowHeight, h, "", 0, "L", true, 0, "")
	}
	pdf.Ln(pdfRowHeight)
}
