package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 10.0
	pdfLineHeight = 6.0
	pdfFontSize   = 7.0
)

// WritePDF writes a landscape A4 table with the title and column header
// repeated on every page.
func WritePDF(w io.Writer, title string, cols []Column, rows []Row, totals Row) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	widths := scaleWidths(cols, pageWidth(pdf))

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(59, 130, 246)
		pdf.SetTextColor(255, 255, 255)
		for i, c := range cols {
			pdf.CellFormat(widths[i], pdfLineHeight, tr(c.Title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", pdfFontSize)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.CellFormat(0, 4, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	for _, row := range rows {
		pdfRow(pdf, tr, cols, widths, row, false)
	}

	pdf.SetFont("Helvetica", "B", pdfFontSize)
	pdf.SetFillColor(203, 213, 225)
	pdfRow(pdf, tr, cols, widths, totals, true)

	return pdf.Output(w)
}

func pdfRow(pdf *fpdf.Fpdf, tr func(string) string, cols []Column, widths []float64, row Row, fill bool) {
	for i, c := range cols {
		align := "L"
		if c.Numeric {
			align = "R"
		}
		text := truncate(pdf, tr(row.Text(c.Key)), widths[i]-1)
		pdf.CellFormat(widths[i], pdfLineHeight, text, "1", 0, align, fill, 0, "")
	}
	pdf.Ln(-1)
}

func pageWidth(pdf *fpdf.Fpdf) float64 {
	w, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return w - left - right
}

// scaleWidths stretches the column widths to fill total.
func scaleWidths(cols []Column, total float64) []float64 {
	var sum float64
	for _, c := range cols {
		sum += c.Width
	}
	out := make([]float64, len(cols))
	for i, c := range cols {
		if sum == 0 {
			out[i] = total / float64(len(cols))
			continue
		}
		out[i] = c.Width / sum * total
	}
	return out
}

func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
