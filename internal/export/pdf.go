package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

var pdfWidths = []float64{55, 28, 70, 22, 26, 24, 24, 24}

// renderPDF lays the rows out as an A4 landscape table. The core Helvetica
// font has no CJK glyphs, so PDF output always uses English labels.
func renderPDF(rows []model.ProjectReportRow, opts Options) ([]byte, error) {
	l := i18n.English
	title := opts.Title
	if title == "" {
		title = "Project report"
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated: "+opts.Now.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for i, h := range header(l) {
		pdf.CellFormat(pdfWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range rows {
		for i, v := range cells(l, r) {
			s := tr(fmt.Sprint(v))
			for pdf.GetStringWidth(s) > pdfWidths[i]-2 && len(s) > 3 {
				s = s[:len(s)-4] + "..."
			}
			pdf.CellFormat(pdfWidths[i], 7, s, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
