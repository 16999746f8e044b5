package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// SummaryPDF renders an employee's period summary as a one-page PDF.
func SummaryPDF(summary Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Appraisal Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", summary.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", summary.PeriodName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Completed appraisals: %d", summary.AppraisalCount))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average score: %.1f%%", summary.AveragePercentage))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Overview")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, summary.Narrative, "", "L", false)
	pdf.Ln(4)

	if len(summary.Appraisals) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Appraisals")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for i, stat := range summary.Appraisals {
			pdf.Cell(0, 6, fmt.Sprintf("%d. %.1f / %.1f", i+1, stat.Score, stat.MaxScore))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}
