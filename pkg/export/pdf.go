package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

var slipColumnWidths = []float64{22, 68, 14, 16, 24, 46}

func renderPDF(slip GradeSlip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "GRADE SLIP", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s  (%s)", slip.StudentName, slip.StudentNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("%s  %s", slip.Program, slip.Section), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("A.Y. %s, %s semester", slip.AcademicYear, slip.Semester), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	for i, header := range slipHeaders {
		pdf.CellFormat(slipColumnWidths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range slip.Rows {
		for i, value := range row.cells() {
			pdf.CellFormat(slipColumnWidths[i], 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if slip.GPA != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 7, "GPA: "+slip.GPA, "", 1, "R", false, 0, "")
	}
	if !slip.GeneratedAt.IsZero() {
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, "Generated "+slip.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "R", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
