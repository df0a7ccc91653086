package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

func renderCSV(slip GradeSlip) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	preamble := [][]string{
		{"Student", slip.StudentName},
		{"Student Number", slip.StudentNumber},
		{"Program", slip.Program},
		{"Term", slip.AcademicYear + " " + slip.Semester},
		{},
	}
	for _, line := range preamble {
		if err := writer.Write(line); err != nil {
			return nil, fmt.Errorf("write csv preamble: %w", err)
		}
	}
	if err := writer.Write(slipHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range slip.Rows {
		if err := writer.Write(row.cells()); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	if slip.GPA != "" {
		if err := writer.Write([]string{"", "GPA", "", slip.GPA, "", ""}); err != nil {
			return nil, fmt.Errorf("write csv gpa: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
