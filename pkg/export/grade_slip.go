// Package export renders student grade slips as CSV or PDF.
package export

import (
	"fmt"
	"strings"
	"time"
)

// Format is a supported download format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat validates a requested format, defaulting to PDF when empty.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q", raw)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/pdf"
}

// GradeSlip is the printable grade report of one student for one term.
type GradeSlip struct {
	StudentName   string
	StudentNumber string
	Program       string
	Section       string
	AcademicYear  string
	Semester      string
	Rows          []GradeSlipRow
	GPA           string
	GeneratedAt   time.Time
}

// GradeSlipRow is a subject line on the slip. Grade is blank until encoded.
type GradeSlipRow struct {
	Code    string
	Subject string
	Units   string
	Grade   string
	Status  string
	Remarks string
}

var slipHeaders = []string{"Code", "Subject", "Units", "Grade", "Status", "Remarks"}

func (r GradeSlipRow) cells() []string {
	return []string{r.Code, r.Subject, r.Units, r.Grade, r.Status, r.Remarks}
}

// FileName builds the download name, e.g. grades_2023-0001_2025-2026_FIRST.pdf.
func (s GradeSlip) FileName(f Format) string {
	id := s.StudentNumber
	if id == "" {
		id = "student"
	}
	return fmt.Sprintf("grades_%s_%s_%s.%s", id, s.AcademicYear, s.Semester, f)
}

// Render encodes the slip in the requested format.
func Render(f Format, slip GradeSlip) ([]byte, error) {
	switch f {
	case FormatCSV:
		return renderCSV(slip)
	case FormatPDF:
		return renderPDF(slip)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}
