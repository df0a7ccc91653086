// Package calendar resolves academic years and semesters from dates.
//
// The academic year starts in June. June to October is the first semester,
// November to March the second, and April and May the summer term.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Semester is a term within an academic year.
type Semester string

const (
	First  Semester = "FIRST"
	Second Semester = "SECOND"
	Summer Semester = "SUMMER"
)

// Term identifies a semester of a specific academic year, e.g. 2025-2026 FIRST.
type Term struct {
	AcademicYear string   `json:"academicYear"`
	Semester     Semester `json:"semester"`
}

// String renders the term as "2025-2026 FIRST".
func (t Term) String() string {
	return t.AcademicYear + " " + string(t.Semester)
}

// IsZero reports whether the term is unset.
func (t Term) IsZero() bool {
	return t.AcademicYear == "" && t.Semester == ""
}

// Next returns the term that follows t.
func (t Term) Next() Term {
	start, ok := startYear(t.AcademicYear)
	if !ok {
		return Term{}
	}
	switch t.Semester {
	case First:
		return Term{AcademicYear: t.AcademicYear, Semester: Second}
	case Second:
		return Term{AcademicYear: t.AcademicYear, Semester: Summer}
	case Summer:
		return Term{AcademicYear: yearLabel(start + 1), Semester: First}
	}
	return Term{}
}

// Previous returns the term that precedes t.
func (t Term) Previous() Term {
	start, ok := startYear(t.AcademicYear)
	if !ok {
		return Term{}
	}
	switch t.Semester {
	case First:
		return Term{AcademicYear: yearLabel(start - 1), Semester: Summer}
	case Second:
		return Term{AcademicYear: t.AcademicYear, Semester: First}
	case Summer:
		return Term{AcademicYear: t.AcademicYear, Semester: Second}
	}
	return Term{}
}

// ResolveSemester returns the term date falls in. The date is interpreted in
// its own location; callers convert to the school's timezone first.
func ResolveSemester(date time.Time) Term {
	year := date.Year()
	switch month := date.Month(); {
	case month >= time.June && month <= time.October:
		return Term{AcademicYear: yearLabel(year), Semester: First}
	case month >= time.November:
		return Term{AcademicYear: yearLabel(year), Semester: Second}
	case month <= time.March:
		return Term{AcademicYear: yearLabel(year - 1), Semester: Second}
	default:
		return Term{AcademicYear: yearLabel(year - 1), Semester: Summer}
	}
}

// PreviousSemester returns the term before the one date falls in.
func PreviousSemester(date time.Time) Term {
	return ResolveSemester(date).Previous()
}

// NextSemester returns the term after the one date falls in.
func NextSemester(date time.Time) Term {
	return ResolveSemester(date).Next()
}

// ParseSemester accepts the spellings found in stored data ("FIRST", "1st",
// "2", "Summer", "second semester").
func ParseSemester(raw string) (Semester, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	value = strings.TrimSuffix(value, " SEMESTER")
	switch value {
	case "FIRST", "1", "1ST":
		return First, nil
	case "SECOND", "2", "2ND":
		return Second, nil
	case "SUMMER", "3", "MIDYEAR":
		return Summer, nil
	}
	return "", fmt.Errorf("unknown semester %q", raw)
}

// ParseTerm validates an academic year label and semester.
func ParseTerm(academicYear, semester string) (Term, error) {
	academicYear = strings.TrimSpace(academicYear)
	if _, ok := startYear(academicYear); !ok {
		return Term{}, fmt.Errorf("invalid academic year %q", academicYear)
	}
	sem, err := ParseSemester(semester)
	if err != nil {
		return Term{}, err
	}
	return Term{AcademicYear: academicYear, Semester: sem}, nil
}

func yearLabel(start int) string {
	return fmt.Sprintf("%d-%d", start, start+1)
}

func startYear(label string) (int, bool) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, false
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil || end != start+1 {
		return 0, false
	}
	return start, true
}
