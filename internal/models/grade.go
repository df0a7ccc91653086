package models

// GradeStatus marks how official a grade record is.
type GradeStatus string

const (
	GradeDraft    GradeStatus = "DRAFT"
	GradeApproved GradeStatus = "APPROVED"
	GradeLocked   GradeStatus = "LOCKED"
)

// Final reports whether the grade counts toward completeness checks.
func (s GradeStatus) Final() bool {
	return s == GradeApproved || s == GradeLocked
}

// GradeRecord is a student's grade for one subject in a term. FinalGrade is
// nil when the teacher has not encoded a grade yet.
type GradeRecord struct {
	SubjectID    string      `db:"subject_id" json:"subjectId"`
	SubjectCode  string      `db:"subject_code" json:"subjectCode"`
	SubjectName  string      `db:"subject_name" json:"subjectName"`
	Units        float64     `db:"units" json:"units"`
	AcademicYear string      `db:"academic_year" json:"academicYear"`
	Semester     string      `db:"semester" json:"semester"`
	FinalGrade   *float64    `db:"final_grade" json:"finalGrade,omitempty"`
	Status       GradeStatus `db:"status" json:"status"`
	Remarks      *string     `db:"remarks" json:"remarks,omitempty"`
}

// StudentGPA is the computed GPA for a term.
type StudentGPA struct {
	AcademicYear string  `db:"academic_year" json:"academicYear"`
	Semester     string  `db:"semester" json:"semester"`
	GPA          float64 `db:"gpa" json:"gpa"`
}

// GradeReport lists a student's grades for one term.
type GradeReport struct {
	StudentID    string        `json:"studentId"`
	AcademicYear string        `json:"academicYear"`
	Semester     string        `json:"semester"`
	Grades       []GradeRecord `json:"grades"`
	GPA          *float64      `json:"gpa,omitempty"`
	TotalUnits   float64       `json:"totalUnits"`
}
