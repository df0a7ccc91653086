package models

// StudentProfile is a student joined with their program and section.
type StudentProfile struct {
	ID            string  `db:"id" json:"id"`
	StudentNumber *string `db:"student_number" json:"studentNumber,omitempty"`
	FullName      string  `db:"full_name" json:"fullName"`
	Email         string  `db:"email" json:"email"`
	Status        string  `db:"status" json:"status"`
	CourseID      *string `db:"course_id" json:"courseId,omitempty"`
	CourseCode    *string `db:"course_code" json:"courseCode,omitempty"`
	CourseName    *string `db:"course_name" json:"courseName,omitempty"`
	SectionID     *string `db:"section_id" json:"sectionId,omitempty"`
	SectionName   *string `db:"section_name" json:"sectionName,omitempty"`
	YearLevel     *int    `db:"year_level" json:"yearLevel,omitempty"`
}
