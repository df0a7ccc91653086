package models

import "time"

// EnrollmentPeriodStatus is the stored status of an enrollment window.
type EnrollmentPeriodStatus string

const (
	EnrollmentPeriodActive    EnrollmentPeriodStatus = "ACTIVE"
	EnrollmentPeriodScheduled EnrollmentPeriodStatus = "SCHEDULED"
	EnrollmentPeriodClosed    EnrollmentPeriodStatus = "CLOSED"
)

// EnrollmentPeriod is an administrator-defined window during which students of
// a course may request enrollment for a target academic year and semester.
type EnrollmentPeriod struct {
	ID           string                 `db:"id" json:"id"`
	CourseID     string                 `db:"course_id" json:"courseId"`
	Name         string                 `db:"name" json:"name"`
	AcademicYear *string                `db:"academic_year" json:"academicYear,omitempty"`
	Semester     *string                `db:"semester" json:"semester,omitempty"`
	StartAt      time.Time              `db:"start_at" json:"startAt"`
	EndAt        time.Time              `db:"end_at" json:"endAt"`
	Status       EnrollmentPeriodStatus `db:"status" json:"status"`
	CreatedAt    time.Time              `db:"created_at" json:"createdAt"`
}
