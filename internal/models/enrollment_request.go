package models

import "time"

// EnrollmentRequestStatus represents the lifecycle of an enrollment request.
type EnrollmentRequestStatus string

const (
	EnrollmentRequestPending  EnrollmentRequestStatus = "PENDING"
	EnrollmentRequestApproved EnrollmentRequestStatus = "APPROVED"
	EnrollmentRequestRejected EnrollmentRequestStatus = "REJECTED"
)

// EnrollmentRequest is a student's request to enroll in the target term of a period.
type EnrollmentRequest struct {
	ID              string                  `db:"id" json:"id"`
	StudentID       string                  `db:"student_id" json:"studentId"`
	CourseID        string                  `db:"course_id" json:"courseId"`
	PeriodID        string                  `db:"period_id" json:"periodId"`
	AcademicYear    string                  `db:"academic_year" json:"academicYear"`
	Semester        string                  `db:"semester" json:"semester"`
	Status          EnrollmentRequestStatus `db:"status" json:"status"`
	RequestedAt     time.Time               `db:"requested_at" json:"requestedAt"`
	ReviewedAt      *time.Time              `db:"reviewed_at" json:"reviewedAt,omitempty"`
	RejectionReason *string                 `db:"rejection_reason" json:"rejectionReason,omitempty"`
}
