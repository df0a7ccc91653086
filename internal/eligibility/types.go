// Package eligibility decides whether a student may submit a next-semester
// enrollment request.
//
// Evaluate is a pure function over an Input assembled by the caller; it does no
// I/O and holds no state, so it can be shared freely between request handlers.
// Conditions are checked in a fixed order and the first failing one determines
// the ReasonCode shown to the student.
package eligibility

import (
	"strings"
	"time"
)

// StudentStatus is the account status of a student as far as enrollment cares.
type StudentStatus string

const (
	StudentActive   StudentStatus = "ACTIVE"
	StudentEnrolled StudentStatus = "ENROLLED"
	StudentInactive StudentStatus = "INACTIVE"
	StudentOther    StudentStatus = "OTHER"
)

// ParseStudentStatus maps a stored status onto StudentStatus. Unknown values
// become StudentOther.
func ParseStudentStatus(raw string) StudentStatus {
	switch StudentStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case StudentActive:
		return StudentActive
	case StudentEnrolled:
		return StudentEnrolled
	case StudentInactive:
		return StudentInactive
	default:
		return StudentOther
	}
}

// PeriodStatus is the lifecycle state of an enrollment period.
type PeriodStatus string

const (
	PeriodActive    PeriodStatus = "ACTIVE"
	PeriodScheduled PeriodStatus = "SCHEDULED"
	PeriodClosed    PeriodStatus = "CLOSED"
)

// ParsePeriodStatus maps a stored period status; unknown values are treated as closed.
func ParsePeriodStatus(raw string) PeriodStatus {
	switch PeriodStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case PeriodActive:
		return PeriodActive
	case PeriodScheduled:
		return PeriodScheduled
	default:
		return PeriodClosed
	}
}

// RequestStatus is the status of an existing enrollment request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// ParseRequestStatus maps a stored request status. ok is false for unknown values.
func ParseRequestStatus(raw string) (RequestStatus, bool) {
	switch s := RequestStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case RequestPending, RequestApproved, RequestRejected:
		return s, true
	default:
		return "", false
	}
}

// Period is the enrollment window relevant to the student's course.
type Period struct {
	ID       string
	StartAt  time.Time
	EndAt    time.Time
	Status   PeriodStatus
	CourseID string
}

// Input carries everything Evaluate needs. Pointer fields are optional; nil
// means the value could not be resolved.
type Input struct {
	StudentID              string
	StudentStatus          StudentStatus
	CourseID               *string
	ActivePeriod           *Period
	HasPendingRequest      bool
	ExistingRequestStatus  *RequestStatus
	MissingFinalGradeCount int
	ActiveHoldCount        int
	Now                    time.Time
}

// Result is the outcome of an evaluation.
type Result struct {
	CanEnroll      bool       `json:"canEnroll"`
	ButtonDisabled bool       `json:"buttonDisabled"`
	ReasonCode     ReasonCode `json:"reasonCode"`
	Message        string     `json:"message"`
	ActionLabel    string     `json:"actionLabel"`
}
