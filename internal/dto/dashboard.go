package dto

import (
	"github.com/noah-isme/sis-portal-api/internal/calendar"
	"github.com/noah-isme/sis-portal-api/internal/eligibility"
	"github.com/noah-isme/sis-portal-api/internal/models"
)

// StudentDashboardSummary is the cacheable part of the student dashboard.
type StudentDashboardSummary struct {
	Profile       models.StudentProfile     `json:"profile"`
	CurrentTerm   calendar.Term             `json:"currentTerm"`
	LatestGPA     *models.StudentGPA        `json:"latestGpa,omitempty"`
	LatestRequest *models.EnrollmentRequest `json:"latestRequest,omitempty"`
}

// StudentDashboardResponse is the student dashboard payload. Eligibility is
// evaluated on every request and never cached.
type StudentDashboardResponse struct {
	StudentDashboardSummary
	Eligibility eligibility.Result `json:"eligibility"`
}
