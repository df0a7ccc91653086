package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-portal-api/internal/middleware"
	"github.com/noah-isme/sis-portal-api/internal/service"
	"github.com/noah-isme/sis-portal-api/pkg/response"
)

type eligibilityAssessor interface {
	Assess(ctx context.Context, studentID string) (*service.Assessment, error)
}

// EligibilityHandler reports whether a student may enroll for the next semester.
type EligibilityHandler struct {
	service eligibilityAssessor
}

// NewEligibilityHandler constructs the handler.
func NewEligibilityHandler(svc eligibilityAssessor) *EligibilityHandler {
	return &EligibilityHandler{service: svc}
}

// Check godoc
// Unknown student ids are the one non-200 outcome besides access control.
// @Summary Enrollment eligibility
// @Description Evaluates whether the student may submit an enrollment request. Data failures are reported as a disabled button, never as an error.
// @Tags Enrollment
// @Produce json
// @Param studentId query string false "Student ID (defaults to the caller)"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope "unknown student id; every decision, including data failures, is 200"
// @Router /eligibility [get]
func (h *EligibilityHandler) Check(c *gin.Context) {
	studentID, err := targetStudent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	assessment, err := h.service.Assess(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !assessment.Target.IsZero() {
		middleware.SetMeta(c, "targetTerm", assessment.Target)
	}
	response.JSON(c, http.StatusOK, assessment.Result, nil, middleware.ResponseMeta(c))
}
