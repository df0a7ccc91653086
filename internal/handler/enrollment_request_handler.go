package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-portal-api/internal/models"
	"github.com/noah-isme/sis-portal-api/pkg/response"
)

type enrollmentRequestService interface {
	Submit(ctx context.Context, studentID string) (*models.EnrollmentRequest, error)
	List(ctx context.Context, studentID string) ([]models.EnrollmentRequest, error)
}

// EnrollmentRequestHandler handles next-semester enrollment requests.
type EnrollmentRequestHandler struct {
	service enrollmentRequestService
}

// NewEnrollmentRequestHandler constructs the handler.
func NewEnrollmentRequestHandler(svc enrollmentRequestService) *EnrollmentRequestHandler {
	return &EnrollmentRequestHandler{service: svc}
}

// Submit godoc
// @Summary Submit enrollment request
// @Description Files an enrollment request for the next semester when the caller is eligible
// @Tags Enrollment
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /enrollment-requests [post]
func (h *EnrollmentRequestHandler) Submit(c *gin.Context) {
	studentID, err := currentStudent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	req, err := h.service.Submit(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, req)
}

// List godoc
// @Summary Enrollment request history
// @Tags Enrollment
// @Produce json
// @Param studentId query string false "Student ID (staff only)"
// @Success 200 {object} response.Envelope
// @Router /enrollment-requests [get]
func (h *EnrollmentRequestHandler) List(c *gin.Context) {
	studentID, err := targetStudent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, items, nil)
}
