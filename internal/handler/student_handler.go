package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-portal-api/internal/models"
	"github.com/noah-isme/sis-portal-api/internal/service"
	"github.com/noah-isme/sis-portal-api/pkg/response"
)

type studentService interface {
	Profile(ctx context.Context, studentID string) (*models.StudentProfile, error)
	Schedule(ctx context.Context, studentID, academicYear, semester string) (*service.StudentSchedule, error)
}

// StudentHandler serves the caller's profile and class schedule.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(svc studentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// Me godoc
// @Summary Student profile
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/me [get]
func (h *StudentHandler) Me(c *gin.Context) {
	studentID, err := currentStudent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profile, nil)
}

// Schedule godoc
// @Summary Student class schedule
// @Tags Students
// @Produce json
// @Param academicYear query string false "Academic year, e.g. 2025-2026"
// @Param semester query string false "FIRST, SECOND or SUMMER"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/me/schedule [get]
func (h *StudentHandler) Schedule(c *gin.Context) {
	studentID, err := currentStudent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	schedule, err := h.service.Schedule(c.Request.Context(), studentID, c.Query("academicYear"), c.Query("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, schedule, nil)
}
