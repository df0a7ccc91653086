package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-portal-api/internal/models"
	"github.com/noah-isme/sis-portal-api/internal/service"
	"github.com/noah-isme/sis-portal-api/pkg/response"
)

type gradeService interface {
	Report(ctx context.Context, studentID, academicYear, semester string) (*models.GradeReport, error)
	Export(ctx context.Context, studentID, academicYear, semester, format string) (*service.GradeExport, error)
}

// GradeHandler exposes term grades and the downloadable grade slip.
type GradeHandler struct {
	service gradeService
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(svc gradeService) *GradeHandler {
	return &GradeHandler{service: svc}
}

// List godoc
// @Summary Term grades
// @Tags Grades
// @Produce json
// @Param studentId query string false "Student ID (staff only)"
// @Param academicYear query string false "Academic year"
// @Param semester query string false "Semester"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	studentID, err := targetStudent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.service.Report(c.Request.Context(), studentID, c.Query("academicYear"), c.Query("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, report, nil)
}

// Export godoc
// @Summary Download grade slip
// @Tags Grades
// @Produce application/pdf
// @Produce text/csv
// @Param format query string false "pdf (default) or csv"
// @Param academicYear query string false "Academic year"
// @Param semester query string false "Semester"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /grades/export [get]
func (h *GradeHandler) Export(c *gin.Context) {
	studentID, err := targetStudent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.service.Export(c.Request.Context(), studentID, c.Query("academicYear"), c.Query("semester"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, file.FileName, file.ContentType, file.Body)
}
