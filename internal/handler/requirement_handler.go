package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-portal-api/internal/models"
	"github.com/noah-isme/sis-portal-api/internal/service"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
	"github.com/noah-isme/sis-portal-api/pkg/response"
)

type requirementService interface {
	List(ctx context.Context, studentID string) ([]models.Requirement, error)
	Upload(ctx context.Context, studentID, requirementID string, upload service.DocumentUpload) (*models.Requirement, error)
	DocumentLink(ctx context.Context, studentID, requirementID string) (*service.DocumentLink, error)
	OpenDocument(token string) (*service.DocumentDownload, error)
}

// RequirementHandler manages admission requirement documents.
type RequirementHandler struct {
	service requirementService
}

// NewRequirementHandler constructs the handler.
func NewRequirementHandler(svc requirementService) *RequirementHandler {
	return &RequirementHandler{service: svc}
}

// List godoc
// @Summary Admission requirements
// @Tags Requirements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /requirements [get]
func (h *RequirementHandler) List(c *gin.Context) {
	studentID, err := currentStudent(c)
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

// Upload godoc
// @Summary Upload requirement document
// @Tags Requirements
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Requirement ID"
// @Param file formData file true "Document (PDF, JPEG or PNG)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 415 {object} response.Envelope
// @Router /requirements/{id}/document [post]
func (h *RequirementHandler) Upload(c *gin.Context) {
	studentID, err := currentStudent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unable to read file"))
		return
	}
	defer file.Close()

	req, err := h.service.Upload(c.Request.Context(), studentID, c.Param("id"), service.DocumentUpload{
		FileName: header.Filename,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, req, nil)
}

// Link godoc
// @Summary Signed document download link
// @Tags Requirements
// @Produce json
// @Param id path string true "Requirement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requirements/{id}/document [get]
func (h *RequirementHandler) Link(c *gin.Context) {
	studentID, err := currentStudent(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	link, err := h.service.DocumentLink(c.Request.Context(), studentID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, link, nil)
}

// Download godoc
// @Summary Download a requirement document
// @Tags Requirements
// @Produce octet-stream
// @Param token query string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /documents/download [get]
func (h *RequirementHandler) Download(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	doc, err := h.service.OpenDocument(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer doc.Content.Close()

	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, doc.Size, doc.ContentType, doc.Content, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.FileName),
	})
}
