package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-portal-api/internal/middleware"
	"github.com/noah-isme/sis-portal-api/internal/models"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}
	return claims
}

// targetStudent resolves the studentId query parameter, defaulting to the
// caller. Students may only name themselves; staff may name anyone.
func targetStudent(c *gin.Context) (string, error) {
	claims := claimsFromContext(c)
	if claims == nil {
		return "", appErrors.ErrUnauthorized
	}
	studentID := strings.TrimSpace(c.Query("studentId"))
	if studentID == "" {
		studentID = claims.UserID
	}
	if !middleware.CanAccessStudent(claims, studentID) {
		return "", appErrors.Clone(appErrors.ErrForbidden, "not allowed to view another student's records")
	}
	return studentID, nil
}

// currentStudent returns the caller's id for routes that only act on the
// caller's own records.
func currentStudent(c *gin.Context) (string, error) {
	claims := claimsFromContext(c)
	if claims == nil {
		return "", appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleStudent {
		return "", appErrors.Clone(appErrors.ErrForbidden, "only students can perform this action")
	}
	return claims.UserID, nil
}
