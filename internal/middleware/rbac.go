package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-portal-api/internal/models"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
	"github.com/noah-isme/sis-portal-api/pkg/response"
)

// RequireRoles allows the request through only for the listed roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, permitted := allowed[claims.Role]; !permitted {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsStaff reports whether the role may act on any student's records.
func IsStaff(role models.UserRole) bool {
	return role == models.RoleAdmin || role == models.RoleRegistrar
}

// CanAccessStudent reports whether claims may read studentID's records:
// students only their own, staff anyone.
func CanAccessStudent(claims *models.JWTClaims, studentID string) bool {
	if claims == nil {
		return false
	}
	if IsStaff(claims.Role) {
		return true
	}
	return claims.Role == models.RoleStudent && claims.UserID == studentID
}
