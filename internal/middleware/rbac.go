package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ahaan1984/dee-portal-backend/internal/empid"
	"github.com/ahaan1984/dee-portal-backend/internal/models"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
	"github.com/ahaan1984/dee-portal-backend/pkg/response"
)

// RequireRoles enforces role-based access control for routes.
func RequireRoles(allowed ...empid.RoleClass) gin.HandlerFunc {
	allowedRoles := make(map[empid.RoleClass]struct{}, len(allowed))
	for _, role := range allowed {
		allowedRoles[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowedRoles[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// AnyRole admits every resolved role class. The district narrowing for
// district-scoped roles happens in the services, not here.
func AnyRole() gin.HandlerFunc {
	return RequireRoles(
		empid.RoleSuperAdmin,
		empid.RoleAdmin,
		empid.RoleViewer,
		empid.RoleDistrictAdmin,
		empid.RoleDistrictViewer,
	)
}
