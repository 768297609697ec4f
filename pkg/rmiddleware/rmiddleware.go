package rmiddleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
)

const (
	AdminGrantKey = "admin_grant"

	// NotAdminRedirect is where browsers land when they lack an admin grant.
	NotAdminRedirect = "/?notice=not_admin"
)

// RoleMiddleware admits members whose admin grant has one of the given roles.
// With no roles, any grant is enough.
func RoleMiddleware(admins user.AdminRepository, requiredRoles ...user.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.CurrentIdentity(c)
		if !ok {
			deny(c, http.StatusUnauthorized, "Sign in to continue")
			return
		}

		grant, err := admins.GetGrant(c.Request.Context(), identity.UserID)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to check admin access", nil)
			return
		}
		if grant == nil || !hasRole(grant.Role, requiredRoles) {
			deny(c, http.StatusForbidden, "Access denied. Admin privileges required.")
			return
		}

		c.Set(AdminGrantKey, grant)
		c.Next()
	}
}

// AdminMiddleware is the gate for every /admin path.
func AdminMiddleware(admins user.AdminRepository) gin.HandlerFunc {
	return RoleMiddleware(admins)
}

// SuperAdminMiddleware guards grant management.
func SuperAdminMiddleware(admins user.AdminRepository) gin.HandlerFunc {
	return RoleMiddleware(admins, user.RoleSuperAdmin)
}

// GrantFromContext returns the grant stored by RoleMiddleware.
func GrantFromContext(c *gin.Context) (*user.AdminGrant, bool) {
	v, ok := c.Get(AdminGrantKey)
	if !ok {
		return nil, false
	}
	grant, ok := v.(*user.AdminGrant)
	return grant, ok
}

func hasRole(role user.AdminRole, required []user.AdminRole) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

func deny(c *gin.Context, status int, message string) {
	if middleware.WantsJSON(c) {
		responses.SendError(c, status, message, nil)
		return
	}
	c.Redirect(http.StatusFound, NotAdminRedirect)
	c.Abort()
}
