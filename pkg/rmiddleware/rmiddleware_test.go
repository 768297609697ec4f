package rmiddleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAdmins struct {
	grants map[uuid.UUID]*user.AdminGrant
}

func (f fakeAdmins) GetGrant(_ context.Context, id uuid.UUID) (*user.AdminGrant, error) {
	return f.grants[id], nil
}
func (f fakeAdmins) IsAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	g, _ := f.GetGrant(ctx, id)
	return g != nil, nil
}
func (f fakeAdmins) ListGrants(context.Context) ([]user.AdminGrant, error) { return nil, nil }
func (f fakeAdmins) Grant(context.Context, uuid.UUID, user.AdminRole) (*user.AdminGrant, error) {
	return nil, nil
}
func (f fakeAdmins) Revoke(context.Context, uuid.UUID) error { return nil }

func router(admins user.AdminRepository, as uuid.UUID, gate gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if as != uuid.Nil {
			middleware.SetIdentity(c, middleware.Identity{UserID: as})
		}
		c.Next()
	})
	r.GET("/admin", gate, func(c *gin.Context) {
		grant, _ := GrantFromContext(c)
		c.JSON(http.StatusOK, gin.H{"role": grant.Role})
	})
	return r
}

func TestAdminMiddleware(t *testing.T) {
	admin, member := uuid.New(), uuid.New()
	admins := fakeAdmins{grants: map[uuid.UUID]*user.AdminGrant{
		admin: {UserID: admin, Role: user.RoleAdmin},
	}}

	t.Run("member browsing is redirected home", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Accept", "text/html")
		router(admins, member, AdminMiddleware(admins)).ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, NotAdminRedirect, w.Header().Get("Location"))
	})

	t.Run("member api call is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Accept", "application/json")
		router(admins, member, AdminMiddleware(admins)).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		router(admins, admin, AdminMiddleware(admins)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"admin"`)
	})

	t.Run("admin is not super admin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Accept", "application/json")
		router(admins, admin, SuperAdminMiddleware(admins)).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Accept", "application/json")
		router(admins, uuid.Nil, AdminMiddleware(admins)).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
