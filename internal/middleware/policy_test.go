package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/skillswap/internal/models"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

type fakeUsers map[uuid.UUID]*user.User

func (f fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

type brokenUsers struct{}

func (brokenUsers) GetUserByID(context.Context, uuid.UUID) (*user.User, error) {
	return nil, errors.New("db down")
}

func newRouter(users UserLookup) *gin.Engine {
	r := gin.New()
	r.Use(SessionMiddleware(testSecret, "session", users), AccessPolicy())
	ok := func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": id.UserID.String()})
	}
	r.GET("/", ok)
	r.GET("/dashboard", ok)
	r.GET("/my-swaps/:id", ok)
	r.GET("/browsers", ok)
	r.GET("/auth/signin", ok)
	r.POST("/auth/signin", ok)
	return r
}

func seededUser() (fakeUsers, *user.User, string) {
	u := &user.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "ada@example.com", FullName: "Ada"}
	signed, _ := token.GenerateJWT(u.ID, u.Email, u.FullName, testSecret, 5)
	return fakeUsers{u.ID: u}, u, signed
}

func TestAccessPolicy_ProtectedWithoutSession(t *testing.T) {
	r := newRouter(fakeUsers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, SignInPath, w.Header().Get("Location"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/my-swaps/123", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccessPolicy_PublicPaths(t *testing.T) {
	r := newRouter(fakeUsers{})
	for _, path := range []string{"/", "/browsers", "/auth/signin"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestAccessPolicy_BearerSession(t *testing.T) {
	users, u, signed := seededUser()
	r := newRouter(users)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.ID.String())
}

func TestAccessPolicy_CookieSessionRedirectsAwayFromAuthPages(t *testing.T) {
	users, _, signed := seededUser()
	r := newRouter(users)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/signin", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: signed})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, AfterAuthPath, w.Header().Get("Location"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: signed})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSession_InvalidOrUnknownTokenIsAnonymous(t *testing.T) {
	unknown, _ := token.GenerateJWT(uuid.New(), "x@y.z", "X", testSecret, 5)
	r := newRouter(fakeUsers{})

	for _, raw := range []string{"garbage", unknown} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestSession_LookupFailureIs500(t *testing.T) {
	_, _, signed := seededUser()
	r := newRouter(brokenUsers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, matchesAny("/admin", ProtectedPrefixes))
	assert.True(t, matchesAny("/admin/users", ProtectedPrefixes))
	assert.False(t, matchesAny("/administrator", ProtectedPrefixes))
	assert.False(t, matchesAny("/announcements", ProtectedPrefixes))
}
