package announcement

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/testutil"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestVisible(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	past, future := now.Add(-time.Hour), now.Add(time.Hour)

	assert.True(t, Announcement{IsActive: true}.Visible(now))
	assert.True(t, Announcement{IsActive: true, ExpiresAt: &future}.Visible(now))
	assert.False(t, Announcement{IsActive: true, ExpiresAt: &past}.Visible(now))
	assert.False(t, Announcement{IsActive: false}.Visible(now))
}

func TestRepository_ListActive(t *testing.T) {
	db := testutil.NewDB(t, &Announcement{})
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	past, future := now.Add(-time.Hour), now.Add(time.Hour)

	keep := &Announcement{Title: "Welcome", Content: "Hello everyone", Type: TypeInfo, IsActive: true, CreatedBy: uuid.New()}
	later := &Announcement{Title: "Maintenance", Content: "Down tonight", Type: TypeWarning, IsActive: true, CreatedBy: uuid.New(), ExpiresAt: &future}
	expired := &Announcement{Title: "Old news", Content: "Already over", Type: TypeInfo, IsActive: true, CreatedBy: uuid.New(), ExpiresAt: &past}
	for _, a := range []*Announcement{keep, later, expired} {
		require.NoError(t, repo.Create(ctx, a))
	}
	_, err := repo.SetActive(ctx, keep.ID, false)
	require.NoError(t, err)

	active, err := repo.ListActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, later.ID, active[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = repo.SetActive(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoutes_AdminGate(t *testing.T) {
	db := testutil.NewDB(t, &user.User{}, &user.AdminGrant{}, &Announcement{})
	member := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	admin := testutil.CreateUser(t, db, "Root", "root@example.com")
	_, err := user.NewAdminRepository(db).Grant(context.Background(), admin.ID, user.RoleAdmin)
	require.NoError(t, err)

	router := func(as uuid.UUID) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			middleware.SetIdentity(c, middleware.Identity{UserID: as})
			c.Next()
		})
		RegisterAnnouncementRoutes(r, common.Deps{DB: db})
		return r
	}
	post := func(r http.Handler, body interface{}) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/admin/announcements", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	valid := map[string]string{"title": "Welcome", "content": "Glad you are here", "type": "success"}

	w := post(router(member.ID), valid)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = post(router(admin.ID), valid)
	require.Equal(t, http.StatusCreated, w.Code)

	w = post(router(admin.ID), map[string]string{"title": "Hi", "content": "short", "type": "alert"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/announcements", nil)
	rec := httptest.NewRecorder()
	router(member.ID).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Glad you are here")
}
