package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/swap"
	"github.com/DhavalSuthar-24/skillswap/internal/testutil"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/rmiddleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	db    *gorm.DB
	admin *user.User
	super *user.User
	ada   *user.User
	bob   *user.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t, &user.User{}, &user.AdminGrant{}, &skill.Skill{}, &skill.UserSkill{}, &swap.SwapRequest{}, &rating.Rating{})
	e := &env{
		db:    db,
		admin: testutil.CreateUser(t, db, "Admin", "admin@example.com"),
		super: testutil.CreateUser(t, db, "Super", "super@example.com"),
		ada:   testutil.CreateUser(t, db, "Ada", "ada@example.com"),
		bob:   testutil.CreateUser(t, db, "Bob", "bob@example.com"),
	}
	admins := user.NewAdminRepository(db)
	ctx := context.Background()
	_, err := admins.Grant(ctx, e.admin.ID, user.RoleAdmin)
	require.NoError(t, err)
	_, err = admins.Grant(ctx, e.super.ID, user.RoleSuperAdmin)
	require.NoError(t, err)
	return e
}

func (e *env) call(as uuid.UUID, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, middleware.Identity{UserID: as})
		c.Next()
	})
	RegisterAdminRoutes(r, common.Deps{DB: e.db})

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminGate(t *testing.T) {
	e := newEnv(t)

	w := e.call(e.ada.ID, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.call(e.ada.ID, http.MethodGet, "/admin", nil, "Content-Type", "", "Accept", "text/html")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, rmiddleware.NotAdminRedirect, w.Header().Get("Location"))

	w = e.call(e.admin.ID, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.call(e.admin.ID, http.MethodGet, "/admin/grants", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.call(e.super.ID, http.MethodGet, "/admin/grants", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOverview(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	goSkill := &skill.Skill{Name: "Go", Category: "Technology", IsApproved: true}
	require.NoError(t, e.db.Create(goSkill).Error)
	require.NoError(t, e.db.Create(&skill.Skill{Name: "Knitting", Category: "Arts & Crafts"}).Error)

	swaps := swap.NewSwapRepository(e.db)
	first := &swap.SwapRequest{RequesterID: e.ada.ID, ProviderID: e.bob.ID, RequestedSkillID: goSkill.ID, OfferedSkillID: goSkill.ID, Status: swap.StatusCompleted}
	require.NoError(t, swaps.Create(ctx, first))
	require.NoError(t, swaps.Create(ctx, &swap.SwapRequest{RequesterID: e.bob.ID, ProviderID: e.ada.ID, RequestedSkillID: goSkill.ID, OfferedSkillID: goSkill.ID}))
	ratings := rating.NewRatingRepository(e.db)
	require.NoError(t, ratings.Create(ctx, &rating.Rating{SwapRequestID: first.ID, RaterID: e.ada.ID, RatedID: e.bob.ID, Rating: 5}))
	require.NoError(t, ratings.Create(ctx, &rating.Rating{SwapRequestID: first.ID, RaterID: e.bob.ID, RatedID: e.ada.ID, Rating: 2}))

	w := e.call(e.admin.ID, http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data Overview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, Stats{TotalUsers: 4, TotalSwaps: 2, AverageRating: 3.5, PendingSkills: 1}, body.Data.Stats)
	require.Len(t, body.Data.Activity, 1)
	assert.Equal(t, 2, body.Data.Activity[0].Total)
	assert.Equal(t, 1, body.Data.Activity[0].Completed)
}

func TestExport(t *testing.T) {
	e := newEnv(t)
	w := e.call(e.admin.ID, http.MethodGet, "/admin/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Regexp(t, `attachment; filename="skillswap-report-\d{4}-\d{2}-\d{2}\.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "USERS REPORT\n"))
	assert.Contains(t, w.Body.String(), `"Ada","ada@example.com","N/A"`)
}

func TestModeration(t *testing.T) {
	e := newEnv(t)
	pending := &skill.Skill{Name: "Knitting", Category: "Arts & Crafts"}
	require.NoError(t, e.db.Create(pending).Error)

	w := e.call(e.admin.ID, http.MethodGet, "/admin/skills/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Knitting")

	for i := 0; i < 2; i++ {
		w = e.call(e.admin.ID, http.MethodPatch, "/admin/skills/"+pending.ID.String()+"/approval", map[string]bool{"is_approved": true})
		require.Equal(t, http.StatusOK, w.Code, "approval is idempotent")
	}
	var stored skill.Skill
	require.NoError(t, e.db.First(&stored, "id = ?", pending.ID).Error)
	assert.True(t, stored.IsApproved)

	w = e.call(e.admin.ID, http.MethodPatch, "/admin/users/"+e.ada.ID.String()+"/ban", map[string]bool{"is_banned": true})
	require.Equal(t, http.StatusOK, w.Code)
	var banned user.User
	require.NoError(t, e.db.First(&banned, "id = ?", e.ada.ID).Error)
	assert.True(t, banned.IsBanned)

	w = e.call(e.admin.ID, http.MethodPatch, "/admin/users/"+uuid.NewString()+"/ban", map[string]bool{"is_banned": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.call(e.admin.ID, http.MethodPatch, "/admin/users/"+e.ada.ID.String()+"/ban", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsers_Paginates(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 10; i++ {
		testutil.CreateUser(t, e.db, "Member", uuid.NewString()+"@example.com")
	}

	w := e.call(e.admin.ID, http.MethodGet, "/admin/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data       []user.User `json:"data"`
		Pagination struct {
			TotalItems int64 `json:"total_items"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, UsersPageSize)
	assert.EqualValues(t, 14, body.Pagination.TotalItems)
}

func TestGrants(t *testing.T) {
	e := newEnv(t)

	w := e.call(e.super.ID, http.MethodPut, "/admin/grants/"+e.ada.ID.String(), map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, w.Code)
	ok, err := user.NewAdminRepository(e.db).IsAdmin(context.Background(), e.ada.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	w = e.call(e.super.ID, http.MethodPut, "/admin/grants/"+e.ada.ID.String(), map[string]string{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.call(e.super.ID, http.MethodDelete, "/admin/grants/"+e.super.ID.String(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.call(e.super.ID, http.MethodDelete, "/admin/grants/"+e.ada.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.call(e.super.ID, http.MethodDelete, "/admin/grants/"+e.ada.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOverview_RendersWhenASectionFails(t *testing.T) {
	db := testutil.NewDB(t, &user.User{}, &skill.Skill{}, &skill.UserSkill{}, &swap.SwapRequest{})
	testutil.CreateUser(t, db, "Ada", "ada@example.com")
	require.NoError(t, db.Create(&skill.Skill{Name: "Knitting", Category: "Arts & Crafts"}).Error)

	svc := NewService(user.NewUserRepository(db), swap.NewSwapRepository(db), rating.NewRatingRepository(db),
		skill.NewSkillRepository(db), nil)
	out := svc.Overview(context.Background())

	require.NotNil(t, out)
	assert.Equal(t, Stats{TotalUsers: 1, TotalSwaps: 0, AverageRating: 0, PendingSkills: 1}, out.Stats)
	assert.NotNil(t, out.Activity)
	assert.Empty(t, out.Activity)
}
