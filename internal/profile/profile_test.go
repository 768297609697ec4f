package profile

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
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/skillswap/internal/announcement"
	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/realtime"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/swap"
	"github.com/DhavalSuthar-24/skillswap/internal/testutil"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) *gorm.DB {
	return testutil.NewDB(t, &user.User{}, &skill.Skill{}, &skill.UserSkill{}, &swap.SwapRequest{},
		&rating.Rating{}, &announcement.Announcement{}, &Availability{})
}

func router(db *gorm.DB, bus realtime.Publisher, as uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, middleware.Identity{UserID: as})
		c.Next()
	})
	RegisterProfileRoutes(r, common.Deps{DB: db, Bus: bus})
	return r
}

func call(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateProfile(t *testing.T) {
	db := setup(t)
	bus := realtime.NewMemoryBus(8, nil)
	defer bus.Close()
	u := testutil.CreateUser(t, db, "Ada", "ada@example.com")

	sub, err := bus.Subscribe(context.Background(), "users", realtime.Filter{})
	require.NoError(t, err)
	defer sub.Close()

	w := call(router(db, bus, u.ID), http.MethodPut, "/profile", map[string]string{
		"full_name": "Ada Lovelace", "location": "London", "bio": "Analytical engines",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored user.User
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	assert.Equal(t, "Ada Lovelace", stored.FullName)
	assert.Equal(t, "London", stored.Location)

	ev := <-sub.Events()
	assert.Equal(t, "Ada Lovelace", ev.New["full_name"])
	assert.NotContains(t, ev.New, "email")

	w = call(router(db, bus, u.ID), http.MethodPut, "/profile", map[string]string{"full_name": "A", "avatar_url": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "avatar_url")
}

func TestAvailability(t *testing.T) {
	db := setup(t)
	owner := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	other := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	r := router(db, nil, owner.ID)

	w := call(r, http.MethodPost, "/profile/availability", map[string]interface{}{
		"day_of_week": 0, "start_time": "09:00", "end_time": "11:30", "timezone": "Europe/London",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var env struct {
		Data Availability `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 0, env.Data.DayOfWeek)

	w = call(r, http.MethodPost, "/profile/availability", map[string]interface{}{
		"day_of_week": 7, "start_time": "9am", "end_time": "11:30", "timezone": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPost, "/profile/availability", map[string]interface{}{
		"day_of_week": 2, "start_time": "12:00", "end_time": "10:00", "timezone": "UTC",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(router(db, nil, other.ID), http.MethodDelete, "/profile/availability/"+env.Data.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodDelete, "/profile/availability/"+env.Data.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	slots, err := NewAvailabilityRepository(db).List(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDashboard(t *testing.T) {
	db := setup(t)
	ctx := context.Background()
	me := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	goSkill := &skill.Skill{Name: "Go", Category: "Technology", IsApproved: true}
	require.NoError(t, db.Create(goSkill).Error)
	require.NoError(t, db.Create(&skill.UserSkill{UserID: me.ID, SkillID: goSkill.ID, SkillType: skill.Offer, ProficiencyLevel: skill.Expert}).Error)

	swaps := swap.NewSwapRepository(db)
	for _, st := range []swap.Status{swap.StatusPending, swap.StatusPending, swap.StatusCompleted} {
		require.NoError(t, swaps.Create(ctx, &swap.SwapRequest{RequesterID: bob.ID, ProviderID: me.ID, RequestedSkillID: goSkill.ID, OfferedSkillID: goSkill.ID, Status: st}))
	}
	require.NoError(t, rating.NewRatingRepository(db).Create(ctx, &rating.Rating{SwapRequestID: uuid.New(), RaterID: bob.ID, RatedID: me.ID, Rating: 4}))
	past := time.Now().Add(-time.Hour)
	anns := announcement.NewAnnouncementRepository(db)
	require.NoError(t, anns.Create(ctx, &announcement.Announcement{Title: "Hello", Content: "Welcome aboard", Type: announcement.TypeInfo, IsActive: true, CreatedBy: bob.ID}))
	require.NoError(t, anns.Create(ctx, &announcement.Announcement{Title: "Gone", Content: "Expired notice", Type: announcement.TypeInfo, IsActive: true, CreatedBy: bob.ID, ExpiresAt: &past}))

	w := call(router(db, nil, me.ID), http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data Dashboard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	d := env.Data
	assert.EqualValues(t, 2, d.SwapCounts[swap.StatusPending])
	assert.EqualValues(t, 1, d.SwapCounts[swap.StatusCompleted])
	assert.EqualValues(t, 0, d.SwapCounts[swap.StatusRejected])
	assert.EqualValues(t, 1, d.OfferedSkills)
	assert.EqualValues(t, 0, d.WantedSkills)
	assert.Equal(t, 4.0, d.AverageRating)
	require.Len(t, d.Announcements, 1)
	assert.Equal(t, "Hello", d.Announcements[0].Title)
}

func TestDashboard_RendersWhenASectionFails(t *testing.T) {
	// No ratings or announcements tables.
	db := testutil.NewDB(t, &user.User{}, &skill.Skill{}, &skill.UserSkill{}, &swap.SwapRequest{})
	me := testutil.CreateUser(t, db, "Ada", "ada@example.com")

	w := call(router(db, nil, me.ID), http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var env struct {
		Data Dashboard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Data.Profile)
	assert.Equal(t, "Ada", env.Data.Profile.FullName)
	assert.Zero(t, env.Data.AverageRating)
	assert.Zero(t, env.Data.RatingCount)
	assert.NotNil(t, env.Data.Announcements)
	assert.Empty(t, env.Data.Announcements)
}

func TestGetMember_HidesBanned(t *testing.T) {
	db := setup(t)
	viewer := testutil.CreateUser(t, db, "Viewer", "v@example.com")
	member := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	r := router(db, nil, viewer.ID)

	w := call(r, http.MethodGet, "/users/"+member.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Model(member).Update("is_banned", true).Error)
	w = call(r, http.MethodGet, "/users/"+member.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, http.MethodGet, "/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
