package browse

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/testutil"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func offer(t *testing.T, db *gorm.DB, u *user.User, s *skill.Skill, st skill.SkillType) {
	t.Helper()
	require.NoError(t, db.Create(&skill.UserSkill{UserID: u.ID, SkillID: s.ID, SkillType: st, ProficiencyLevel: skill.Intermediate}).Error)
}

func TestCandidates(t *testing.T) {
	db := testutil.NewDB(t, &user.User{}, &skill.Skill{}, &skill.UserSkill{}, &rating.Rating{})
	ctx := context.Background()

	goSkill := &skill.Skill{Name: "Go", Category: "Technology", IsApproved: true}
	piano := &skill.Skill{Name: "Piano", Category: "Music", IsApproved: true}
	baking := &skill.Skill{Name: "Baking", Category: "Cooking", IsApproved: true}
	for _, s := range []*skill.Skill{goSkill, piano, baking} {
		require.NoError(t, db.Create(s).Error)
	}

	me := testutil.CreateUser(t, db, "Viewer", "me@example.com")
	ada := testutil.CreateUser(t, db, "Ada Lovelace", "ada@example.com")
	bob := testutil.CreateUser(t, db, "Bob Builder", "bob@example.com")
	carol := testutil.CreateUser(t, db, "Carol", "carol@example.com")
	banned := testutil.CreateUser(t, db, "Mallory", "mallory@example.com")
	wantsOnly := testutil.CreateUser(t, db, "Dan", "dan@example.com")
	require.NoError(t, db.Model(banned).Update("is_banned", true).Error)

	offer(t, db, me, goSkill, skill.Offer)
	offer(t, db, ada, goSkill, skill.Offer)
	offer(t, db, ada, piano, skill.Offer)
	offer(t, db, bob, baking, skill.Offer)
	offer(t, db, carol, piano, skill.Offer)
	offer(t, db, banned, goSkill, skill.Offer)
	offer(t, db, wantsOnly, goSkill, skill.Want)

	ratings := rating.NewRatingRepository(db)
	require.NoError(t, ratings.Create(ctx, &rating.Rating{SwapRequestID: uuid.New(), RaterID: bob.ID, RatedID: ada.ID, Rating: 5}))
	require.NoError(t, ratings.Create(ctx, &rating.Rating{SwapRequestID: uuid.New(), RaterID: carol.ID, RatedID: ada.ID, Rating: 4}))

	svc := NewService(NewBrowseRepository(db), ratings)

	all, err := svc.Candidates(ctx, me.ID, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ada Lovelace", all[0].FullName)
	assert.Len(t, all[0].OfferedSkills, 2)
	assert.Equal(t, 4.5, all[0].AverageRating)
	assert.Equal(t, 2, all[0].RatingCount)
	assert.Equal(t, 0.0, all[1].AverageRating)

	byName, err := svc.Candidates(ctx, me.ID, "BUILD", "")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, bob.ID, byName[0].UserID)

	bySkill, err := svc.Candidates(ctx, me.ID, "pia", "")
	require.NoError(t, err)
	assert.Len(t, bySkill, 2)

	both, err := svc.Candidates(ctx, me.ID, "go", "Music")
	require.NoError(t, err)
	require.Len(t, both, 1, "search and category combine with AND")
	assert.Equal(t, ada.ID, both[0].UserID)

	none, err := svc.Candidates(ctx, me.ID, "", "music")
	require.NoError(t, err)
	assert.Empty(t, none, "category match is exact")
}

func TestGroupCandidates_KeepsFirstSeenOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	rows := []OfferRow{
		{UserID: a, FullName: "A", SkillName: "x"},
		{UserID: b, FullName: "B", SkillName: "y"},
		{UserID: a, FullName: "A", SkillName: "z"},
	}
	got := GroupCandidates(rows, map[uuid.UUID][]int{b: {3}})
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0].UserID)
	assert.Len(t, got[0].OfferedSkills, 2)
	assert.Equal(t, 3.0, got[1].AverageRating)

	filtered := FilterCandidates(got, a, "y", "")
	require.Len(t, filtered, 1)
	assert.Equal(t, b, filtered[0].UserID)
}
