package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/skillswap/internal/testutil"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func TestUserRepository_Profile(t *testing.T) {
	db := testutil.NewDB(t, &user.User{})
	repo := user.NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "ada@example.com", Password: "hash", FullName: "Ada"}
	require.NoError(t, repo.CreateUser(ctx, u))

	found, err := repo.GetUserByEmail(ctx, "  ADA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = repo.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrNotFound)

	updated, err := repo.UpdateProfile(ctx, u.ID, map[string]interface{}{"location": "London", "bio": "Mathematician"})
	require.NoError(t, err)
	assert.Equal(t, "London", updated.Location)
	assert.Equal(t, "Ada", updated.FullName)

	_, err = repo.UpdateProfile(ctx, uuid.New(), map[string]interface{}{"bio": "x"})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserRepository_ListAndBan(t *testing.T) {
	db := testutil.NewDB(t, &user.User{})
	repo := user.NewUserRepository(db)
	ctx := context.Background()

	ada := testutil.CreateUser(t, db, "Ada Lovelace", "ada@example.com")
	testutil.CreateUser(t, db, "Bob Builder", "bob@example.com")
	testutil.CreateUser(t, db, "Cleo", "cleo@example.com")

	page, total, err := repo.ListUsers(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 2)

	matched, total, err := repo.ListUsers(ctx, 1, 10, "LOVE")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, ada.ID, matched[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ada.ID, all[0].ID)

	for i := 0; i < 2; i++ {
		banned, err := repo.SetBanned(ctx, ada.ID, true)
		require.NoError(t, err)
		assert.True(t, banned.IsBanned)
	}
	_, err = repo.SetBanned(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserRepository_RefreshTokens(t *testing.T) {
	db := testutil.NewDB(t, &user.User{}, &user.RefreshToken{})
	repo := user.NewUserRepository(db)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "Ada", "ada@example.com")

	require.NoError(t, repo.SaveRefreshToken(ctx, &user.RefreshToken{UserID: u.ID, Token: "live", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, repo.SaveRefreshToken(ctx, &user.RefreshToken{UserID: u.ID, Token: "stale", ExpiresAt: time.Now().Add(-time.Hour)}))

	rt, err := repo.GetRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, u.ID, rt.UserID)

	_, err = repo.GetRefreshToken(ctx, "stale")
	assert.ErrorIs(t, err, user.ErrNotFound)
	_, err = repo.GetRefreshToken(ctx, "unknown")
	assert.ErrorIs(t, err, user.ErrNotFound)

	require.NoError(t, repo.RevokeAllRefreshTokens(ctx, u.ID))
	_, err = repo.GetRefreshToken(ctx, "live")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestAdminRepository(t *testing.T) {
	db := testutil.NewDB(t, &user.User{}, &user.AdminGrant{})
	repo := user.NewAdminRepository(db)
	ctx := context.Background()
	ada := testutil.CreateUser(t, db, "Ada", "ada@example.com")

	grant, err := repo.GetGrant(ctx, ada.ID)
	require.NoError(t, err)
	assert.Nil(t, grant)

	_, err = repo.Grant(ctx, ada.ID, user.RoleAdmin)
	require.NoError(t, err)
	promoted, err := repo.Grant(ctx, ada.ID, user.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, user.RoleSuperAdmin, promoted.Role)

	grants, err := repo.ListGrants(ctx)
	require.NoError(t, err)
	require.Len(t, grants, 1, "a member holds at most one grant")
	require.NotNil(t, grants[0].User)
	assert.Equal(t, "Ada", grants[0].User.FullName)

	ok, err := repo.IsAdmin(ctx, ada.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Revoke(ctx, ada.ID))
	assert.ErrorIs(t, repo.Revoke(ctx, ada.ID), user.ErrNotFound)
	ok, err = repo.IsAdmin(ctx, ada.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPublicRow_OmitsEmail(t *testing.T) {
	row := user.User{Email: "ada@example.com", FullName: "Ada"}.PublicRow()
	assert.NotContains(t, row, "email")
	assert.Equal(t, "Ada", row["full_name"])
}
