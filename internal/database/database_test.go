package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/skillswap/config"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite(filepath.Join(t.TempDir(), "migrate.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestMigrate_CreatesEveryTable(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "migrations are repeatable")

	for _, table := range []string{"users", "admins", "refresh_tokens", "skills", "user_skills",
		"availability", "swap_requests", "ratings", "announcements"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestBootstrapAdmin(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Migrate(db))
	ctx := context.Background()
	log := logging.Discard()

	require.NoError(t, BootstrapAdmin(ctx, db, "", log))
	require.NoError(t, BootstrapAdmin(ctx, db, "root@example.com", log), "unknown email is skipped")

	u := &user.User{FullName: "Root", Email: "root@example.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)
	require.NoError(t, BootstrapAdmin(ctx, db, "root@example.com", log))
	require.NoError(t, BootstrapAdmin(ctx, db, "root@example.com", log))

	grant, err := user.NewAdminRepository(db).GetGrant(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Equal(t, user.RoleSuperAdmin, grant.Role)
}
