// Package database owns the schema and the start-up data fixes.
package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/skillswap/internal/announcement"
	"github.com/DhavalSuthar-24/skillswap/internal/profile"
	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/swap"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.User{}, &user.AdminGrant{}, &user.RefreshToken{},
		&skill.Skill{}, &skill.UserSkill{},
		&profile.Availability{},
		&swap.SwapRequest{},
		&rating.Rating{},
		&announcement.Announcement{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// BootstrapAdmin grants super_admin to the member with the given email. It is a
// no-op when email is empty or that member has not signed up yet, and leaves an
// existing grant alone.
func BootstrapAdmin(ctx context.Context, db *gorm.DB, email string, log *logging.Logger) error {
	if email == "" {
		return nil
	}

	u, err := user.NewUserRepository(db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			log.WithContext(ctx).Warn("bootstrap admin has not signed up yet", "email", email)
			return nil
		}
		return err
	}

	admins := user.NewAdminRepository(db)
	existing, err := admins.GetGrant(ctx, u.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if _, err := admins.Grant(ctx, u.ID, user.RoleSuperAdmin); err != nil {
		return fmt.Errorf("grant bootstrap admin: %w", err)
	}
	log.WithContext(ctx).Info("bootstrap admin granted", "user_id", u.ID.String())
	return nil
}
