package browse

import (
	"context"

	"gorm.io/gorm"
)

type BrowseRepository interface {
	OfferRows(ctx context.Context) ([]OfferRow, error)
}

type browseRepository struct {
	db *gorm.DB
}

func NewBrowseRepository(db *gorm.DB) BrowseRepository {
	return &browseRepository{db: db}
}

// OfferRows joins non-banned members with the skills they offer, one row per pair.
func (r *browseRepository) OfferRows(ctx context.Context) ([]OfferRow, error) {
	var rows []OfferRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select(`users.id AS user_id, users.full_name, users.avatar_url, users.location, users.bio,
			skills.id AS skill_id, skills.name AS skill_name, skills.category, user_skills.proficiency_level`).
		Joins("JOIN user_skills ON user_skills.user_id = users.id AND user_skills.skill_type = ?", "offer").
		Joins("JOIN skills ON skills.id = user_skills.skill_id").
		Where("users.is_banned = ?", false).
		Order("users.full_name ASC, skills.name ASC").
		Scan(&rows).Error
	return rows, err
}
