package announcement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("announcement not found")

type AnnouncementRepository interface {
	Create(ctx context.Context, a *Announcement) error
	ListActive(ctx context.Context, now time.Time) ([]Announcement, error)
	ListAll(ctx context.Context) ([]Announcement, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListActive returns active announcements that have not expired by now. Expiry is
// checked in Go so the comparison does not depend on how the driver stores times.
func (r *announcementRepository) ListActive(ctx context.Context, now time.Time) ([]Announcement, error) {
	var rows []Announcement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, a := range rows {
		if a.Visible(now) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *announcementRepository) ListAll(ctx context.Context) ([]Announcement, error) {
	var out []Announcement
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *announcementRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Announcement, error) {
	res := r.db.WithContext(ctx).Model(&Announcement{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var a Announcement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
