package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAvailabilityNotFound = errors.New("availability slot not found")

type AvailabilityRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]Availability, error)
	Add(ctx context.Context, a *Availability) error
	Get(ctx context.Context, id uuid.UUID) (*Availability, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type availabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) List(ctx context.Context, userID uuid.UUID) ([]Availability, error) {
	var out []Availability
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC, start_time ASC").
		Find(&out).Error
	return out, err
}

func (r *availabilityRepository) Add(ctx context.Context, a *Availability) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *availabilityRepository) Get(ctx context.Context, id uuid.UUID) (*Availability, error) {
	var a Availability
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *availabilityRepository) Remove(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Availability{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAvailabilityNotFound
	}
	return nil
}
