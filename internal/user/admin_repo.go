package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminRepository reads and writes rows of the admins table.
type AdminRepository interface {
	GetGrant(ctx context.Context, userID uuid.UUID) (*AdminGrant, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	ListGrants(ctx context.Context) ([]AdminGrant, error)
	Grant(ctx context.Context, userID uuid.UUID, role AdminRole) (*AdminGrant, error)
	Revoke(ctx context.Context, userID uuid.UUID) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// GetGrant returns nil, nil when the member holds no grant.
func (r *adminRepository) GetGrant(ctx context.Context, userID uuid.UUID) (*AdminGrant, error) {
	var grant AdminGrant
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

func (r *adminRepository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	grant, err := r.GetGrant(ctx, userID)
	if err != nil {
		return false, err
	}
	return grant != nil, nil
}

func (r *adminRepository) ListGrants(ctx context.Context) ([]AdminGrant, error) {
	var grants []AdminGrant
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at ASC").
		Find(&grants).Error
	return grants, err
}

// Grant creates the member's grant or changes the role of the existing one.
func (r *adminRepository) Grant(ctx context.Context, userID uuid.UUID, role AdminRole) (*AdminGrant, error) {
	existing, err := r.GetGrant(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Role == role {
			return existing, nil
		}
		if err := r.db.WithContext(ctx).Model(existing).Update("role", role).Error; err != nil {
			return nil, err
		}
		existing.Role = role
		return existing, nil
	}

	grant := &AdminGrant{UserID: userID, Role: role}
	if err := r.db.WithContext(ctx).Create(grant).Error; err != nil {
		return nil, err
	}
	return grant, nil
}

func (r *adminRepository) Revoke(ctx context.Context, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&AdminGrant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
