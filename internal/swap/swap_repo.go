package swap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/skillswap/internal/rating"
)

var ErrSwapNotFound = errors.New("swap request not found")

type SwapRepository interface {
	Create(ctx context.Context, s *SwapRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*SwapRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]SwapRequest, error)
	ListAll(ctx context.Context) ([]SwapRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
	CountByStatusForUser(ctx context.Context, userID uuid.UUID) (map[Status]int64, error)
	Count(ctx context.Context) (int64, error)
	Activity(ctx context.Context) ([]ActivityRow, error)
	WithTransaction(ctx context.Context, txFunc func(SwapRepository, rating.RatingRepository) error) error
}

// ActivityRow is the slice of a swap request that monthly bucketing needs.
type ActivityRow struct {
	CreatedAt time.Time
	Status    Status
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository creates a new instance of SwapRepository.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Provider").
		Preload("RequestedSkill").
		Preload("OfferedSkill")
}

func (r *swapRepository) Create(ctx context.Context, s *SwapRequest) error {
	if s.Status == "" {
		s.Status = StatusPending
	}
	return r.db.WithContext(ctx).
		Omit("Requester", "Provider", "RequestedSkill", "OfferedSkill").
		Create(s).Error
}

func (r *swapRepository) FindByID(ctx context.Context, id uuid.UUID) (*SwapRequest, error) {
	var s SwapRequest
	err := r.joined(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListForUser returns requests where userID is requester or provider, newest first.
func (r *swapRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]SwapRequest, error) {
	var out []SwapRequest
	err := r.joined(ctx).
		Where("requester_id = ? OR provider_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *swapRepository) ListAll(ctx context.Context) ([]SwapRequest, error) {
	var out []SwapRequest
	err := r.joined(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

// UpdateStatus writes to only if the row still has status from. A row that moved on
// in the meantime yields ErrStaleStatus.
func (r *swapRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	res := r.db.WithContext(ctx).Model(&SwapRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&SwapRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrSwapNotFound
		}
		return ErrStaleStatus
	}
	return nil
}

func (r *swapRepository) CountByStatusForUser(ctx context.Context, userID uuid.UUID) (map[Status]int64, error) {
	var rows []struct {
		Status Status
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&SwapRequest{}).
		Select("status, COUNT(*) AS count").
		Where("requester_id = ? OR provider_id = ?", userID, userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := map[Status]int64{
		StatusPending: 0, StatusAccepted: 0, StatusRejected: 0, StatusCancelled: 0, StatusCompleted: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *swapRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&SwapRequest{}).Count(&count).Error
	return count, err
}

func (r *swapRepository) Activity(ctx context.Context) ([]ActivityRow, error) {
	var rows []ActivityRow
	err := r.db.WithContext(ctx).Model(&SwapRequest{}).
		Select("created_at, status").
		Order("created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// WithTransaction runs txFunc with repositories bound to one transaction.
func (r *swapRepository) WithTransaction(ctx context.Context, txFunc func(SwapRepository, rating.RatingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&swapRepository{db: tx}, rating.NewRatingRepository(tx))
	})
}
