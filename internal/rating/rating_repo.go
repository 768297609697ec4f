package rating

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/skillswap/pkg/utils"
)

var ErrDuplicateRating = errors.New("you have already rated this swap")

type RatingRepository interface {
	Create(ctx context.Context, r *Rating) error
	ListReceived(ctx context.Context, ratedID uuid.UUID) ([]Rating, error)
	ListAll(ctx context.Context) ([]Rating, error)
	ScoresFor(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]int, error)
	AllScores(ctx context.Context) ([]int, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create relies on the (swap_request_id, rater_id) unique index to reject a second rating.
func (r *ratingRepository) Create(ctx context.Context, rt *Rating) error {
	if err := r.db.WithContext(ctx).Omit("Rater", "Rated").Create(rt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRating
		}
		return err
	}
	return nil
}

// ListReceived returns ratings given to ratedID, newest first, with the rater loaded.
func (r *ratingRepository) ListReceived(ctx context.Context, ratedID uuid.UUID) ([]Rating, error) {
	var out []Rating
	err := r.db.WithContext(ctx).
		Preload("Rater").
		Where("rated_id = ?", ratedID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *ratingRepository) ListAll(ctx context.Context) ([]Rating, error) {
	var out []Rating
	err := r.db.WithContext(ctx).
		Preload("Rater").
		Preload("Rated").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ScoresFor returns the received scores of each listed member.
func (r *ratingRepository) ScoresFor(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]int, error) {
	out := make(map[uuid.UUID][]int, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		RatedID uuid.UUID
		Rating  int
	}
	err := r.db.WithContext(ctx).Model(&Rating{}).
		Select("rated_id, rating").
		Where("rated_id IN ?", userIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RatedID] = append(out[row.RatedID], row.Rating)
	}
	return out, nil
}

func (r *ratingRepository) AllScores(ctx context.Context) ([]int, error) {
	var scores []int
	err := r.db.WithContext(ctx).Model(&Rating{}).Pluck("rating", &scores).Error
	return scores, err
}

// Mean is the arithmetic mean rounded to one decimal, or 0 with no scores.
func Mean(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return utils.RoundTo1(float64(sum) / float64(len(scores)))
}

// MeanOf is Mean over loaded ratings.
func MeanOf(ratings []Rating) float64 {
	scores := make([]int, len(ratings))
	for i, rt := range ratings {
		scores[i] = rt.Rating
	}
	return Mean(scores)
}
