package admin

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/swap"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
)

type Stats struct {
	TotalUsers    int64   `json:"total_users"`
	TotalSwaps    int64   `json:"total_swaps"`
	AverageRating float64 `json:"average_rating"`
	PendingSkills int64   `json:"pending_skills"`
}

// MonthBucket counts the swaps created in one calendar month.
type MonthBucket struct {
	Month     string `json:"month"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

type Overview struct {
	Stats    Stats         `json:"stats"`
	Activity []MonthBucket `json:"monthly_activity"`
}

type Service struct {
	users   user.UserRepository
	swaps   swap.SwapRepository
	ratings rating.RatingRepository
	skills  skill.SkillRepository
	log     *logging.Logger
}

func NewService(users user.UserRepository, swaps swap.SwapRepository, ratings rating.RatingRepository,
	skills skill.SkillRepository, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{users: users, swaps: swaps, ratings: ratings, skills: skills, log: log}
}

// section logs a failed read so the rest of the view can still render.
func (s *Service) section(ctx context.Context, name string, err error) {
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Warn("admin view section unavailable", "section", name)
	}
}

// Stats runs the four headline queries concurrently. A failed query leaves its
// figure at zero.
func (s *Service) Stats(ctx context.Context) Stats {
	var out Stats
	var g errgroup.Group
	g.Go(func() error {
		n, err := s.users.Count(ctx)
		s.section(ctx, "total_users", err)
		out.TotalUsers = n
		return nil
	})
	g.Go(func() error {
		n, err := s.swaps.Count(ctx)
		s.section(ctx, "total_swaps", err)
		out.TotalSwaps = n
		return nil
	})
	g.Go(func() error {
		scores, err := s.ratings.AllScores(ctx)
		s.section(ctx, "average_rating", err)
		out.AverageRating = rating.Mean(scores)
		return nil
	})
	g.Go(func() error {
		n, err := s.skills.CountPending(ctx)
		s.section(ctx, "pending_skills", err)
		out.PendingSkills = n
		return nil
	})
	_ = g.Wait()
	return out
}

func (s *Service) MonthlyActivity(ctx context.Context) ([]MonthBucket, error) {
	rows, err := s.swaps.Activity(ctx)
	if err != nil {
		return nil, err
	}
	return BucketByMonth(rows), nil
}

// Overview is the admin dashboard. Sections that fail to load are logged and
// rendered empty.
func (s *Service) Overview(ctx context.Context) *Overview {
	out := Overview{Activity: []MonthBucket{}}
	var g errgroup.Group
	g.Go(func() error {
		out.Stats = s.Stats(ctx)
		return nil
	})
	g.Go(func() error {
		activity, err := s.MonthlyActivity(ctx)
		s.section(ctx, "monthly_activity", err)
		if err == nil {
			out.Activity = activity
		}
		return nil
	})
	_ = g.Wait()
	return &out
}

// Report loads everything the export needs.
func (s *Service) Report(ctx context.Context) (string, error) {
	var (
		users   []user.User
		swaps   []swap.SwapRequest
		ratings []rating.Rating
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		swaps, err = s.swaps.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = s.ratings.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	return BuildReport(users, swaps, ratings), nil
}

// BucketByMonth groups rows by the calendar month of CreatedAt (UTC), oldest first.
func BucketByMonth(rows []swap.ActivityRow) []MonthBucket {
	type bucket struct {
		start time.Time
		MonthBucket
	}
	byMonth := map[time.Time]*bucket{}
	for _, row := range rows {
		t := row.CreatedAt.UTC()
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		b, ok := byMonth[start]
		if !ok {
			b = &bucket{start: start, MonthBucket: MonthBucket{Month: start.Format("Jan 2006")}}
			byMonth[start] = b
		}
		b.Total++
		if row.Status == swap.StatusCompleted {
			b.Completed++
		}
	}

	buckets := make([]*bucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, b)
	}
	slices.SortFunc(buckets, func(a, b *bucket) int { return a.start.Compare(b.start) })

	out := make([]MonthBucket, len(buckets))
	for i, b := range buckets {
		out[i] = b.MonthBucket
	}
	return out
}
