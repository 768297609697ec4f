package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/DhavalSuthar-24/skillswap/internal/announcement"
	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/swap"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
)

// Dashboard is the signed-in member's overview.
type Dashboard struct {
	Profile       *user.User                  `json:"profile"`
	SwapCounts    map[swap.Status]int64       `json:"swap_counts"`
	OfferedSkills int64                       `json:"offered_skills"`
	WantedSkills  int64                       `json:"wanted_skills"`
	AverageRating float64                     `json:"average_rating"`
	RatingCount   int                         `json:"rating_count"`
	Announcements []announcement.Announcement `json:"announcements"`
}

// PublicProfile is what any member sees at /users/:id.
type PublicProfile struct {
	User          *user.User        `json:"user"`
	Skills        []skill.UserSkill `json:"skills"`
	Availability  []Availability    `json:"availability"`
	Ratings       []rating.Rating   `json:"ratings"`
	AverageRating float64           `json:"average_rating"`
}

// OwnProfile is the /profile payload.
type OwnProfile struct {
	User         *user.User        `json:"user"`
	Skills       []skill.UserSkill `json:"skills"`
	Availability []Availability    `json:"availability"`
}

type Service struct {
	users         user.UserRepository
	skills        skill.SkillRepository
	swaps         swap.SwapRepository
	ratings       rating.RatingRepository
	announcements announcement.AnnouncementRepository
	availability  AvailabilityRepository
	log           *logging.Logger
	now           func() time.Time
}

func NewService(users user.UserRepository, skills skill.SkillRepository, swaps swap.SwapRepository,
	ratings rating.RatingRepository, announcements announcement.AnnouncementRepository, availability AvailabilityRepository, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		users:         users,
		skills:        skills,
		swaps:         swaps,
		ratings:       ratings,
		announcements: announcements,
		availability:  availability,
		log:           log,
		now:           time.Now,
	}
}

func (s *Service) Own(ctx context.Context, userID uuid.UUID) (*OwnProfile, error) {
	var out OwnProfile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.User, err = s.users.GetUserByID(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		out.Skills, err = s.skills.ListUserSkills(gctx, userID, "")
		return err
	})
	g.Go(func() (err error) {
		out.Availability, err = s.availability.List(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard gathers the overview with one query per section, run concurrently.
// Only the profile read is required; any other section that fails is logged and
// left empty.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	out := Dashboard{
		SwapCounts:    map[swap.Status]int64{},
		Announcements: []announcement.Announcement{},
	}
	var received []rating.Rating

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Profile, err = s.users.GetUserByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		counts, err := s.swaps.CountByStatusForUser(ctx, userID)
		if s.section(ctx, "swap_counts", err) {
			out.SwapCounts = counts
		}
		return nil
	})
	g.Go(func() error {
		counts, err := s.skills.CountUserSkills(ctx, userID)
		if s.section(ctx, "skill_counts", err) {
			out.OfferedSkills, out.WantedSkills = counts[skill.Offer], counts[skill.Want]
		}
		return nil
	})
	g.Go(func() error {
		ratings, err := s.ratings.ListReceived(ctx, userID)
		if s.section(ctx, "ratings", err) {
			received = ratings
		}
		return nil
	})
	g.Go(func() error {
		active, err := s.announcements.ListActive(ctx, s.now())
		if s.section(ctx, "announcements", err) {
			out.Announcements = active
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.AverageRating = rating.MeanOf(received)
	out.RatingCount = len(received)
	return &out, nil
}

// section reports whether a dashboard read succeeded, logging it when it did not.
func (s *Service) section(ctx context.Context, name string, err error) bool {
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Warn("dashboard section unavailable", "section", name)
		return false
	}
	return true
}

// Public returns a member's public page. Banned members read as not found.
func (s *Service) Public(ctx context.Context, userID uuid.UUID) (*PublicProfile, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsBanned {
		return nil, user.ErrNotFound
	}

	out := PublicProfile{User: u}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Skills, err = s.skills.ListUserSkills(gctx, userID, "")
		return err
	})
	g.Go(func() (err error) {
		out.Availability, err = s.availability.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		out.Ratings, err = s.ratings.ListReceived(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.AverageRating = rating.MeanOf(out.Ratings)
	return &out, nil
}
