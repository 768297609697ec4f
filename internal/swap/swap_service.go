package swap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/realtime"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/internal/validation"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/metrics"
)

var (
	ErrSelfRequest      = errors.New("you cannot send a swap request to yourself")
	ErrProviderNotFound = errors.New("provider not found")
	ErrSkillNotFound    = errors.New("skill not found")
)

// InvalidRatingError carries field messages for a rating that failed validation.
type InvalidRatingError struct {
	Fields map[string]string
}

func (e *InvalidRatingError) Error() string { return "invalid rating" }

// Service owns the swap lifecycle. Every write is checked against Transition and
// committed with a conditional status update.
type Service struct {
	swaps   SwapRepository
	skills  skill.SkillRepository
	users   user.UserRepository
	pub     realtime.Publisher
	log     *logging.Logger
	metrics *metrics.Metrics
	strict  bool
}

func NewService(swaps SwapRepository, skills skill.SkillRepository, users user.UserRepository,
	pub realtime.Publisher, log *logging.Logger, m *metrics.Metrics, strictFeedback bool) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		swaps:   swaps,
		skills:  skills,
		users:   users,
		pub:     pub,
		log:     log,
		metrics: m,
		strict:  strictFeedback,
	}
}

// Create opens a pending request from requesterID. Input must already be valid.
func (s *Service) Create(ctx context.Context, requesterID uuid.UUID, in validation.SwapRequestInput) (*SwapRequest, error) {
	providerID, err := uuid.Parse(in.ProviderID)
	if err != nil {
		return nil, ErrProviderNotFound
	}
	if providerID == requesterID {
		return nil, ErrSelfRequest
	}

	provider, err := s.users.GetUserByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	if provider.IsBanned {
		return nil, ErrProviderNotFound
	}

	req := &SwapRequest{
		RequesterID: requesterID,
		ProviderID:  providerID,
		Status:      StatusPending,
		Message:     in.Message,
	}
	for _, ref := range []struct {
		raw string
		dst *uuid.UUID
	}{{in.RequestedSkillID, &req.RequestedSkillID}, {in.OfferedSkillID, &req.OfferedSkillID}} {
		id, err := uuid.Parse(ref.raw)
		if err != nil {
			return nil, ErrSkillNotFound
		}
		sk, err := s.skills.GetSkillByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if sk == nil {
			return nil, ErrSkillNotFound
		}
		*ref.dst = id
	}
	if in.ScheduledDate != "" {
		at, err := validation.ParseDateTime(in.ScheduledDate)
		if err != nil {
			return nil, err
		}
		req.ScheduledDate = &at
	}

	if err := s.swaps.Create(ctx, req); err != nil {
		return nil, err
	}
	s.metrics.SwapTransition(string(StatusPending))
	realtime.Notify(ctx, s.pub, s.log, realtime.Insert, "swap_requests", req.Row(), nil)
	s.log.WithContext(ctx).Info("swap request created", "swap_id", req.ID.String(), "provider_id", providerID.String())

	return s.swaps.FindByID(ctx, req.ID)
}

// ListMine returns every request userID takes part in, newest first.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]SwapRequest, error) {
	return s.swaps.ListForUser(ctx, userID)
}

// Get returns the request only to its participants; anyone else gets ErrSwapNotFound.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*SwapRequest, error) {
	req, err := s.swaps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if RoleOf(req, userID) == RoleNone {
		return nil, ErrSwapNotFound
	}
	return req, nil
}

// Respond applies accept, reject or cancel and returns the actor's refreshed list.
func (s *Service) Respond(ctx context.Context, userID, id uuid.UUID, action Action) ([]SwapRequest, error) {
	req, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	next, err := Transition(req.Status, RoleOf(req, userID), action, s.strict)
	if err != nil {
		return nil, err
	}
	if err := s.swaps.UpdateStatus(ctx, id, req.Status, next); err != nil {
		return nil, err
	}

	old := req.Row()
	updated := old
	updated.Status = next
	s.metrics.SwapTransition(string(next))
	realtime.Notify(ctx, s.pub, s.log, realtime.Update, "swap_requests", updated, old)
	s.log.WithContext(ctx).Info("swap request updated", "swap_id", id.String(), "from", string(old.Status), "to", string(next))

	return s.swaps.ListForUser(ctx, userID)
}

// SubmitFeedback rates the other participant and completes the request in one transaction.
func (s *Service) SubmitFeedback(ctx context.Context, userID, id uuid.UUID, in validation.FeedbackInput) ([]SwapRequest, error) {
	var (
		before  SwapRequest
		created rating.Rating
	)
	err := s.swaps.WithTransaction(ctx, func(swaps SwapRepository, ratings rating.RatingRepository) error {
		req, err := swaps.FindByID(ctx, id)
		if err != nil {
			return err
		}
		role := RoleOf(req, userID)
		if role == RoleNone {
			return ErrSwapNotFound
		}
		next, err := Transition(req.Status, role, ActionComplete, s.strict)
		if err != nil {
			return err
		}

		ratedID := req.ProviderID
		if role == RoleProvider {
			ratedID = req.RequesterID
		}
		if fields := validation.Validate(validation.RatingInput{
			SwapRequestID: id.String(),
			RatedID:       ratedID.String(),
			Rating:        in.Rating,
			Feedback:      in.Feedback,
		}); fields != nil {
			return &InvalidRatingError{Fields: fields}
		}
		created = rating.Rating{
			SwapRequestID: id,
			RaterID:       userID,
			RatedID:       ratedID,
			Rating:        in.Rating,
			Feedback:      in.Feedback,
		}
		if err := ratings.Create(ctx, &created); err != nil {
			return err
		}

		before = req.Row()
		if req.Status == next {
			return nil
		}
		return swaps.UpdateStatus(ctx, id, req.Status, next)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RatingSubmitted()
	realtime.Notify(ctx, s.pub, s.log, realtime.Insert, "ratings", created, nil)
	if before.Status != StatusCompleted {
		after := before
		after.Status = StatusCompleted
		after.UpdatedAt = time.Now()
		s.metrics.SwapTransition(string(StatusCompleted))
		realtime.Notify(ctx, s.pub, s.log, realtime.Update, "swap_requests", after, before)
	}
	s.log.WithContext(ctx).Info("feedback submitted", "swap_id", id.String(), "rating", in.Rating)

	return s.swaps.ListForUser(ctx, userID)
}

// Options loads the provider and both members' offered skills concurrently.
func (s *Service) Options(ctx context.Context, userID, providerID uuid.UUID) (*Options, error) {
	if userID == providerID {
		return nil, ErrSelfRequest
	}

	var opts Options
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.users.GetUserByID(gctx, providerID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return ErrProviderNotFound
			}
			return err
		}
		if p.IsBanned {
			return ErrProviderNotFound
		}
		opts.Provider = p
		return nil
	})
	g.Go(func() error {
		mine, err := s.skills.ListUserSkills(gctx, userID, skill.Offer)
		opts.MyOffers = mine
		return err
	})
	g.Go(func() error {
		theirs, err := s.skills.ListUserSkills(gctx, providerID, skill.Offer)
		opts.ProviderOffers = theirs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &opts, nil
}
