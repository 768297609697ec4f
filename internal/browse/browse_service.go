package browse

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/skillswap/internal/rating"
)

type Service struct {
	repo    BrowseRepository
	ratings rating.RatingRepository
}

func NewService(repo BrowseRepository, ratings rating.RatingRepository) *Service {
	return &Service{repo: repo, ratings: ratings}
}

// Candidates lists members other than viewer who offer at least one skill, narrowed
// by search (name or offered skill, case-insensitive) and category (exact).
func (s *Service) Candidates(ctx context.Context, viewer uuid.UUID, search, category string) ([]Candidate, error) {
	rows, err := s.repo.OfferRows(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		if !seen[row.UserID] {
			seen[row.UserID] = true
			ids = append(ids, row.UserID)
		}
	}
	scores, err := s.ratings.ScoresFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	return FilterCandidates(GroupCandidates(rows, scores), viewer, search, category), nil
}

// GroupCandidates folds join rows into one candidate per member, keeping row order.
func GroupCandidates(rows []OfferRow, scores map[uuid.UUID][]int) []Candidate {
	index := make(map[uuid.UUID]int)
	var out []Candidate
	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			i = len(out)
			index[row.UserID] = i
			out = append(out, Candidate{
				UserID:        row.UserID,
				FullName:      row.FullName,
				AvatarURL:     row.AvatarURL,
				Location:      row.Location,
				Bio:           row.Bio,
				OfferedSkills: []OfferedSkill{},
				AverageRating: rating.Mean(scores[row.UserID]),
				RatingCount:   len(scores[row.UserID]),
			})
		}
		out[i].OfferedSkills = append(out[i].OfferedSkills, OfferedSkill{
			ID:               row.SkillID,
			Name:             row.SkillName,
			Category:         row.Category,
			ProficiencyLevel: row.ProficiencyLevel,
		})
	}
	return out
}

// FilterCandidates drops viewer and applies both filters together.
func FilterCandidates(cands []Candidate, viewer uuid.UUID, search, category string) []Candidate {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.UserID == viewer {
			continue
		}
		if needle != "" && !matchesSearch(c, needle) {
			continue
		}
		if category != "" && !offersCategory(c, category) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesSearch(c Candidate, needle string) bool {
	if strings.Contains(strings.ToLower(c.FullName), needle) {
		return true
	}
	for _, s := range c.OfferedSkills {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			return true
		}
	}
	return false
}

func offersCategory(c Candidate, category string) bool {
	for _, s := range c.OfferedSkills {
		if s.Category == category {
			return true
		}
	}
	return false
}
