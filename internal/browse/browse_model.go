package browse

import "github.com/google/uuid"

// OfferRow is one row of the users × offered skills join.
type OfferRow struct {
	UserID           uuid.UUID
	FullName         string
	AvatarURL        string
	Location         string
	Bio              string
	SkillID          uuid.UUID
	SkillName        string
	Category         string
	ProficiencyLevel string
}

type OfferedSkill struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	ProficiencyLevel string    `json:"proficiency_level"`
}

// Candidate is a member someone could swap with.
type Candidate struct {
	UserID        uuid.UUID      `json:"user_id"`
	FullName      string         `json:"full_name"`
	AvatarURL     string         `json:"avatar_url,omitempty"`
	Location      string         `json:"location,omitempty"`
	Bio           string         `json:"bio,omitempty"`
	OfferedSkills []OfferedSkill `json:"offered_skills"`
	AverageRating float64        `json:"average_rating"`
	RatingCount   int            `json:"rating_count"`
}
