package swap

import (
	"time"

	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/skillswap/internal/models"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

// SwapRequest proposes trading the requester's offered skill for the provider's requested skill.
type SwapRequest struct {
	models.BaseModel
	RequesterID      uuid.UUID  `json:"requester_id" gorm:"type:uuid;not null;index"`
	ProviderID       uuid.UUID  `json:"provider_id" gorm:"type:uuid;not null;index"`
	RequestedSkillID uuid.UUID  `json:"requested_skill_id" gorm:"type:uuid;not null"`
	OfferedSkillID   uuid.UUID  `json:"offered_skill_id" gorm:"type:uuid;not null"`
	Status           Status     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Message          string     `json:"message,omitempty" gorm:"type:varchar(500)"`
	ScheduledDate    *time.Time `json:"scheduled_date,omitempty"`

	Requester      *user.User   `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Provider       *user.User   `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	RequestedSkill *skill.Skill `json:"requested_skill,omitempty" gorm:"foreignKey:RequestedSkillID"`
	OfferedSkill   *skill.Skill `json:"offered_skill,omitempty" gorm:"foreignKey:OfferedSkillID"`
}

// Row strips the joined records so change events carry only the table's columns.
func (s SwapRequest) Row() SwapRequest {
	s.Requester, s.Provider, s.RequestedSkill, s.OfferedSkill = nil, nil, nil, nil
	return s
}

// Options is what a member needs to compose a request to a provider.
type Options struct {
	Provider       *user.User        `json:"provider"`
	MyOffers       []skill.UserSkill `json:"my_offers"`
	ProviderOffers []skill.UserSkill `json:"provider_offers"`
}
