// skill/skill_model.go
package skill

import (
	"github.com/DhavalSuthar-24/skillswap/internal/models"
	"github.com/google/uuid"
)

// Skill is a catalogue entry. Members may only attach approved skills.
type Skill struct {
	models.BaseModel
	Name        string     `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Category    string     `json:"category" gorm:"type:varchar(50);not null;index"`
	Description string     `json:"description,omitempty" gorm:"type:varchar(200)"`
	IsApproved  bool       `json:"is_approved" gorm:"not null;default:false;index"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty" gorm:"type:uuid"`
}

type SkillType string

const (
	Offer SkillType = "offer"
	Want  SkillType = "want"
)

type ProficiencyLevel string

const (
	Beginner     ProficiencyLevel = "beginner"
	Intermediate ProficiencyLevel = "intermediate"
	Advanced     ProficiencyLevel = "advanced"
	Expert       ProficiencyLevel = "expert"
)

// UserSkill records that a member offers or wants a skill. A member lists a skill
// at most once per type.
type UserSkill struct {
	models.BaseModel
	UserID           uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_skill_type,priority:1"`
	SkillID          uuid.UUID        `json:"skill_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_user_skill_type,priority:2"`
	SkillType        SkillType        `json:"skill_type" gorm:"type:varchar(10);not null;uniqueIndex:idx_user_skill_type,priority:3"`
	ProficiencyLevel ProficiencyLevel `json:"proficiency_level" gorm:"type:varchar(20);not null"`
	Description      string           `json:"description,omitempty" gorm:"type:varchar(300)"`
	Skill            *Skill           `json:"skill,omitempty" gorm:"foreignKey:SkillID"`
}
