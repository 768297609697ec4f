package announcement

import (
	"time"

	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/skillswap/internal/models"
)

type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// Announcement is a site-wide notice shown to members while active and unexpired.
type Announcement struct {
	models.BaseModel
	Title     string     `json:"title" gorm:"type:varchar(100);not null"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	Type      Type       `json:"type" gorm:"type:varchar(10);not null;default:'info'"`
	IsActive  bool       `json:"is_active" gorm:"not null;default:true;index"`
	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Visible reports whether members should see a at now.
func (a Announcement) Visible(now time.Time) bool {
	return a.IsActive && (a.ExpiresAt == nil || a.ExpiresAt.After(now))
}
