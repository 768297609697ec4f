package profile

import (
	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/skillswap/internal/models"
)

// Availability is a weekly time window. DayOfWeek 0 is Sunday; times are HH:MM in Timezone.
type Availability struct {
	models.BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	DayOfWeek int       `json:"day_of_week" gorm:"not null"`
	StartTime string    `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime   string    `json:"end_time" gorm:"type:varchar(5);not null"`
	Timezone  string    `json:"timezone" gorm:"type:varchar(64);not null"`
}

func (Availability) TableName() string { return "availability" }
