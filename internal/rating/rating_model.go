package rating

import (
	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/skillswap/internal/models"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

// Rating is one participant's score for the other participant of a swap.
// A participant rates a given swap at most once.
type Rating struct {
	models.BaseModel
	SwapRequestID uuid.UUID  `json:"swap_request_id" gorm:"type:uuid;not null;uniqueIndex:idx_rating_swap_rater,priority:1"`
	RaterID       uuid.UUID  `json:"rater_id" gorm:"type:uuid;not null;uniqueIndex:idx_rating_swap_rater,priority:2"`
	RatedID       uuid.UUID  `json:"rated_id" gorm:"type:uuid;not null;index"`
	Rating        int        `json:"rating" gorm:"not null"`
	Feedback      string     `json:"feedback,omitempty" gorm:"type:text"`
	Rater         *user.User `json:"rater,omitempty" gorm:"foreignKey:RaterID"`
	Rated         *user.User `json:"rated,omitempty" gorm:"foreignKey:RatedID"`
}
