package user

import (
	"time"

	"github.com/DhavalSuthar-24/skillswap/internal/models"
	"github.com/google/uuid"
)

// User is a member profile. The row id is the identity id issued at sign-up.
type User struct {
	models.BaseModel
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FullName  string `gorm:"type:varchar(50);not null" json:"full_name"`
	AvatarURL string `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`
	Location  string `gorm:"type:varchar(100)" json:"location,omitempty"`
	Bio       string `gorm:"type:text" json:"bio,omitempty"`
	IsBanned  bool   `gorm:"not null;default:false;index" json:"is_banned"`
}

// PublicRow is the shape of a member in change events; email stays out of the feed.
func (u User) PublicRow() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID.String(),
		"full_name":  u.FullName,
		"avatar_url": u.AvatarURL,
		"location":   u.Location,
		"bio":        u.Bio,
		"is_banned":  u.IsBanned,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// AdminRole is the privilege level of an admin grant.
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super_admin"
)

// AdminGrant marks a member as an administrator. Its presence is the only admin check.
type AdminGrant struct {
	models.BaseModel
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Role   AdminRole `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AdminGrant) TableName() string { return "admins" }

type RefreshToken struct {
	models.BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
}
