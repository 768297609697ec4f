package validation

// Categories a skill may belong to.
var SkillCategories = []string{
	"Technology",
	"Design",
	"Business",
	"Languages",
	"Arts & Crafts",
	"Music",
	"Sports & Fitness",
	"Cooking",
	"Academic",
	"Life Skills",
	"Other",
}

// Input schemas. Tags use the "binding" name so gin's ShouldBindJSON and Validate share them.

type ProfileInput struct {
	FullName  string `json:"full_name" binding:"required,min=2,max=50" example:"Ada Lovelace"`
	Location  string `json:"location" binding:"omitempty,min=2,max=100" example:"London"`
	Bio       string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

type SkillInput struct {
	Name        string `json:"name" binding:"required,min=2,max=50" example:"Go"`
	Category    string `json:"category" binding:"required,skill_category" example:"Technology"`
	Description string `json:"description" binding:"omitempty,max=200"`
}

type UserSkillInput struct {
	SkillID          string `json:"skill_id" binding:"required,uuid_rfc4122"`
	SkillType        string `json:"skill_type" binding:"required,oneof=offer want" example:"offer"`
	ProficiencyLevel string `json:"proficiency_level" binding:"required,oneof=beginner intermediate advanced expert" example:"advanced"`
	Description      string `json:"description" binding:"omitempty,max=300"`
}

type AvailabilityInput struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6" example:"1"`
	StartTime string `json:"start_time" binding:"required,clock" example:"09:00"`
	EndTime   string `json:"end_time" binding:"required,clock" example:"17:30"`
	Timezone  string `json:"timezone" binding:"required,min=1" example:"Europe/London"`
}

type SwapRequestInput struct {
	ProviderID       string `json:"provider_id" binding:"required,uuid_rfc4122"`
	RequestedSkillID string `json:"requested_skill_id" binding:"required,uuid_rfc4122"`
	OfferedSkillID   string `json:"offered_skill_id" binding:"required,uuid_rfc4122"`
	Message          string `json:"message" binding:"omitempty,max=500"`
	ScheduledDate    string `json:"scheduled_date" binding:"omitempty,iso_datetime" example:"2025-03-01T10:00:00Z"`
}

type RatingInput struct {
	SwapRequestID string `json:"swap_request_id" binding:"required,uuid_rfc4122"`
	RatedID       string `json:"rated_id" binding:"required,uuid_rfc4122"`
	Rating        int    `json:"rating" binding:"min=1,max=5" example:"5"`
	Feedback      string `json:"feedback" binding:"omitempty,max=1000"`
}

// FeedbackInput is the body of a feedback submission; the swap id comes from the path
// and the rated party is derived from the participants.
type FeedbackInput struct {
	Rating   int    `json:"rating" binding:"min=1,max=5" example:"5"`
	Feedback string `json:"feedback" binding:"omitempty,max=1000"`
}

type AnnouncementInput struct {
	Title     string `json:"title" binding:"required,min=5,max=100"`
	Content   string `json:"content" binding:"required,min=10,max=1000"`
	Type      string `json:"type" binding:"required,oneof=info warning success error" example:"info"`
	ExpiresAt string `json:"expires_at" binding:"omitempty,iso_datetime"`
}

type SignUpInput struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	FullName string `json:"full_name" binding:"required,min=2,max=50" example:"Ada Lovelace"`
}

type SignInInput struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}
