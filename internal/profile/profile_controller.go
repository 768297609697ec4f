package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/realtime"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/internal/validation"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
	"github.com/DhavalSuthar-24/skillswap/pkg/validator"
)

type ProfileController struct {
	service      *Service
	users        user.UserRepository
	availability AvailabilityRepository
	pub          realtime.Publisher
	log          *logging.Logger
}

func NewProfileController(service *Service, users user.UserRepository, availability AvailabilityRepository,
	pub realtime.Publisher, log *logging.Logger) *ProfileController {
	return &ProfileController{
		service:      service,
		users:        users,
		availability: availability,
		pub:          pub,
		log:          log,
	}
}

// GetProfile godoc
// @Summary My profile with skills and availability
// @Tags Profile
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=OwnProfile}
// @Router /profile [get]
// @Security BearerAuth
func (pc *ProfileController) GetProfile(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	out, err := pc.service.Own(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			responses.NotFound(c, "Profile")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve profile", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", out)
}

// UpdateProfile godoc
// @Summary Update my profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body validation.ProfileInput true "Profile"
// @Success 200 {object} responses.SuccessResponse{data=user.User}
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Router /profile [put]
// @Security BearerAuth
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req validation.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	u, err := pc.users.UpdateProfile(ctx, identity.UserID, map[string]interface{}{
		"full_name":  req.FullName,
		"location":   req.Location,
		"bio":        req.Bio,
		"avatar_url": req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			responses.NotFound(c, "Profile")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to update profile", err.Error())
		return
	}

	realtime.Notify(ctx, pc.pub, pc.log, realtime.Update, "users", u.PublicRow(), nil)
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", u)
}

// ListAvailability godoc
// @Summary My weekly availability
// @Tags Profile
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Availability}
// @Router /profile/availability [get]
// @Security BearerAuth
func (pc *ProfileController) ListAvailability(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	slots, err := pc.availability.List(c.Request.Context(), identity.UserID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve availability", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Availability retrieved successfully", slots)
}

// AddAvailability godoc
// @Summary Add an availability slot
// @Tags Profile
// @Accept json
// @Produce json
// @Param slot body validation.AvailabilityInput true "Slot"
// @Success 201 {object} responses.SuccessResponse{data=Availability}
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Router /profile/availability [post]
// @Security BearerAuth
func (pc *ProfileController) AddAvailability(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req validation.AvailabilityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}
	// HH:MM compares correctly as a string.
	if req.EndTime <= req.StartTime {
		responses.SendValidationError(c, map[string]string{"end_time": "End time must be after start time"})
		return
	}

	slot := Availability{
		UserID:    identity.UserID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Timezone:  req.Timezone,
	}
	ctx := c.Request.Context()
	if err := pc.availability.Add(ctx, &slot); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to add availability", err.Error())
		return
	}

	realtime.Notify(ctx, pc.pub, pc.log, realtime.Insert, "availability", slot, nil)
	responses.SendSuccess(c, http.StatusCreated, "Availability added successfully", slot)
}

// RemoveAvailability godoc
// @Summary Remove an availability slot
// @Tags Profile
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Not found"
// @Router /profile/availability/{id} [delete]
// @Security BearerAuth
func (pc *ProfileController) RemoveAvailability(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := common.ParamUUID(c, "id", "availability")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	slot, err := pc.availability.Get(ctx, id)
	if err != nil || slot.UserID != identity.UserID {
		if err == nil || errors.Is(err, ErrAvailabilityNotFound) {
			responses.NotFound(c, "Availability slot")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve availability", err.Error())
		return
	}
	if err := pc.availability.Remove(ctx, id); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to remove availability", err.Error())
		return
	}

	realtime.Notify(ctx, pc.pub, pc.log, realtime.Delete, "availability", nil, slot)
	responses.SendSuccess(c, http.StatusOK, "Availability removed successfully", nil)
}

// Dashboard godoc
// @Summary My dashboard
// @Tags Profile
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Dashboard}
// @Router /dashboard [get]
// @Security BearerAuth
func (pc *ProfileController) Dashboard(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	out, err := pc.service.Dashboard(c.Request.Context(), identity.UserID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to load dashboard", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Dashboard retrieved successfully", out)
}

// GetMember godoc
// @Summary A member's public profile
// @Tags Profile
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} responses.SuccessResponse{data=PublicProfile}
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /users/{id} [get]
// @Security BearerAuth
func (pc *ProfileController) GetMember(c *gin.Context) {
	if _, ok := middleware.RequireIdentity(c); !ok {
		return
	}
	id, ok := common.ParamUUID(c, "id", "user")
	if !ok {
		return
	}

	out, err := pc.service.Public(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve user", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User retrieved successfully", out)
}
