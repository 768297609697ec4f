package announcement

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/realtime"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/internal/validation"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
	"github.com/DhavalSuthar-24/skillswap/pkg/rmiddleware"
	"github.com/DhavalSuthar-24/skillswap/pkg/validator"
)

type AnnouncementController struct {
	repo AnnouncementRepository
	pub  realtime.Publisher
	log  *logging.Logger
	now  func() time.Time
}

func NewAnnouncementController(repo AnnouncementRepository, pub realtime.Publisher, log *logging.Logger) *AnnouncementController {
	return &AnnouncementController{repo: repo, pub: pub, log: log, now: time.Now}
}

// ListActive godoc
// @Summary Active announcements
// @Tags Announcements
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Announcement}
// @Router /announcements [get]
func (ac *AnnouncementController) ListActive(c *gin.Context) {
	list, err := ac.repo.ListActive(c.Request.Context(), ac.now())
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve announcements", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Announcements retrieved successfully", list)
}

// ListAll godoc
// @Summary All announcements (admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Announcement}
// @Failure 403 {object} responses.ErrorResponse "Not an admin"
// @Router /admin/announcements [get]
// @Security BearerAuth
func (ac *AnnouncementController) ListAll(c *gin.Context) {
	list, err := ac.repo.ListAll(c.Request.Context())
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve announcements", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Announcements retrieved successfully", list)
}

// Create godoc
// @Summary Publish an announcement (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Param announcement body validation.AnnouncementInput true "Announcement"
// @Success 201 {object} responses.SuccessResponse{data=Announcement}
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Router /admin/announcements [post]
// @Security BearerAuth
func (ac *AnnouncementController) Create(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req validation.AnnouncementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	a := Announcement{
		Title:     req.Title,
		Content:   req.Content,
		Type:      Type(req.Type),
		IsActive:  true,
		CreatedBy: identity.UserID,
	}
	if req.ExpiresAt != "" {
		at, err := validation.ParseDateTime(req.ExpiresAt)
		if err != nil {
			responses.SendValidationError(c, map[string]string{"expires_at": "Expires at must be an ISO 8601 date-time"})
			return
		}
		a.ExpiresAt = &at
	}

	ctx := c.Request.Context()
	if err := ac.repo.Create(ctx, &a); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create announcement", err.Error())
		return
	}
	realtime.Notify(ctx, ac.pub, ac.log, realtime.Insert, "announcements", a, nil)
	responses.SendSuccess(c, http.StatusCreated, "Announcement created successfully", a)
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetActive godoc
// @Summary Activate or deactivate an announcement (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param body body setActiveRequest true "State"
// @Success 200 {object} responses.SuccessResponse{data=Announcement}
// @Failure 404 {object} responses.ErrorResponse "Not found"
// @Router /admin/announcements/{id} [patch]
// @Security BearerAuth
func (ac *AnnouncementController) SetActive(c *gin.Context) {
	id, ok := common.ParamUUID(c, "id", "announcement")
	if !ok {
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	a, err := ac.repo.SetActive(ctx, id, *req.IsActive)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			responses.NotFound(c, "Announcement")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to update announcement", err.Error())
		return
	}
	realtime.Notify(ctx, ac.pub, ac.log, realtime.Update, "announcements", a, nil)
	responses.SendSuccess(c, http.StatusOK, "Announcement updated successfully", a)
}

func RegisterAnnouncementRoutes(router gin.IRouter, deps common.Deps) {
	announcementController := NewAnnouncementController(NewAnnouncementRepository(deps.DB), deps.Bus, deps.Log("announcement"))

	router.GET("/announcements", announcementController.ListActive)

	admin := router.Group("/admin/announcements")
	admin.Use(rmiddleware.AdminMiddleware(user.NewAdminRepository(deps.DB)))
	{
		admin.GET("", announcementController.ListAll)
		admin.POST("", announcementController.Create)
		admin.PATCH("/:id", announcementController.SetActive)
	}
}
