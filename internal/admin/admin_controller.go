package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/realtime"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
	"github.com/DhavalSuthar-24/skillswap/pkg/validator"
)

// UsersPageSize is the page size of the member list.
const UsersPageSize = 12

type AdminController struct {
	service *Service
	users   user.UserRepository
	skills  skill.SkillRepository
	admins  user.AdminRepository
	pub     realtime.Publisher
	log     *logging.Logger
	now     func() time.Time
}

func NewAdminController(service *Service, users user.UserRepository, skills skill.SkillRepository,
	admins user.AdminRepository, pub realtime.Publisher, log *logging.Logger) *AdminController {
	if log == nil {
		log = logging.Discard()
	}
	return &AdminController{
		service: service,
		users:   users,
		skills:  skills,
		admins:  admins,
		pub:     pub,
		log:     log,
		now:     time.Now,
	}
}

// Overview godoc
// @Summary Platform stats and monthly swap activity
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Overview}
// @Failure 403 {object} responses.ErrorResponse "Not an admin"
// @Router /admin [get]
// @Security BearerAuth
func (ac *AdminController) Overview(c *gin.Context) {
	responses.SendSuccess(c, http.StatusOK, "Admin dashboard retrieved successfully", ac.service.Overview(c.Request.Context()))
}

// Export godoc
// @Summary Download the platform report
// @Tags Admin
// @Produce text/csv
// @Success 200 {string} string "CSV report"
// @Router /admin/export [get]
// @Security BearerAuth
func (ac *AdminController) Export(c *gin.Context) {
	report, err := ac.service.Report(c.Request.Context())
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to build report", err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+ReportFilename(ac.now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(report))
}

// ListUsers godoc
// @Summary List members
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param search query string false "Name or email"
// @Success 200 {object} responses.PaginatedResponse{data=[]user.User}
// @Router /admin/users [get]
// @Security BearerAuth
func (ac *AdminController) ListUsers(c *gin.Context) {
	page, pageSize := common.PageParams(c, UsersPageSize)
	users, total, err := ac.users.ListUsers(c.Request.Context(), page, pageSize, c.Query("search"))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve users", err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Users retrieved successfully", users, total, page, pageSize)
}

type banRequest struct {
	IsBanned *bool `json:"is_banned" binding:"required"`
}

// SetUserBan godoc
// @Summary Ban or unban a member
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body banRequest true "Ban state"
// @Success 200 {object} responses.SuccessResponse{data=user.User}
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /admin/users/{id}/ban [patch]
// @Security BearerAuth
func (ac *AdminController) SetUserBan(c *gin.Context) {
	id, ok := common.ParamUUID(c, "id", "user")
	if !ok {
		return
	}
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	u, err := ac.users.SetBanned(ctx, id, *req.IsBanned)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to update user", err.Error())
		return
	}

	realtime.Notify(ctx, ac.pub, ac.log, realtime.Update, "users", u.PublicRow(), nil)
	ac.log.WithContext(ctx).Info("user ban updated", "target_id", id.String(), "is_banned", u.IsBanned)
	responses.SendSuccess(c, http.StatusOK, "User updated successfully", u)
}

// ListPendingSkills godoc
// @Summary Skills waiting for approval
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]skill.Skill}
// @Router /admin/skills/pending [get]
// @Security BearerAuth
func (ac *AdminController) ListPendingSkills(c *gin.Context) {
	skills, err := ac.skills.ListPending(c.Request.Context())
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve skills", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Pending skills retrieved successfully", skills)
}

type approvalRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

// SetSkillApproval godoc
// @Summary Approve or unapprove a skill
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Skill ID"
// @Param body body approvalRequest true "Approval state"
// @Success 200 {object} responses.SuccessResponse{data=skill.Skill}
// @Failure 404 {object} responses.ErrorResponse "Skill not found"
// @Router /admin/skills/{id}/approval [patch]
// @Security BearerAuth
func (ac *AdminController) SetSkillApproval(c *gin.Context) {
	id, ok := common.ParamUUID(c, "id", "skill")
	if !ok {
		return
	}
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	s, err := ac.skills.SetApproval(ctx, id, *req.IsApproved)
	if err != nil {
		if errors.Is(err, skill.ErrSkillNotFound) {
			responses.NotFound(c, "Skill")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to update skill", err.Error())
		return
	}

	realtime.Notify(ctx, ac.pub, ac.log, realtime.Update, "skills", s, nil)
	responses.SendSuccess(c, http.StatusOK, "Skill updated successfully", s)
}

// ListGrants godoc
// @Summary List admin grants (super admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]user.AdminGrant}
// @Router /admin/grants [get]
// @Security BearerAuth
func (ac *AdminController) ListGrants(c *gin.Context) {
	grants, err := ac.admins.ListGrants(c.Request.Context())
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve grants", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Grants retrieved successfully", grants)
}

type grantRequest struct {
	Role string `json:"role" binding:"required,oneof=admin super_admin"`
}

// Grant godoc
// @Summary Grant or change an admin role (super admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param body body grantRequest true "Role"
// @Success 200 {object} responses.SuccessResponse{data=user.AdminGrant}
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /admin/grants/{user_id} [put]
// @Security BearerAuth
func (ac *AdminController) Grant(c *gin.Context) {
	userID, ok := common.ParamUUID(c, "user_id", "user")
	if !ok {
		return
	}
	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	if _, err := ac.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve user", err.Error())
		return
	}

	grant, err := ac.admins.Grant(ctx, userID, user.AdminRole(req.Role))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to grant role", err.Error())
		return
	}
	ac.log.WithContext(ctx).Info("admin role granted", "target_id", userID.String(), "role", req.Role)
	responses.SendSuccess(c, http.StatusOK, "Role granted successfully", grant)
}

// Revoke godoc
// @Summary Revoke an admin grant (super admin)
// @Tags Admin
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Cannot revoke yourself"
// @Failure 404 {object} responses.ErrorResponse "Grant not found"
// @Router /admin/grants/{user_id} [delete]
// @Security BearerAuth
func (ac *AdminController) Revoke(c *gin.Context) {
	userID, ok := common.ParamUUID(c, "user_id", "user")
	if !ok {
		return
	}
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	if identity.UserID == userID {
		responses.SendError(c, http.StatusBadRequest, "You cannot revoke your own grant", nil)
		return
	}

	ctx := c.Request.Context()
	if err := ac.admins.Revoke(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			responses.NotFound(c, "Grant")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to revoke grant", err.Error())
		return
	}
	ac.log.WithContext(ctx).Info("admin role revoked", "target_id", userID.String())
	responses.SendSuccess(c, http.StatusOK, "Grant revoked successfully", nil)
}
