package skill

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/skillswap/config"
	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/realtime"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/internal/validation"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
	"github.com/DhavalSuthar-24/skillswap/pkg/validator"
)

// SkillController handles the skill catalogue and members' offered/wanted skills.
type SkillController struct {
	repo   SkillRepository
	admins user.AdminRepository
	pub    realtime.Publisher
	log    *logging.Logger
	config *config.Config
}

// NewSkillController creates a new SkillController.
func NewSkillController(repo SkillRepository, admins user.AdminRepository, pub realtime.Publisher, log *logging.Logger, cfg *config.Config) *SkillController {
	return &SkillController{
		repo:   repo,
		admins: admins,
		pub:    pub,
		log:    log,
		config: cfg,
	}
}

// ListSkills godoc
// @Summary List approved skills
// @Description Approved catalogue entries ordered by name
// @Tags Skills
// @Produce json
// @Param category query string false "Exact category"
// @Success 200 {object} responses.SuccessResponse{data=[]Skill}
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /skills [get]
func (sc *SkillController) ListSkills(c *gin.Context) {
	skills, err := sc.repo.ListApproved(c.Request.Context(), c.Query("category"))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve skills", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skills retrieved successfully", skills)
}

// ProposeSkill godoc
// @Summary Propose a new skill
// @Description Adds a catalogue entry. Entries from non-admins wait for approval.
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body validation.SkillInput true "Skill"
// @Success 201 {object} responses.SuccessResponse{data=Skill}
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Failure 409 {object} responses.ErrorResponse "Skill already exists"
// @Router /skills [post]
// @Security BearerAuth
func (sc *SkillController) ProposeSkill(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req validation.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()
	existing, err := sc.repo.FindSkillByName(ctx, req.Name)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check skill", err.Error())
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, ErrDuplicateSkill.Error(), nil)
		return
	}

	isAdmin, err := sc.admins.IsAdmin(ctx, identity.UserID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check admin access", nil)
		return
	}

	proposer := identity.UserID
	s := Skill{
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Description: req.Description,
		IsApproved:  isAdmin,
		CreatedBy:   &proposer,
	}
	if err := sc.repo.CreateSkill(ctx, &s); err != nil {
		if errors.Is(err, ErrDuplicateSkill) {
			responses.SendError(c, http.StatusConflict, err.Error(), nil)
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to create skill", err.Error())
		return
	}

	realtime.Notify(ctx, sc.pub, sc.log, realtime.Insert, "skills", s, nil)
	msg := "Skill submitted for approval"
	if s.IsApproved {
		msg = "Skill created successfully"
	}
	responses.SendSuccess(c, http.StatusCreated, msg, s)
}

// ListMySkills godoc
// @Summary List my skills
// @Tags UserSkills
// @Produce json
// @Param type query string false "offer or want"
// @Success 200 {object} responses.SuccessResponse{data=[]UserSkill}
// @Router /profile/skills [get]
// @Security BearerAuth
func (sc *SkillController) ListMySkills(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	skillType := SkillType(c.Query("type"))
	if skillType != "" && skillType != Offer && skillType != Want {
		responses.SendValidationError(c, map[string]string{"type": "Type must be one of: offer, want"})
		return
	}

	skills, err := sc.repo.ListUserSkills(c.Request.Context(), identity.UserID, skillType)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve skills", err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skills retrieved successfully", skills)
}

// AddMySkill godoc
// @Summary Offer or want a skill
// @Tags UserSkills
// @Accept json
// @Produce json
// @Param skill body validation.UserSkillInput true "User skill"
// @Success 201 {object} responses.SuccessResponse{data=UserSkill}
// @Failure 400 {object} responses.ErrorResponse "Validation failed"
// @Failure 404 {object} responses.ErrorResponse "Skill not found"
// @Failure 409 {object} responses.ErrorResponse "Already listed"
// @Failure 422 {object} responses.ErrorResponse "Skill not approved"
// @Router /profile/skills [post]
// @Security BearerAuth
func (sc *SkillController) AddMySkill(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req validation.UserSkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}
	skillID, err := uuid.Parse(req.SkillID)
	if err != nil {
		responses.SendValidationError(c, map[string]string{"skill_id": "Skill id must be a valid id"})
		return
	}
	skillType := SkillType(req.SkillType)

	ctx := c.Request.Context()
	s, err := sc.repo.GetSkillByID(ctx, skillID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve skill", err.Error())
		return
	}
	if s == nil {
		responses.NotFound(c, "Skill")
		return
	}
	if !s.IsApproved {
		isAdmin, err := sc.admins.IsAdmin(ctx, identity.UserID)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to check admin access", nil)
			return
		}
		if !isAdmin {
			responses.SendError(c, http.StatusUnprocessableEntity, ErrSkillNotApproved.Error(), nil)
			return
		}
	}

	existing, err := sc.repo.FindUserSkill(ctx, identity.UserID, skillID, skillType)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check skills", err.Error())
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, ErrDuplicateUserSkill.Error(), nil)
		return
	}

	us := UserSkill{
		UserID:           identity.UserID,
		SkillID:          skillID,
		SkillType:        skillType,
		ProficiencyLevel: ProficiencyLevel(req.ProficiencyLevel),
		Description:      req.Description,
	}
	if err := sc.repo.AddUserSkill(ctx, &us); err != nil {
		if errors.Is(err, ErrDuplicateUserSkill) {
			responses.SendError(c, http.StatusConflict, err.Error(), nil)
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to add skill", err.Error())
		return
	}

	realtime.Notify(ctx, sc.pub, sc.log, realtime.Insert, "user_skills", us, nil)
	us.Skill = s
	responses.SendSuccess(c, http.StatusCreated, "Skill added successfully", us)
}

// RemoveMySkill godoc
// @Summary Remove one of my skills
// @Tags UserSkills
// @Produce json
// @Param id path string true "User skill ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Not found"
// @Router /profile/skills/{id} [delete]
// @Security BearerAuth
func (sc *SkillController) RemoveMySkill(c *gin.Context) {
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	id, ok := common.ParamUUID(c, "id", "skill")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	us, err := sc.repo.GetUserSkill(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserSkillNotFound) {
			responses.NotFound(c, "Skill")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve skill", err.Error())
		return
	}
	// Someone else's row looks the same as a missing one.
	if us.UserID != identity.UserID {
		responses.NotFound(c, "Skill")
		return
	}

	if err := sc.repo.RemoveUserSkill(ctx, id); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to remove skill", err.Error())
		return
	}

	us.Skill = nil
	realtime.Notify(ctx, sc.pub, sc.log, realtime.Delete, "user_skills", nil, us)
	responses.SendSuccess(c, http.StatusOK, "Skill removed successfully", nil)
}
