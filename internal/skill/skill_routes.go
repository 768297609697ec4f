package skill

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func RegisterSkillRoutes(router gin.IRouter, deps common.Deps) {
	skillRepo := NewSkillRepository(deps.DB)
	adminRepo := user.NewAdminRepository(deps.DB)
	skillController := NewSkillController(skillRepo, adminRepo, deps.Bus, deps.Log("skill"), deps.Config)

	skills := router.Group("/skills")
	{
		skills.GET("", skillController.ListSkills)
		skills.POST("", skillController.ProposeSkill)
	}

	// AccessPolicy already keeps anonymous callers out of /profile.
	mine := router.Group("/profile/skills")
	{
		mine.GET("", skillController.ListMySkills)
		mine.POST("", skillController.AddMySkill)
		mine.DELETE("/:id", skillController.RemoveMySkill)
	}
}
