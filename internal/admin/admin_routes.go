package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/swap"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/rmiddleware"
)

func RegisterAdminRoutes(router gin.IRouter, deps common.Deps) {
	userRepo := user.NewUserRepository(deps.DB)
	skillRepo := skill.NewSkillRepository(deps.DB)
	adminRepo := user.NewAdminRepository(deps.DB)
	service := NewService(userRepo, swap.NewSwapRepository(deps.DB), rating.NewRatingRepository(deps.DB), skillRepo, deps.Log("admin"))
	adminController := NewAdminController(service, userRepo, skillRepo, adminRepo, deps.Bus, deps.Log("admin"))

	admin := router.Group("/admin")
	admin.Use(rmiddleware.AdminMiddleware(adminRepo))
	{
		admin.GET("", adminController.Overview)
		admin.GET("/export", adminController.Export)

		admin.GET("/users", adminController.ListUsers)
		admin.PATCH("/users/:id/ban", adminController.SetUserBan)

		admin.GET("/skills/pending", adminController.ListPendingSkills)
		admin.PATCH("/skills/:id/approval", adminController.SetSkillApproval)
	}

	grants := admin.Group("/grants")
	grants.Use(rmiddleware.SuperAdminMiddleware(adminRepo))
	{
		grants.GET("", adminController.ListGrants)
		grants.PUT("/:user_id", adminController.Grant)
		grants.DELETE("/:user_id", adminController.Revoke)
	}
}
