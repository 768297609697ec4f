package profile

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/announcement"
	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/rating"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/swap"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func RegisterProfileRoutes(router gin.IRouter, deps common.Deps) {
	userRepo := user.NewUserRepository(deps.DB)
	availabilityRepo := NewAvailabilityRepository(deps.DB)
	service := NewService(
		userRepo,
		skill.NewSkillRepository(deps.DB),
		swap.NewSwapRepository(deps.DB),
		rating.NewRatingRepository(deps.DB),
		announcement.NewAnnouncementRepository(deps.DB),
		availabilityRepo,
		deps.Log("profile"),
	)
	profileController := NewProfileController(service, userRepo, availabilityRepo, deps.Bus, deps.Log("profile"))

	router.GET("/dashboard", profileController.Dashboard)
	router.GET("/users/:id", profileController.GetMember)

	me := router.Group("/profile")
	{
		me.GET("", profileController.GetProfile)
		me.PUT("", profileController.UpdateProfile)
		me.GET("/availability", profileController.ListAvailability)
		me.POST("/availability", profileController.AddAvailability)
		me.DELETE("/availability/:id", profileController.RemoveAvailability)
	}
}
