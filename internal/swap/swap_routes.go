package swap

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func RegisterSwapRoutes(router gin.IRouter, deps common.Deps) {
	strict := deps.Config != nil && deps.Config.App.StrictFeedback
	service := NewService(
		NewSwapRepository(deps.DB),
		skill.NewSkillRepository(deps.DB),
		user.NewUserRepository(deps.DB),
		deps.Bus, deps.Log("swap"), deps.Metrics, strict,
	)
	swapController := NewSwapController(service)

	compose := router.Group("/swap-request")
	{
		compose.GET("/options", swapController.SwapRequestOptions)
		compose.POST("", swapController.CreateSwapRequest)
	}

	mine := router.Group("/my-swaps")
	{
		mine.GET("", swapController.ListMySwaps)
		mine.GET("/:id", swapController.GetSwap)
		mine.POST("/:id/accept", swapController.AcceptSwap)
		mine.POST("/:id/reject", swapController.RejectSwap)
		mine.POST("/:id/cancel", swapController.CancelSwap)
		mine.POST("/:id/feedback", swapController.SubmitFeedback)
	}
}
