package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func RegisterAuthRoutes(router gin.IRouter, deps common.Deps) {
	authController := NewAuthController(
		user.NewUserRepository(deps.DB),
		user.NewAdminRepository(deps.DB),
		deps.Config,
		deps.Log("auth"),
	)

	authGroup := router.Group("/auth")
	{
		// Pages; AccessPolicy sends signed-in members on to the dashboard.
		authGroup.GET("/signin", authController.SignInPage)
		authGroup.GET("/signup", authController.SignUpPage)

		authGroup.POST("/signup", authController.SignUp)
		authGroup.POST("/signin", authController.SignIn)
		authGroup.POST("/refresh-token", authController.RefreshToken)
		authGroup.POST("/signout", authController.SignOut)
		authGroup.GET("/me", authController.Me)
	}
}
