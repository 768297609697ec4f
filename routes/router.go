package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhavalSuthar-24/skillswap/internal/admin"
	"github.com/DhavalSuthar-24/skillswap/internal/announcement"
	"github.com/DhavalSuthar-24/skillswap/internal/auth"
	"github.com/DhavalSuthar-24/skillswap/internal/browse"
	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/internal/profile"
	"github.com/DhavalSuthar-24/skillswap/internal/realtime"
	"github.com/DhavalSuthar-24/skillswap/internal/skill"
	"github.com/DhavalSuthar-24/skillswap/internal/swap"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
)

// SetupRoutes builds the engine. Identity is resolved once per request here and
// every feature package reads it from the gin context.
func SetupRoutes(deps common.Deps, bus realtime.Bus) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinMiddleware(deps.Log("http")))
	r.Use(deps.Metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.Config.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", logging.RequestIDHeader},
		AllowCredentials: true,
	}))
	r.Use(middleware.SessionMiddleware(deps.Config.JWT.AccessTokenSecret, deps.Config.App.SessionCookie, user.NewUserRepository(deps.DB)))
	r.Use(middleware.AccessPolicy())

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>SkillSwap</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>Welcome to SkillSwap</h1>
					<p>Trade what you know for what you want to learn.</p>
					<a href="/auth/signin">Sign in</a> | <a href="/swagger/index.html">API docs</a>
				</body>
			</html>
		`))
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	auth.RegisterAuthRoutes(r, deps)
	profile.RegisterProfileRoutes(r, deps)
	skill.RegisterSkillRoutes(r, deps)
	browse.RegisterBrowseRoutes(r, deps)
	swap.RegisterSwapRoutes(r, deps)
	announcement.RegisterAnnouncementRoutes(r, deps)
	admin.RegisterAdminRoutes(r, deps)
	realtime.RegisterRealtimeRoutes(r, realtime.NewHandler(bus, deps.Log("realtime"), deps.Config.App.FrontendURL))

	return r
}
