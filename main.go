package main

import (
	"context"
	"log"

	"github.com/DhavalSuthar-24/skillswap/config"
	_ "github.com/DhavalSuthar-24/skillswap/docs"
	"github.com/DhavalSuthar-24/skillswap/internal/common"
	"github.com/DhavalSuthar-24/skillswap/internal/database"
	"github.com/DhavalSuthar-24/skillswap/internal/realtime"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/metrics"
	"github.com/DhavalSuthar-24/skillswap/routes"
)

// @title SkillSwap REST API
// @version 1.0
// @description Skill exchange marketplace: profiles, skills, swaps, ratings and moderation.
// @host localhost:8088
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Component: "skillswap"})
	m := metrics.New(cfg.Metrics.Namespace)

	if err := database.Migrate(config.DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	logger.Info("AutoMigrate successful")

	if err := database.BootstrapAdmin(context.Background(), config.DB, cfg.App.BootstrapAdminEmail, logger.Named("bootstrap")); err != nil {
		log.Fatalf("Bootstrap admin failed: %v", err)
	}

	var bus realtime.Bus
	if cfg.Redis.URL != "" {
		redisBus, err := realtime.NewRedisBusFromURL(cfg.Redis.URL, m, logger.Named("realtime"))
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		bus = redisBus
	} else {
		bus = realtime.NewMemoryBus(0, m)
	}
	defer bus.Close()

	r := routes.SetupRoutes(common.Deps{
		DB:      config.DB,
		Config:  cfg,
		Bus:     bus,
		Logger:  logger,
		Metrics: m,
	}, bus)

	logger.Info("starting server", "port", cfg.App.Port, "env", cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
