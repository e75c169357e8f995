package main

import (
	"log/slog"

	"github.com/JorgeSaicoski/microservice-commons/config"
	"github.com/JorgeSaicoski/microservice-commons/server"
	"github.com/JorgeSaicoski/microservice-commons/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/JorgeSaicoski/alignment-tracker/internal/api"
	activityAPI "github.com/JorgeSaicoski/alignment-tracker/internal/api/activity"
	alignmentAPI "github.com/JorgeSaicoski/alignment-tracker/internal/api/alignment"
	goalsAPI "github.com/JorgeSaicoski/alignment-tracker/internal/api/goals"
	clients "github.com/JorgeSaicoski/alignment-tracker/internal/client"
	alignmentConfig "github.com/JorgeSaicoski/alignment-tracker/internal/config"
	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
	"github.com/JorgeSaicoski/alignment-tracker/internal/metrics"
	activityService "github.com/JorgeSaicoski/alignment-tracker/internal/services/activity"
	alignmentService "github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
	goalsService "github.com/JorgeSaicoski/alignment-tracker/internal/services/goals"
	"github.com/JorgeSaicoski/alignment-tracker/internal/store"
)

func main() {
	// Local development keeps its settings in .env; containers use real env vars.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	server := server.NewServer(server.ServerOptions{
		ServiceName:    "alignment-tracker",
		ServiceVersion: "1.0.0",
		SetupRoutes:    setupRoutes,
	})
	server.Start()
}

func setupRoutes(router *gin.Engine, _ *config.Config) {
	cfg, err := alignmentConfig.Load(utils.GetEnv("ALIGNMENT_CONFIG_DIR", "."))
	if err != nil {
		panic("Failed to load alignment config: " + err.Error())
	}

	database, err := db.Connect(cfg.Database.DSN())
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	pg := store.New(database)
	sources := pg.Sources()
	if cfg.GoalDirectoryURL != "" {
		slog.Info("reading goals from remote directory", "url", cfg.GoalDirectoryURL)
		sources.Goals = clients.NewGoalDirectoryHTTPClient(cfg.GoalDirectoryURL, nil)
	}

	// Initialize services
	engine := alignmentService.NewService(sources, cfg.Alignment())
	goalService := goalsService.NewGoalService(database)
	activity := activityService.NewActivityService(database, cfg.Alignment().Offset, engine)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup routes
	group := router.Group("")
	limiter := api.NewUserRateLimiter(cfg.RecomputePerMinute, cfg.RecomputeBurst)
	alignmentAPI.RegisterRoutes(group, engine, limiter)
	goalsAPI.RegisterRoutes(group, goalService)
	activityAPI.RegisterRoutes(group, activity)
}
