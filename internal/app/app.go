package app

import (
	"context"
	"ecopulse_backend/internal/config"
	"ecopulse_backend/internal/controller"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/service"
	"ecopulse_backend/pkg/configwatcher"
	"ecopulse_backend/pkg/database"
	"ecopulse_backend/pkg/logger"
	"ecopulse_backend/pkg/monitoring"
	"ecopulse_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Engine *gin.Engine

	controllers *controllers
}

// controllers groups everything the router mounts.
type controllers struct {
	Auth        *controller.AuthController
	User        *controller.UserController
	Learning    *controller.LearningController
	Achievement *controller.AchievementController
	Story       *controller.StoryController
	Indicator   *controller.IndicatorController
	Voucher     *controller.VoucherController
	Location    *controller.LocationController
	Voice       *controller.VoiceController
	Health      *controller.HealthController
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	// Auto-migration runs by default outside release mode; production
	// schemas only move when -migrate is passed explicitly.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Log.Info("Database migration completed")
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	// Redis is optional; the leaderboard degrades to direct queries.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, leaderboard cache disabled", zap.Error(err))
		rdb = nil
	}

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ecopulse-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Warn("Tracing init failed", zap.Error(err))
		}
	}

	storage, err := service.NewStorageProvider(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	indicatorRepo := repository.NewIndicatorRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	voiceRepo := repository.NewVoiceRepository(db)

	// Services
	aiService := service.NewAIService(cfg.AI)
	achievementService := service.NewAchievementService(badgeRepo, userRepo, nodeRepo, rdb, cfg.Game)
	progressionService := service.NewProgressionService(nodeRepo, userRepo, achievementService, cfg.Game, db)
	authService := service.NewAuthService(userRepo, progressionService, cfg.JWT)
	userService := service.NewUserService(userRepo, locationRepo, storage)
	storyService := service.NewStoryService(storyRepo, userRepo, storage, aiService, cfg.Game)
	indicatorService := service.NewIndicatorService(indicatorRepo)
	voucherService := service.NewVoucherService(voucherRepo, userRepo, db)
	locationService := service.NewLocationService(locationRepo, achievementService)
	voiceService := service.NewVoiceService(voiceRepo, storage, aiService, cfg.Twilio)

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		controllers: &controllers{
			Auth:        controller.NewAuthController(authService),
			User:        controller.NewUserController(userService),
			Learning:    controller.NewLearningController(progressionService),
			Achievement: controller.NewAchievementController(achievementService),
			Story:       controller.NewStoryController(storyService),
			Indicator:   controller.NewIndicatorController(indicatorService),
			Voucher:     controller.NewVoucherController(voucherService),
			Location:    controller.NewLocationController(locationService),
			Voice:       controller.NewVoiceController(voiceService),
			Health:      controller.NewHealthController(db),
		},
	}

	app.Engine = app.setupRouter(userRepo)
	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then
// drains in-flight requests before exiting.
func (a *App) Run() {
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(cfg interface{}) {
		logger.Log.Info("Config file reloaded")
	})

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Engine,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}

	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exited")
}
