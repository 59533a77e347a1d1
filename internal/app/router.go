package app

import (
	"ecopulse_backend/internal/middleware"
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/pkg/monitoring"
	"ecopulse_backend/pkg/security"
	"ecopulse_backend/pkg/tracing"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ecopulse_backend/docs"
)

func (a *App) setupRouter(userRepo *repository.UserRepository) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(security.CORS(a.Config.CORS.AllowedOrigins))
	r.Use(security.Secure())
	r.Use(monitoring.MetricsMiddleware())

	if a.Config.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}

	if a.Config.RateLimit.MaxRequests > 0 {
		window := time.Duration(a.Config.RateLimit.WindowMinutes) * time.Minute
		r.Use(security.RateLimiter(a.Config.RateLimit.MaxRequests, window))
	}

	r.GET("/health", a.controllers.Health.Health)
	r.GET("/metrics", monitoring.PrometheusHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if a.Config.Storage.Type == "local" {
		r.Static("/uploads", a.Config.Storage.LocalPath)
	}

	api := r.Group("/api/v1")

	// Public routes
	{
		api.POST("/auth/register", a.controllers.Auth.Register)
		api.POST("/auth/login", a.controllers.Auth.Login)

		api.GET("/indicators", a.controllers.Indicator.List)
		api.GET("/indicators/sunburst", a.controllers.Indicator.Sunburst)
		api.GET("/indicators/:id", a.controllers.Indicator.Get)

		api.GET("/locations", a.controllers.Location.List)
		api.GET("/locations/:id", a.controllers.Location.Get)
		api.GET("/locations/:id/children", a.controllers.Location.Children)
		api.GET("/locations/:id/leaderboard", a.controllers.Location.Leaderboard)

		api.GET("/leaderboard", a.controllers.Achievement.GetLeaderboard)

		api.GET("/stories", a.controllers.Story.ListStories)
		api.GET("/stories/:id", a.controllers.Story.GetStory)

		api.GET("/vouchers", a.controllers.Voucher.List)

		// Twilio callbacks authenticate at the account level, not per
		// user.
		api.POST("/voice/webhook/answer", a.controllers.Voice.AnswerWebhook)
		api.POST("/voice/webhook/status", a.controllers.Voice.StatusWebhook)
		api.POST("/voice/webhook/recording", a.controllers.Voice.RecordingWebhook)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(a.Config))
	authed.Use(middleware.ActivityMiddleware(userRepo))
	{
		authed.GET("/users/me", a.controllers.User.GetProfile)
		authed.PUT("/users/me", a.controllers.User.UpdateProfile)
		authed.POST("/users/me/onboarding", a.controllers.User.CompleteOnboarding)
		authed.POST("/users/me/avatar", a.controllers.User.UploadAvatar)

		authed.GET("/learning/path", a.controllers.Learning.GetPath)
		authed.POST("/learning/path/start", a.controllers.Learning.StartPath)
		authed.POST("/learning/nodes/:id/complete", a.controllers.Learning.CompleteNode)
		authed.POST("/learning/hearts/spend", a.controllers.Learning.SpendHeart)
		authed.POST("/learning/checkin", a.controllers.Learning.DailyCheckIn)

		authed.GET("/achievements", a.controllers.Achievement.GetAchievements)
		authed.GET("/achievements/badges", a.controllers.Achievement.GetBadges)

		authed.POST("/stories", a.controllers.Story.CreateStory)
		authed.GET("/stories/mine", a.controllers.Story.ListMine)
		authed.DELETE("/stories/:id", a.controllers.Story.DeleteStory)
		authed.POST("/stories/polish", a.controllers.Story.Polish)

		authed.POST("/vouchers/:id/redeem", a.controllers.Voucher.Redeem)
		authed.GET("/vouchers/redemptions", a.controllers.Voucher.MyRedemptions)
	}

	// Moderator routes
	mod := authed.Group("")
	mod.Use(middleware.RoleMiddleware(model.Moderator))
	{
		mod.GET("/moderation/stories", a.controllers.Story.ListPending)
		mod.PUT("/moderation/stories/:id", a.controllers.Story.Moderate)

		mod.POST("/voice/surveys", a.controllers.Voice.CreateSurvey)
		mod.GET("/voice/surveys", a.controllers.Voice.ListSurveys)
		mod.GET("/voice/surveys/:id/calls", a.controllers.Voice.ListCalls)
		mod.POST("/voice/surveys/:id/calls", a.controllers.Voice.PlaceCall)
	}

	// Admin routes
	admin := authed.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.PUT("/users/:id/disabled", a.controllers.User.SetDisabled)

		admin.POST("/indicators", a.controllers.Indicator.Create)
		admin.PUT("/indicators/:id", a.controllers.Indicator.Update)
		admin.DELETE("/indicators/:id", a.controllers.Indicator.Delete)
		admin.POST("/indicators/relationships", a.controllers.Indicator.Link)
		admin.DELETE("/indicators/relationships/:id", a.controllers.Indicator.Unlink)

		admin.POST("/locations", a.controllers.Location.Create)
		admin.POST("/vouchers", a.controllers.Voucher.Create)
	}

	return r
}
