package controller

import (
	"ecopulse_backend/internal/service"
	"ecopulse_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	Achievements *service.AchievementService
}

func NewAchievementController(achievements *service.AchievementService) *AchievementController {
	return &AchievementController{Achievements: achievements}
}

// GetAchievements godoc
// @Summary Get the user's stats, badges and leaderboard context
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.UserAchievements}
// @Router /achievements [get]
func (ctl *AchievementController) GetAchievements(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	achievements, err := ctl.Achievements.GetUserAchievements(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, achievements)
}

// GetBadges godoc
// @Summary List the user's badges
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /achievements/badges [get]
func (ctl *AchievementController) GetBadges(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	badges, err := ctl.Achievements.GetUserBadges(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, badges)
}

// GetLeaderboard godoc
// @Summary Get the insights leaderboard
// @Tags achievements
// @Produce json
// @Param limit query int false "Max entries (default 10)"
// @Param locationId query int false "Scope to a location"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /leaderboard [get]
func (ctl *AchievementController) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	var locationID *uint
	if raw := c.Query("locationId"); raw != "" {
		id := util.MustParseUint(raw)
		if id == 0 {
			util.BadRequest(c, "invalid location id")
			return
		}
		locationID = &id
	}

	entries, err := ctl.Achievements.GetLeaderboard(limit, locationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, entries)
}
