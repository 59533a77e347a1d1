package service

import (
	"context"
	"ecopulse_backend/internal/config"
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/pkg/logger"
	"ecopulse_backend/pkg/monitoring"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// StatsSnapshot is the aggregate state the badge rules are evaluated
// against. Every predicate is a pure function of this snapshot.
type StatsSnapshot struct {
	UnitsCompleted int `json:"unitsCompleted"`
	Streak         int `json:"streak"`
	Insights       int `json:"insights"`
	Hearts         int `json:"hearts"`
}

type badgeRule struct {
	Type   string
	Name   string
	Icon   string
	Earned func(StatsSnapshot) bool
}

type AchievementService struct {
	BadgeRepo *repository.BadgeRepository
	UserRepo  *repository.UserRepository
	NodeRepo  *repository.NodeRepository
	Redis     *redis.Client
	Game      config.GameConfig

	rules []badgeRule
}

func NewAchievementService(
	badgeRepo *repository.BadgeRepository,
	userRepo *repository.UserRepository,
	nodeRepo *repository.NodeRepository,
	rdb *redis.Client,
	game config.GameConfig,
) *AchievementService {
	return &AchievementService{
		BadgeRepo: badgeRepo,
		UserRepo:  userRepo,
		NodeRepo:  nodeRepo,
		Redis:     rdb,
		Game:      game,
		rules:     buildBadgeRules(game),
	}
}

// Rule order is stable so badge lists render consistently.
func buildBadgeRules(game config.GameConfig) []badgeRule {
	return []badgeRule{
		{
			Type: "first_steps",
			Name: "First Steps",
			Icon: "badge-first-steps.png",
			Earned: func(s StatsSnapshot) bool {
				return s.UnitsCompleted >= game.FirstStepsUnits
			},
		},
		{
			Type: "week_streak",
			Name: "Week Streak",
			Icon: "badge-week-streak.png",
			Earned: func(s StatsSnapshot) bool {
				return s.Streak >= game.WeekStreakDays
			},
		},
		{
			Type: "insight_collector",
			Name: "Insight Collector",
			Icon: "badge-collector.png",
			Earned: func(s StatsSnapshot) bool {
				return s.Insights >= game.CollectorInsights
			},
		},
		{
			Type: "insight_sage",
			Name: "Insight Sage",
			Icon: "badge-sage.png",
			Earned: func(s StatsSnapshot) bool {
				return s.Insights >= game.SageInsights
			},
		},
		{
			Type: "pathfinder",
			Name: "Pathfinder",
			Icon: "badge-pathfinder.png",
			Earned: func(s StatsSnapshot) bool {
				return s.UnitsCompleted >= game.PathfinderUnits
			},
		},
		{
			Type: "trail_blazer",
			Name: "Trail Blazer",
			Icon: "badge-trail-blazer.png",
			Earned: func(s StatsSnapshot) bool {
				return s.UnitsCompleted >= game.TrailBlazerUnits
			},
		},
	}
}

// CheckAndAwardAchievements grants every badge whose rule the user now
// satisfies and returns the display names of the new ones. Calling it
// again without a state change returns an empty slice. Per-badge
// persistence errors are logged and skipped, never propagated.
func (s *AchievementService) CheckAndAwardAchievements(userID uint) []string {
	snapshot, err := s.statsFor(userID)
	if err != nil {
		logger.Log.Error("achievement stats lookup failed",
			zap.Uint("userID", userID), zap.Error(err))
		return []string{}
	}

	newBadges := []string{}
	for _, rule := range s.rules {
		if !rule.Earned(snapshot) {
			continue
		}

		held, err := s.BadgeRepo.Has(userID, rule.Type)
		if err != nil {
			logger.Log.Error("badge lookup failed",
				zap.Uint("userID", userID), zap.String("badge", rule.Type), zap.Error(err))
			continue
		}
		if held {
			continue
		}

		alreadyHeld, err := s.BadgeRepo.Award(&model.Badge{
			UserID:    userID,
			BadgeType: rule.Type,
			Name:      rule.Name,
			Icon:      rule.Icon,
			AwardedAt: time.Now(),
		})
		if err != nil {
			logger.Log.Error("badge insert failed",
				zap.Uint("userID", userID), zap.String("badge", rule.Type), zap.Error(err))
			continue
		}
		if alreadyHeld {
			continue
		}

		monitoring.BadgesAwarded.WithLabelValues(rule.Type).Inc()
		newBadges = append(newBadges, rule.Name)
	}
	return newBadges
}

func (s *AchievementService) statsFor(userID uint) (StatsSnapshot, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return StatsSnapshot{}, err
	}

	units, err := s.NodeRepo.CountCompleted(s.NodeRepo.DB, userID)
	if err != nil {
		return StatsSnapshot{}, err
	}

	return StatsSnapshot{
		UnitsCompleted: int(units),
		Streak:         user.Streak,
		Insights:       user.Insights,
		Hearts:         user.Hearts,
	}, nil
}

type UserAchievements struct {
	TotalInsights  int                `json:"totalInsights"`
	Hearts         int                `json:"hearts"`
	Streak         int                `json:"streak"`
	UnitsCompleted int                `json:"unitsCompleted"`
	Badges         []model.Badge      `json:"badges"`
	Leaderboard    []LeaderboardEntry `json:"leaderboard"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	User     string `json:"user"`
	Insights int    `json:"insights"`
	Avatar   string `json:"avatar,omitempty"`
}

func (s *AchievementService) GetUserAchievements(userID uint) (*UserAchievements, error) {
	snapshot, err := s.statsFor(userID)
	if err != nil {
		return nil, err
	}

	badges, err := s.BadgeRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.GetLeaderboard(10, nil)
	if err != nil {
		return nil, err
	}

	return &UserAchievements{
		TotalInsights:  snapshot.Insights,
		Hearts:         snapshot.Hearts,
		Streak:         snapshot.Streak,
		UnitsCompleted: snapshot.UnitsCompleted,
		Badges:         badges,
		Leaderboard:    leaderboard,
	}, nil
}

// GetLeaderboard ranks users by insights, optionally scoped to a
// location, with a short redis cache in front of the query.
func (s *AchievementService) GetLeaderboard(limit int, locationID *uint) ([]LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:global:%d", limit)
	if locationID != nil {
		cacheKey = fmt.Sprintf("leaderboard:loc:%d:%d", *locationID, limit)
	}

	ctx := context.Background()
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByInsights(limit, locationID)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:     i + 1,
			User:     user.Name,
			Insights: user.Insights,
			Avatar:   user.Avatar,
		}
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			ttl := time.Duration(s.Game.LeaderboardCacheTTL) * time.Second
			s.Redis.Set(ctx, cacheKey, payload, ttl)
		}
	}

	return entries, nil
}

func (s *AchievementService) GetUserBadges(userID uint) ([]model.Badge, error) {
	return s.BadgeRepo.FindByUserID(userID)
}
