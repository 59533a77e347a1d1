package service

import (
	"ecopulse_backend/internal/config"
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/pkg/database"
	"ecopulse_backend/pkg/logger"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB opens a per-test in-memory sqlite database with the full
// schema and the seeded 14-node learning path.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testGameConfig() config.GameConfig {
	return config.GameConfig{
		BaseNodeInsights:    10,
		CheckpointBonus:     20,
		CheckpointInterval:  7,
		MaxHearts:           5,
		DailyStoryLimit:     3,
		FirstStepsUnits:     1,
		PathfinderUnits:     10,
		TrailBlazerUnits:    30,
		WeekStreakDays:      7,
		CollectorInsights:   100,
		SageInsights:        500,
		LeaderboardCacheTTL: 60,
	}
}

func newTestProgression(t *testing.T, db *gorm.DB) *ProgressionService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	game := testGameConfig()

	achievements := NewAchievementService(badgeRepo, userRepo, nodeRepo, nil, game)
	return NewProgressionService(nodeRepo, userRepo, achievements, game, db)
}

var testUserSeq uint64

func createTestUser(t *testing.T, db *gorm.DB, insights, hearts int) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "Test Resident",
		Email:    fmt.Sprintf("resident-%d@example.com", atomic.AddUint64(&testUserSeq, 1)),
		Password: "hashed",
		Role:     model.Resident,
		Insights: insights,
		Hearts:   hearts,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func nodeBySequenceDay(t *testing.T, db *gorm.DB, day int) *model.LearningNode {
	t.Helper()

	var node model.LearningNode
	require.NoError(t, db.Where("sequence_day = ?", day).First(&node).Error)
	return &node
}
