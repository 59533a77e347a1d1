package service

import (
	"ecopulse_backend/internal/config"
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"ecopulse_backend/pkg/monitoring"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressionService owns every mutation of the per-user counters
// (insights, hearts, streak) and of node progress rows.
type ProgressionService struct {
	NodeRepo     *repository.NodeRepository
	UserRepo     *repository.UserRepository
	Achievements *AchievementService
	Game         config.GameConfig
	DB           *gorm.DB
}

func NewProgressionService(
	nodeRepo *repository.NodeRepository,
	userRepo *repository.UserRepository,
	achievements *AchievementService,
	game config.GameConfig,
	db *gorm.DB,
) *ProgressionService {
	return &ProgressionService{
		NodeRepo:     nodeRepo,
		UserRepo:     userRepo,
		Achievements: achievements,
		Game:         game,
		DB:           db,
	}
}

type CompletionResult struct {
	Success          bool     `json:"success"`
	InsightsEarned   int      `json:"insightsEarned"`
	IsCheckpoint     bool     `json:"isCheckpoint"`
	NextNodeUnlocked bool     `json:"nextNodeUnlocked"`
	NewBadges        []string `json:"newBadges"`
}

type PathEntry struct {
	Node           model.LearningNode `json:"node"`
	Status         model.NodeStatus   `json:"status"`
	InsightsEarned int                `json:"insightsEarned"`
	CompletedAt    *time.Time         `json:"completedAt,omitempty"`
}

// CompleteNode finishes the node, credits the reward (with checkpoint
// bonus when the sequence day falls on the configured interval) and
// promotes the next node in sequence. All writes run in one
// transaction so a failure can never leave insights credited without
// the matching unlock.
func (s *ProgressionService) CompleteNode(userID, nodeID uint, response datatypes.JSON) (*CompletionResult, error) {
	result := &CompletionResult{NewBadges: []string{}}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrUserNotFound
			}
			return err
		}

		node, err := s.NodeRepo.FindNodeByID(tx, nodeID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrNodeNotFound
			}
			return err
		}

		progress, err := s.NodeRepo.GetProgress(tx, userID, nodeID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrNodeLocked
			}
			return err
		}

		switch progress.Status {
		case model.NodeCompleted:
			return util.ErrNodeAlreadyCompleted
		case model.NodeLocked:
			return util.ErrNodeLocked
		}

		isCheckpoint := s.Game.CheckpointInterval > 0 && node.SequenceDay%s.Game.CheckpointInterval == 0
		earned := s.Game.BaseNodeInsights
		if isCheckpoint {
			earned += s.Game.CheckpointBonus
		}

		if err := s.NodeRepo.MarkCompleted(tx, userID, nodeID, earned, time.Now(), response); err != nil {
			return err
		}

		if err := s.UserRepo.AddInsights(tx, userID, earned); err != nil {
			return err
		}

		next, err := s.NodeRepo.NextAfter(tx, node.SequenceDay)
		if err == nil {
			if err := s.NodeRepo.UpsertStatus(tx, userID, next.ID, model.NodeCurrent); err != nil {
				return err
			}
			result.NextNodeUnlocked = true
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		result.InsightsEarned = earned
		result.IsCheckpoint = isCheckpoint
		return nil
	})

	if err != nil {
		return nil, err
	}

	result.Success = true
	monitoring.NodesCompleted.Inc()

	// Badge evaluation is best-effort and idempotent, so it runs after
	// the transaction; a missed award is picked up on the next action.
	result.NewBadges = s.Achievements.CheckAndAwardAchievements(userID)

	return result, nil
}

// UpdateDailyStats recognizes a new session day: same day is a no-op,
// a consecutive day extends the streak, a gap (or first ever session)
// restarts it at 1. Hearts refill to the daily allowance either way.
func (s *ProgressionService) UpdateDailyStats(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	if user.LastSessionAt != nil && sameDay(*user.LastSessionAt, now) {
		return user, nil
	}

	streak := 1
	if user.LastSessionAt != nil && sameDay(user.LastSessionAt.AddDate(0, 0, 1), now) {
		streak = user.Streak + 1
	}

	err = s.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"streak":          streak,
			"hearts":          s.Game.MaxHearts,
			"last_session_at": now,
		}).Error
	if err != nil {
		return nil, err
	}

	user.Streak = streak
	user.Hearts = s.Game.MaxHearts
	user.LastSessionAt = &now
	return user, nil
}

// SpendHeart consumes one heart via a conditional in-database
// decrement; two devices racing cannot push hearts below zero.
func (s *ProgressionService) SpendHeart(userID uint) (int, error) {
	ok, err := s.UserRepo.SpendHeart(userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		if _, err := s.UserRepo.FindByID(userID); err != nil {
			return 0, util.ErrUserNotFound
		}
		return 0, util.ErrNoHearts
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return 0, err
	}
	return user.Hearts, nil
}

// StartPath initializes progress rows for a user: first node current,
// the rest locked. Safe to call again; an initialized path is left
// untouched.
func (s *ProgressionService) StartPath(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.NodeProgress{}).Where("user_id = ?", userID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		var nodes []model.LearningNode
		if err := tx.Order("sequence_day ASC").Find(&nodes).Error; err != nil {
			return err
		}

		for i, node := range nodes {
			status := model.NodeLocked
			if i == 0 {
				status = model.NodeCurrent
			}
			progress := &model.NodeProgress{
				UserID: userID,
				NodeID: node.ID,
				Status: status,
			}
			if err := s.NodeRepo.CreateProgress(tx, progress); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetPath returns the full node sequence annotated with the user's
// status on each; nodes without a progress row read as locked.
func (s *ProgressionService) GetPath(userID uint) ([]PathEntry, error) {
	nodes, err := s.NodeRepo.ListNodes()
	if err != nil {
		return nil, err
	}

	progress, err := s.NodeRepo.ListProgress(userID)
	if err != nil {
		return nil, err
	}

	byNode := make(map[uint]model.NodeProgress, len(progress))
	for _, p := range progress {
		byNode[p.NodeID] = p
	}

	entries := make([]PathEntry, len(nodes))
	for i, node := range nodes {
		entry := PathEntry{Node: node, Status: model.NodeLocked}
		if p, ok := byNode[node.ID]; ok {
			entry.Status = p.Status
			entry.InsightsEarned = p.InsightsEarned
			entry.CompletedAt = p.CompletedAt
		}
		entries[i] = entry
	}
	return entries, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
