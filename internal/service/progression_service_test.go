package service

import (
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPathInitializesProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, 0, 5)

	require.NoError(t, svc.StartPath(user.ID))

	entries, err := svc.GetPath(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 14)

	assert.Equal(t, model.NodeCurrent, entries[0].Status)
	for _, entry := range entries[1:] {
		assert.Equal(t, model.NodeLocked, entry.Status)
	}

	// A second call must not reset anything.
	require.NoError(t, svc.StartPath(user.ID))
	entries, err = svc.GetPath(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NodeCurrent, entries[0].Status)
}

func TestCompleteNodeAdvancesPath(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, 0, 5)
	require.NoError(t, svc.StartPath(user.ID))

	first := nodeBySequenceDay(t, db, 1)

	result, err := svc.CompleteNode(user.ID, first.ID, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 10, result.InsightsEarned)
	assert.False(t, result.IsCheckpoint)
	assert.True(t, result.NextNodeUnlocked)

	// Exactly one node current after the completion.
	entries, err := svc.GetPath(user.ID)
	require.NoError(t, err)

	currentCount := 0
	for _, entry := range entries {
		if entry.Status == model.NodeCurrent {
			currentCount++
			assert.Equal(t, 2, entry.Node.SequenceDay)
		}
	}
	assert.Equal(t, 1, currentCount)
	assert.Equal(t, model.NodeCompleted, entries[0].Status)

	refreshed, err := svc.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, refreshed.Insights)
}

func TestCompleteNodeCheckpointBonus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, 0, 5)

	checkpoint := nodeBySequenceDay(t, db, 7)
	require.NoError(t, svc.NodeRepo.UpsertStatus(db, user.ID, checkpoint.ID, model.NodeCurrent))

	result, err := svc.CompleteNode(user.ID, checkpoint.ID, nil)
	require.NoError(t, err)

	assert.True(t, result.IsCheckpoint)
	assert.Equal(t, 30, result.InsightsEarned)

	refreshed, err := svc.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, refreshed.Insights)
}

func TestCompleteNodeRejectsLockedAndRepeat(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, 0, 5)
	require.NoError(t, svc.StartPath(user.ID))

	locked := nodeBySequenceDay(t, db, 3)
	_, err := svc.CompleteNode(user.ID, locked.ID, nil)
	assert.ErrorIs(t, err, util.ErrNodeLocked)

	first := nodeBySequenceDay(t, db, 1)
	_, err = svc.CompleteNode(user.ID, first.ID, nil)
	require.NoError(t, err)

	_, err = svc.CompleteNode(user.ID, first.ID, nil)
	assert.ErrorIs(t, err, util.ErrNodeAlreadyCompleted)

	// The failed repeat must not double-credit.
	refreshed, err := svc.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, refreshed.Insights)

	_, err = svc.CompleteNode(user.ID, 99999, nil)
	assert.ErrorIs(t, err, util.ErrNodeNotFound)
}

func TestSpendHeart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)

	user := createTestUser(t, db, 0, 1)

	remaining, err := svc.SpendHeart(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, err = svc.SpendHeart(user.ID)
	assert.ErrorIs(t, err, util.ErrNoHearts)

	refreshed, err := svc.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, refreshed.Hearts)

	_, err = svc.SpendHeart(99999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestUpdateDailyStatsStreaks(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)

	t.Run("first session starts at one", func(t *testing.T) {
		user := createTestUser(t, db, 0, 2)

		updated, err := svc.UpdateDailyStats(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Streak)
		assert.Equal(t, 5, updated.Hearts)
		require.NotNil(t, updated.LastSessionAt)
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		user := createTestUser(t, db, 0, 5)

		first, err := svc.UpdateDailyStats(user.ID)
		require.NoError(t, err)

		second, err := svc.UpdateDailyStats(user.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Streak, second.Streak)
	})

	t.Run("consecutive day extends", func(t *testing.T) {
		user := createTestUser(t, db, 0, 2)
		yesterday := time.Now().AddDate(0, 0, -1)
		require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{"streak": 3, "last_session_at": yesterday}).Error)

		updated, err := svc.UpdateDailyStats(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Streak)
		assert.Equal(t, 5, updated.Hearts)
	})

	t.Run("gap resets to one", func(t *testing.T) {
		user := createTestUser(t, db, 0, 2)
		threeDaysAgo := time.Now().AddDate(0, 0, -3)
		require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{"streak": 9, "last_session_at": threeDaysAgo}).Error)

		updated, err := svc.UpdateDailyStats(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Streak)
	})
}
