package service

import (
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStories(t *testing.T, db *gorm.DB) *StoryService {
	t.Helper()
	return NewStoryService(
		repository.NewStoryRepository(db),
		repository.NewUserRepository(db),
		&LocalStorage{BasePath: t.TempDir()},
		nil,
		testGameConfig(),
	)
}

func TestCreateStoryDailyLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStories(t, db)
	user := createTestUser(t, db, 0, 5)

	for i := 0; i < 3; i++ {
		story, err := svc.CreateStory(user.ID, CreateStoryInput{
			Title: fmt.Sprintf("Story %d", i+1),
			Body:  "Something happened on my street today.",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, model.StoryPending, story.Status)
	}

	_, err := svc.CreateStory(user.ID, CreateStoryInput{
		Title: "One too many",
		Body:  "Over the limit.",
	}, nil)
	assert.ErrorIs(t, err, util.ErrDailyShareLimit)

	// The limit is per user, not global.
	other := createTestUser(t, db, 0, 5)
	_, err = svc.CreateStory(other.ID, CreateStoryInput{
		Title: "First from someone else",
		Body:  "Different author.",
	}, nil)
	require.NoError(t, err)
}

func TestModerationFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStories(t, db)
	author := createTestUser(t, db, 0, 5)

	story, err := svc.CreateStory(author.ID, CreateStoryInput{
		Title: "The new pocket park",
		Body:  "Volunteers planted twelve trees on Saturday.",
	}, nil)
	require.NoError(t, err)

	// Pending stories are invisible to the public feed.
	published, total, err := svc.ListPublished(1, 20, nil)
	require.NoError(t, err)
	assert.Empty(t, published)
	assert.Zero(t, total)

	pending, total, err := svc.ListPending(1, 20)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), total)

	approved, err := svc.Moderate(story.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.StoryPublished, approved.Status)

	published, total, err = svc.ListPublished(1, 20, nil)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, author.Name, published[0].Author)
}

func TestDeleteStoryPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStories(t, db)
	author := createTestUser(t, db, 0, 5)
	stranger := createTestUser(t, db, 0, 5)

	story, err := svc.CreateStory(author.ID, CreateStoryInput{
		Title: "Deletable",
		Body:  "Short lived.",
	}, nil)
	require.NoError(t, err)

	err = svc.DeleteStory(story.ID, stranger.ID, model.Resident)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// Moderators can remove anyone's story.
	require.NoError(t, svc.DeleteStory(story.ID, stranger.ID, model.Moderator))

	_, err = svc.GetStory(story.ID)
	assert.ErrorIs(t, err, util.ErrStoryNotFound)
}
