package service

import (
	"context"
	"ecopulse_backend/internal/config"
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"ecopulse_backend/pkg/logger"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StoryService struct {
	StoryRepo *repository.StoryRepository
	UserRepo  *repository.UserRepository
	Storage   StorageProvider
	AI        *AIService
	Game      config.GameConfig
}

func NewStoryService(
	storyRepo *repository.StoryRepository,
	userRepo *repository.UserRepository,
	storage StorageProvider,
	ai *AIService,
	game config.GameConfig,
) *StoryService {
	return &StoryService{
		StoryRepo: storyRepo,
		UserRepo:  userRepo,
		Storage:   storage,
		AI:        ai,
		Game:      game,
	}
}

type CreateStoryInput struct {
	Title      string `form:"title" binding:"required,max=120"`
	Body       string `form:"body" binding:"required,max=4000"`
	LocationID *uint  `form:"locationId"`
}

// CreateStory accepts a resident story with an optional photo. The
// daily limit counts rows created since local midnight, so the window
// resets with the calendar day rather than a rolling 24 hours.
func (s *StoryService) CreateStory(userID uint, input CreateStoryInput, photo *multipart.FileHeader) (*model.Story, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := s.StoryRepo.CountByUserSince(userID, midnight)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.Game.DailyStoryLimit) {
		return nil, util.ErrDailyShareLimit
	}

	story := &model.Story{
		UserID:     userID,
		Title:      input.Title,
		Body:       input.Body,
		LocationID: input.LocationID,
		Status:     model.StoryPending,
	}

	if photo != nil {
		src, err := photo.Open()
		if err != nil {
			return nil, err
		}
		mimeType, err := util.ValidateMimeType(src, []string{"image/"})
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("unsupported photo type %s: %w", mimeType, err)
		}

		key := fmt.Sprintf("stories/%d/%s%s", userID, uuid.New().String(), filepath.Ext(photo.Filename))
		url, err := s.Storage.SaveUpload(photo, key)
		if err != nil {
			return nil, err
		}
		story.PhotoURL = url
	}

	if err := s.StoryRepo.Create(story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *StoryService) GetStory(id uint) (*model.Story, error) {
	story, err := s.StoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStoryNotFound
		}
		return nil, err
	}
	return story, nil
}

func (s *StoryService) ListPublished(page, limit int, locationID *uint) ([]model.Story, int64, error) {
	stories, total, err := s.StoryRepo.ListPublished(page, limit, locationID)
	if err != nil {
		return nil, 0, err
	}
	s.attachAuthors(stories)
	return stories, total, nil
}

func (s *StoryService) ListMine(userID uint) ([]model.Story, error) {
	return s.StoryRepo.ListByUser(userID)
}

func (s *StoryService) ListPending(page, limit int) ([]model.Story, int64, error) {
	stories, total, err := s.StoryRepo.ListByStatus(model.StoryPending, page, limit)
	if err != nil {
		return nil, 0, err
	}
	s.attachAuthors(stories)
	return stories, total, nil
}

// Moderate publishes or rejects a pending story. Moderators only; the
// router enforces the role.
func (s *StoryService) Moderate(id uint, approve bool) (*model.Story, error) {
	story, err := s.GetStory(id)
	if err != nil {
		return nil, err
	}

	status := model.StoryRejected
	if approve {
		status = model.StoryPublished
	}
	if err := s.StoryRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	story.Status = status
	return story, nil
}

func (s *StoryService) DeleteStory(id uint, requesterID uint, requesterRole model.UserRole) error {
	story, err := s.GetStory(id)
	if err != nil {
		return err
	}
	if story.UserID != requesterID && requesterRole != model.Admin && requesterRole != model.Moderator {
		return util.ErrPermissionDenied
	}
	return s.StoryRepo.Delete(id)
}

// SuggestPolish asks the LLM for a cleaned-up draft of a story body.
// Failures degrade to returning the original text.
func (s *StoryService) SuggestPolish(ctx context.Context, body string) string {
	if s.AI == nil || !s.AI.Enabled() {
		return body
	}

	polished, err := s.AI.Complete(ctx,
		"You help residents polish short community stories. Keep the author's voice, fix grammar, stay under 200 words. Reply with the polished story only.",
		body)
	if err != nil {
		logger.Log.Warn("story polish failed", zap.Error(err))
		return body
	}
	return polished
}

func (s *StoryService) attachAuthors(stories []model.Story) {
	for i := range stories {
		user, err := s.UserRepo.FindByID(stories[i].UserID)
		if err != nil {
			continue
		}
		stories[i].Author = user.Name
	}
}
