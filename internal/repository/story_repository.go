package repository

import (
	"ecopulse_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StoryRepository struct {
	DB *gorm.DB
}

func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{DB: db}
}

func (r *StoryRepository) Create(story *model.Story) error {
	return r.DB.Create(story).Error
}

func (r *StoryRepository) FindByID(id uint) (*model.Story, error) {
	var story model.Story
	err := r.DB.First(&story, id).Error
	return &story, err
}

func (r *StoryRepository) ListPublished(page, limit int, locationID *uint) ([]model.Story, int64, error) {
	var stories []model.Story
	var total int64

	query := r.DB.Model(&model.Story{}).Where("status = ?", model.StoryPublished)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&stories).Error
	return stories, total, err
}

func (r *StoryRepository) ListByUser(userID uint) ([]model.Story, error) {
	var stories []model.Story
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&stories).Error
	return stories, err
}

func (r *StoryRepository) ListByStatus(status model.StoryStatus, page, limit int) ([]model.Story, int64, error) {
	var stories []model.Story
	var total int64

	query := r.DB.Model(&model.Story{}).Where("status = ?", status)
	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&stories).Error
	return stories, total, err
}

// CountByUserSince backs the daily share limit.
func (r *StoryRepository) CountByUserSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Story{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *StoryRepository) UpdateStatus(id uint, status model.StoryStatus) error {
	return r.DB.Model(&model.Story{}).Where("id = ?", id).UpdateColumn("status", status).Error
}

func (r *StoryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Story{}, id).Error
}
