package service

import (
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

type LocationService struct {
	LocationRepo *repository.LocationRepository
	Achievements *AchievementService
}

func NewLocationService(locationRepo *repository.LocationRepository, achievements *AchievementService) *LocationService {
	return &LocationService{
		LocationRepo: locationRepo,
		Achievements: achievements,
	}
}

type LocationInput struct {
	Name     string              `json:"name" binding:"required,max=150"`
	Level    model.LocationLevel `json:"level" binding:"required,oneof=region district neighbourhood"`
	ParentID *uint               `json:"parentId"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (s *LocationService) Create(input LocationInput) (*model.Location, error) {
	if input.ParentID != nil {
		if _, err := s.LocationRepo.FindByID(*input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrLocationNotFound
			}
			return nil, err
		}
	}

	slug := slugify(input.Name)
	if _, err := s.LocationRepo.FindBySlug(slug); err == nil {
		return nil, fmt.Errorf("location slug %s already exists", slug)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	location := &model.Location{
		Name:     input.Name,
		Slug:     slug,
		Level:    input.Level,
		ParentID: input.ParentID,
	}
	if err := s.LocationRepo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) Get(id uint) (*model.Location, error) {
	location, err := s.LocationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLocationNotFound
		}
		return nil, err
	}
	return location, nil
}

func (s *LocationService) List() ([]model.Location, error) {
	return s.LocationRepo.ListAll()
}

func (s *LocationService) Children(parentID uint) ([]model.Location, error) {
	return s.LocationRepo.Children(parentID)
}

// AncestorPath walks parent links from the location up to its root,
// returned root-first. The walk is bounded so a corrupted parent loop
// cannot hang a request.
func (s *LocationService) AncestorPath(id uint) ([]model.Location, error) {
	path := []model.Location{}
	currentID := &id

	for depth := 0; currentID != nil && depth < 10; depth++ {
		location, err := s.Get(*currentID)
		if err != nil {
			return nil, err
		}
		path = append([]model.Location{*location}, path...)
		currentID = location.ParentID
	}
	return path, nil
}

// Leaderboard scopes the insights ranking to one location.
func (s *LocationService) Leaderboard(id uint, limit int) ([]LeaderboardEntry, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	return s.Achievements.GetLeaderboard(limit, &id)
}
