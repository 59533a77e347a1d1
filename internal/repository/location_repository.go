package repository

import (
	"ecopulse_backend/internal/model"

	"gorm.io/gorm"
)

type LocationRepository struct {
	DB *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{DB: db}
}

func (r *LocationRepository) Create(location *model.Location) error {
	return r.DB.Create(location).Error
}

func (r *LocationRepository) FindByID(id uint) (*model.Location, error) {
	var location model.Location
	err := r.DB.First(&location, id).Error
	return &location, err
}

func (r *LocationRepository) FindBySlug(slug string) (*model.Location, error) {
	var location model.Location
	err := r.DB.Where("slug = ?", slug).First(&location).Error
	return &location, err
}

func (r *LocationRepository) ListAll() ([]model.Location, error) {
	var locations []model.Location
	err := r.DB.Order("level ASC, name ASC").Find(&locations).Error
	return locations, err
}

func (r *LocationRepository) Children(parentID uint) ([]model.Location, error) {
	var locations []model.Location
	err := r.DB.Where("parent_id = ?", parentID).Order("name ASC").Find(&locations).Error
	return locations, err
}
