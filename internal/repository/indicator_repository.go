package repository

import (
	"ecopulse_backend/internal/model"

	"gorm.io/gorm"
)

type IndicatorRepository struct {
	DB *gorm.DB
}

func NewIndicatorRepository(db *gorm.DB) *IndicatorRepository {
	return &IndicatorRepository{DB: db}
}

func (r *IndicatorRepository) Create(indicator *model.Indicator) error {
	return r.DB.Create(indicator).Error
}

func (r *IndicatorRepository) FindByID(id uint) (*model.Indicator, error) {
	var indicator model.Indicator
	err := r.DB.First(&indicator, id).Error
	return &indicator, err
}

func (r *IndicatorRepository) FindByCode(code string) (*model.Indicator, error) {
	var indicator model.Indicator
	err := r.DB.Where("code = ?", code).First(&indicator).Error
	return &indicator, err
}

func (r *IndicatorRepository) List(category string) ([]model.Indicator, error) {
	var indicators []model.Indicator
	query := r.DB.Order("category ASC, name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&indicators).Error
	return indicators, err
}

func (r *IndicatorRepository) Update(indicator *model.Indicator) error {
	return r.DB.Save(indicator).Error
}

func (r *IndicatorRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Indicator{}, id).Error
}

func (r *IndicatorRepository) CreateRelationship(rel *model.IndicatorRelationship) error {
	return r.DB.Create(rel).Error
}

func (r *IndicatorRepository) ListRelationships(relType model.RelationType) ([]model.IndicatorRelationship, error) {
	var rels []model.IndicatorRelationship
	query := r.DB.Order("parent_id ASC")
	if relType != "" {
		query = query.Where("type = ?", relType)
	}
	err := query.Find(&rels).Error
	return rels, err
}

func (r *IndicatorRepository) DeleteRelationship(id uint) error {
	return r.DB.Delete(&model.IndicatorRelationship{}, id).Error
}
