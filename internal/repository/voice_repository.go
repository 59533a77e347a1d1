package repository

import (
	"ecopulse_backend/internal/model"

	"gorm.io/gorm"
)

type VoiceRepository struct {
	DB *gorm.DB
}

func NewVoiceRepository(db *gorm.DB) *VoiceRepository {
	return &VoiceRepository{DB: db}
}

func (r *VoiceRepository) CreateSurvey(survey *model.VoiceSurvey) error {
	return r.DB.Create(survey).Error
}

func (r *VoiceRepository) FindSurveyByID(id uint) (*model.VoiceSurvey, error) {
	var survey model.VoiceSurvey
	err := r.DB.First(&survey, id).Error
	return &survey, err
}

func (r *VoiceRepository) ListSurveys(activeOnly bool) ([]model.VoiceSurvey, error) {
	var surveys []model.VoiceSurvey
	query := r.DB.Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&surveys).Error
	return surveys, err
}

func (r *VoiceRepository) CreateCall(call *model.VoiceCall) error {
	return r.DB.Create(call).Error
}

func (r *VoiceRepository) FindCallBySID(callSID string) (*model.VoiceCall, error) {
	var call model.VoiceCall
	err := r.DB.Where("call_sid = ?", callSID).First(&call).Error
	return &call, err
}

func (r *VoiceRepository) UpdateCall(call *model.VoiceCall) error {
	return r.DB.Save(call).Error
}

func (r *VoiceRepository) ListCallsBySurvey(surveyID uint) ([]model.VoiceCall, error) {
	var calls []model.VoiceCall
	err := r.DB.Where("survey_id = ?", surveyID).Order("created_at DESC").Find(&calls).Error
	return calls, err
}
