package repository

import (
	"ecopulse_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_seen", time.Now()).
		Error
}

// AddInsights credits points with an atomic in-database increment, so
// concurrent completions never lose updates.
func (r *UserRepository) AddInsights(db *gorm.DB, userID uint, amount int) error {
	return db.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("insights", gorm.Expr("insights + ?", amount)).
		Error
}

// SpendInsights debits atomically and only when the balance covers the
// cost. Returns gorm.ErrRecordNotFound-like semantics via affected=0.
func (r *UserRepository) SpendInsights(db *gorm.DB, userID uint, amount int) (bool, error) {
	res := db.Model(&model.User{}).
		Where("id = ? AND insights >= ?", userID, amount).
		UpdateColumn("insights", gorm.Expr("insights - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SpendHeart decrements hearts only while positive; affected=0 means
// the user was already out of hearts.
func (r *UserRepository) SpendHeart(userID uint) (bool, error) {
	res := r.DB.Model(&model.User{}).
		Where("id = ? AND hearts > 0", userID).
		UpdateColumn("hearts", gorm.Expr("hearts - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepository) FindTopByInsights(limit int, locationID *uint) ([]model.User, error) {
	var users []model.User
	query := r.DB.Where("disabled = ?", false).Order("insights DESC").Limit(limit)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}
	err := query.Find(&users).Error
	return users, err
}

func (r *UserRepository) GetBadges(userID uint) ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Where("user_id = ?", userID).Order("awarded_at ASC").Find(&badges).Error
	return badges, err
}
