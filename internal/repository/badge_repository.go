package repository

import (
	"ecopulse_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindByUserID(userID uint) ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Where("user_id = ?", userID).Order("awarded_at ASC").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) Has(userID uint, badgeType string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Badge{}).
		Where("user_id = ? AND badge_type = ?", userID, badgeType).
		Count(&count).Error
	return count > 0, err
}

// Award inserts the badge row. The (user_id, badge_type) unique index
// closes the check-then-insert race: a duplicate-key failure means the
// badge is already held and is reported as alreadyHeld, not an error.
func (r *BadgeRepository) Award(badge *model.Badge) (alreadyHeld bool, err error) {
	err = r.DB.Create(badge).Error
	if err != nil && isDuplicateKey(err) {
		return true, nil
	}
	return false, err
}

func isDuplicateKey(err error) bool {
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
