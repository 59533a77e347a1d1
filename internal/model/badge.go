package model

import "time"

// Badge rows are append-only. The unique index on (user_id,
// badge_type) is what makes awarding idempotent under concurrent
// evaluation; a duplicate insert is treated as "already held".
type Badge struct {
	BaseModel
	UserID    uint      `gorm:"uniqueIndex:idx_user_badge;not null" json:"userId"`
	BadgeType string    `gorm:"size:50;uniqueIndex:idx_user_badge;not null" json:"badgeType"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Icon      string    `gorm:"size:255" json:"icon"`
	AwardedAt time.Time `gorm:"not null" json:"awardedAt"`
}

func (Badge) TableName() string {
	return "badges"
}
