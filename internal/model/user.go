package model

import (
	"time"
)

type UserRole string

const (
	Resident  UserRole = "resident"
	Moderator UserRole = "moderator"
	Admin     UserRole = "admin"
)

// User is a resident profile. Insights, Hearts, Streak and
// LastSessionAt are owned exclusively by the progression service;
// nothing else writes them.
// swagger:model User
type User struct {
	BaseModel
	Name                   string     `gorm:"size:100;not null" json:"name"`
	Email                  string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password               string     `gorm:"size:100;not null" json:"-"`
	Role                   UserRole   `gorm:"size:20;default:'resident'" json:"role"`
	Insights               int        `gorm:"default:0" json:"insights"`
	Hearts                 int        `gorm:"default:5" json:"hearts"`
	Streak                 int        `gorm:"default:0" json:"streak"`
	LastSessionAt          *time.Time `json:"lastSessionAt"`
	HasCompletedOnboarding bool       `gorm:"default:false" json:"hasCompletedOnboarding"`
	LocationID             *uint      `gorm:"index" json:"locationId"`
	Avatar                 string     `gorm:"size:255" json:"avatar"`
	Disabled               bool       `gorm:"default:false" json:"disabled"`
	LastSeen               time.Time  `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
