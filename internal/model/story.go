package model

type StoryStatus string

const (
	StoryPending   StoryStatus = "pending"
	StoryPublished StoryStatus = "published"
	StoryRejected  StoryStatus = "rejected"
)

// Story is a resident-shared piece about their local ecosystem.
// swagger:model Story
type Story struct {
	BaseModel
	UserID     uint        `gorm:"index;not null" json:"userId"`
	Title      string      `gorm:"size:255;not null" json:"title"`
	Body       string      `gorm:"type:text" json:"body"`
	PhotoURL   string      `gorm:"size:255" json:"photoUrl"`
	LocationID *uint       `gorm:"index" json:"locationId"`
	Status     StoryStatus `gorm:"size:20;default:'pending'" json:"status"`
	Author     string      `gorm:"-" json:"author,omitempty"`
}

func (Story) TableName() string {
	return "stories"
}
