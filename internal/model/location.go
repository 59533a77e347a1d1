package model

type LocationLevel string

const (
	LevelRegion        LocationLevel = "region"
	LevelDistrict      LocationLevel = "district"
	LevelNeighbourhood LocationLevel = "neighbourhood"
)

// Location is a node in the place hierarchy (region > district >
// neighbourhood). ParentID is nil for roots.
type Location struct {
	BaseModel
	Name     string        `gorm:"size:150;not null" json:"name"`
	Slug     string        `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Level    LocationLevel `gorm:"size:20;not null" json:"level"`
	ParentID *uint         `gorm:"index" json:"parentId"`
}

func (Location) TableName() string {
	return "locations"
}
