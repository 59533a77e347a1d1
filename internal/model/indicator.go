package model

// Indicator is one ecosystem wellbeing measure (e.g. air quality,
// green space per capita). Category groups indicators into the top
// ring of the sunburst view.
type Indicator struct {
	BaseModel
	Code        string  `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string  `gorm:"size:150;not null" json:"name"`
	Category    string  `gorm:"size:50;index;not null" json:"category"`
	Description string  `gorm:"type:text" json:"description"`
	Unit        string  `gorm:"size:30" json:"unit"`
	Value       float64 `gorm:"default:0" json:"value"`
	Trend       string  `gorm:"size:20" json:"trend"`
	Weight      float64 `gorm:"default:1" json:"weight"`
	LocationID  *uint   `gorm:"index" json:"locationId"`
}

func (Indicator) TableName() string {
	return "indicators"
}

type RelationType string

const (
	RelationContains   RelationType = "contains"
	RelationInfluences RelationType = "influences"
)

// IndicatorRelationship is a directed edge between indicators.
// "contains" edges form the hierarchy used by the sunburst layout;
// "influences" edges are rendered as cross-links.
type IndicatorRelationship struct {
	BaseModel
	ParentID uint         `gorm:"uniqueIndex:idx_parent_child;not null" json:"parentId"`
	ChildID  uint         `gorm:"uniqueIndex:idx_parent_child;not null" json:"childId"`
	Type     RelationType `gorm:"size:20;default:'contains'" json:"type"`
	Strength float64      `gorm:"default:1" json:"strength"`
}

func (IndicatorRelationship) TableName() string {
	return "indicator_relationships"
}
