package model

import (
	"time"

	"gorm.io/datatypes"
)

type NodeType string

const (
	DomainDrill       NodeType = "domain_drill"
	ConnectionExplore NodeType = "connection_explore"
	LocalMeasure      NodeType = "local_measure"
	KnowledgeReview   NodeType = "knowledge_review"
)

// LearningNode is reference data: one survey-style unit in the fixed
// path. SequenceDay defines the linear unlock order.
type LearningNode struct {
	BaseModel
	SequenceDay      int      `gorm:"uniqueIndex;not null" json:"sequenceDay"`
	Type             NodeType `gorm:"size:30;not null" json:"type"`
	Title            string   `gorm:"size:255;not null" json:"title"`
	Description      string   `gorm:"type:text" json:"description"`
	EstimatedMinutes int      `gorm:"default:5" json:"estimatedMinutes"`
	IndicatorID      *uint    `gorm:"index" json:"indicatorId"`
}

func (LearningNode) TableName() string {
	return "learning_nodes"
}

type NodeStatus string

const (
	NodeLocked    NodeStatus = "locked"
	NodeAvailable NodeStatus = "available"
	NodeCurrent   NodeStatus = "current"
	NodeCompleted NodeStatus = "completed"
)

// NodeProgress tracks one user's state on one node. Status only moves
// forward: locked -> available -> current -> completed.
type NodeProgress struct {
	BaseModel
	UserID         uint           `gorm:"uniqueIndex:idx_user_node;not null" json:"userId"`
	NodeID         uint           `gorm:"uniqueIndex:idx_user_node;not null" json:"nodeId"`
	Status         NodeStatus     `gorm:"size:20;default:'locked'" json:"status"`
	InsightsEarned int            `gorm:"default:0" json:"insightsEarned"`
	CompletedAt    *time.Time     `json:"completedAt"`
	Response       datatypes.JSON `json:"response"`
}

func (NodeProgress) TableName() string {
	return "node_progress"
}
