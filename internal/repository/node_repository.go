package repository

import (
	"ecopulse_backend/internal/model"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NodeRepository is the data-access boundary the progression service
// composes. No business rules live here.
type NodeRepository struct {
	DB *gorm.DB
}

func NewNodeRepository(db *gorm.DB) *NodeRepository {
	return &NodeRepository{DB: db}
}

func (r *NodeRepository) FindNodeByID(db *gorm.DB, id uint) (*model.LearningNode, error) {
	var node model.LearningNode
	err := db.First(&node, id).Error
	return &node, err
}

func (r *NodeRepository) ListNodes() ([]model.LearningNode, error) {
	var nodes []model.LearningNode
	err := r.DB.Order("sequence_day ASC").Find(&nodes).Error
	return nodes, err
}

func (r *NodeRepository) ListBySequenceRange(startDay, endDay int) ([]model.LearningNode, error) {
	var nodes []model.LearningNode
	err := r.DB.Where("sequence_day BETWEEN ? AND ?", startDay, endDay).
		Order("sequence_day ASC").
		Find(&nodes).Error
	return nodes, err
}

// NextAfter returns the node immediately following the given sequence
// day, or gorm.ErrRecordNotFound at the end of the path.
func (r *NodeRepository) NextAfter(db *gorm.DB, sequenceDay int) (*model.LearningNode, error) {
	var node model.LearningNode
	err := db.Where("sequence_day > ?", sequenceDay).
		Order("sequence_day ASC").
		First(&node).Error
	return &node, err
}

func (r *NodeRepository) GetProgress(db *gorm.DB, userID, nodeID uint) (*model.NodeProgress, error) {
	var progress model.NodeProgress
	err := db.Where("user_id = ? AND node_id = ?", userID, nodeID).First(&progress).Error
	return &progress, err
}

func (r *NodeRepository) SetStatus(db *gorm.DB, userID, nodeID uint, status model.NodeStatus) error {
	return db.Model(&model.NodeProgress{}).
		Where("user_id = ? AND node_id = ?", userID, nodeID).
		UpdateColumn("status", status).
		Error
}

// UpsertStatus creates the progress row when the user has never
// touched the node, otherwise just moves its status.
func (r *NodeRepository) UpsertStatus(db *gorm.DB, userID, nodeID uint, status model.NodeStatus) error {
	var progress model.NodeProgress
	err := db.Where("user_id = ? AND node_id = ?", userID, nodeID).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&model.NodeProgress{
			UserID: userID,
			NodeID: nodeID,
			Status: status,
		}).Error
	}
	if err != nil {
		return err
	}
	return db.Model(&progress).UpdateColumn("status", status).Error
}

func (r *NodeRepository) CreateProgress(db *gorm.DB, progress *model.NodeProgress) error {
	return db.Create(progress).Error
}

// MarkCompleted finalizes a node in one update: terminal status,
// reward, timestamp and the verbatim response payload.
func (r *NodeRepository) MarkCompleted(db *gorm.DB, userID, nodeID uint, insightsEarned int, completedAt time.Time, response datatypes.JSON) error {
	return db.Model(&model.NodeProgress{}).
		Where("user_id = ? AND node_id = ?", userID, nodeID).
		Updates(map[string]interface{}{
			"status":          model.NodeCompleted,
			"insights_earned": insightsEarned,
			"completed_at":    completedAt,
			"response":        response,
		}).Error
}

func (r *NodeRepository) CountCompleted(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&model.NodeProgress{}).
		Where("user_id = ? AND status = ?", userID, model.NodeCompleted).
		Count(&count).Error
	return count, err
}

func (r *NodeRepository) ListProgress(userID uint) ([]model.NodeProgress, error) {
	var progress []model.NodeProgress
	err := r.DB.Where("user_id = ?", userID).Find(&progress).Error
	return progress, err
}
