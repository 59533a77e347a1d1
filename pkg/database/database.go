package database

import (
	"ecopulse_backend/internal/config"
	"ecopulse_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
		cfg.SSLMode,
		cfg.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate runs schema migration and idempotent seed data. Shared with
// the seeding script and the service test helpers.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Location{},
		&model.LearningNode{},
		&model.NodeProgress{},
		&model.Badge{},
		&model.Indicator{},
		&model.IndicatorRelationship{},
		&model.Story{},
		&model.Voucher{},
		&model.VoucherRedemption{},
		&model.VoiceSurvey{},
		&model.VoiceCall{},
	)
	if err != nil {
		return err
	}

	seedLearningPath(db)
	return nil
}

// Default two-week starter path so a fresh deployment is playable
// before an admin curates the real one.
func seedLearningPath(db *gorm.DB) {
	var count int64
	db.Model(&model.LearningNode{}).Count(&count)
	if count > 0 {
		return
	}

	titles := []struct {
		title string
		typ   model.NodeType
	}{
		{"What makes a neighbourhood thrive?", model.DomainDrill},
		{"Air quality where you live", model.LocalMeasure},
		{"How green space shapes wellbeing", model.ConnectionExplore},
		{"Water and waterways", model.DomainDrill},
		{"Noise, light and sleep", model.LocalMeasure},
		{"Community ties and trust", model.ConnectionExplore},
		{"Week one review", model.KnowledgeReview},
		{"Food access in your area", model.DomainDrill},
		{"Transport and movement", model.LocalMeasure},
		{"Housing and warmth", model.ConnectionExplore},
		{"Local economy basics", model.DomainDrill},
		{"Safety and belonging", model.LocalMeasure},
		{"Culture and play", model.ConnectionExplore},
		{"Week two review", model.KnowledgeReview},
	}

	for i, n := range titles {
		node := &model.LearningNode{
			SequenceDay:      i + 1,
			Type:             n.typ,
			Title:            n.title,
			EstimatedMinutes: 5,
		}
		db.Create(node)
	}
}
