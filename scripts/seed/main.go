// Seeds a development database with locations, indicators and a demo
// admin account. Run after migrations:
//
//	go run ./scripts/seed
package main

import (
	"ecopulse_backend/internal/config"
	"ecopulse_backend/internal/model"
	"ecopulse_backend/pkg/database"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seedLocations(db)
	seedIndicators(db)
	seedAdmin(db)

	log.Println("Seed finished")
}

func seedLocations(db *gorm.DB) {
	var count int64
	db.Model(&model.Location{}).Count(&count)
	if count > 0 {
		return
	}

	region := &model.Location{Name: "Greater Riverton", Slug: "greater-riverton", Level: model.LevelRegion}
	db.Create(region)

	north := &model.Location{Name: "Riverton North", Slug: "riverton-north", Level: model.LevelDistrict, ParentID: &region.ID}
	south := &model.Location{Name: "Riverton South", Slug: "riverton-south", Level: model.LevelDistrict, ParentID: &region.ID}
	db.Create(north)
	db.Create(south)

	neighbourhoods := []model.Location{
		{Name: "Old Mill", Slug: "old-mill", Level: model.LevelNeighbourhood, ParentID: &north.ID},
		{Name: "Harbour View", Slug: "harbour-view", Level: model.LevelNeighbourhood, ParentID: &north.ID},
		{Name: "Meadow Park", Slug: "meadow-park", Level: model.LevelNeighbourhood, ParentID: &south.ID},
	}
	for i := range neighbourhoods {
		db.Create(&neighbourhoods[i])
	}

	log.Println("Seeded locations")
}

func seedIndicators(db *gorm.DB) {
	var count int64
	db.Model(&model.Indicator{}).Count(&count)
	if count > 0 {
		return
	}

	indicators := []model.Indicator{
		{Code: "env.air", Name: "Air quality", Category: "environment", Unit: "AQI", Value: 42, Trend: "up", Weight: 2},
		{Code: "env.air.pm25", Name: "PM2.5", Category: "environment", Unit: "µg/m³", Value: 9.1, Trend: "flat"},
		{Code: "env.air.no2", Name: "NO₂", Category: "environment", Unit: "µg/m³", Value: 17.4, Trend: "down"},
		{Code: "env.green", Name: "Green space per capita", Category: "environment", Unit: "m²", Value: 21.5, Trend: "up"},
		{Code: "soc.trust", Name: "Community trust", Category: "social", Unit: "index", Value: 6.8, Trend: "flat", Weight: 2},
		{Code: "soc.events", Name: "Local events per month", Category: "social", Unit: "count", Value: 14, Trend: "up"},
		{Code: "eco.shops", Name: "Independent shops", Category: "economy", Unit: "count", Value: 57, Trend: "down"},
	}
	for i := range indicators {
		db.Create(&indicators[i])
	}

	byCode := map[string]uint{}
	for _, ind := range indicators {
		byCode[ind.Code] = ind.ID
	}

	rels := []model.IndicatorRelationship{
		{ParentID: byCode["env.air"], ChildID: byCode["env.air.pm25"], Type: model.RelationContains},
		{ParentID: byCode["env.air"], ChildID: byCode["env.air.no2"], Type: model.RelationContains},
		{ParentID: byCode["env.green"], ChildID: byCode["soc.trust"], Type: model.RelationInfluences, Strength: 0.4},
	}
	for i := range rels {
		db.Create(&rels[i])
	}

	log.Println("Seeded indicators")
}

func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-change-me"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.User{
		Name:     "Admin",
		Email:    "admin@ecopulse.local",
		Password: string(hashed),
		Role:     model.Admin,
		Hearts:   5,
	}
	db.Create(admin)

	log.Println("Seeded admin account (admin@ecopulse.local / admin-change-me)")
}
