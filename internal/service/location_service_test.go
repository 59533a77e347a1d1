package service

import (
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLocations(t *testing.T, db *gorm.DB) *LocationService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	achievements := NewAchievementService(badgeRepo, userRepo, nodeRepo, nil, testGameConfig())

	return NewLocationService(repository.NewLocationRepository(db), achievements)
}

func TestLocationHierarchy(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLocations(t, db)

	region, err := svc.Create(LocationInput{Name: "Greater Riverton", Level: model.LevelRegion})
	require.NoError(t, err)
	assert.Equal(t, "greater-riverton", region.Slug)

	district, err := svc.Create(LocationInput{Name: "Riverton North", Level: model.LevelDistrict, ParentID: &region.ID})
	require.NoError(t, err)

	hood, err := svc.Create(LocationInput{Name: "Old Mill", Level: model.LevelNeighbourhood, ParentID: &district.ID})
	require.NoError(t, err)

	children, err := svc.Children(region.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, district.ID, children[0].ID)

	path, err := svc.AncestorPath(hood.ID)
	require.NoError(t, err)
	require.Len(t, path, 3)
	assert.Equal(t, region.ID, path[0].ID)
	assert.Equal(t, district.ID, path[1].ID)
	assert.Equal(t, hood.ID, path[2].ID)
}

func TestLocationCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLocations(t, db)

	missing := uint(99999)
	_, err := svc.Create(LocationInput{Name: "Orphan", Level: model.LevelDistrict, ParentID: &missing})
	assert.ErrorIs(t, err, util.ErrLocationNotFound)

	_, err = svc.Create(LocationInput{Name: "Harbour View", Level: model.LevelNeighbourhood})
	require.NoError(t, err)

	// Same name slugifies to the same value and is rejected.
	_, err = svc.Create(LocationInput{Name: "Harbour View", Level: model.LevelNeighbourhood})
	assert.Error(t, err)
}

func TestLocationLeaderboard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLocations(t, db)

	location, err := svc.Create(LocationInput{Name: "Meadow Park", Level: model.LevelNeighbourhood})
	require.NoError(t, err)

	local := createTestUser(t, db, 80, 5)
	createTestUser(t, db, 300, 5)

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", local.ID).
		UpdateColumn("location_id", location.ID).Error)

	entries, err := svc.Leaderboard(location.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 80, entries[0].Insights)

	_, err = svc.Leaderboard(99999, 10)
	assert.ErrorIs(t, err, util.ErrLocationNotFound)
}
