package service

import (
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestIndicators(t *testing.T, db *gorm.DB) *IndicatorService {
	t.Helper()
	return NewIndicatorService(repository.NewIndicatorRepository(db))
}

func TestSunburstHierarchy(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIndicators(t, db)

	air, err := svc.Create(IndicatorInput{Code: "env.air", Name: "Air quality", Category: "environment"})
	require.NoError(t, err)
	pm25, err := svc.Create(IndicatorInput{Code: "env.air.pm25", Name: "PM2.5", Category: "environment", Value: 9, Weight: 2})
	require.NoError(t, err)
	no2, err := svc.Create(IndicatorInput{Code: "env.air.no2", Name: "NO2", Category: "environment", Value: 17})
	require.NoError(t, err)
	trust, err := svc.Create(IndicatorInput{Code: "soc.trust", Name: "Community trust", Category: "social", Value: 7})
	require.NoError(t, err)

	_, err = svc.Link(RelationshipInput{ParentID: air.ID, ChildID: pm25.ID, Type: model.RelationContains})
	require.NoError(t, err)
	_, err = svc.Link(RelationshipInput{ParentID: air.ID, ChildID: no2.ID, Type: model.RelationContains})
	require.NoError(t, err)

	tree, err := svc.Sunburst()
	require.NoError(t, err)
	require.Len(t, tree, 2)

	var env, soc *SunburstNode
	for i := range tree {
		switch tree[i].Name {
		case "environment":
			env = &tree[i]
		case "social":
			soc = &tree[i]
		}
	}
	require.NotNil(t, env)
	require.NotNil(t, soc)

	require.Len(t, env.Children, 1)
	airNode := env.Children[0]
	assert.Equal(t, "env.air", airNode.Code)
	require.Len(t, airNode.Children, 2)

	// Branch value is the weighted sum of its leaves: 9*2 + 17*1.
	assert.InDelta(t, 35.0, airNode.Value, 0.001)
	assert.InDelta(t, 35.0, env.Value, 0.001)

	require.Len(t, soc.Children, 1)
	assert.Equal(t, trust.Code, soc.Children[0].Code)
	assert.InDelta(t, 7.0, soc.Value, 0.001)
}

func TestSunburstSurvivesCycle(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIndicators(t, db)

	root, err := svc.Create(IndicatorInput{Code: "x.root", Name: "Root", Category: "x", Value: 1})
	require.NoError(t, err)
	a, err := svc.Create(IndicatorInput{Code: "x.a", Name: "A", Category: "x", Value: 1})
	require.NoError(t, err)
	b, err := svc.Create(IndicatorInput{Code: "x.b", Name: "B", Category: "x", Value: 2})
	require.NoError(t, err)

	_, err = svc.Link(RelationshipInput{ParentID: root.ID, ChildID: a.ID})
	require.NoError(t, err)
	_, err = svc.Link(RelationshipInput{ParentID: a.ID, ChildID: b.ID})
	require.NoError(t, err)
	_, err = svc.Link(RelationshipInput{ParentID: b.ID, ChildID: a.ID})
	require.NoError(t, err)

	// a and b reference each other; the build must still terminate.
	tree, err := svc.Sunburst()
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "x.root", tree[0].Children[0].Code)
}

func TestIndicatorCodeUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIndicators(t, db)

	_, err := svc.Create(IndicatorInput{Code: "env.noise", Name: "Noise", Category: "environment"})
	require.NoError(t, err)

	_, err = svc.Create(IndicatorInput{Code: "env.noise", Name: "Noise again", Category: "environment"})
	assert.Error(t, err)
}

func TestSelfLinkRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestIndicators(t, db)

	a, err := svc.Create(IndicatorInput{Code: "y.a", Name: "A", Category: "y"})
	require.NoError(t, err)

	_, err = svc.Link(RelationshipInput{ParentID: a.ID, ChildID: a.ID})
	assert.Error(t, err)
}
