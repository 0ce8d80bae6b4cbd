package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()

	version, err := db.Storage.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.ExpectedSchemaVersion, version)

	input, err := db.Scenarios.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultScenario(), input)
}

func TestSetupTestDBWithOptions(t *testing.T) {
	ctx := context.Background()
	seeded := model.ScenarioInput{RecycledPercent: 60, EnergySource: model.EnergyWind, TransportDistanceKm: 10}
	dataset := &model.AggregatedDataset{
		RunID:       "seed-run",
		Source:      "seed.csv",
		TotalRows:   2,
		ProcessedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Materials: map[model.Material]map[model.Stage]model.AggregatedRecord{
			model.Aluminium: {model.StageMining: {CO2: 2.5, Energy: 15, Water: 8, Count: 2}},
		},
	}

	customRan := false
	db := SetupTestDBWithOptions(t, TestDBOptions{
		Scenario: &seeded,
		Datasets: []*model.AggregatedDataset{dataset},
		CustomSetup: func(_ context.Context, s *storage.SQLiteStorage) error {
			customRan = s != nil
			return nil
		},
	})

	input, err := db.Scenarios.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, seeded, input)

	latest := db.MustLatestDataset()
	assert.Equal(t, "seed-run", latest.RunID)
	assert.Equal(t, "seed.csv", latest.Source)
	rec, ok := latest.Record(model.Aluminium, model.StageMining)
	require.True(t, ok)
	assert.Equal(t, 2, rec.Count)

	assert.True(t, customRan)
}

func TestSetupTestDBSkipMigrations(t *testing.T) {
	db := SetupTestDBWithOptions(t, TestDBOptions{SkipMigrations: true})

	version, err := db.Storage.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Zero(t, version)
}
