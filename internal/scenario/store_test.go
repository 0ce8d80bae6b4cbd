package scenario_test

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/scenario"
	"github.com/Veraticus/metalcycle/internal/service"
	"github.com/Veraticus/metalcycle/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]service.ScenarioBackend {
	t.Helper()
	return map[string]service.ScenarioBackend{
		"memory": scenario.NewMemoryBackend(),
		"sqlite": testutil.SetupTestDB(t).Storage,
	}
}

func TestStore(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := scenario.NewStore(backend)

			record, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, model.DefaultScenario(), record.Input)
			assert.True(t, record.UpdatedAt.IsZero())

			input := model.ScenarioInput{RecycledPercent: 80, EnergySource: model.EnergyHydro, TransportDistanceKm: 40}
			ext := &model.ScenarioExtension{Material: model.Copper, Quantity: 500, Unit: model.UnitKg, EndOfLife: []string{"Recycling"}}
			saved, err := store.Save(ctx, input, ext)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now(), saved.UpdatedAt, time.Minute)

			loaded, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, input, loaded.Input)
			assert.Equal(t, ext, loaded.Extension)

			got, err := store.Input(ctx)
			require.NoError(t, err)
			assert.Equal(t, input, got)

			require.NoError(t, store.Reset(ctx))
			got, err = store.Input(ctx)
			require.NoError(t, err)
			assert.Equal(t, model.DefaultScenario(), got)
		})
	}
}

func TestStoreSaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := scenario.NewStore(scenario.NewMemoryBackend())

	_, err := store.Save(ctx, model.ScenarioInput{RecycledPercent: 101}, nil)
	require.ErrorIs(t, err, model.ErrInvalidScenario)

	_, err = store.Save(ctx, model.DefaultScenario(), &model.ScenarioExtension{Material: "tin", Unit: model.UnitKg})
	require.ErrorIs(t, err, model.ErrInvalidExtension)

	// Nothing was written.
	got, err := store.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultScenario(), got)
}

func TestMemoryBackendCopies(t *testing.T) {
	ctx := context.Background()
	backend := scenario.NewMemoryBackend()

	record := &model.ScenarioRecord{
		Input:     model.DefaultScenario(),
		Extension: &model.ScenarioExtension{Material: model.Aluminium, Unit: model.UnitKg, WasteStreams: []string{"Slag"}},
	}
	require.NoError(t, backend.SaveScenario(ctx, scenario.StateKey, record))

	record.Input.RecycledPercent = 99
	record.Extension.WasteStreams[0] = "Dross"

	loaded, err := backend.LoadScenario(ctx, scenario.StateKey)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, loaded.Input.RecycledPercent, 1e-9)
	assert.Equal(t, []string{"Slag"}, loaded.Extension.WasteStreams)

	loaded.Extension.WasteStreams[0] = "Tailings"
	again, err := backend.LoadScenario(ctx, scenario.StateKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"Slag"}, again.Extension.WasteStreams)
}
