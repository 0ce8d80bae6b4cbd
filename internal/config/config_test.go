package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "/home/tester/.local/share/metalcycle/metalcycle.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, 15*time.Minute, cfg.Estimator.CacheTTL)
	assert.Equal(t, []model.Material{model.Aluminium, model.Copper}, cfg.Ingest.Materials)
	assert.Equal(t, model.DefaultScenario(), cfg.Scenario)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("METALCYCLE_DATABASE_PATH", "/tmp/lca.db")
	t.Setenv("METALCYCLE_SCENARIO_ENERGY_SOURCE", "wind")
	t.Setenv("METALCYCLE_SCENARIO_RECYCLED_PERCENT", "65")
	t.Setenv("METALCYCLE_ESTIMATOR_CACHE_TTL", "90s")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lca.db", cfg.Database.Path)
	assert.Equal(t, model.EnergyWind, cfg.Scenario.EnergySource)
	assert.InDelta(t, 65.0, cfg.Scenario.RecycledPercent, 1e-9)
	assert.Equal(t, 90*time.Second, cfg.Estimator.CacheTTL)
}

func TestLoadMaterialsFromEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []model.Material
	}{
		{name: "comma separated", value: "aluminium,copper", want: []model.Material{model.Aluminium, model.Copper}},
		{name: "multi-word material", value: "aluminium, rare earths", want: []model.Material{model.Aluminium, model.RareEarths}},
		{name: "single", value: "nickel", want: []model.Material{model.Nickel}},
		{name: "trailing comma", value: "lithium,", want: []model.Material{model.Lithium}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("METALCYCLE_INGEST_MATERIALS", tt.value)

			cfg, err := Load(newViper(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Ingest.Materials)
		})
	}

	t.Run("unknown material", func(t *testing.T) {
		t.Setenv("METALCYCLE_INGEST_MATERIALS", "aluminium,gold")
		_, err := Load(newViper(t))
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `database:
  path: /var/lib/metalcycle/data.db
output:
  format: JSON
ingest:
  materials: [aluminium, copper, nickel]
scenario:
  energy_source: Natural Gas
  transport_distance_km: 2500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/metalcycle/data.db", cfg.Database.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, []model.Material{model.Aluminium, model.Copper, model.Nickel}, cfg.Ingest.Materials)
	assert.Equal(t, model.EnergyNaturalGas, cfg.Scenario.EnergySource)
	assert.InDelta(t, 2500.0, cfg.Scenario.TransportDistanceKm, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "bad level", key: "logging.level", value: "loud"},
		{name: "bad material", key: "ingest.materials", value: []string{"gold"}},
		{name: "bad scenario", key: "scenario.recycled_percent", value: 150},
		{name: "negative ttl", key: "estimator.cache_ttl", value: "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}

	t.Run("empty database path", func(t *testing.T) {
		v := newViper(t)
		v.Set("database.path", "")
		_, err := Load(v)
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})
}

func TestLoadUnknownEnergySourceFallsBack(t *testing.T) {
	v := newViper(t)
	v.Set("scenario.energy_source", "geothermal")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, model.EnergyOther, cfg.Scenario.EnergySource)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("METALCYCLE_OUTPUT_FORMAT=yaml\n"), 0o600))
	t.Setenv("METALCYCLE_OUTPUT_FORMAT", "")
	require.NoError(t, os.Unsetenv("METALCYCLE_OUTPUT_FORMAT"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	cfg, err := Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("LCA_DIR", "/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, ":memory:", ExpandPath(":memory:"))
	assert.Equal(t, "/home/tester", ExpandPath("~"))
	assert.Equal(t, "/home/tester/db.sqlite", ExpandPath("~/db.sqlite"))
	assert.Equal(t, "/data/runs.db", ExpandPath("$LCA_DIR/runs.db"))
}
