package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the application reads.
const EnvPrefix = "METALCYCLE"

// DefaultDatabasePath is used when database.path is not configured.
const DefaultDatabasePath = "$HOME/.local/share/metalcycle/metalcycle.db"

// Config is the resolved application configuration.
type Config struct {
	Database  DatabaseConfig
	Logging   LoggingConfig
	Output    OutputConfig
	Ingest    IngestConfig
	Estimator EstimatorConfig
	Scenario  model.ScenarioInput
}

// DatabaseConfig locates the sqlite database.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format string
}

// IngestConfig restricts which materials uploads may contain.
type IngestConfig struct {
	Materials []model.Material
}

// EstimatorConfig tunes the prediction cache.
type EstimatorConfig struct {
	CacheTTL     time.Duration
	DisableCache bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	def := model.DefaultScenario()

	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", "table")
	v.SetDefault("ingest.materials", []string{string(model.Aluminium), string(model.Copper)})
	v.SetDefault("estimator.cache_ttl", 15*time.Minute)
	v.SetDefault("estimator.disable_cache", false)
	v.SetDefault("scenario.recycled_percent", def.RecycledPercent)
	v.SetDefault("scenario.energy_source", def.EnergySource.String())
	v.SetDefault("scenario.transport_distance_km", def.TransportDistanceKm)
}

// BindEnv makes v read METALCYCLE_ prefixed variables, with dots in keys
// mapped to underscores (database.path -> METALCYCLE_DATABASE_PATH).
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from .env files without overriding ones that
// are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(ExpandPath(path)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Debug("Loaded environment file", "path", path)
	}
	return nil
}

// materialNames reads ingest.materials. A single string, as environment
// variables provide, is a comma-separated list.
func materialNames(v *viper.Viper) []string {
	raw, ok := v.Get("ingest.materials").(string)
	if !ok {
		return v.GetStringSlice("ingest.materials")
	}

	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Load resolves the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString("database.path")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Output: OutputConfig{
			Format: strings.ToLower(v.GetString("output.format")),
		},
		Estimator: EstimatorConfig{
			CacheTTL:     v.GetDuration("estimator.cache_ttl"),
			DisableCache: v.GetBool("estimator.disable_cache"),
		},
	}

	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if _, err := common.ParseLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	if cfg.Estimator.CacheTTL < 0 {
		return nil, fmt.Errorf("%w: estimator.cache_ttl must not be negative", common.ErrInvalidConfig)
	}

	for _, name := range materialNames(v) {
		m, err := model.ParseMaterial(name)
		if err != nil {
			return nil, fmt.Errorf("%w: ingest.materials: %w", common.ErrInvalidConfig, err)
		}
		cfg.Ingest.Materials = append(cfg.Ingest.Materials, m)
	}

	src, err := model.ParseEnergySource(v.GetString("scenario.energy_source"))
	if err != nil {
		slog.Warn("Unknown default energy source, using Other",
			"energy_source", v.GetString("scenario.energy_source"))
	}
	cfg.Scenario = model.ScenarioInput{
		RecycledPercent:     v.GetFloat64("scenario.recycled_percent"),
		EnergySource:        src,
		TransportDistanceKm: v.GetFloat64("scenario.transport_distance_km"),
	}
	if err := cfg.Scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%w: scenario defaults: %w", common.ErrInvalidConfig, err)
	}

	return cfg, nil
}
