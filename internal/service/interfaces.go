// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/metalcycle/internal/model"
)

// Dataset is a read-only source of per-kilogram impact values.
// A miss is reported through the boolean, never as an error.
type Dataset interface {
	Lookup(material model.Material, stage model.Stage) (model.MaterialStageMetrics, bool)
	Value(material model.Material, stage model.Stage, metric model.Metric) (float64, bool)
}

// ScenarioBackend persists scenario records under string keys.
// Saving an existing key replaces it.
type ScenarioBackend interface {
	LoadScenario(ctx context.Context, key string) (*model.ScenarioRecord, error)
	SaveScenario(ctx context.Context, key string, record *model.ScenarioRecord) error
	DeleteScenario(ctx context.Context, key string) error
}

// DatasetStore persists aggregated ingest runs.
type DatasetStore interface {
	SaveDataset(ctx context.Context, dataset *model.AggregatedDataset) error
	GetDataset(ctx context.Context, runID string) (*model.AggregatedDataset, error)
	LatestDataset(ctx context.Context) (*model.AggregatedDataset, error)
	ListDatasets(ctx context.Context) ([]DatasetSummary, error)
	DeleteDataset(ctx context.Context, runID string) error
}

// DatasetSummary describes a saved ingest run without its records.
type DatasetSummary struct {
	ProcessedAt time.Time
	RunID       string
	Source      string
	TotalRows   int
	Groups      int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	ScenarioBackend
	DatasetStore

	Migrate(ctx context.Context) error
	Close() error
}
