package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/google/uuid"
)

// ProgressFunc is called after each row is validated.
type ProgressFunc func(done, total int)

// Config holds configuration options for the ingestor.
type Config struct {
	Progress ProgressFunc
	Schema   Schema
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Schema: DefaultSchema(),
	}
}

// Ingestor runs the detect, read, parse, validate and aggregate pipeline.
type Ingestor struct {
	parser   *Parser
	progress ProgressFunc
	now      func() time.Time
	schema   Schema
}

// NewIngestor creates an ingestor with the default schema.
func NewIngestor() *Ingestor {
	return NewIngestorWithConfig(DefaultConfig())
}

// NewIngestorWithConfig creates an ingestor with custom configuration.
func NewIngestorWithConfig(config Config) *Ingestor {
	if len(config.Schema.Materials) == 0 && len(config.Schema.Stages) == 0 {
		config.Schema = DefaultSchema()
	}
	return &Ingestor{
		parser:   NewParser(),
		schema:   config.Schema,
		progress: config.Progress,
		now:      time.Now,
	}
}

// IngestFile opens and ingests the file at path.
func (i *Ingestor) IngestFile(ctx context.Context, path string) (*model.AggregatedDataset, error) {
	// Reject unsupported files before touching the filesystem.
	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- user-specified upload path
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close upload", "path", path, "error", cerr)
		}
	}()

	return i.Ingest(ctx, filepath.Base(path), f)
}

// Ingest processes an upload named name. Any invalid row fails the whole
// upload with a *ValidationError; nothing is aggregated in that case.
func (i *Ingestor) Ingest(ctx context.Context, name string, r io.Reader) (*model.AggregatedDataset, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := i.parser.Parse(ctx, bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}

	if err := i.schema.validate(table, i.progress); err != nil {
		slog.Info("Upload failed validation", "source", name, "rows", table.Len())
		return nil, err
	}

	dataset := Aggregate(Rows(table))
	dataset.RunID = uuid.NewString()
	dataset.Source = name
	dataset.ProcessedAt = i.now().UTC()

	groups := 0
	for _, stages := range dataset.Materials {
		groups += len(stages)
	}
	slog.Info("Ingested upload",
		"run_id", dataset.RunID,
		"source", name,
		"format", format,
		"rows", dataset.TotalRows,
		"groups", groups)

	return dataset, nil
}
