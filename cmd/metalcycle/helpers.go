package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/metalcycle/internal/cli"
	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/reference"
	"github.com/Veraticus/metalcycle/internal/scenario"
	"github.com/Veraticus/metalcycle/internal/service"
	"github.com/Veraticus/metalcycle/internal/storage"
	"github.com/spf13/cobra"
)

// initStorage opens the configured database and runs migrations.
func (a *app) initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := a.cfg.Database.Path
	if dbPath != storage.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (a *app) renderer(cmd *cobra.Command) (*cli.Renderer, error) {
	format, err := cli.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return nil, common.NewUserError("Invalid output format", err)
	}
	return cli.NewRenderer(cmd.OutOrStdout(), format), nil
}

// loadScenario returns the saved scenario, or the configured defaults when
// none has been saved.
func (a *app) loadScenario(ctx context.Context, store *scenario.Store) (*model.ScenarioRecord, error) {
	record, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if record.UpdatedAt.IsZero() {
		record.Input = a.cfg.Scenario
	}
	return record, nil
}

// scenarioFlags override individual scenario fields for one command.
type scenarioFlags struct {
	energy    string
	recycled  float64
	transport float64
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.recycled, "recycled", 0, "recycled content in percent (0-100)")
	cmd.Flags().StringVar(&f.energy, "energy", "", "energy source (Grid mix, Solar, Wind, Hydro, Coal, Natural Gas, Diesel, Other)")
	cmd.Flags().Float64Var(&f.transport, "transport", 0, "transport distance in km")
}

// apply returns base with every flag the user set applied, validated.
func (f *scenarioFlags) apply(cmd *cobra.Command, base model.ScenarioInput) (model.ScenarioInput, error) {
	input := base
	if cmd.Flags().Changed("recycled") {
		input.RecycledPercent = f.recycled
	}
	if cmd.Flags().Changed("energy") {
		src, err := model.ParseEnergySource(f.energy)
		if err != nil {
			slog.Warn("Unknown energy source, using Other", "energy_source", f.energy)
		}
		input.EnergySource = src
	}
	if cmd.Flags().Changed("transport") {
		input.TransportDistanceKm = f.transport
	}

	if err := input.Validate(); err != nil {
		return input, common.NewUserError("Invalid scenario", err)
	}
	return input, nil
}

// workingDataset picks the data predictions are made from: a named run, the
// latest saved run, or the reference data alone. The description is empty
// for reference data.
func workingDataset(ctx context.Context, store service.DatasetStore, runID string, referenceOnly bool) (service.Dataset, string, error) {
	base := reference.Default()

	var (
		ds  *model.AggregatedDataset
		err error
	)
	switch {
	case referenceOnly:
		return base, "", nil
	case runID != "":
		ds, err = store.GetDataset(ctx, runID)
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.NewUserError(fmt.Sprintf("No dataset with run ID %s", runID), err)
		}
	default:
		ds, err = store.LatestDataset(ctx)
		if errors.Is(err, common.ErrNotFound) {
			return base, "", nil
		}
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load dataset: %w", err)
	}

	slog.Debug("Using ingested dataset", "run_id", ds.RunID, "source", ds.Source)
	return reference.NewOverlay(base, ds), fmt.Sprintf("%s (%s)", ds.Source, ds.RunID), nil
}
