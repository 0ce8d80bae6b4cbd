// Package testutil provides test utilities for metalcycle: an isolated
// in-memory database with optional seed data.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/scenario"
	"github.com/Veraticus/metalcycle/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage   *storage.SQLiteStorage
	Scenarios *scenario.Store
	t         *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Scenario       *model.ScenarioInput
	Datasets       []*model.AggregatedDataset
	SkipMigrations bool
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	record, err := db.Scenarios.Load(ctx)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	db := &TestDB{
		Storage:   store,
		Scenarios: scenario.NewStore(store),
		t:         t,
	}

	if opts.Scenario != nil {
		if _, err := db.Scenarios.Save(ctx, *opts.Scenario, nil); err != nil {
			t.Fatalf("failed to seed scenario: %v", err)
		}
	}

	for _, ds := range opts.Datasets {
		if err := store.SaveDataset(ctx, ds); err != nil {
			t.Fatalf("failed to seed dataset %s: %v", ds.RunID, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return db
}

// MustLatestDataset returns the newest saved run or fails the test.
func (db *TestDB) MustLatestDataset() *model.AggregatedDataset {
	db.t.Helper()
	ds, err := db.Storage.LatestDataset(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load latest dataset: %v", err)
	}
	return ds
}
