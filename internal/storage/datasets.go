package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/service"
	"github.com/mattn/go-sqlite3"
)

// SaveDataset stores an ingest run and its aggregated records.
func (s *SQLiteStorage) SaveDataset(ctx context.Context, dataset *model.AggregatedDataset) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDataset(dataset); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ingest_runs (run_id, source, total_rows, processed_at)
		VALUES (?, ?, ?, ?)
	`, dataset.RunID, dataset.Source, dataset.TotalRows, dataset.ProcessedAt.UTC())
	if err != nil {
		if isConstraintError(err) {
			err = fmt.Errorf("%w: ingest run %s", common.ErrDuplicateEntry, dataset.RunID)
			return err
		}
		err = fmt.Errorf("failed to save ingest run: %w", err)
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ingest_records (run_id, material, stage, co2, energy, water, row_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		err = fmt.Errorf("failed to prepare record insert: %w", err)
		return err
	}
	defer stmt.Close()

	for _, material := range dataset.MaterialNames() {
		for stage, rec := range dataset.Materials[material] {
			_, err = stmt.ExecContext(ctx, dataset.RunID, string(material), string(stage),
				rec.CO2, rec.Energy, rec.Water, rec.Count)
			if err != nil {
				err = fmt.Errorf("failed to save %s %s: %w", material, stage, err)
				return err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("failed to commit ingest run: %w", err)
		return err
	}
	return nil
}

// GetDataset returns a saved ingest run.
func (s *SQLiteStorage) GetDataset(ctx context.Context, runID string) (*model.AggregatedDataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(runID, "runID"); err != nil {
		return nil, err
	}

	dataset := &model.AggregatedDataset{
		RunID:     runID,
		Materials: make(map[model.Material]map[model.Stage]model.AggregatedRecord),
	}
	err := s.db.QueryRowContext(ctx, `
		SELECT source, total_rows, processed_at
		FROM ingest_runs
		WHERE run_id = ?
	`, runID).Scan(&dataset.Source, &dataset.TotalRows, &dataset.ProcessedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: ingest run %s", common.ErrNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT material, stage, co2, energy, water, row_count
		FROM ingest_records
		WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			material, stage string
			rec             model.AggregatedRecord
		)
		if err := rows.Scan(&material, &stage, &rec.CO2, &rec.Energy, &rec.Water, &rec.Count); err != nil {
			return nil, fmt.Errorf("failed to scan ingest record: %w", err)
		}
		m := model.Material(material)
		if dataset.Materials[m] == nil {
			dataset.Materials[m] = make(map[model.Stage]model.AggregatedRecord)
		}
		dataset.Materials[m][model.Stage(stage)] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingest records: %w", err)
	}

	return dataset, nil
}

// LatestDataset returns the most recently processed ingest run.
func (s *SQLiteStorage) LatestDataset(ctx context.Context) (*model.AggregatedDataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var runID string
	err := s.db.QueryRowContext(ctx, `
		SELECT run_id
		FROM ingest_runs
		ORDER BY processed_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no ingest runs", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest ingest run: %w", err)
	}

	return s.GetDataset(ctx, runID)
}

// ListDatasets returns a summary of every saved run, newest first.
func (s *SQLiteStorage) ListDatasets(ctx context.Context) ([]service.DatasetSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_id, r.source, r.total_rows, r.processed_at, COUNT(i.material)
		FROM ingest_runs r
		LEFT JOIN ingest_records i ON i.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.processed_at DESC, r.rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest runs: %w", err)
	}
	defer rows.Close()

	var summaries []service.DatasetSummary
	for rows.Next() {
		var (
			summary     service.DatasetSummary
			processedAt time.Time
		)
		if err := rows.Scan(&summary.RunID, &summary.Source, &summary.TotalRows, &processedAt, &summary.Groups); err != nil {
			return nil, fmt.Errorf("failed to scan ingest run: %w", err)
		}
		summary.ProcessedAt = processedAt
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingest runs: %w", err)
	}
	return summaries, nil
}

// DeleteDataset removes a saved run and its records.
func (s *SQLiteStorage) DeleteDataset(ctx context.Context, runID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(runID, "runID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM ingest_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete ingest run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: ingest run %s", common.ErrNotFound, runID)
	}
	return nil
}

func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
