package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/model"
)

// LoadScenario returns the scenario stored under key.
func (s *SQLiteStorage) LoadScenario(ctx context.Context, key string) (*model.ScenarioRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	var (
		input     string
		extension sql.NullString
		record    model.ScenarioRecord
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT input, extension, updated_at
		FROM scenarios
		WHERE key = ?
	`, key).Scan(&input, &extension, &record.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: scenario %q", common.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scenario: %w", err)
	}

	if err := json.Unmarshal([]byte(input), &record.Input); err != nil {
		return nil, fmt.Errorf("%w: scenario %q input: %w", common.ErrDatabaseCorrupted, key, err)
	}
	if extension.Valid {
		record.Extension = &model.ScenarioExtension{}
		if err := json.Unmarshal([]byte(extension.String), record.Extension); err != nil {
			return nil, fmt.Errorf("%w: scenario %q extension: %w", common.ErrDatabaseCorrupted, key, err)
		}
	}

	return &record, nil
}

// SaveScenario stores record under key, replacing any previous value.
func (s *SQLiteStorage) SaveScenario(ctx context.Context, key string, record *model.ScenarioRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if err := validateScenarioRecord(record); err != nil {
		return err
	}

	input, err := json.Marshal(record.Input)
	if err != nil {
		return fmt.Errorf("failed to encode scenario input: %w", err)
	}

	var extension sql.NullString
	if record.Extension != nil {
		data, encErr := json.Marshal(record.Extension)
		if encErr != nil {
			return fmt.Errorf("failed to encode scenario extension: %w", encErr)
		}
		extension = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scenarios (key, input, extension, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			input = excluded.input,
			extension = excluded.extension,
			updated_at = excluded.updated_at
	`, key, string(input), extension, record.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// DeleteScenario removes the scenario stored under key. Deleting a missing
// key is not an error.
func (s *SQLiteStorage) DeleteScenario(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}
