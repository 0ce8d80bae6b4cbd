// Package scenario persists the current production scenario.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/service"
)

// StateKey is the single key the current scenario is stored under.
const StateKey = "scenario"

// Store loads and saves the current scenario. Writes replace the previous
// scenario outright; there is no history.
type Store struct {
	backend service.ScenarioBackend
	now     func() time.Time
	key     string
}

// NewStore creates a store over backend using StateKey.
func NewStore(backend service.ScenarioBackend) *Store {
	return &Store{
		backend: backend,
		key:     StateKey,
		now:     time.Now,
	}
}

// Load returns the saved scenario, or a record holding DefaultScenario when
// nothing has been saved.
func (s *Store) Load(ctx context.Context) (*model.ScenarioRecord, error) {
	record, err := s.backend.LoadScenario(ctx, s.key)
	if errors.Is(err, common.ErrNotFound) {
		slog.Debug("No saved scenario, using default", "key", s.key)
		return &model.ScenarioRecord{Input: model.DefaultScenario()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	return record, nil
}

// Input returns just the saved scenario input.
func (s *Store) Input(ctx context.Context) (model.ScenarioInput, error) {
	record, err := s.Load(ctx)
	if err != nil {
		return model.ScenarioInput{}, err
	}
	return record.Input, nil
}

// Save validates and stores input with an optional extension.
func (s *Store) Save(ctx context.Context, input model.ScenarioInput, ext *model.ScenarioExtension) (*model.ScenarioRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := ext.Validate(); err != nil {
		return nil, err
	}

	record := &model.ScenarioRecord{
		Input:     input,
		Extension: ext,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.backend.SaveScenario(ctx, s.key, record); err != nil {
		return nil, fmt.Errorf("failed to save scenario: %w", err)
	}

	slog.Info("Saved scenario",
		"recycled_percent", input.RecycledPercent,
		"energy_source", input.EnergySource.String(),
		"transport_km", input.TransportDistanceKm)
	return record, nil
}

// Reset removes the saved scenario so that Load returns the default again.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.backend.DeleteScenario(ctx, s.key); err != nil {
		return fmt.Errorf("failed to reset scenario: %w", err)
	}
	return nil
}
