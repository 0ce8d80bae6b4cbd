package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/metalcycle/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidDataset = errors.New("invalid dataset")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateScenarioRecord validates a scenario before it is stored.
func validateScenarioRecord(record *model.ScenarioRecord) error {
	if record == nil {
		return fmt.Errorf("%w: scenario record", ErrNilParameter)
	}
	if err := record.Input.Validate(); err != nil {
		return err
	}
	return record.Extension.Validate()
}

// validateDataset validates an aggregated dataset before it is stored.
func validateDataset(dataset *model.AggregatedDataset) error {
	if dataset == nil {
		return fmt.Errorf("%w: dataset", ErrNilParameter)
	}
	if strings.TrimSpace(dataset.RunID) == "" {
		return fmt.Errorf("%w: missing run ID", ErrInvalidDataset)
	}
	if dataset.ProcessedAt.IsZero() {
		return fmt.Errorf("%w: missing processing time", ErrInvalidDataset)
	}
	for material, stages := range dataset.Materials {
		if strings.TrimSpace(string(material)) == "" {
			return fmt.Errorf("%w: empty material", ErrInvalidDataset)
		}
		for stage, rec := range stages {
			if rec.Count <= 0 {
				return fmt.Errorf("%w: %s %s has no rows", ErrInvalidDataset, material, stage)
			}
			if rec.CO2 < 0 || rec.Energy < 0 || rec.Water < 0 {
				return fmt.Errorf("%w: %s %s has negative values", ErrInvalidDataset, material, stage)
			}
		}
	}
	return nil
}
