package model

import "errors"

// Domain validation errors.
var (
	ErrUnknownMaterial     = errors.New("unknown material")
	ErrUnknownStage        = errors.New("unknown stage")
	ErrUnknownMetric       = errors.New("unknown metric")
	ErrUnknownEnergySource = errors.New("unknown energy source")
	ErrInvalidScenario     = errors.New("invalid scenario")
	ErrInvalidExtension    = errors.New("invalid scenario extension")
	ErrInvalidMetrics      = errors.New("invalid metrics")
)
