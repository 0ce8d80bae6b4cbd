package model

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// ScenarioInput is the user-adjustable parameter set that drives every estimate.
// It is passed by value and never modified by the engine.
type ScenarioInput struct {
	EnergySource        EnergySource `json:"energySource" yaml:"energy_source"`
	RecycledPercent     float64      `json:"recycledPercent" yaml:"recycled_percent"`
	TransportDistanceKm float64      `json:"transportDistanceKm" yaml:"transport_distance_km"`
}

// DefaultScenario returns the scenario used when none has been saved.
func DefaultScenario() ScenarioInput {
	return ScenarioInput{
		RecycledPercent:     30,
		EnergySource:        EnergyGridMix,
		TransportDistanceKm: 100,
	}
}

// Validate checks the scenario bounds.
func (s ScenarioInput) Validate() error {
	if !isFinite(s.RecycledPercent) || s.RecycledPercent < 0 || s.RecycledPercent > 100 {
		return fmt.Errorf("%w: recycled percent must be between 0 and 100, got %v", ErrInvalidScenario, s.RecycledPercent)
	}
	if !isFinite(s.TransportDistanceKm) || s.TransportDistanceKm < 0 {
		return fmt.Errorf("%w: transport distance must be >= 0, got %v", ErrInvalidScenario, s.TransportDistanceKm)
	}
	if s.EnergySource < EnergyGridMix || s.EnergySource > EnergyOther {
		return fmt.Errorf("%w: energy source %s", ErrInvalidScenario, s.EnergySource)
	}
	return nil
}

// Units accepted for a functional unit quantity.
const (
	UnitKg     = "kg"
	UnitTonne  = "tonne"
	UnitPieces = "pieces"
)

// Production routes.
const (
	RoutePrimary   = "Primary"
	RouteSecondary = "Secondary"
	RouteHybrid    = "Hybrid"
)

// Transport modes.
const (
	TransportTruck = "Truck"
	TransportRail  = "Rail"
	TransportShip  = "Ship"
)

var (
	validUnits      = []string{UnitKg, UnitTonne, UnitPieces}
	validRoutes     = []string{RoutePrimary, RouteSecondary, RouteHybrid}
	validModes      = []string{TransportTruck, TransportRail, TransportShip}
	validWaste      = []string{"Red Mud", "Dross", "Tailings", "Spent Pot Lining", "Slag"}
	validEndOfLifes = []string{"Reuse", "Recycling", "Landfill", "Recovery"}
)

// ScenarioExtension carries the optional, richer description of a scenario:
// what is produced, how much of it, and where its waste and products end up.
// None of these fields feed the estimator's factors.
type ScenarioExtension struct {
	Material        Material `json:"material" yaml:"material"`
	Unit            string   `json:"unit" yaml:"unit"`
	ProductionRoute string   `json:"productionRoute,omitempty" yaml:"production_route,omitempty"`
	TransportMode   string   `json:"transportMode,omitempty" yaml:"transport_mode,omitempty"`
	WasteStreams    []string `json:"wasteStreams,omitempty" yaml:"waste_streams,omitempty"`
	EndOfLife       []string `json:"endOfLife,omitempty" yaml:"end_of_life,omitempty"`
	Quantity        float64  `json:"quantity" yaml:"quantity"`
}

// Validate checks the extension's closed vocabularies and quantity.
func (e *ScenarioExtension) Validate() error {
	if e == nil {
		return nil
	}
	if _, err := ParseMaterial(string(e.Material)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExtension, err)
	}
	if !isFinite(e.Quantity) || e.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0, got %v", ErrInvalidExtension, e.Quantity)
	}
	if !slices.Contains(validUnits, e.Unit) {
		return fmt.Errorf("%w: unit %q must be one of %s", ErrInvalidExtension, e.Unit, strings.Join(validUnits, ", "))
	}
	if e.ProductionRoute != "" && !slices.Contains(validRoutes, e.ProductionRoute) {
		return fmt.Errorf("%w: production route %q", ErrInvalidExtension, e.ProductionRoute)
	}
	if e.TransportMode != "" && !slices.Contains(validModes, e.TransportMode) {
		return fmt.Errorf("%w: transport mode %q", ErrInvalidExtension, e.TransportMode)
	}
	for _, w := range e.WasteStreams {
		if !slices.Contains(validWaste, w) {
			return fmt.Errorf("%w: waste stream %q", ErrInvalidExtension, w)
		}
	}
	for _, eol := range e.EndOfLife {
		if !slices.Contains(validEndOfLifes, eol) {
			return fmt.Errorf("%w: end-of-life pathway %q", ErrInvalidExtension, eol)
		}
	}
	return nil
}

// FunctionalUnit describes the reference flow, e.g. "1000 kg of aluminium".
func (e *ScenarioExtension) FunctionalUnit() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%g %s of %s", e.Quantity, e.Unit, e.Material)
}

// QuantityKg converts the quantity to kilograms. Pieces have no mass and
// report false.
func (e *ScenarioExtension) QuantityKg() (float64, bool) {
	if e == nil {
		return 0, false
	}
	switch e.Unit {
	case UnitKg:
		return e.Quantity, true
	case UnitTonne:
		return e.Quantity * 1000, true
	default:
		return 0, false
	}
}

// ScenarioRecord is the persisted form of the current scenario.
type ScenarioRecord struct {
	UpdatedAt time.Time          `json:"updatedAt" yaml:"updated_at"`
	Extension *ScenarioExtension `json:"extension,omitempty" yaml:"extension,omitempty"`
	Input     ScenarioInput      `json:"input" yaml:"input"`
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
