// Package estimate adjusts reference impacts to a production scenario.
package estimate

import (
	"math"

	"github.com/Veraticus/metalcycle/internal/model"
)

const (
	// recycledDivisor halves impact at 100% recycled content.
	recycledDivisor = 200.0

	// transportKmPerStep is the distance that adds a full 100% transport penalty
	// before capping.
	transportKmPerStep = 2000.0

	// MaxTransportPenalty caps the transport surcharge at +50%.
	MaxTransportPenalty = 0.5
)

// Factors are the three independent multipliers applied to a base value.
type Factors struct {
	Recycled  float64 `json:"recycled" yaml:"recycled"`
	Energy    float64 `json:"energy" yaml:"energy"`
	Transport float64 `json:"transport" yaml:"transport"`
}

// Combined returns the product of all factors.
func (f Factors) Combined() float64 {
	return f.Recycled * f.Energy * f.Transport
}

// FactorsFor computes the multipliers for a scenario.
func FactorsFor(scenario model.ScenarioInput) Factors {
	return Factors{
		Recycled:  RecycledFactor(scenario.RecycledPercent),
		Energy:    EnergyFactor(scenario.EnergySource),
		Transport: TransportFactor(scenario.TransportDistanceKm),
	}
}

// RecycledFactor discounts impact linearly with recycled content:
// 1 at 0% and 0.5 at 100%.
func RecycledFactor(recycledPercent float64) float64 {
	return 1 - recycledPercent/recycledDivisor
}

// EnergyFactor returns the impact multiplier of an energy source relative to
// the grid mix.
func EnergyFactor(src model.EnergySource) float64 {
	switch src {
	case model.EnergySolar:
		return 0.3
	case model.EnergyWind:
		return 0.2
	case model.EnergyHydro:
		return 0.1
	case model.EnergyGridMix:
		return 1.0
	case model.EnergyCoal:
		return 2.2
	case model.EnergyNaturalGas:
		return 1.4
	case model.EnergyDiesel:
		return 1.8
	case model.EnergyOther:
		return 1.0
	default:
		return 1.0
	}
}

// TransportFactor grows linearly with distance, capped at
// 1 + MaxTransportPenalty.
func TransportFactor(distanceKm float64) float64 {
	return 1 + math.Min(MaxTransportPenalty, distanceKm/transportKmPerStep)
}
