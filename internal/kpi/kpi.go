// Package kpi derives circularity indicators and a linear-versus-circular
// comparison from a scenario.
package kpi

import (
	"math"

	"github.com/Veraticus/metalcycle/internal/model"
)

// Linear production baselines in illustrative per-unit values.
const (
	LinearEmissions = 25.0
	LinearEnergy    = 120.0
	LinearWaste     = 15.0
	LinearCost      = 100.0
)

const (
	solarRecyclingBonus = 10.0
	windEfficiencyBonus = 15.0
	baseEfficiency      = 60.0
	baseLife            = 70.0
	lifeLossPerKm       = 1.0 / 100
	maxScore            = 100.0
	minScore            = 0.0
)

// Score labels.
const (
	LabelExcellent        = "Excellent"
	LabelGood             = "Good"
	LabelFair             = "Fair"
	LabelNeedsImprovement = "Needs Improvement"
)

// Calculate derives the circularity KPIs for a scenario. Each sub-score is
// clamped to [0, 100] and rounded; the composite is the rounded mean of the
// clamped sub-scores before their own rounding.
func Calculate(scenario model.ScenarioInput) model.CircularityKPIs {
	r := scenario.RecycledPercent

	recycling := r
	if scenario.EnergySource == model.EnergySolar {
		recycling += solarRecyclingBonus
	}

	efficiency := baseEfficiency + r/2
	if scenario.EnergySource == model.EnergyWind {
		efficiency += windEfficiencyBonus
	}

	life := baseLife + r/3 - scenario.TransportDistanceKm*lifeLossPerKm

	recycling = clamp(recycling)
	efficiency = clamp(efficiency)
	life = clamp(life)

	return model.CircularityKPIs{
		RecyclingRate:      roundInt(recycling),
		ResourceEfficiency: roundInt(efficiency),
		ExtendedLife:       roundInt(life),
		CircularityScore:   roundInt((recycling + efficiency + life) / 3),
	}
}

// Compare contrasts the fixed linear baseline with circular production at
// the scenario's recycled content.
func Compare(scenario model.ScenarioInput) model.Comparison {
	factor := 1 - scenario.RecycledPercent/200
	wasteFactor := 1 - scenario.RecycledPercent/100

	linear := model.ImpactProfile{
		Emissions: LinearEmissions,
		Energy:    LinearEnergy,
		Waste:     LinearWaste,
		Cost:      LinearCost,
	}
	circular := model.ImpactProfile{
		Emissions: linear.Emissions * factor,
		Energy:    linear.Energy * factor,
		Waste:     linear.Waste * wasteFactor,
		Cost:      linear.Cost * factor,
	}

	return model.Comparison{
		Linear:   linear,
		Circular: circular,
		Improvement: model.ImprovementSet{
			Emissions: improvementPtr(linear.Emissions, circular.Emissions),
			Energy:    improvementPtr(linear.Energy, circular.Energy),
			Waste:     improvementPtr(linear.Waste, circular.Waste),
			Cost:      improvementPtr(linear.Cost, circular.Cost),
		},
	}
}

// Improvement returns the percentage reduction from linear to circular.
// It reports false when the linear value is zero.
func Improvement(linear, circular float64) (float64, bool) {
	if linear == 0 {
		return 0, false
	}
	return (linear - circular) / linear * 100, true
}

// ScoreLabel names a circularity score band.
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return LabelExcellent
	case score >= 60:
		return LabelGood
	case score >= 40:
		return LabelFair
	default:
		return LabelNeedsImprovement
	}
}

func improvementPtr(linear, circular float64) *float64 {
	v, ok := Improvement(linear, circular)
	if !ok {
		return nil
	}
	return &v
}

func clamp(v float64) float64 {
	return math.Max(minScore, math.Min(maxScore, v))
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
