package estimate

import (
	"math"

	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/service"
)

// Predict adjusts the dataset's base value for a material, stage and metric
// to the scenario. A missing base value predicts 0. The result is never
// negative, and identical arguments always give an identical result.
func Predict(ds service.Dataset, material model.Material, stage model.Stage, metric model.Metric, scenario model.ScenarioInput) float64 {
	base, ok := ds.Value(material, stage, metric)
	if !ok {
		return 0
	}
	f := FactorsFor(scenario)
	return math.Max(0, base*f.Recycled*f.Energy*f.Transport)
}

// round2 rounds to two decimal places for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ScaleTotals multiplies per-kilogram totals by a mass in kilograms.
func ScaleTotals(totals map[model.Metric]float64, kg float64) map[model.Metric]float64 {
	scaled := make(map[model.Metric]float64, len(totals))
	for metric, v := range totals {
		scaled[metric] = v * kg
	}
	return scaled
}
