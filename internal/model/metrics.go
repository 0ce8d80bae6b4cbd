package model

import (
	"fmt"
	"math"
)

// MaterialStageMetrics holds the per-kilogram impacts of one material at one
// life-cycle stage.
type MaterialStageMetrics struct {
	CO2    float64 `json:"co2" yaml:"co2"`
	Energy float64 `json:"energy" yaml:"energy"`
	Water  float64 `json:"water" yaml:"water"`
	Waste  float64 `json:"waste" yaml:"waste"`
}

// Get returns the value of a single metric.
func (m MaterialStageMetrics) Get(metric Metric) (float64, bool) {
	switch metric {
	case MetricCO2:
		return m.CO2, true
	case MetricEnergy:
		return m.Energy, true
	case MetricWater:
		return m.Water, true
	case MetricWaste:
		return m.Waste, true
	default:
		return 0, false
	}
}

// Validate checks that every metric is finite and non-negative.
func (m MaterialStageMetrics) Validate() error {
	for _, metric := range Metrics {
		v, _ := m.Get(metric)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidMetrics, metric, v)
		}
	}
	return nil
}
