// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// Material identifies a metal whose life cycle is being assessed.
type Material string

// Known materials. Only aluminium and copper carry reference data; the others
// are offered by the scenario form and always estimate to zero.
const (
	Aluminium  Material = "aluminium"
	Copper     Material = "copper"
	Lithium    Material = "lithium"
	RareEarths Material = "rare earths"
	Nickel     Material = "nickel"
)

// KnownMaterials lists every material a scenario may name.
var KnownMaterials = []Material{Aluminium, Copper, Lithium, RareEarths, Nickel}

// ParseMaterial resolves a material name case-insensitively.
// The British and American spellings of aluminium are both accepted.
func ParseMaterial(s string) (Material, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "aluminum" {
		name = string(Aluminium)
	}
	for _, m := range KnownMaterials {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
}

// Stage is a discrete phase of a material's life cycle.
type Stage string

// Life-cycle stages.
const (
	StageMining      Stage = "mining"
	StageRefining    Stage = "refining"
	StageSmelting    Stage = "smelting"
	StageFabrication Stage = "fabrication"
	StageUse         Stage = "use"
	StageRecycling   Stage = "recycling"
)

// Stages is the presentation order of the life cycle.
var Stages = []Stage{
	StageMining,
	StageRefining,
	StageSmelting,
	StageFabrication,
	StageUse,
	StageRecycling,
}

// ParseStage resolves a stage name case-insensitively.
func ParseStage(s string) (Stage, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Stages {
		if string(st) == name {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

// Title returns the stage name with an upper-case first letter.
func (s Stage) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Metric is one of the four tracked environmental impacts.
type Metric string

// Impact metrics.
const (
	MetricCO2    Metric = "co2"
	MetricEnergy Metric = "energy"
	MetricWater  Metric = "water"
	MetricWaste  Metric = "waste"
)

// Metrics lists all impact metrics in display order.
var Metrics = []Metric{MetricCO2, MetricEnergy, MetricWater, MetricWaste}

// ParseMetric resolves a metric name case-insensitively.
func ParseMetric(s string) (Metric, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Metrics {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Unit returns the per-kilogram unit of the metric.
func (m Metric) Unit() string {
	switch m {
	case MetricCO2:
		return "kg/kg"
	case MetricEnergy:
		return "kWh/kg"
	case MetricWater:
		return "L/kg"
	case MetricWaste:
		return "kg/kg"
	default:
		return ""
	}
}

// Label returns a display label such as "Energy (kWh/kg)".
func (m Metric) Label() string {
	switch m {
	case MetricCO2:
		return "CO₂ (kg/kg)"
	case MetricEnergy:
		return "Energy (kWh/kg)"
	case MetricWater:
		return "Water (L/kg)"
	case MetricWaste:
		return "Waste (kg/kg)"
	default:
		return string(m)
	}
}
