// Package reference holds the baseline life-cycle impact values that every
// estimate is derived from and scored against.
package reference

import (
	"sort"

	"github.com/Veraticus/metalcycle/internal/model"
)

// Table is an immutable material → stage → metrics lookup.
type Table struct {
	data map[model.Material]map[model.Stage]model.MaterialStageMetrics
}

var baseline = &Table{
	data: map[model.Material]map[model.Stage]model.MaterialStageMetrics{
		model.Aluminium: {
			model.StageMining:      {CO2: 2.5, Energy: 15, Water: 8, Waste: 0.3},
			model.StageRefining:    {CO2: 8.2, Energy: 45, Water: 25, Waste: 0.1},
			model.StageSmelting:    {CO2: 12.8, Energy: 65, Water: 35, Waste: 0.05},
			model.StageFabrication: {CO2: 3.2, Energy: 18, Water: 12, Waste: 0.08},
			model.StageUse:         {CO2: 0.5, Energy: 2, Water: 1, Waste: 0.02},
			model.StageRecycling:   {CO2: 1.8, Energy: 8, Water: 4, Waste: 0.01},
		},
		model.Copper: {
			model.StageMining:      {CO2: 4.2, Energy: 22, Water: 15, Waste: 0.8},
			model.StageRefining:    {CO2: 6.8, Energy: 35, Water: 20, Waste: 0.2},
			model.StageSmelting:    {CO2: 9.5, Energy: 48, Water: 28, Waste: 0.1},
			model.StageFabrication: {CO2: 2.8, Energy: 15, Water: 8, Waste: 0.05},
			model.StageUse:         {CO2: 0.3, Energy: 1.5, Water: 0.8, Waste: 0.01},
			model.StageRecycling:   {CO2: 1.2, Energy: 6, Water: 3, Waste: 0.005},
		},
	},
}

// Default returns the built-in baseline dataset for aluminium and copper.
func Default() *Table {
	return baseline
}

// NewTable builds a table from a copy of data. Entries that fail
// validation are rejected.
func NewTable(data map[model.Material]map[model.Stage]model.MaterialStageMetrics) (*Table, error) {
	t := &Table{data: make(map[model.Material]map[model.Stage]model.MaterialStageMetrics, len(data))}
	for material, stages := range data {
		copied := make(map[model.Stage]model.MaterialStageMetrics, len(stages))
		for stage, metrics := range stages {
			if err := metrics.Validate(); err != nil {
				return nil, err
			}
			copied[stage] = metrics
		}
		t.data[material] = copied
	}
	return t, nil
}

// Lookup returns the metrics for a material and stage.
func (t *Table) Lookup(material model.Material, stage model.Stage) (model.MaterialStageMetrics, bool) {
	stages, ok := t.data[material]
	if !ok {
		return model.MaterialStageMetrics{}, false
	}
	m, ok := stages[stage]
	return m, ok
}

// Value returns a single metric for a material and stage.
func (t *Table) Value(material model.Material, stage model.Stage, metric model.Metric) (float64, bool) {
	m, ok := t.Lookup(material, stage)
	if !ok {
		return 0, false
	}
	return m.Get(metric)
}

// Materials returns the materials with reference data, sorted.
func (t *Table) Materials() []model.Material {
	out := make([]model.Material, 0, len(t.data))
	for m := range t.data {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StagesFor returns the stages with data for a material in life-cycle order.
func (t *Table) StagesFor(material model.Material) []model.Stage {
	stages := t.data[material]
	out := make([]model.Stage, 0, len(stages))
	for _, st := range model.Stages {
		if _, ok := stages[st]; ok {
			out = append(out, st)
		}
	}
	return out
}
