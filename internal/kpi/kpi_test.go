package kpi

import (
	"testing"

	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		scenario model.ScenarioInput
		want     model.CircularityKPIs
	}{
		{
			name:     "default scenario",
			scenario: model.DefaultScenario(),
			want:     model.CircularityKPIs{RecyclingRate: 30, ResourceEfficiency: 75, ExtendedLife: 79, CircularityScore: 61},
		},
		{
			name:     "solar bonus",
			scenario: model.ScenarioInput{RecycledPercent: 50, EnergySource: model.EnergySolar},
			want:     model.CircularityKPIs{RecyclingRate: 60, ResourceEfficiency: 85, ExtendedLife: 87, CircularityScore: 77},
		},
		{
			name:     "wind bonus saturates",
			scenario: model.ScenarioInput{RecycledPercent: 100, EnergySource: model.EnergyWind},
			want:     model.CircularityKPIs{RecyclingRate: 100, ResourceEfficiency: 100, ExtendedLife: 100, CircularityScore: 100},
		},
		{
			name:     "solar bonus capped at 100",
			scenario: model.ScenarioInput{RecycledPercent: 95, EnergySource: model.EnergySolar},
			want:     model.CircularityKPIs{RecyclingRate: 100, ResourceEfficiency: 100, ExtendedLife: 100, CircularityScore: 100},
		},
		{
			name:     "long haul floors extended life",
			scenario: model.ScenarioInput{TransportDistanceKm: 10000},
			want:     model.CircularityKPIs{RecyclingRate: 0, ResourceEfficiency: 60, ExtendedLife: 0, CircularityScore: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.scenario))
		})
	}
}

func TestCalculateBounds(t *testing.T) {
	for _, src := range model.EnergySources {
		for pct := 0.0; pct <= 100; pct += 10 {
			for _, km := range []float64{0, 100, 2500, 20000} {
				k := Calculate(model.ScenarioInput{RecycledPercent: pct, EnergySource: src, TransportDistanceKm: km})
				for _, v := range []int{k.RecyclingRate, k.ResourceEfficiency, k.ExtendedLife, k.CircularityScore} {
					assert.GreaterOrEqual(t, v, 0)
					assert.LessOrEqual(t, v, 100)
				}
			}
		}
	}
}

func TestCompare(t *testing.T) {
	c := Compare(model.ScenarioInput{RecycledPercent: 50})

	assert.InDelta(t, LinearEmissions, c.Linear.Emissions, 1e-9)
	assert.InDelta(t, 18.75, c.Circular.Emissions, 1e-9)
	assert.InDelta(t, 90.0, c.Circular.Energy, 1e-9)
	assert.InDelta(t, 7.5, c.Circular.Waste, 1e-9)
	assert.InDelta(t, 75.0, c.Circular.Cost, 1e-9)

	require.NotNil(t, c.Improvement.Emissions)
	assert.InDelta(t, 25.0, *c.Improvement.Emissions, 1e-9)
	require.NotNil(t, c.Improvement.Waste)
	assert.InDelta(t, 50.0, *c.Improvement.Waste, 1e-9)
	require.NotNil(t, c.Improvement.Cost)
	assert.InDelta(t, 25.0, *c.Improvement.Cost, 1e-9)
}

func TestCompareFullyRecycled(t *testing.T) {
	c := Compare(model.ScenarioInput{RecycledPercent: 100})

	assert.Zero(t, c.Circular.Waste)
	require.NotNil(t, c.Improvement.Waste)
	assert.InDelta(t, 100.0, *c.Improvement.Waste, 1e-9)
	require.NotNil(t, c.Improvement.Energy)
	assert.InDelta(t, 50.0, *c.Improvement.Energy, 1e-9)
}

func TestImprovement(t *testing.T) {
	v, ok := Improvement(120, 90)
	require.True(t, ok)
	assert.InDelta(t, 25.0, v, 1e-9)

	_, ok = Improvement(0, 10)
	assert.False(t, ok)
}

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		want  string
		score int
	}{
		{score: 100, want: LabelExcellent},
		{score: 80, want: LabelExcellent},
		{score: 79, want: LabelGood},
		{score: 60, want: LabelGood},
		{score: 59, want: LabelFair},
		{score: 40, want: LabelFair},
		{score: 39, want: LabelNeedsImprovement},
		{score: 0, want: LabelNeedsImprovement},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreLabel(tt.score), "score %d", tt.score)
	}
}
