package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMaterial(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Material
		wantErr bool
	}{
		{name: "lower case", input: "aluminium", want: Aluminium},
		{name: "mixed case with spaces", input: "  Copper ", want: Copper},
		{name: "american spelling", input: "Aluminum", want: Aluminium},
		{name: "form-only material", input: "Rare Earths", want: RareEarths},
		{name: "unknown", input: "gold", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMaterial(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownMaterial)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStageAndMetric(t *testing.T) {
	st, err := ParseStage("SMELTING")
	require.NoError(t, err)
	assert.Equal(t, StageSmelting, st)
	assert.Equal(t, "Smelting", st.Title())

	_, err = ParseStage("transport")
	require.ErrorIs(t, err, ErrUnknownStage)

	m, err := ParseMetric("Water")
	require.NoError(t, err)
	assert.Equal(t, MetricWater, m)
	assert.Equal(t, "L/kg", m.Unit())

	_, err = ParseMetric("noise")
	require.ErrorIs(t, err, ErrUnknownMetric)
}

func TestParseEnergySource(t *testing.T) {
	tests := []struct {
		input   string
		want    EnergySource
		wantErr bool
	}{
		{input: "Solar", want: EnergySolar},
		{input: "wind", want: EnergyWind},
		{input: "HYDRO", want: EnergyHydro},
		{input: "Grid mix", want: EnergyGridMix},
		{input: "grid", want: EnergyGridMix},
		{input: "", want: EnergyGridMix},
		{input: "Natural  Gas", want: EnergyNaturalGas},
		{input: "coal", want: EnergyCoal},
		{input: "Diesel", want: EnergyDiesel},
		{input: "Hydrogen", want: EnergyOther, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEnergySource(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownEnergySource)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnergySourceTextRoundTrip(t *testing.T) {
	for _, src := range append(EnergySources, EnergyOther) {
		text, err := src.MarshalText()
		require.NoError(t, err)

		var decoded EnergySource
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, src, decoded, "source %s", src)
	}
}

func TestScenarioInputJSON(t *testing.T) {
	in := ScenarioInput{RecycledPercent: 50, EnergySource: EnergyNaturalGas, TransportDistanceKm: 250}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"recycledPercent":50,"energySource":"Natural Gas","transportDistanceKm":250}`, string(data))

	var out ScenarioInput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestScenarioInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   ScenarioInput
		wantErr bool
	}{
		{name: "default", input: DefaultScenario()},
		{name: "bounds inclusive", input: ScenarioInput{RecycledPercent: 100, TransportDistanceKm: 0}},
		{name: "recycled above 100", input: ScenarioInput{RecycledPercent: 101}, wantErr: true},
		{name: "recycled negative", input: ScenarioInput{RecycledPercent: -1}, wantErr: true},
		{name: "recycled NaN", input: ScenarioInput{RecycledPercent: math.NaN()}, wantErr: true},
		{name: "negative distance", input: ScenarioInput{TransportDistanceKm: -5}, wantErr: true},
		{name: "infinite distance", input: ScenarioInput{TransportDistanceKm: math.Inf(1)}, wantErr: true},
		{name: "out of range source", input: ScenarioInput{EnergySource: EnergySource(42)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidScenario)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScenarioExtension(t *testing.T) {
	ext := &ScenarioExtension{
		Material:        Aluminium,
		Quantity:        2,
		Unit:            UnitTonne,
		ProductionRoute: RouteSecondary,
		TransportMode:   TransportRail,
		WasteStreams:    []string{"Dross"},
		EndOfLife:       []string{"Recycling", "Reuse"},
	}
	require.NoError(t, ext.Validate())
	assert.Equal(t, "2 tonne of aluminium", ext.FunctionalUnit())

	kg, ok := ext.QuantityKg()
	assert.True(t, ok)
	assert.InDelta(t, 2000.0, kg, 1e-9)

	pieces := &ScenarioExtension{Material: Copper, Quantity: 10, Unit: UnitPieces}
	_, ok = pieces.QuantityKg()
	assert.False(t, ok)

	bad := *ext
	bad.WasteStreams = []string{"Glitter"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidExtension)

	bad = *ext
	bad.Unit = "lbs"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidExtension)

	var nilExt *ScenarioExtension
	assert.NoError(t, nilExt.Validate())
}

func TestMaterialStageMetrics(t *testing.T) {
	m := MaterialStageMetrics{CO2: 1, Energy: 2, Water: 3, Waste: 4}
	for i, metric := range Metrics {
		v, ok := m.Get(metric)
		require.True(t, ok)
		assert.InDelta(t, float64(i+1), v, 1e-9)
	}
	_, ok := m.Get(Metric("noise"))
	assert.False(t, ok)

	assert.NoError(t, m.Validate())
	m.Water = -1
	assert.ErrorIs(t, m.Validate(), ErrInvalidMetrics)
}

func TestAggregatedDatasetAccessors(t *testing.T) {
	d := &AggregatedDataset{
		Materials: map[Material]map[Stage]AggregatedRecord{
			Copper:    {StageRefining: {CO2: 1, Count: 1}, StageMining: {CO2: 2, Count: 2}},
			Aluminium: {StageSmelting: {CO2: 3, Count: 1}},
		},
	}

	assert.Equal(t, []Material{Aluminium, Copper}, d.MaterialNames())
	assert.Equal(t, []Stage{StageMining, StageRefining}, d.StagesFor(Copper))

	rec, ok := d.Record(Copper, StageMining)
	require.True(t, ok)
	assert.Equal(t, 2, rec.Count)

	_, ok = d.Record(Lithium, StageMining)
	assert.False(t, ok)
}
