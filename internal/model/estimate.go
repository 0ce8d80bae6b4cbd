package model

// Prediction pairs an adjusted estimate with its reference value.
// VariancePct is nil when the reference value is zero and the variance
// cannot be expressed as a percentage.
type Prediction struct {
	VariancePct *float64 `json:"variancePct,omitempty" yaml:"variance_pct,omitempty"`
	Predicted   float64  `json:"predicted" yaml:"predicted"`
	Actual      float64  `json:"actual" yaml:"actual"`
	Confidence  float64  `json:"confidence" yaml:"confidence"`
}

// Estimate is the full stage-by-metric prediction grid for one material.
type Estimate struct {
	Predictions map[Stage]map[Metric]Prediction `json:"predictions" yaml:"predictions"`
	Totals      map[Metric]float64              `json:"totals" yaml:"totals"`
	Material    Material                        `json:"material" yaml:"material"`
	Scenario    ScenarioInput                   `json:"scenario" yaml:"scenario"`
}

// Prediction returns the cell for a stage and metric.
func (e *Estimate) Prediction(stage Stage, metric Metric) (Prediction, bool) {
	if e == nil {
		return Prediction{}, false
	}
	row, ok := e.Predictions[stage]
	if !ok {
		return Prediction{}, false
	}
	p, ok := row[metric]
	return p, ok
}

// CircularityKPIs summarises how circular a scenario is. Each score is an
// integer percentage in [0, 100].
type CircularityKPIs struct {
	RecyclingRate      int `json:"recyclingRate" yaml:"recycling_rate"`
	ResourceEfficiency int `json:"resourceEfficiency" yaml:"resource_efficiency"`
	ExtendedLife       int `json:"extendedLife" yaml:"extended_life"`
	CircularityScore   int `json:"circularityScore" yaml:"circularity_score"`
}

// ImpactProfile is an illustrative per-kilogram impact bundle used to
// contrast linear and circular production.
type ImpactProfile struct {
	Emissions float64 `json:"emissions" yaml:"emissions"`
	Energy    float64 `json:"energy" yaml:"energy"`
	Waste     float64 `json:"waste" yaml:"waste"`
	Cost      float64 `json:"cost" yaml:"cost"`
}

// ImprovementSet holds percentage improvements of circular over linear.
// A nil field means no improvement can be reported for that metric.
type ImprovementSet struct {
	Emissions *float64 `json:"emissions,omitempty" yaml:"emissions,omitempty"`
	Energy    *float64 `json:"energy,omitempty" yaml:"energy,omitempty"`
	Waste     *float64 `json:"waste,omitempty" yaml:"waste,omitempty"`
	Cost      *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// Comparison contrasts a linear baseline with the circular scenario.
type Comparison struct {
	Improvement ImprovementSet `json:"improvement" yaml:"improvement"`
	Linear      ImpactProfile  `json:"linear" yaml:"linear"`
	Circular    ImpactProfile  `json:"circular" yaml:"circular"`
}
