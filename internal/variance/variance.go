// Package variance scores how far a prediction strays from its reference value.
package variance

import "math"

// ConfidenceFloor is the lowest confidence ever reported.
const ConfidenceFloor = 60.0

// Result is the variance and confidence for one prediction.
// VariancePct is nil when the reference value is zero and the prediction is
// not, since the ratio is undefined.
type Result struct {
	VariancePct *float64
	Confidence  float64
}

// Score compares predicted against actual.
//
// The variance is |predicted − actual| / actual as a whole percentage, and
// confidence is 100 minus that, never below ConfidenceFloor. A zero actual
// with a zero prediction is an exact match; a zero actual with anything else
// has unknown variance and floor confidence.
func Score(predicted, actual float64) Result {
	if actual == 0 {
		if predicted == 0 {
			exact := 0.0
			return Result{VariancePct: &exact, Confidence: 100}
		}
		return Result{Confidence: ConfidenceFloor}
	}

	pct := math.Round(math.Abs(predicted-actual) / math.Abs(actual) * 100)
	return Result{
		VariancePct: &pct,
		Confidence:  math.Max(ConfidenceFloor, 100-pct),
	}
}

// Known reports whether the variance could be computed.
func (r Result) Known() bool {
	return r.VariancePct != nil
}
