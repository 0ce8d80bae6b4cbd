package estimate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/service"
	"github.com/Veraticus/metalcycle/internal/variance"
	"golang.org/x/sync/errgroup"
)

// Estimator predicts impacts from a working dataset and scores them against
// a reference dataset.
type Estimator struct {
	working   service.Dataset
	reference service.Dataset
	cache     *predictionCache
}

// Config holds configuration options for the estimator.
type Config struct {
	CacheTTL     time.Duration
	DisableCache bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		CacheTTL: DefaultCacheTTL,
	}
}

// New creates an estimator that predicts from working and treats reference
// as the actual values. The two may be the same dataset.
func New(working, reference service.Dataset) *Estimator {
	return NewWithConfig(working, reference, DefaultConfig())
}

// NewWithConfig creates an estimator with custom configuration.
func NewWithConfig(working, reference service.Dataset, config Config) *Estimator {
	e := &Estimator{
		working:   working,
		reference: reference,
	}
	if !config.DisableCache {
		e.cache = newPredictionCache(config.CacheTTL)
	}
	return e
}

// Close releases the prediction cache.
func (e *Estimator) Close() {
	if e.cache != nil {
		e.cache.close()
	}
}

// Predict returns the scenario-adjusted value from the working dataset.
// Results are memoised; a cached value is identical to a fresh one.
func (e *Estimator) Predict(material model.Material, stage model.Stage, metric model.Metric, scenario model.ScenarioInput) float64 {
	if e.cache == nil {
		return Predict(e.working, material, stage, metric, scenario)
	}

	key := predictionKey{material: material, stage: stage, metric: metric, scenario: scenario}
	if v, ok := e.cache.get(key); ok {
		return v
	}
	v := Predict(e.working, material, stage, metric, scenario)
	e.cache.set(key, v)
	return v
}

// Estimate computes the prediction grid for every stage and metric of a
// material. Variance is scored on exact values; predicted and actual are
// then rounded to two decimals, and totals sum the rounded predictions.
func (e *Estimator) Estimate(material model.Material, scenario model.ScenarioInput) *model.Estimate {
	result := &model.Estimate{
		Material:    material,
		Scenario:    scenario,
		Predictions: make(map[model.Stage]map[model.Metric]model.Prediction, len(model.Stages)),
		Totals:      make(map[model.Metric]float64, len(model.Metrics)),
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(len(model.Stages))

	for _, stage := range model.Stages {
		stage := stage
		g.Go(func() error {
			row := e.estimateStage(material, stage, scenario)
			mu.Lock()
			result.Predictions[stage] = row
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // stage workers never fail

	for _, stage := range model.Stages {
		for metric, p := range result.Predictions[stage] {
			result.Totals[metric] += p.Predicted
		}
	}
	for metric, total := range result.Totals {
		result.Totals[metric] = round2(total)
	}

	slog.Debug("Estimated scenario",
		"material", material,
		"recycled_percent", scenario.RecycledPercent,
		"energy_source", scenario.EnergySource.String(),
		"transport_km", scenario.TransportDistanceKm)

	return result
}

func (e *Estimator) estimateStage(material model.Material, stage model.Stage, scenario model.ScenarioInput) map[model.Metric]model.Prediction {
	row := make(map[model.Metric]model.Prediction, len(model.Metrics))
	for _, metric := range model.Metrics {
		predicted := e.Predict(material, stage, metric, scenario)
		actual, _ := e.reference.Value(material, stage, metric)

		score := variance.Score(predicted, actual)
		row[metric] = model.Prediction{
			Predicted:   round2(predicted),
			Actual:      round2(actual),
			VariancePct: score.VariancePct,
			Confidence:  score.Confidence,
		}
	}
	return row
}
