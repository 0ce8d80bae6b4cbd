package reference

import (
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/service"
)

// Overlay layers an ingested dataset over a base dataset.
//
// CO₂, energy and water come from the ingested aggregate when it has the
// material and stage. Waste is never part of an upload, so it always comes
// from the base; if the base has no entry the waste value is absent.
type Overlay struct {
	base       service.Dataset
	aggregated *model.AggregatedDataset
}

// NewOverlay returns a dataset that prefers aggregated values over base.
// A nil aggregate makes the overlay behave exactly like base.
func NewOverlay(base service.Dataset, aggregated *model.AggregatedDataset) *Overlay {
	return &Overlay{base: base, aggregated: aggregated}
}

// Lookup returns the merged metrics. When only the ingested data has the
// entry, Waste is zero and Value reports it as absent.
func (o *Overlay) Lookup(material model.Material, stage model.Stage) (model.MaterialStageMetrics, bool) {
	baseMetrics, baseOK := o.base.Lookup(material, stage)
	rec, aggOK := o.aggregated.Record(material, stage)
	if !aggOK {
		return baseMetrics, baseOK
	}
	merged := model.MaterialStageMetrics{
		CO2:    rec.CO2,
		Energy: rec.Energy,
		Water:  rec.Water,
	}
	if baseOK {
		merged.Waste = baseMetrics.Waste
	}
	return merged, true
}

// Value returns a single merged metric.
func (o *Overlay) Value(material model.Material, stage model.Stage, metric model.Metric) (float64, bool) {
	rec, aggOK := o.aggregated.Record(material, stage)
	if !aggOK || metric == model.MetricWaste {
		return o.base.Value(material, stage, metric)
	}
	switch metric {
	case model.MetricCO2:
		return rec.CO2, true
	case model.MetricEnergy:
		return rec.Energy, true
	case model.MetricWater:
		return rec.Water, true
	default:
		return 0, false
	}
}
