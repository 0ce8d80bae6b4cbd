package model

import (
	"sort"
	"time"
)

// UploadedRow is a raw row of a bulk upload before validation.
// Row is the 1-based position among data rows.
type UploadedRow struct {
	Material string
	Stage    string
	CO2      string
	Energy   string
	Water    string
	Row      int
}

// AggregatedRecord is the mean of all uploaded rows for one material and
// stage. Waste is not part of bulk uploads.
type AggregatedRecord struct {
	CO2    float64 `json:"co2" yaml:"co2"`
	Energy float64 `json:"energy" yaml:"energy"`
	Water  float64 `json:"water" yaml:"water"`
	Count  int     `json:"count" yaml:"count"`
}

// AggregatedDataset is the result of one bulk ingest run.
type AggregatedDataset struct {
	ProcessedAt time.Time                               `json:"processedAt" yaml:"processed_at"`
	Materials   map[Material]map[Stage]AggregatedRecord `json:"materials" yaml:"materials"`
	RunID       string                                  `json:"runId" yaml:"run_id"`
	Source      string                                  `json:"source" yaml:"source"`
	TotalRows   int                                     `json:"totalRows" yaml:"total_rows"`
}

// Record returns the aggregate for a material and stage.
func (d *AggregatedDataset) Record(material Material, stage Stage) (AggregatedRecord, bool) {
	if d == nil {
		return AggregatedRecord{}, false
	}
	stages, ok := d.Materials[material]
	if !ok {
		return AggregatedRecord{}, false
	}
	rec, ok := stages[stage]
	return rec, ok
}

// MaterialNames returns the materials present, sorted.
func (d *AggregatedDataset) MaterialNames() []Material {
	if d == nil {
		return nil
	}
	names := make([]Material, 0, len(d.Materials))
	for m := range d.Materials {
		names = append(names, m)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// StagesFor returns the stages present for a material in life-cycle order.
func (d *AggregatedDataset) StagesFor(material Material) []Stage {
	if d == nil {
		return nil
	}
	present := d.Materials[material]
	stages := make([]Stage, 0, len(present))
	for _, st := range Stages {
		if _, ok := present[st]; ok {
			stages = append(stages, st)
		}
	}
	return stages
}
