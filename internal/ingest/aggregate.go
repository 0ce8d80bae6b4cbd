package ingest

import (
	"github.com/Veraticus/metalcycle/internal/model"
)

// Rows converts validated records into uploaded rows, normalising material
// and stage names to lower case.
func Rows(t *Table) []model.UploadedRow {
	rows := make([]model.UploadedRow, 0, t.Len())
	for i, record := range t.Records {
		rows = append(rows, model.UploadedRow{
			Row:      i + 1,
			Material: normalize(record[ColumnMaterial]),
			Stage:    normalize(record[ColumnStage]),
			CO2:      record[ColumnCO2],
			Energy:   record[ColumnEnergy],
			Water:    record[ColumnWater],
		})
	}
	return rows
}

// Aggregate groups rows by material and stage and averages each metric.
// Rows must already be validated; an unparsable amount counts as zero.
func Aggregate(rows []model.UploadedRow) *model.AggregatedDataset {
	type sums struct {
		co2, energy, water float64
		count              int
	}

	groups := make(map[model.Material]map[model.Stage]*sums)
	for _, row := range rows {
		material := model.Material(normalize(row.Material))
		stage := model.Stage(normalize(row.Stage))

		stages, ok := groups[material]
		if !ok {
			stages = make(map[model.Stage]*sums)
			groups[material] = stages
		}
		acc, ok := stages[stage]
		if !ok {
			acc = &sums{}
			stages[stage] = acc
		}

		co2, _ := parseAmount(row.CO2)
		energy, _ := parseAmount(row.Energy)
		water, _ := parseAmount(row.Water)
		acc.co2 += co2
		acc.energy += energy
		acc.water += water
		acc.count++
	}

	out := &model.AggregatedDataset{
		TotalRows: len(rows),
		Materials: make(map[model.Material]map[model.Stage]model.AggregatedRecord, len(groups)),
	}
	for material, stages := range groups {
		records := make(map[model.Stage]model.AggregatedRecord, len(stages))
		for stage, acc := range stages {
			n := float64(acc.count)
			records[stage] = model.AggregatedRecord{
				CO2:    acc.co2 / n,
				Energy: acc.energy / n,
				Water:  acc.water / n,
				Count:  acc.count,
			}
		}
		out.Materials[material] = records
	}
	return out
}
