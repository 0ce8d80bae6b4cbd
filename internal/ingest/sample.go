package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/reference"
)

// sampleRows are the material and stage pairs in the downloadable sample.
var sampleRows = []struct {
	material model.Material
	stage    model.Stage
}{
	{model.Aluminium, model.StageMining},
	{model.Aluminium, model.StageRefining},
	{model.Aluminium, model.StageSmelting},
	{model.Copper, model.StageMining},
	{model.Copper, model.StageRefining},
}

// WriteSample writes a small CSV upload built from the reference values.
func WriteSample(w io.Writer) error {
	ref := reference.Default()
	cw := csv.NewWriter(w)

	if err := cw.Write(RequiredColumns); err != nil {
		return fmt.Errorf("failed to write sample header: %w", err)
	}
	for _, s := range sampleRows {
		m, ok := ref.Lookup(s.material, s.stage)
		if !ok {
			return fmt.Errorf("%w: no reference data for %s %s", model.ErrUnknownStage, s.material, s.stage)
		}
		record := []string{
			string(s.material),
			string(s.stage),
			formatAmount(m.CO2),
			formatAmount(m.Energy),
			formatAmount(m.Water),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write sample row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
