package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/metalcycle/internal/model"
)

// Column names every upload must carry.
const (
	ColumnMaterial = "material"
	ColumnStage    = "stage"
	ColumnCO2      = "co2"
	ColumnEnergy   = "energy"
	ColumnWater    = "water"
)

// RequiredColumns lists the upload columns in canonical order.
var RequiredColumns = []string{ColumnMaterial, ColumnStage, ColumnCO2, ColumnEnergy, ColumnWater}

var numericColumns = []string{ColumnCO2, ColumnEnergy, ColumnWater}

// ValidationError carries every problem found in an upload.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	switch len(e.Problems) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e.Problems[0]
	default:
		return fmt.Sprintf("validation failed with %d problems: %s", len(e.Problems), e.Problems[0])
	}
}

// Schema is the closed set of values an upload may contain.
type Schema struct {
	Materials []model.Material
	Stages    []model.Stage
}

// DefaultSchema accepts the materials that have reference data and every
// life-cycle stage.
func DefaultSchema() Schema {
	return Schema{
		Materials: []model.Material{model.Aluminium, model.Copper},
		Stages:    append([]model.Stage(nil), model.Stages...),
	}
}

// Validate checks a parsed table. A structural problem (no rows or missing
// columns) is reported alone; otherwise every row is checked and every
// problem collected. It returns nil or a *ValidationError.
func (s Schema) Validate(t *Table) error {
	return s.validate(t, nil)
}

func (s Schema) validate(t *Table, progress ProgressFunc) error {
	if t.Len() == 0 {
		return &ValidationError{Problems: []string{"No data found in file"}}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !t.HasHeader(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Problems: []string{
			"Missing required fields: " + strings.Join(missing, ", "),
		}}
	}

	var problems []string
	total := t.Len()
	for i, record := range t.Records {
		problems = append(problems, s.validateRecord(i+1, record)...)
		if progress != nil {
			progress(i+1, total)
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (s Schema) validateRecord(row int, record map[string]string) []string {
	var problems []string

	material := record[ColumnMaterial]
	if !s.allowsMaterial(material) {
		problems = append(problems, fmt.Sprintf("Row %d: Invalid material '%s'. Must be one of: %s",
			row, material, joinMaterials(s.Materials)))
	}

	stage := record[ColumnStage]
	if !s.allowsStage(stage) {
		problems = append(problems, fmt.Sprintf("Row %d: Invalid stage '%s'. Must be one of: %s",
			row, stage, joinStages(s.Stages)))
	}

	for _, col := range numericColumns {
		if _, err := parseAmount(record[col]); err != nil {
			problems = append(problems, fmt.Sprintf("Row %d: Invalid %s value '%s'. Must be a non-negative number",
				row, col, record[col]))
		}
	}
	return problems
}

func (s Schema) allowsMaterial(v string) bool {
	name := normalize(v)
	for _, m := range s.Materials {
		if string(m) == name {
			return true
		}
	}
	return false
}

func (s Schema) allowsStage(v string) bool {
	name := normalize(v)
	for _, st := range s.Stages {
		if string(st) == name {
			return true
		}
	}
	return false
}

// parseAmount accepts finite, non-negative decimal numbers.
func parseAmount(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("%w: %s", model.ErrInvalidMetrics, v)
	}
	return f, nil
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func joinMaterials(ms []model.Material) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func joinStages(stages []model.Stage) string {
	names := make([]string, len(stages))
	for i, st := range stages {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}
