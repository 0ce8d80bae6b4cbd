package uploads

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Header is the canonical upload header.
var Header = []string{"material", "stage", "co2", "energy", "water"}

// Builder provides a fluent interface for constructing upload files.
type Builder interface {
	// WithHeader replaces the header row.
	WithHeader(columns ...string) Builder

	// WithRow appends a raw row of cells.
	WithRow(cells ...string) Builder

	// WithMeasurement appends a well-formed row.
	WithMeasurement(material, stage string, co2, energy, water float64) Builder

	// WithFixture appends every row of a fixture.
	WithFixture(fixture Fixture) Builder

	// Rows returns the header followed by the data rows.
	Rows() [][]string

	// CSV renders the upload as CSV.
	CSV() []byte

	// XLSX renders the upload as a single-sheet workbook. Cells that parse
	// as numbers are written as numeric cells.
	XLSX() []byte

	// WriteFile writes the upload into dir, choosing CSV or XLSX from the
	// name's extension, and returns the full path.
	WriteFile(dir, name string) string
}

type uploadBuilder struct {
	t      *testing.T
	header []string
	rows   [][]string
}

// NewBuilder creates a new upload builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &uploadBuilder{
		t:      t,
		header: append([]string(nil), Header...),
	}
}

func (b *uploadBuilder) WithHeader(columns ...string) Builder {
	b.header = append([]string(nil), columns...)
	return b
}

func (b *uploadBuilder) WithRow(cells ...string) Builder {
	b.rows = append(b.rows, append([]string(nil), cells...))
	return b
}

func (b *uploadBuilder) WithMeasurement(material, stage string, co2, energy, water float64) Builder {
	return b.WithRow(material, stage, formatFloat(co2), formatFloat(energy), formatFloat(water))
}

func (b *uploadBuilder) WithFixture(fixture Fixture) Builder {
	for _, row := range fixture.Rows() {
		b.WithRow(row...)
	}
	return b
}

func (b *uploadBuilder) Rows() [][]string {
	out := make([][]string, 0, len(b.rows)+1)
	out = append(out, b.header)
	out = append(out, b.rows...)
	return out
}

func (b *uploadBuilder) CSV() []byte {
	b.t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(b.Rows()); err != nil {
		b.t.Fatalf("failed to render CSV upload: %v", err)
	}
	return buf.Bytes()
}

func (b *uploadBuilder) XLSX() []byte {
	b.t.Helper()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			b.t.Logf("failed to close workbook: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)
	for i, row := range b.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			b.t.Fatalf("failed to address row %d: %v", i+1, err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			if n, err := strconv.ParseFloat(v, 64); err == nil && i > 0 {
				values[j] = n
			} else {
				values[j] = v
			}
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			b.t.Fatalf("failed to write row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		b.t.Fatalf("failed to render XLSX upload: %v", err)
	}
	return buf.Bytes()
}

func (b *uploadBuilder) WriteFile(dir, name string) string {
	b.t.Helper()

	var data []byte
	if filepath.Ext(name) == ".xlsx" {
		data = b.XLSX()
	} else {
		data = b.CSV()
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		b.t.Fatalf("failed to write upload %s: %v", path, err)
	}
	return path
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
