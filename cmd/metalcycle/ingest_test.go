package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/metalcycle/internal/cli"
	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/ingest"
	"github.com/Veraticus/metalcycle/internal/testutil/uploads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCommand(t *testing.T) {
	env := newTestEnv(t)

	var want bytes.Buffer
	require.NoError(t, ingest.WriteSample(&want))

	t.Run("stdout", func(t *testing.T) {
		res := env.mustRun("sample")
		assert.Equal(t, want.String(), res.stdout)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(env.dir, "sample.csv")
		res := env.mustRun("sample", "-o", path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want.String(), string(data))
		assert.Contains(t, res.stderr, "Sample written to")
	})
}

func TestIngestSampleRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "sample.csv")
	env.mustRun("sample", "-o", path)

	res := env.mustRun("ingest", path, "--save", "--format", "json")

	var ds struct {
		Materials map[string]map[string]struct {
			CO2   float64 `json:"co2"`
			Count int     `json:"count"`
		} `json:"materials"`
		RunID     string `json:"runId"`
		Source    string `json:"source"`
		TotalRows int    `json:"totalRows"`
	}
	decodeJSON(t, res.stdout, &ds)
	assert.Equal(t, "sample.csv", ds.Source)
	assert.Equal(t, 5, ds.TotalRows)
	assert.NotEmpty(t, ds.RunID)
	require.Len(t, ds.Materials, 2)
	assert.Len(t, ds.Materials["aluminium"], 3)
	assert.Len(t, ds.Materials["copper"], 2)
	assert.InDelta(t, 12.8, ds.Materials["aluminium"]["smelting"].CO2, 1e-9)
	assert.Contains(t, res.stderr, "Imported 5 rows into 5 groups and saved as "+ds.RunID)

	list := env.mustRun("datasets", "list")
	assert.Contains(t, list.stdout, ds.RunID)
	assert.Contains(t, list.stdout, "sample.csv")

	predict := env.mustRun("predict")
	assert.Contains(t, predict.stderr, "Using dataset sample.csv ("+ds.RunID+")")

	reference := env.mustRun("predict", "--reference-only")
	assert.NotContains(t, reference.stderr, "Using dataset")
}

func TestIngestXLSX(t *testing.T) {
	env := newTestEnv(t)
	path := uploads.NewBuilder(t).
		WithMeasurement("copper", "mining", 8.4, 22, 15).
		WithMeasurement("Copper", "Mining", 4.2, 22, 15).
		WriteFile(env.dir, "measurements.xlsx")

	res := env.mustRun("ingest", path)

	assert.Contains(t, res.stdout, "Dataset ")
	assert.Contains(t, res.stdout, "6.30")
	assert.Contains(t, res.stderr, "Imported 2 rows into 1 groups")
	assert.NotContains(t, res.stderr, "saved as")

	list := env.mustRun("datasets", "list")
	assert.Contains(t, list.stdout, "No datasets saved")
}

func TestIngestValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	path := uploads.NewBuilder(t).
		WithFixture(uploads.FixtureThreeBadRows).
		WriteFile(env.dir, "bad.csv")

	res := env.run("", "ingest", path, "--save")

	require.Error(t, res.err)
	var validationErr *ingest.ValidationError
	require.ErrorAs(t, res.err, &validationErr)
	assert.Len(t, validationErr.Problems, 3)
	assert.Equal(t, "3 validation error(s) in bad.csv", common.UserMessage(res.err))
	assert.Contains(t, res.stdout, "bad.csv has 3 validation error(s)")
	assert.Equal(t, 3, strings.Count(res.stdout, "Row "))

	list := env.mustRun("datasets", "list")
	assert.Contains(t, list.stdout, "No datasets saved")
}

func TestIngestErrors(t *testing.T) {
	env := newTestEnv(t)

	notes := filepath.Join(env.dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("material,stage\n"), 0o600))

	broken := filepath.Join(env.dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(broken, []byte("not a workbook"), 0o600))

	tests := []struct {
		name    string
		path    string
		message string
	}{
		{name: "unsupported format", path: notes, message: "Unsupported file type"},
		{name: "unreadable workbook", path: broken, message: "Could not read broken.xlsx as xlsx"},
		{name: "missing file", path: filepath.Join(env.dir, "missing.csv"), message: "File not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run("", "ingest", tt.path)
			require.Error(t, res.err)
			assert.Contains(t, common.UserMessage(res.err), tt.message)
		})
	}
}

func TestIngestRespectsConfiguredMaterials(t *testing.T) {
	env := newTestEnv(t)
	cfg, err := os.ReadFile(env.cfgPath)
	require.NoError(t, err)
	cfg = append(cfg, []byte("ingest:\n  materials: [copper]\n")...)
	require.NoError(t, os.WriteFile(env.cfgPath, cfg, 0o600))

	path := uploads.NewBuilder(t).
		WithMeasurement("aluminium", "mining", 2.5, 15, 8).
		WriteFile(env.dir, "al.csv")

	res := env.run("", "ingest", path)

	require.Error(t, res.err)
	assert.Contains(t, res.stdout, "Invalid material 'aluminium'. Must be one of: copper")
}

func TestIngestUnexpectedErrorIsLogged(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var logs bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))

	var out bytes.Buffer
	a := &app{}
	cmd := a.ingestCmd()
	cause := errors.New("disk unavailable")

	err := a.ingestError(cmd, cli.NewRenderer(&out, cli.FormatTable), "/data/uploads/runs.csv", cause, false)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Could not ingest runs.csv", common.UserMessage(err))
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), `msg="Ingest failed"`)
	assert.Contains(t, logs.String(), "path=/data/uploads/runs.csv")
	assert.Contains(t, logs.String(), `error="disk unavailable"`)
	assert.Empty(t, out.String())
}
