package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/metalcycle/internal/cli"
	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/ingest"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/spf13/cobra"
)

func (a *app) ingestCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Validate and aggregate an LCA data upload",
		Long: `Import measured LCA data from a CSV, XLSX or XLS file with the columns
material, stage, co2, energy and water.

Every row is validated before anything is aggregated; a single invalid row
rejects the whole file and all problems are listed. With --save the aggregated
dataset is stored and used by 'metalcycle predict'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := handler.HandleInterrupts(cmd.Context(), "Ingest")
			defer stop()

			config := ingest.DefaultConfig()
			if len(a.cfg.Ingest.Materials) > 0 {
				config.Schema.Materials = a.cfg.Ingest.Materials
			}
			if !r.Format().Structured() {
				config.Progress = cli.NewProgress(cmd.ErrOrStderr(), "Validating rows")
			}

			ds, err := ingest.NewIngestorWithConfig(config).IngestFile(ctx, path)
			if err != nil {
				return a.ingestError(cmd, r, path, err, handler.WasInterrupted())
			}

			if save {
				store, err := a.initStorage(ctx)
				if err != nil {
					return fmt.Errorf("failed to initialize storage: %w", err)
				}
				defer func() { _ = store.Close() }()

				if err := store.SaveDataset(ctx, ds); err != nil {
					return fmt.Errorf("failed to save dataset: %w", err)
				}
			}

			if err := r.Dataset(ds); err != nil {
				return err
			}

			summary := fmt.Sprintf("Imported %d rows into %d groups", ds.TotalRows, groupCount(ds))
			if save {
				summary += " and saved as " + ds.RunID
			}
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(summary))
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "store the aggregated dataset for predictions")
	return cmd
}

func (a *app) ingestError(cmd *cobra.Command, r *cli.Renderer, path string, err error, interrupted bool) error {
	var (
		validationErr *ingest.ValidationError
		parseErr      *ingest.ParseError
	)

	switch {
	case interrupted:
		return common.NewUserError("Ingest interrupted", err)
	case errors.As(err, &validationErr):
		if renderErr := r.ValidationProblems(filepath.Base(path), validationErr.Problems); renderErr != nil {
			return renderErr
		}
		return common.NewUserError(fmt.Sprintf("%d validation error(s) in %s", len(validationErr.Problems), filepath.Base(path)), err)
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		return common.NewUserError("Unsupported file type. Please upload a CSV or Excel file (.csv, .xlsx, .xls)", err)
	case errors.As(err, &parseErr):
		return common.NewUserError(fmt.Sprintf("Could not read %s as %s", filepath.Base(path), parseErr.Format), err)
	case errors.Is(err, os.ErrNotExist):
		return common.NewUserError(fmt.Sprintf("File not found: %s", path), err)
	default:
		common.LogError(err, "Ingest failed", common.Fields{"path": path})
		return common.NewUserError(fmt.Sprintf("Could not ingest %s", filepath.Base(path)), err)
	}
}

func groupCount(ds *model.AggregatedDataset) int {
	n := 0
	for _, stages := range ds.Materials {
		n += len(stages)
	}
	return n
}

func (a *app) sampleCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample upload file",
		Long:  `Write a CSV upload in the expected format, filled with reference values. Re-ingesting it succeeds without errors.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return ingest.WriteSample(cmd.OutOrStdout())
			}

			f, err := os.Create(output) // #nosec G304 - user-provided output path is expected
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := writeAndClose(f, ingest.WriteSample); err != nil {
				return fmt.Errorf("failed to write sample: %w", err)
			}

			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Sample written to "+output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func writeAndClose(f io.WriteCloser, write func(io.Writer) error) error {
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
