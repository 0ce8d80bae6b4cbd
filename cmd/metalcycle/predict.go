package main

import (
	"fmt"

	"github.com/Veraticus/metalcycle/internal/cli"
	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/estimate"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/reference"
	"github.com/Veraticus/metalcycle/internal/scenario"
	"github.com/spf13/cobra"
)

func (a *app) predictCmd() *cobra.Command {
	var (
		flags         scenarioFlags
		runID         string
		referenceOnly bool
	)

	cmd := &cobra.Command{
		Use:   "predict [material]",
		Short: "Estimate per-stage impacts for a material",
		Long: `Estimate CO₂, energy, water and waste for every life-cycle stage of a material
under the saved scenario. Flags override individual scenario fields for this run only.

Predictions come from the latest saved dataset layered over the reference data,
and are compared against the reference values to report variance and confidence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := a.initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			record, err := a.loadScenario(ctx, scenario.NewStore(store))
			if err != nil {
				return err
			}
			input, err := flags.apply(cmd, record.Input)
			if err != nil {
				return err
			}

			material := model.Aluminium
			if record.Extension != nil {
				material = record.Extension.Material
			}
			if len(args) == 1 {
				material, err = model.ParseMaterial(args[0])
				if err != nil {
					return common.NewUserError(fmt.Sprintf("Unknown material %q", args[0]), err)
				}
			}

			working, source, err := workingDataset(ctx, store, runID, referenceOnly)
			if err != nil {
				return err
			}

			est := estimate.NewWithConfig(working, reference.Default(), estimate.Config{
				CacheTTL:     a.cfg.Estimator.CacheTTL,
				DisableCache: a.cfg.Estimator.DisableCache,
			})
			defer est.Close()

			report := &cli.EstimateReport{Estimate: *est.Estimate(material, input)}
			if ext := record.Extension; ext != nil && ext.Material == material {
				if kg, ok := ext.QuantityKg(); ok {
					report.FunctionalUnit = ext.FunctionalUnit()
					report.ScaledTotals = estimate.ScaleTotals(report.Totals, kg)
				}
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			if source != "" && !r.Format().Structured() {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo("Using dataset "+source))
			}
			return r.Estimate(report)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&runID, "dataset", "", "predict from a saved dataset by run ID (default: latest)")
	cmd.Flags().BoolVar(&referenceOnly, "reference-only", false, "ignore saved datasets and use reference data only")
	cmd.MarkFlagsMutuallyExclusive("dataset", "reference-only")

	return cmd
}
