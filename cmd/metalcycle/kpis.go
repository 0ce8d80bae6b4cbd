package main

import (
	"fmt"

	"github.com/Veraticus/metalcycle/internal/kpi"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/scenario"
	"github.com/spf13/cobra"
)

func (a *app) kpisCmd() *cobra.Command {
	var flags scenarioFlags

	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Score the circularity of the scenario",
		Long:  `Calculate recycling rate, resource efficiency, extended life and the overall circularity score (0-100).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := a.resolveScenario(cmd, &flags)
			if err != nil {
				return err
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.KPIs(input, kpi.Calculate(input))
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *app) compareCmd() *cobra.Command {
	var flags scenarioFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare linear and circular production",
		Long:  `Compare emissions, energy, waste and cost of a linear baseline with the circular scenario.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := a.resolveScenario(cmd, &flags)
			if err != nil {
				return err
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Comparison(input, kpi.Compare(input))
		},
	}

	flags.register(cmd)
	return cmd
}

// resolveScenario loads the saved scenario and applies flag overrides.
func (a *app) resolveScenario(cmd *cobra.Command, flags *scenarioFlags) (model.ScenarioInput, error) {
	ctx := cmd.Context()

	store, err := a.initStorage(ctx)
	if err != nil {
		return model.ScenarioInput{}, fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	record, err := a.loadScenario(ctx, scenario.NewStore(store))
	if err != nil {
		return model.ScenarioInput{}, err
	}
	return flags.apply(cmd, record.Input)
}
