package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/metalcycle/internal/cli"
	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/Veraticus/metalcycle/internal/scenario"
	"github.com/spf13/cobra"
)

func (a *app) scenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Show or change the saved scenario",
		Long: `The saved scenario is used by predict, kpis and compare. It holds the recycled
content, energy source and transport distance, plus an optional description of
the product (material, quantity, production route, waste and end-of-life).`,
	}

	cmd.AddCommand(a.scenarioShowCmd())
	cmd.AddCommand(a.scenarioSetCmd())
	cmd.AddCommand(a.scenarioResetCmd())

	return cmd
}

func (a *app) scenarioShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Scenario(record)
		},
	}
}

// extensionFlags describe the product a scenario is about.
type extensionFlags struct {
	material      string
	unit          string
	route         string
	transportMode string
	waste         []string
	endOfLife     []string
	quantity      float64
	clear         bool
}

func (f *extensionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.material, "material", "", "material (aluminium, copper, lithium, rare earths, nickel)")
	cmd.Flags().Float64Var(&f.quantity, "quantity", 0, "quantity of material")
	cmd.Flags().StringVar(&f.unit, "unit", "", "unit of quantity (kg, tonne, pieces)")
	cmd.Flags().StringVar(&f.route, "route", "", "production route (Primary, Secondary, Hybrid)")
	cmd.Flags().StringVar(&f.transportMode, "transport-mode", "", "transport mode (Truck, Rail, Ship)")
	cmd.Flags().StringSliceVar(&f.waste, "waste", nil, "waste streams (Red Mud, Dross, Tailings, Spent Pot Lining, Slag)")
	cmd.Flags().StringSliceVar(&f.endOfLife, "end-of-life", nil, "end-of-life pathways (Reuse, Recycling, Landfill, Recovery)")
	cmd.Flags().BoolVar(&f.clear, "clear-product", false, "remove the product description")
}

// apply returns the extension after flag changes, or nil when cleared.
func (f *extensionFlags) apply(cmd *cobra.Command, current *model.ScenarioExtension) (*model.ScenarioExtension, error) {
	if f.clear {
		return nil, nil
	}

	changed := false
	for _, name := range []string{"material", "quantity", "unit", "route", "transport-mode", "waste", "end-of-life"} {
		if cmd.Flags().Changed(name) {
			changed = true
			break
		}
	}
	if !changed {
		return current, nil
	}

	ext := &model.ScenarioExtension{Material: model.Aluminium, Unit: model.UnitKg}
	if current != nil {
		copied := *current
		ext = &copied
	}

	if cmd.Flags().Changed("material") {
		m, err := model.ParseMaterial(f.material)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Unknown material %q", f.material), err)
		}
		ext.Material = m
	}
	if cmd.Flags().Changed("quantity") {
		ext.Quantity = f.quantity
	}
	if cmd.Flags().Changed("unit") {
		ext.Unit = f.unit
	}
	if cmd.Flags().Changed("route") {
		ext.ProductionRoute = f.route
	}
	if cmd.Flags().Changed("transport-mode") {
		ext.TransportMode = f.transportMode
	}
	if cmd.Flags().Changed("waste") {
		ext.WasteStreams = f.waste
	}
	if cmd.Flags().Changed("end-of-life") {
		ext.EndOfLife = f.endOfLife
	}
	return ext, nil
}

func (a *app) scenarioSetCmd() *cobra.Command {
	var (
		flags    scenarioFlags
		extFlags extensionFlags
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change fields of the saved scenario",
		Long:  `Change the saved scenario. Only the flags given are changed; everything else is kept.`,
		Example: `  metalcycle scenario set --recycled 80 --energy Hydro
  metalcycle scenario set --material copper --quantity 2 --unit tonne --transport-mode Rail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := a.initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			scenarios := scenario.NewStore(store)
			current, err := a.loadScenario(ctx, scenarios)
			if err != nil {
				return err
			}

			input, err := flags.apply(cmd, current.Input)
			if err != nil {
				return err
			}
			ext, err := extFlags.apply(cmd, current.Extension)
			if err != nil {
				return err
			}

			record, err := scenarios.Save(ctx, input, ext)
			if errors.Is(err, model.ErrInvalidScenario) || errors.Is(err, model.ErrInvalidExtension) {
				return common.NewUserError("Invalid scenario", err)
			}
			if err != nil {
				return err
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			if err := r.Scenario(record); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Scenario saved"))
			return nil
		},
	}

	flags.register(cmd)
	extFlags.register(cmd)
	return cmd
}

func (a *app) scenarioResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !yes {
				confirmed, err := cli.NewConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr()).
					Confirm(ctx, "Reset the saved scenario to the defaults?")
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo("Scenario unchanged"))
					return nil
				}
			}

			store, err := a.initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := scenario.NewStore(store).Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Scenario reset to defaults"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
