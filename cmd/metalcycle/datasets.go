package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/metalcycle/internal/cli"
	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/model"
	"github.com/spf13/cobra"
)

func (a *app) datasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"dataset", "ds"},
		Short:   "Manage saved ingest runs",
	}

	cmd.AddCommand(a.datasetsListCmd())
	cmd.AddCommand(a.datasetsShowCmd())
	cmd.AddCommand(a.datasetsDeleteCmd())

	return cmd
}

func (a *app) datasetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved datasets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := a.initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			summaries, err := store.ListDatasets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list datasets: %w", err)
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Datasets(summaries)
		},
	}
}

func (a *app) datasetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show the aggregated values of a dataset (default: latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := a.initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			var ds *model.AggregatedDataset
			if len(args) == 1 {
				ds, err = store.GetDataset(ctx, args[0])
			} else {
				ds, err = store.LatestDataset(ctx)
			}
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError("Dataset not found", err)
			}
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Dataset(ds)
		},
	}
}

func (a *app) datasetsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a saved dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runID := args[0]

			if !yes {
				confirmed, err := cli.NewConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr()).
					Confirm(ctx, fmt.Sprintf("Delete dataset %s?", runID))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo("Dataset kept"))
					return nil
				}
			}

			store, err := a.initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteDataset(ctx, runID); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError("Dataset not found", err)
				}
				return fmt.Errorf("failed to delete dataset: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Deleted dataset "+runID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
