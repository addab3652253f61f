package cli

import (
	"fmt"

	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/spf13/cobra"
)

func newAllocationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "allocation",
		Aliases: []string{"alloc"},
		Short:   "Reserve a share of a resource for a date range",
	}

	cmd.AddCommand(
		newAllocationAddCmd(app),
		newAllocationListCmd(app),
		newAllocationRemoveCmd(app),
	)

	return cmd
}

func newAllocationAddCmd(app *App) *cobra.Command {
	var resource, project, start, end, notes string
	var percent float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Allocate a percentage of a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := resolveResource(ctx, app, resource)
			if err != nil {
				return err
			}
			projectID, err := resolveProjectFlag(ctx, app, project)
			if err != nil {
				return err
			}
			startDate, err := domain.ParseDate(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endDate, err := domain.ParseDate(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			a := &domain.ResourceAllocation{
				ResourceID:           r.ID,
				ProjectID:            projectID,
				StartDate:            startDate,
				EndDate:              endDate,
				AllocationPercentage: percent,
				Notes:                notes,
			}
			if err := app.Allocations.Create(ctx, a); err != nil {
				return err
			}
			printf(cmd, "Allocated %.0f%% of %s from %s to %s [%s]\n",
				percent, r.Name, start, end, formatter.TruncID(a.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Resource id or name")
	cmd.Flags().StringVar(&project, "project", "", "Project number or id")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&percent, "percent", 100, "Share of the resource, 1-100")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newAllocationListCmd(app *App) *cobra.Command {
	var resource string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List allocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var allocs []*domain.ResourceAllocation
			var err error
			if resource != "" {
				r, rerr := resolveResource(ctx, app, resource)
				if rerr != nil {
					return rerr
				}
				allocs, err = app.Allocations.ListByResource(ctx, r.ID)
			} else {
				allocs, err = app.Allocations.List(ctx)
			}
			if err != nil {
				return err
			}
			if len(allocs) == 0 {
				writeln(cmd, "No allocations found.")
				return nil
			}
			names, err := resourceNames(ctx, app)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatAllocationList(allocs, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Only allocations of this resource")

	return cmd
}

func newAllocationRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ALLOCATION_ID",
		Short: "Remove an allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			allocs, err := app.Allocations.List(ctx)
			if err != nil {
				return err
			}
			a, err := matchID("allocation", args[0], allocs, func(a *domain.ResourceAllocation) string { return a.ID })
			if err != nil {
				return err
			}
			if err := app.Allocations.Delete(ctx, a.ID); err != nil {
				return err
			}
			printf(cmd, "Removed allocation %s\n", formatter.TruncID(a.ID))
			return nil
		},
	}
}
