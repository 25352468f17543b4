package cli

import (
	"context"
	"fmt"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Break a work package's week down into explicit components",
	}

	cmd.AddCommand(
		newPlanSetCmd(app),
		newPlanShowCmd(app),
		newPlanToggleCmd(app),
		newPlanUnplannedCmd(app),
	)

	return cmd
}

func newPlanSetCmd(app *App) *cobra.Command {
	var phase, category string
	var year, week int

	cmd := &cobra.Command{
		Use:   "set WP COMPONENT...",
		Short: "Replace the component list planned for one (wp, phase, week)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			componentIDs := make([]string, 0, len(args)-1)
			for _, arg := range args[1:] {
				id, err := resolveComponentID(ctx, app, category, arg)
				if err != nil {
					return err
				}
				componentIDs = append(componentIDs, id)
			}
			entry, err := app.Scheduler.PlanComponents(ctx, wpID, phase, year, week, componentIDs)
			if err != nil {
				return err
			}
			fmt.Printf("Planned %d components for %s %s\n",
				len(entry.Components), args[0], formatter.WeekLabel(entry.Year, entry.Week))
			return nil
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase ID")
	cmd.Flags().StringVar(&category, "category", "", "Category to resolve component codes in")
	weekFlags(cmd, &year, &week)
	_ = cmd.MarkFlagRequired("phase")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var year, week int

	cmd := &cobra.Command{
		Use:   "show WP",
		Short: "Show a work package's plan entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			members, err := app.WorkPackages.Members(ctx, wpID)
			if err != nil {
				return err
			}
			codes := componentCodes(members)

			board, err := app.Scheduler.WeekBoard(ctx, app.ProjectID, year, week)
			if err != nil {
				return err
			}
			// Narrow to this work package's plan entries.
			filtered := *board
			filtered.Entries = nil
			filtered.Plans = nil
			for _, p := range board.Plans {
				if p.WorkPackageID == wpID {
					filtered.Plans = append(filtered.Plans, p)
				}
			}
			fmt.Printf("%s\n", formatter.FormatWeekBoard(&filtered, codes))
			return nil
		},
	}

	weekFlags(cmd, &year, &week)

	return cmd
}

func newPlanToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle PLAN_COMPONENT_ID",
		Short: "Flip the completion flag of one planned component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pc, err := app.Scheduler.ToggleCompletion(context.Background(), args[0])
			if err != nil {
				return err
			}
			if pc.Completed {
				fmt.Printf("Component marked complete at %s\n", pc.CompletedAt.Format("2006-01-02 15:04"))
			} else {
				fmt.Println("Component marked incomplete")
			}
			return nil
		},
	}
}

func newPlanUnplannedCmd(app *App) *cobra.Command {
	var phase string

	cmd := &cobra.Command{
		Use:   "unplanned WP",
		Short: "List members never planned for a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			components, err := app.Scheduler.UnplannedComponents(ctx, wpID, phase)
			if err != nil {
				return err
			}
			if len(components) == 0 {
				fmt.Println("Every member is planned for this phase.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatComponentList(components))
			return nil
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase ID")
	_ = cmd.MarkFlagRequired("phase")

	return cmd
}
