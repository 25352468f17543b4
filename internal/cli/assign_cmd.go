package cli

import (
	"context"
	"fmt"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli/formatter"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/isoweek"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/Kiterion83/cantiere-scheduler/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Schedule work onto ISO weeks and drive its lifecycle",
	}

	cmd.AddCommand(
		newAssignComponentCmd(app),
		newAssignWPCmd(app),
		newAssignListCmd(app),
		newAssignStartCmd(app),
		newAssignCompleteCmd(app),
		newAssignPostponeCmd(app),
		newAssignProblemCmd(app),
		newAssignResolveCmd(app),
		newAssignRemoveCmd(app),
	)

	return cmd
}

func weekFlags(cmd *cobra.Command, year, week *int) {
	addWeekFlags(cmd.Flags(), year, week)
}

func addWeekFlags(fs *pflag.FlagSet, year, week *int) {
	y, w := isoweek.Current()
	fs.IntVar(year, "year", y, "ISO year")
	fs.IntVar(week, "week", w, "ISO week (1-53)")
}

func newAssignComponentCmd(app *App) *cobra.Command {
	var phase, category, squad, instructions string
	var year, week, priority int

	cmd := &cobra.Command{
		Use:   "component COMPONENT",
		Short: "Schedule a free component onto a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			componentID, err := resolveComponentID(ctx, app, category, args[0])
			if err != nil {
				return err
			}
			req := service.AssignmentRequest{Priority: priority, Instructions: instructions}
			if squad != "" {
				req.SquadID = &squad
			}
			entry, err := app.Scheduler.AssignComponent(ctx, app.ProjectID, componentID, phase, year, week, req)
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled component %s for %s\n", args[0], formatter.WeekLabel(entry.Year, entry.Week))
			return nil
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase ID")
	cmd.Flags().StringVar(&category, "category", "", "Category to resolve the component code in")
	cmd.Flags().StringVar(&squad, "squad", "", "Executing squad ID")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority (higher first)")
	cmd.Flags().StringVar(&instructions, "note", "", "Instructions for the crew")
	weekFlags(cmd, &year, &week)
	_ = cmd.MarkFlagRequired("phase")

	return cmd
}

func newAssignWPCmd(app *App) *cobra.Command {
	var phase, squad, instructions string
	var year, week, priority int

	cmd := &cobra.Command{
		Use:   "wp WP",
		Short: "Schedule a work package onto a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			req := service.AssignmentRequest{Priority: priority, Instructions: instructions}
			if squad != "" {
				req.SquadID = &squad
			}
			entry, err := app.Scheduler.AssignWorkPackage(ctx, app.ProjectID, wpID, phase, year, week, req)
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled work package %s for %s\n", args[0], formatter.WeekLabel(entry.Year, entry.Week))
			return nil
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase ID")
	cmd.Flags().StringVar(&squad, "squad", "", "Executing squad ID (defaults to the package's squad)")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority (higher first)")
	cmd.Flags().StringVar(&instructions, "note", "", "Instructions for the crew")
	weekFlags(cmd, &year, &week)
	_ = cmd.MarkFlagRequired("phase")

	return cmd
}

func newAssignListCmd(app *App) *cobra.Command {
	var year, week int
	var squad, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := repository.LedgerFilter{ProjectID: app.ProjectID, SquadID: squad}
			if cmd.Flags().Changed("year") || cmd.Flags().Changed("week") {
				f.Year = year
				f.Week = week
			}
			if status != "" {
				f.Status = domain.EntryStatus(status)
			}
			entries, err := app.Scheduler.ListEntries(context.Background(), f)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No entries found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatLedgerEntries(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&squad, "squad", "", "Filter by squad")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (planned|in_progress|completed|postponed)")
	weekFlags(cmd, &year, &week)

	return cmd
}

func newAssignStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start ENTRY",
		Short: "Move a planned entry into execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Scheduler.Start(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Entry %s is now %s\n", args[0], entry.Status)
			return nil
		},
	}
}

func newAssignCompleteCmd(app *App) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "complete ENTRY",
		Short: "Complete an in-progress entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Scheduler.Complete(context.Background(), args[0], actor)
			if err != nil {
				return err
			}
			fmt.Printf("Entry %s completed at %s\n", args[0], entry.CompletedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "by", "", "Who completed the work")

	return cmd
}

func newAssignPostponeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "postpone ENTRY",
		Short: "Push an entry one week forward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Scheduler.Postpone(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Entry %s postponed to %s\n", args[0], formatter.WeekLabel(entry.Year, entry.Week))
			return nil
		},
	}
}

func newAssignProblemCmd(app *App) *cobra.Command {
	var description, reporter string

	cmd := &cobra.Command{
		Use:   "problem ENTRY",
		Short: "Report a problem on an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Scheduler.ReportProblem(context.Background(), args[0], description, reporter); err != nil {
				return err
			}
			fmt.Printf("Problem reported on entry %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "What went wrong")
	cmd.Flags().StringVar(&reporter, "by", "", "Who is reporting")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newAssignResolveCmd(app *App) *cobra.Command {
	var resolver string

	cmd := &cobra.Command{
		Use:   "resolve ENTRY",
		Short: "Resolve an entry's open problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Scheduler.ResolveProblem(context.Background(), args[0], resolver); err != nil {
				return err
			}
			fmt.Printf("Problem resolved on entry %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&resolver, "by", "", "Who resolved it")

	return cmd
}

func newAssignRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ENTRY",
		Short: "Delete a ledger entry, whatever its status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Scheduler.DeleteEntry(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed entry %s\n", args[0])
			return nil
		},
	}
}
