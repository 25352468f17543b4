package cli

import (
	"context"
	"fmt"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Completion ratios: work package, squad, project",
	}

	cmd.AddCommand(
		newProgressWPCmd(app),
		newProgressSquadCmd(app),
		newProgressProjectCmd(app),
	)

	return cmd
}

func newProgressWPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wp WP",
		Short: "Show a work package's completion, overall and per phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			wp, err := app.WorkPackages.GetByID(ctx, wpID)
			if err != nil {
				return err
			}
			report, err := app.Progress.WorkPackage(ctx, wpID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatWorkPackageReport(report, wp.Code))
			return nil
		},
	}
}

func newProgressSquadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "squad ID",
		Short: "Show a squad's pooled completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			squad, err := app.Squads.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			report, err := app.Progress.Squad(ctx, squad.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSquadReport(report, squad.Name, wpCodeIndex(ctx, app)))
			return nil
		},
	}
}

func newProgressProjectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Show the project-wide weighted KPI",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			report, err := app.Progress.Project(ctx, app.ProjectID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatProjectReport(report, wpCodeIndex(ctx, app)))
			return nil
		},
	}
}

func wpCodeIndex(ctx context.Context, app *App) map[string]string {
	codes := make(map[string]string)
	wps, err := app.WorkPackages.List(ctx, app.ProjectID)
	if err != nil {
		return codes
	}
	for _, w := range wps {
		codes[w.ID] = w.Code
	}
	return codes
}
