package cli

import (
	"context"
	"fmt"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli/formatter"
	"github.com/Kiterion83/cantiere-scheduler/internal/isoweek"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/spf13/cobra"
)

func newWeekCmd(app *App) *cobra.Command {
	var year, week, shift int

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the weekly board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			y, w := year, week
			if shift != 0 {
				y, w = isoweek.Shift(y, w, shift)
			}
			board, err := app.Scheduler.WeekBoard(ctx, app.ProjectID, y, w)
			if err != nil {
				return err
			}

			components, err := app.Components.List(ctx, repository.ComponentFilter{})
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatWeekBoard(board, componentCodes(components)))
			return nil
		},
	}

	weekFlags(cmd, &year, &week)
	cmd.Flags().IntVar(&shift, "shift", 0, "Shift the shown week by N weeks (negative for past)")

	return cmd
}
