package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli/formatter"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/spf13/cobra"
)

func newProblemsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "List entries with an unresolved problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Scheduler.ListEntries(context.Background(), repository.LedgerFilter{
				ProjectID:    app.ProjectID,
				OpenProblems: true,
			})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No open problems.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatProblems(entries, time.Now()))
			return nil
		},
	}
}
