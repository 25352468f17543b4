package cli

import (
	"context"
	"fmt"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli/formatter"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/spf13/cobra"
)

func newSquadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "squad",
		Short: "Manage squads",
	}

	cmd.AddCommand(
		newSquadAddCmd(app),
		newSquadListCmd(app),
		newSquadRemoveCmd(app),
	)

	return cmd
}

func newSquadAddCmd(app *App) *cobra.Command {
	var name, foreman string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new squad",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Squad{Name: name, Foreman: foreman}
			if err := app.Squads.Create(context.Background(), s); err != nil {
				return err
			}
			fmt.Printf("Created squad %s\n", s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Squad name")
	cmd.Flags().StringVar(&foreman, "foreman", "", "Squad foreman")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSquadListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List squads",
		RunE: func(cmd *cobra.Command, args []string) error {
			squads, err := app.Squads.List(context.Background())
			if err != nil {
				return err
			}
			if len(squads) == 0 {
				fmt.Println("No squads found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatSquadList(squads))
			return nil
		},
	}
}

func newSquadRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a squad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Squads.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed squad %s\n", args[0])
			return nil
		},
	}
}
