package cli

import (
	"context"
	"fmt"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli/formatter"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage the phase catalog",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseReorderCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var discipline, name string
	var ordinal int
	var mandatory, initial, final bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phase to a discipline's catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Phase{
				DisciplineID: discipline,
				Name:         name,
				Ordinal:      ordinal,
				Mandatory:    mandatory,
				IsInitial:    initial,
				IsFinal:      final,
			}
			if err := app.Phases.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Created phase %s in discipline %s\n", p.Name, discipline)
			return nil
		},
	}

	cmd.Flags().StringVar(&discipline, "discipline", "", "Discipline ID")
	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	cmd.Flags().IntVar(&ordinal, "ordinal", 0, "Position within the discipline")
	cmd.Flags().BoolVar(&mandatory, "mandatory", false, "Phase cannot be skipped")
	cmd.Flags().BoolVar(&initial, "initial", false, "Mark as the discipline's initial phase")
	cmd.Flags().BoolVar(&final, "final", false, "Mark as the discipline's final phase")
	_ = cmd.MarkFlagRequired("discipline")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	var discipline string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a discipline's phases in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			phases, err := app.Phases.ListByDiscipline(context.Background(), discipline)
			if err != nil {
				return err
			}
			if len(phases) == 0 {
				fmt.Println("No phases found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatPhaseList(phases))
			return nil
		},
	}

	cmd.Flags().StringVar(&discipline, "discipline", "", "Discipline ID")
	_ = cmd.MarkFlagRequired("discipline")

	return cmd
}

func newPhaseReorderCmd(app *App) *cobra.Command {
	var discipline string

	cmd := &cobra.Command{
		Use:   "reorder PHASE_ID...",
		Short: "Reassign ordinals for all phases of a discipline at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Phases.Reorder(context.Background(), discipline, args); err != nil {
				return err
			}
			fmt.Printf("Reordered %d phases in discipline %s\n", len(args), discipline)
			return nil
		},
	}

	cmd.Flags().StringVar(&discipline, "discipline", "", "Discipline ID")
	_ = cmd.MarkFlagRequired("discipline")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Phases.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed phase %s\n", args[0])
			return nil
		},
	}
}
