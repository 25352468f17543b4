package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli/formatter"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/spf13/cobra"
)

func newWPCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wp",
		Short: "Manage work packages",
	}

	cmd.AddCommand(
		newWPAddCmd(app),
		newWPListCmd(app),
		newWPInspectCmd(app),
		newWPPhasesCmd(app),
		newWPAddComponentCmd(app),
		newWPRemoveComponentCmd(app),
		newWPRemoveCmd(app),
	)

	return cmd
}

func newWPAddCmd(app *App) *cobra.Command {
	var code, name, squad, foreman, predecessor, color, start, end string
	var priority int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new work package",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.WorkPackage{
				ProjectID: app.ProjectID,
				Code:      strings.ToUpper(code),
				Name:      name,
				Foreman:   foreman,
				Priority:  priority,
				Color:     color,
			}
			if squad != "" {
				w.SquadID = &squad
			}
			if predecessor != "" {
				ctx := context.Background()
				predID, err := resolveWorkPackageID(ctx, app, predecessor)
				if err != nil {
					return err
				}
				w.PredecessorID = &predID
			}
			if start != "" {
				d, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				w.PlannedStart = &d
			}
			if end != "" {
				d, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				w.PlannedEnd = &d
			}

			if err := app.WorkPackages.Create(context.Background(), w); err != nil {
				return err
			}
			fmt.Printf("Created work package %s [%s]\n", w.Name, w.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Code, unique per project (e.g. WP-001)")
	cmd.Flags().StringVar(&name, "name", "", "Work package name")
	cmd.Flags().StringVar(&squad, "squad", "", "Assigned squad ID")
	cmd.Flags().StringVar(&foreman, "foreman", "", "Assigned foreman")
	cmd.Flags().StringVar(&predecessor, "after", "", "Predecessor work package (informational)")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority (higher first)")
	cmd.Flags().StringVar(&color, "color", "", "Color tag")
	cmd.Flags().StringVar(&start, "start", "", "Planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newWPListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List work packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			wps, err := app.WorkPackages.List(context.Background(), app.ProjectID)
			if err != nil {
				return err
			}
			if len(wps) == 0 {
				fmt.Println("No work packages found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatWorkPackageList(wps))
			return nil
		},
	}
}

func newWPInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect WP",
		Short: "Show a work package with its phases and members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.WorkPackages.GetByID(ctx, wpID)
			if err != nil {
				return err
			}
			phases, err := app.WorkPackages.ListPhases(ctx, wpID)
			if err != nil {
				return err
			}
			members, err := app.WorkPackages.Members(ctx, wpID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n\n", formatter.Header(fmt.Sprintf("%s — %s", w.Code, w.Name)))
			fmt.Printf("Foreman: %s  Priority: %d\n", w.Foreman, w.Priority)
			if w.PredecessorID != nil {
				fmt.Printf("After: %s\n", formatter.TruncID(*w.PredecessorID))
			}
			if len(phases) > 0 {
				fmt.Printf("\n%s\n", formatter.FormatPhaseList(phases))
			}
			if len(members) > 0 {
				fmt.Printf("\n%s\n", formatter.FormatComponentList(members))
			}
			return nil
		},
	}
}

func newWPPhasesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "phases WP PHASE_ID...",
		Short: "Replace the work package's ordered phase selection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkPackages.ReplacePhases(ctx, wpID, args[1:]); err != nil {
				return err
			}
			fmt.Printf("Set %d phases on work package %s\n", len(args)-1, args[0])
			return nil
		},
	}
}

func newWPAddComponentCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "claim WP COMPONENT",
		Short: "Add a free component to the work package",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			componentID, err := resolveComponentID(ctx, app, category, args[1])
			if err != nil {
				return err
			}
			if err := app.WorkPackages.AddMember(ctx, wpID, componentID); err != nil {
				return err
			}
			fmt.Printf("Added component %s to %s\n", args[1], args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category to resolve the component code in")

	return cmd
}

func newWPRemoveComponentCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "release WP COMPONENT",
		Short: "Release a component from the work package",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			componentID, err := resolveComponentID(ctx, app, category, args[1])
			if err != nil {
				return err
			}
			if err := app.WorkPackages.RemoveMember(ctx, wpID, componentID); err != nil {
				return err
			}
			fmt.Printf("Released component %s from %s\n", args[1], args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category to resolve the component code in")

	return cmd
}

func newWPRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove WP",
		Short: "Remove a work package and its scheduling rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wpID, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkPackages.Delete(ctx, wpID); err != nil {
				return err
			}
			fmt.Printf("Removed work package %s\n", args[0])
			return nil
		},
	}
}
