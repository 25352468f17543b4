package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli/formatter"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/spf13/cobra"
)

func newComponentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "component",
		Short: "Manage components",
	}

	cmd.AddCommand(
		newComponentAddCmd(app),
		newComponentListCmd(app),
		newComponentImportCmd(app),
		newComponentStatusCmd(app),
		newComponentRemoveCmd(app),
	)

	return cmd
}

func newComponentAddCmd(app *App) *cobra.Command {
	var code, category, discipline string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new component",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Component{
				Code:         code,
				CategoryID:   category,
				DisciplineID: discipline,
				Status:       domain.ComponentNew,
			}
			if err := app.Components.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Printf("Created component %s\n", c.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Component code (unique per category)")
	cmd.Flags().StringVar(&category, "category", "", "Category ID")
	cmd.Flags().StringVar(&discipline, "discipline", "", "Discipline ID")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("discipline")

	return cmd
}

func newComponentListCmd(app *App) *cobra.Command {
	var category, discipline, status, search string
	var free bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List components",
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := app.Components.List(context.Background(), repository.ComponentFilter{
				CategoryID:   category,
				DisciplineID: discipline,
				Status:       domain.ComponentStatus(status),
				FreeOnly:     free,
				Search:       search,
			})
			if err != nil {
				return err
			}
			if len(components) == 0 {
				fmt.Println("No components found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatComponentList(components))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&discipline, "discipline", "", "Filter by discipline")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (new|in_warehouse|at_site|in_progress|completed)")
	cmd.Flags().StringVar(&search, "search", "", "Substring match on code")
	cmd.Flags().BoolVar(&free, "free", false, "Only components outside any work package")

	return cmd
}

func newComponentImportCmd(app *App) *cobra.Command {
	var category, discipline string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Bulk-import components from a file with one code per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening code list: %w", err)
			}
			defer f.Close()

			var codes []string
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				codes = append(codes, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading code list: %w", err)
			}

			created, err := app.Components.Import(context.Background(), category, discipline, codes)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d components into category %s\n", len(created), category)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category ID")
	cmd.Flags().StringVar(&discipline, "discipline", "", "Discipline ID")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("discipline")

	return cmd
}

func newComponentStatusCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set a component's lifecycle status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveComponentID(ctx, app, category, args[0])
			if err != nil {
				return err
			}
			c, err := app.Components.GetByID(ctx, id)
			if err != nil {
				return err
			}
			c.Status = domain.ComponentStatus(args[1])
			if err := app.Components.Update(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Component %s is now %s\n", c.Code, c.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category to resolve the code in")

	return cmd
}

func newComponentRemoveCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a component and its scheduling rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveComponentID(ctx, app, category, args[0])
			if err != nil {
				return err
			}
			if err := app.Components.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed component %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category to resolve the code in")

	return cmd
}
