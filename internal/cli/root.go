package cli

import (
	"github.com/Kiterion83/cantiere-scheduler/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the active project.
type App struct {
	ProjectID    string
	Components   service.ComponentService
	Phases       service.PhaseService
	Squads       service.SquadService
	WorkPackages service.WorkPackageService
	Scheduler    service.SchedulerService
	Progress     service.ProgressService
}

// NewRootCmd creates the top-level "cantiere" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "cantiere",
		Short: "Weekly scheduling and progress tracking for construction work",
	}

	root.AddCommand(
		newComponentCmd(app),
		newWPCmd(app),
		newPhaseCmd(app),
		newSquadCmd(app),
		newAssignCmd(app),
		newPlanCmd(app),
		newWeekCmd(app),
		newProgressCmd(app),
		newProblemsCmd(app),
	)

	return root
}
