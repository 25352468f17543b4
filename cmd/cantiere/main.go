package main

import (
	"fmt"
	"os"

	"github.com/Kiterion83/cantiere-scheduler/internal/cli"
	"github.com/Kiterion83/cantiere-scheduler/internal/config"
	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/obs"
	"github.com/Kiterion83/cantiere-scheduler/internal/progress"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/Kiterion83/cantiere-scheduler/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	componentRepo := repository.NewSQLiteComponentRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	squadRepo := repository.NewSQLiteSquadRepo(database)
	wpRepo := repository.NewSQLiteWorkPackageRepo(database)
	ledgerRepo := repository.NewSQLiteLedgerRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer obs.Observer = obs.NoopObserver{}
	if cfg.LogOps {
		observer = obs.NewLogObserver(os.Stderr)
	}

	app := &cli.App{
		ProjectID:    cfg.ProjectID,
		Components:   service.NewComponentService(componentRepo, uow, cfg.SearchCap),
		Phases:       service.NewPhaseService(phaseRepo, uow),
		Squads:       service.NewSquadService(squadRepo),
		WorkPackages: service.NewWorkPackageService(wpRepo, componentRepo, phaseRepo, uow),
		Scheduler:    service.NewSchedulerService(ledgerRepo, planRepo, componentRepo, wpRepo, uow, observer),
		Progress:     service.NewProgressService(planRepo, ledgerRepo, wpRepo, progress.CountInstances),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
