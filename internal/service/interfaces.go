package service

import (
	"context"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
)

type ComponentService interface {
	Create(ctx context.Context, c *domain.Component) error
	GetByID(ctx context.Context, id string) (*domain.Component, error)
	GetByCode(ctx context.Context, categoryID, code string) (*domain.Component, error)
	List(ctx context.Context, f repository.ComponentFilter) ([]*domain.Component, error)
	Update(ctx context.Context, c *domain.Component) error
	Delete(ctx context.Context, id string) error

	// Import bulk-creates components from a code list, all or nothing.
	Import(ctx context.Context, categoryID, disciplineID string, codes []string) ([]*domain.Component, error)
}

type PhaseService interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByDiscipline(ctx context.Context, disciplineID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	Delete(ctx context.Context, id string) error

	// Reorder atomically reassigns ordinals for every phase of a
	// discipline. orderedIDs must be a permutation of the discipline's
	// current phases.
	Reorder(ctx context.Context, disciplineID string, orderedIDs []string) error
}

type SquadService interface {
	Create(ctx context.Context, s *domain.Squad) error
	GetByID(ctx context.Context, id string) (*domain.Squad, error)
	List(ctx context.Context) ([]*domain.Squad, error)
	Update(ctx context.Context, s *domain.Squad) error
	Delete(ctx context.Context, id string) error
}

type WorkPackageService interface {
	Create(ctx context.Context, w *domain.WorkPackage) error
	GetByID(ctx context.Context, id string) (*domain.WorkPackage, error)
	GetByCode(ctx context.Context, projectID, code string) (*domain.WorkPackage, error)
	List(ctx context.Context, projectID string) ([]*domain.WorkPackage, error)
	ListBySquad(ctx context.Context, squadID string) ([]*domain.WorkPackage, error)
	Update(ctx context.Context, w *domain.WorkPackage) error
	Delete(ctx context.Context, id string) error

	ListPhases(ctx context.Context, wpID string) ([]*domain.Phase, error)
	// ReplacePhases atomically swaps the work package's ordered phase
	// selection.
	ReplacePhases(ctx context.Context, wpID string, phaseIDs []string) error

	Members(ctx context.Context, wpID string) ([]*domain.Component, error)
	// AddMember claims a free component for the work package. A
	// component already owned by another package is rejected.
	AddMember(ctx context.Context, wpID, componentID string) error
	RemoveMember(ctx context.Context, wpID, componentID string) error
}

// AssignmentRequest carries the optional fields of a new ledger entry.
type AssignmentRequest struct {
	SquadID      *string
	Priority     int
	Instructions string
}

// WeekBoard is everything scheduled for one (project, year, week):
// direct ledger entries plus the expanded work-package plan entries.
type WeekBoard struct {
	ProjectID string
	Year      int
	Week      int
	Entries   []*domain.LedgerEntry
	Plans     []*domain.PlanEntry
}

type SchedulerService interface {
	// AssignComponent schedules a free component onto a week. A
	// component owned by a work package is scheduled through its
	// package, never directly.
	AssignComponent(ctx context.Context, projectID, componentID, phaseID string, year, week int, req AssignmentRequest) (*domain.LedgerEntry, error)
	AssignWorkPackage(ctx context.Context, projectID, wpID, phaseID string, year, week int, req AssignmentRequest) (*domain.LedgerEntry, error)

	GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, f repository.LedgerFilter) ([]*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, id string) error

	Start(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	Complete(ctx context.Context, entryID, actor string) (*domain.LedgerEntry, error)
	Postpone(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	ReportProblem(ctx context.Context, entryID, description, reporter string) (*domain.LedgerEntry, error)
	ResolveProblem(ctx context.Context, entryID, resolver string) (*domain.LedgerEntry, error)

	// PlanComponents replaces the member list of the (wp, phase, year,
	// week) plan entry in one transaction.
	PlanComponents(ctx context.Context, wpID, phaseID string, year, week int, componentIDs []string) (*domain.PlanEntry, error)
	ToggleCompletion(ctx context.Context, planComponentID string) (*domain.PlanComponent, error)
	UnplannedComponents(ctx context.Context, wpID, phaseID string) ([]*domain.Component, error)

	WeekBoard(ctx context.Context, projectID string, year, week int) (*WeekBoard, error)
}

// PhaseProgressRow pairs a phase with its completion ratio for one work
// package.
type PhaseProgressRow struct {
	Phase *domain.Phase
	Ratio float64
}

// WorkPackageReport is the progress view of a single work package.
type WorkPackageReport struct {
	WorkPackageID     string
	CompletedDistinct int
	Members           int
	Ratio             float64
	Phases            []PhaseProgressRow
}

// SquadReport pools a squad's work packages into one ratio.
type SquadReport struct {
	SquadID      string
	WorkPackages []WorkPackageReport
	Ratio        float64
}

// ProjectReport is the project-wide weighted KPI plus its inputs.
type ProjectReport struct {
	ProjectID        string
	WorkPackages     []WorkPackageReport
	CompletedActions int
	TotalActions     int
	Weighted         float64
}

type ProgressService interface {
	WorkPackage(ctx context.Context, wpID string) (*WorkPackageReport, error)
	Squad(ctx context.Context, squadID string) (*SquadReport, error)
	Project(ctx context.Context, projectID string) (*ProjectReport, error)
}
