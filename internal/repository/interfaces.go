package repository

import (
	"context"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
)

// ComponentFilter narrows component listings. A zero value lists everything.
type ComponentFilter struct {
	CategoryID   string
	DisciplineID string
	Status       domain.ComponentStatus
	FreeOnly     bool   // only components outside any work package
	Search       string // substring match on code
	Limit        int    // 0 = unlimited; callers cap free-component search
}

// LedgerFilter narrows ledger entry listings. Zero fields are ignored.
type LedgerFilter struct {
	ProjectID    string
	Year         int
	Week         int
	PhaseID      string
	SquadID      string
	Status       domain.EntryStatus
	OpenProblems bool // only entries with an unresolved problem
}

// WorkPackageSummary holds the raw counts behind a work package's overall
// completion ratio: distinct members ever completed in any phase vs. the
// member count.
type WorkPackageSummary struct {
	WorkPackageID     string
	SquadID           *string
	CompletedDistinct int
	Members           int
}

// PhaseSummary holds the raw counts behind a per-phase completion ratio,
// in both instance (per scheduled row, across weeks) and distinct-component
// form so the aggregation policy can choose.
type PhaseSummary struct {
	WorkPackageID      string
	PhaseID            string
	CompletedInstances int
	TotalInstances     int
	CompletedDistinct  int
	TotalDistinct      int
}

type ComponentRepo interface {
	Create(ctx context.Context, c *domain.Component) error
	CreateBatch(ctx context.Context, cs []*domain.Component) error
	GetByID(ctx context.Context, id string) (*domain.Component, error)
	GetByCode(ctx context.Context, categoryID, code string) (*domain.Component, error)
	List(ctx context.Context, f ComponentFilter) ([]*domain.Component, error)
	ListByWorkPackage(ctx context.Context, wpID string) ([]*domain.Component, error)
	Update(ctx context.Context, c *domain.Component) error
	SetWorkPackage(ctx context.Context, id string, wpID *string) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByDiscipline(ctx context.Context, disciplineID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	SetOrdinal(ctx context.Context, id string, ordinal int) error
	Delete(ctx context.Context, id string) error
}

type SquadRepo interface {
	Create(ctx context.Context, s *domain.Squad) error
	GetByID(ctx context.Context, id string) (*domain.Squad, error)
	List(ctx context.Context) ([]*domain.Squad, error)
	Update(ctx context.Context, s *domain.Squad) error
	Delete(ctx context.Context, id string) error
}

type WorkPackageRepo interface {
	Create(ctx context.Context, w *domain.WorkPackage) error
	GetByID(ctx context.Context, id string) (*domain.WorkPackage, error)
	GetByCode(ctx context.Context, projectID, code string) (*domain.WorkPackage, error)
	List(ctx context.Context, projectID string) ([]*domain.WorkPackage, error)
	ListBySquad(ctx context.Context, squadID string) ([]*domain.WorkPackage, error)
	Update(ctx context.Context, w *domain.WorkPackage) error
	Delete(ctx context.Context, id string) error

	ListPhases(ctx context.Context, wpID string) ([]*domain.Phase, error)
	DeletePhases(ctx context.Context, wpID string) error
	InsertPhases(ctx context.Context, wpID string, phaseIDs []string) error
}

type LedgerRepo interface {
	Create(ctx context.Context, e *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	List(ctx context.Context, f LedgerFilter) ([]*domain.LedgerEntry, error)
	Update(ctx context.Context, e *domain.LedgerEntry) error
	Delete(ctx context.Context, id string) error

	// StatusCounts returns completed and total entry counts for a project,
	// the action ratio feeding the project-wide weighted KPI.
	StatusCounts(ctx context.Context, projectID string) (completed, total int, err error)
}

type PlanRepo interface {
	// UpsertEntry creates the (wp, phase, year, week) entry row if absent
	// and fills in the stored ID either way.
	UpsertEntry(ctx context.Context, e *domain.PlanEntry) error
	GetEntry(ctx context.Context, wpID, phaseID string, year, week int) (*domain.PlanEntry, error)
	ListEntries(ctx context.Context, wpID string) ([]*domain.PlanEntry, error)
	ListEntriesByWeek(ctx context.Context, projectID string, year, week int) ([]*domain.PlanEntry, error)
	DeleteEntry(ctx context.Context, id string) error

	DeleteComponents(ctx context.Context, entryID string) error
	InsertComponents(ctx context.Context, entryID string, componentIDs []string) error
	GetComponent(ctx context.Context, planComponentID string) (*domain.PlanComponent, error)
	UpdateComponent(ctx context.Context, pc *domain.PlanComponent) error
	UnplannedComponents(ctx context.Context, wpID, phaseID string) ([]*domain.Component, error)

	WorkPackageSummary(ctx context.Context, wpID string) (*WorkPackageSummary, error)
	PhaseSummary(ctx context.Context, wpID, phaseID string) (*PhaseSummary, error)
	ProjectSummaries(ctx context.Context, projectID string) ([]WorkPackageSummary, error)
	SquadSummaries(ctx context.Context, squadID string) ([]WorkPackageSummary, error)
}
