package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/obs"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/google/uuid"
)

type schedulerService struct {
	ledger       repository.LedgerRepo
	plans        repository.PlanRepo
	components   repository.ComponentRepo
	workPackages repository.WorkPackageRepo
	uow          db.UnitOfWork
	observer     obs.Observer
}

func NewSchedulerService(
	ledger repository.LedgerRepo,
	plans repository.PlanRepo,
	components repository.ComponentRepo,
	workPackages repository.WorkPackageRepo,
	uow db.UnitOfWork,
	observer obs.Observer,
) SchedulerService {
	if observer == nil {
		observer = obs.NoopObserver{}
	}
	return &schedulerService{
		ledger:       ledger,
		plans:        plans,
		components:   components,
		workPackages: workPackages,
		uow:          uow,
		observer:     observer,
	}
}

func (s *schedulerService) observe(op, entityID string, start time.Time, err error) {
	event := obs.OpEvent{
		Op:        op,
		EntityID:  entityID,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			event.ErrorCode = "not_found"
		case errors.Is(err, repository.ErrAlreadyScheduled):
			event.ErrorCode = "already_scheduled"
		case errors.Is(err, repository.ErrInvalidMembership):
			event.ErrorCode = "invalid_membership"
		case errors.Is(err, repository.ErrPartialWrite):
			event.ErrorCode = "partial_write"
		case errors.Is(err, domain.ErrInvalidTransition):
			event.ErrorCode = "invalid_transition"
		case errors.Is(err, domain.ErrValidation):
			event.ErrorCode = "validation"
		default:
			event.ErrorCode = "internal"
		}
	}
	s.observer.OnOpComplete(event)
}

func (s *schedulerService) AssignComponent(ctx context.Context, projectID, componentID, phaseID string, year, week int, req AssignmentRequest) (entry *domain.LedgerEntry, err error) {
	defer func(start time.Time) { s.observe("assign_component", componentID, start, err) }(time.Now())

	c, err := s.components.GetByID(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if c.InWorkPackage() {
		return nil, fmt.Errorf("component %q belongs to a work package and is scheduled through it: %w", c.Code, repository.ErrInvalidMembership)
	}
	entry = s.newEntry(projectID, phaseID, year, week, req)
	entry.ComponentID = &componentID
	if err = s.createEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *schedulerService) AssignWorkPackage(ctx context.Context, projectID, wpID, phaseID string, year, week int, req AssignmentRequest) (entry *domain.LedgerEntry, err error) {
	defer func(start time.Time) { s.observe("assign_work_package", wpID, start, err) }(time.Now())

	wp, err := s.workPackages.GetByID(ctx, wpID)
	if err != nil {
		return nil, err
	}
	entry = s.newEntry(projectID, phaseID, year, week, req)
	entry.WorkPackageID = &wpID
	if entry.SquadID == nil {
		entry.SquadID = wp.SquadID
	}
	if err = s.createEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *schedulerService) newEntry(projectID, phaseID string, year, week int, req AssignmentRequest) *domain.LedgerEntry {
	now := time.Now().UTC()
	return &domain.LedgerEntry{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		Year:         year,
		Week:         week,
		PhaseID:      phaseID,
		SquadID:      req.SquadID,
		Priority:     req.Priority,
		Instructions: req.Instructions,
		Status:       domain.EntryPlanned,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *schedulerService) createEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return s.ledger.Create(ctx, entry)
}

func (s *schedulerService) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return s.ledger.GetByID(ctx, id)
}

func (s *schedulerService) ListEntries(ctx context.Context, f repository.LedgerFilter) ([]*domain.LedgerEntry, error) {
	return s.ledger.List(ctx, f)
}

func (s *schedulerService) DeleteEntry(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { s.observe("delete_entry", id, start, err) }(time.Now())
	err = s.ledger.Delete(ctx, id)
	return err
}

func (s *schedulerService) Start(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	return s.transition(ctx, "start", entryID, func(e *domain.LedgerEntry, now time.Time) error {
		return e.Start(now)
	})
}

func (s *schedulerService) Complete(ctx context.Context, entryID, actor string) (*domain.LedgerEntry, error) {
	return s.transition(ctx, "complete", entryID, func(e *domain.LedgerEntry, now time.Time) error {
		return e.Complete(actor, now)
	})
}

func (s *schedulerService) Postpone(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	return s.transition(ctx, "postpone", entryID, func(e *domain.LedgerEntry, now time.Time) error {
		return e.Postpone(now)
	})
}

func (s *schedulerService) ReportProblem(ctx context.Context, entryID, description, reporter string) (*domain.LedgerEntry, error) {
	return s.transition(ctx, "report_problem", entryID, func(e *domain.LedgerEntry, now time.Time) error {
		e.ReportProblem(description, reporter, now)
		return nil
	})
}

func (s *schedulerService) ResolveProblem(ctx context.Context, entryID, resolver string) (*domain.LedgerEntry, error) {
	return s.transition(ctx, "resolve_problem", entryID, func(e *domain.LedgerEntry, now time.Time) error {
		return e.ResolveProblem(resolver, now)
	})
}

func (s *schedulerService) transition(ctx context.Context, op, entryID string, apply func(*domain.LedgerEntry, time.Time) error) (entry *domain.LedgerEntry, err error) {
	defer func(start time.Time) { s.observe(op, entryID, start, err) }(time.Now())

	entry, err = s.ledger.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err = apply(entry, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err = s.ledger.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// PlanComponents replaces the explicit member list of one (wp, phase,
// year, week) plan entry. Delete-then-insert runs inside a transaction,
// so a mid-replace failure rolls back to the previous list.
func (s *schedulerService) PlanComponents(ctx context.Context, wpID, phaseID string, year, week int, componentIDs []string) (entry *domain.PlanEntry, err error) {
	defer func(start time.Time) { s.observe("plan_components", wpID, start, err) }(time.Now())

	if week < 1 || week > 53 {
		return nil, fmt.Errorf("week %d out of range 1-53: %w", week, domain.ErrValidation)
	}
	members, err := s.components.ListByWorkPackage(ctx, wpID)
	if err != nil {
		return nil, err
	}
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m.ID] = true
	}
	seen := make(map[string]bool, len(componentIDs))
	for _, id := range componentIDs {
		if !memberSet[id] {
			return nil, fmt.Errorf("component %q is not a member of the work package: %w", id, repository.ErrInvalidMembership)
		}
		if seen[id] {
			return nil, fmt.Errorf("component %q listed twice: %w", id, domain.ErrValidation)
		}
		seen[id] = true
	}

	entry = &domain.PlanEntry{WorkPackageID: wpID, PhaseID: phaseID, Year: year, Week: week}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		if err := txPlans.UpsertEntry(ctx, entry); err != nil {
			return err
		}
		if err := txPlans.DeleteComponents(ctx, entry.ID); err != nil {
			return fmt.Errorf("replace rolled back: %w: %w", repository.ErrPartialWrite, err)
		}
		if err := txPlans.InsertComponents(ctx, entry.ID, componentIDs); err != nil {
			return fmt.Errorf("replace rolled back: %w: %w", repository.ErrPartialWrite, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.plans.GetEntry(ctx, wpID, phaseID, year, week)
}

func (s *schedulerService) ToggleCompletion(ctx context.Context, planComponentID string) (pc *domain.PlanComponent, err error) {
	defer func(start time.Time) { s.observe("toggle_completion", planComponentID, start, err) }(time.Now())

	pc, err = s.plans.GetComponent(ctx, planComponentID)
	if err != nil {
		return nil, err
	}
	pc.Toggle(time.Now().UTC())
	if err = s.plans.UpdateComponent(ctx, pc); err != nil {
		return nil, err
	}
	return pc, nil
}

func (s *schedulerService) UnplannedComponents(ctx context.Context, wpID, phaseID string) ([]*domain.Component, error) {
	return s.plans.UnplannedComponents(ctx, wpID, phaseID)
}

func (s *schedulerService) WeekBoard(ctx context.Context, projectID string, year, week int) (*WeekBoard, error) {
	entries, err := s.ledger.List(ctx, repository.LedgerFilter{ProjectID: projectID, Year: year, Week: week})
	if err != nil {
		return nil, err
	}
	plans, err := s.plans.ListEntriesByWeek(ctx, projectID, year, week)
	if err != nil {
		return nil, err
	}
	return &WeekBoard{
		ProjectID: projectID,
		Year:      year,
		Week:      week,
		Entries:   entries,
		Plans:     plans,
	}, nil
}
