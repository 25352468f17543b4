package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/google/uuid"
)

type phaseService struct {
	phases repository.PhaseRepo
	uow    db.UnitOfWork
}

func NewPhaseService(phases repository.PhaseRepo, uow db.UnitOfWork) PhaseService {
	return &phaseService{phases: phases, uow: uow}
}

func (s *phaseService) Create(ctx context.Context, p *domain.Phase) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.checkMarkerFlags(ctx, p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.phases.Create(ctx, p)
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByDiscipline(ctx context.Context, disciplineID string) ([]*domain.Phase, error) {
	return s.phases.ListByDiscipline(ctx, disciplineID)
}

func (s *phaseService) Update(ctx context.Context, p *domain.Phase) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.checkMarkerFlags(ctx, p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.phases.Update(ctx, p)
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	return s.phases.Delete(ctx, id)
}

// Reorder reassigns ordinals 0..n-1 for the discipline's phases in one
// transaction. The id list must name each current sibling exactly once.
func (s *phaseService) Reorder(ctx context.Context, disciplineID string, orderedIDs []string) error {
	current, err := s.phases.ListByDiscipline(ctx, disciplineID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(current) {
		return fmt.Errorf("reorder lists %d phases, discipline has %d: %w", len(orderedIDs), len(current), domain.ErrValidation)
	}
	known := make(map[string]bool, len(current))
	for _, p := range current {
		known[p.ID] = true
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] {
			return fmt.Errorf("phase %q does not belong to discipline %q: %w", id, disciplineID, domain.ErrValidation)
		}
		if seen[id] {
			return fmt.Errorf("phase %q listed twice in reorder: %w", id, domain.ErrValidation)
		}
		seen[id] = true
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		for i, id := range orderedIDs {
			if err := txPhases.SetOrdinal(ctx, id, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// checkMarkerFlags enforces at most one is_initial and one is_final
// phase per discipline.
func (s *phaseService) checkMarkerFlags(ctx context.Context, p *domain.Phase) error {
	if !p.IsInitial && !p.IsFinal {
		return nil
	}
	siblings, err := s.phases.ListByDiscipline(ctx, p.DisciplineID)
	if err != nil {
		return err
	}
	for _, sib := range siblings {
		if sib.ID == p.ID {
			continue
		}
		if p.IsInitial && sib.IsInitial {
			return fmt.Errorf("discipline %q already has initial phase %q: %w", p.DisciplineID, sib.Name, domain.ErrValidation)
		}
		if p.IsFinal && sib.IsFinal {
			return fmt.Errorf("discipline %q already has final phase %q: %w", p.DisciplineID, sib.Name, domain.ErrValidation)
		}
	}
	return nil
}
