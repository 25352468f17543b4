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

type workPackageService struct {
	workPackages repository.WorkPackageRepo
	components   repository.ComponentRepo
	phases       repository.PhaseRepo
	uow          db.UnitOfWork
}

func NewWorkPackageService(workPackages repository.WorkPackageRepo, components repository.ComponentRepo, phases repository.PhaseRepo, uow db.UnitOfWork) WorkPackageService {
	return &workPackageService{workPackages: workPackages, components: components, phases: phases, uow: uow}
}

func (s *workPackageService) Create(ctx context.Context, w *domain.WorkPackage) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	return s.workPackages.Create(ctx, w)
}

func (s *workPackageService) GetByID(ctx context.Context, id string) (*domain.WorkPackage, error) {
	return s.workPackages.GetByID(ctx, id)
}

func (s *workPackageService) GetByCode(ctx context.Context, projectID, code string) (*domain.WorkPackage, error) {
	return s.workPackages.GetByCode(ctx, projectID, code)
}

func (s *workPackageService) List(ctx context.Context, projectID string) ([]*domain.WorkPackage, error) {
	return s.workPackages.List(ctx, projectID)
}

func (s *workPackageService) ListBySquad(ctx context.Context, squadID string) ([]*domain.WorkPackage, error) {
	return s.workPackages.ListBySquad(ctx, squadID)
}

func (s *workPackageService) Update(ctx context.Context, w *domain.WorkPackage) error {
	if err := w.Validate(); err != nil {
		return err
	}
	w.UpdatedAt = time.Now().UTC()
	return s.workPackages.Update(ctx, w)
}

func (s *workPackageService) Delete(ctx context.Context, id string) error {
	return s.workPackages.Delete(ctx, id)
}

func (s *workPackageService) ListPhases(ctx context.Context, wpID string) ([]*domain.Phase, error) {
	return s.workPackages.ListPhases(ctx, wpID)
}

// ReplacePhases swaps the ordered phase selection in one transaction:
// delete the old rows, insert the new ones with fresh ordinals. Every
// id must name an existing catalog phase.
func (s *workPackageService) ReplacePhases(ctx context.Context, wpID string, phaseIDs []string) error {
	if _, err := s.workPackages.GetByID(ctx, wpID); err != nil {
		return err
	}
	seen := make(map[string]bool, len(phaseIDs))
	for _, id := range phaseIDs {
		if seen[id] {
			return fmt.Errorf("phase %q listed twice in selection: %w", id, domain.ErrValidation)
		}
		seen[id] = true
		if _, err := s.phases.GetByID(ctx, id); err != nil {
			return fmt.Errorf("phase %q: %w", id, err)
		}
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWPs := repository.NewSQLiteWorkPackageRepo(tx)
		if err := txWPs.DeletePhases(ctx, wpID); err != nil {
			return err
		}
		return txWPs.InsertPhases(ctx, wpID, phaseIDs)
	})
}

func (s *workPackageService) Members(ctx context.Context, wpID string) ([]*domain.Component, error) {
	return s.components.ListByWorkPackage(ctx, wpID)
}

func (s *workPackageService) AddMember(ctx context.Context, wpID, componentID string) error {
	if _, err := s.workPackages.GetByID(ctx, wpID); err != nil {
		return err
	}
	c, err := s.components.GetByID(ctx, componentID)
	if err != nil {
		return err
	}
	if c.InWorkPackage() && *c.WorkPackageID != wpID {
		return fmt.Errorf("component %q already belongs to another work package: %w", c.Code, repository.ErrInvalidMembership)
	}
	return s.components.SetWorkPackage(ctx, componentID, &wpID)
}

func (s *workPackageService) RemoveMember(ctx context.Context, wpID, componentID string) error {
	c, err := s.components.GetByID(ctx, componentID)
	if err != nil {
		return err
	}
	if !c.InWorkPackage() || *c.WorkPackageID != wpID {
		return fmt.Errorf("component %q is not a member of this work package: %w", c.Code, repository.ErrInvalidMembership)
	}
	return s.components.SetWorkPackage(ctx, componentID, nil)
}
