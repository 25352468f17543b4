package service

import (
	"context"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/google/uuid"
)

type squadService struct {
	squads repository.SquadRepo
}

func NewSquadService(squads repository.SquadRepo) SquadService {
	return &squadService{squads: squads}
}

func (s *squadService) Create(ctx context.Context, sq *domain.Squad) error {
	if err := sq.Validate(); err != nil {
		return err
	}
	if sq.ID == "" {
		sq.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sq.CreatedAt = now
	sq.UpdatedAt = now
	return s.squads.Create(ctx, sq)
}

func (s *squadService) GetByID(ctx context.Context, id string) (*domain.Squad, error) {
	return s.squads.GetByID(ctx, id)
}

func (s *squadService) List(ctx context.Context) ([]*domain.Squad, error) {
	return s.squads.List(ctx)
}

func (s *squadService) Update(ctx context.Context, sq *domain.Squad) error {
	if err := sq.Validate(); err != nil {
		return err
	}
	sq.UpdatedAt = time.Now().UTC()
	return s.squads.Update(ctx, sq)
}

func (s *squadService) Delete(ctx context.Context, id string) error {
	return s.squads.Delete(ctx, id)
}
