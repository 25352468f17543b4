package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/google/uuid"
)

type componentService struct {
	components repository.ComponentRepo
	uow        db.UnitOfWork
	searchCap  int
}

// NewComponentService creates a ComponentService. searchCap bounds free-text
// listings; 0 means unlimited.
func NewComponentService(components repository.ComponentRepo, uow db.UnitOfWork, searchCap int) ComponentService {
	return &componentService{components: components, uow: uow, searchCap: searchCap}
}

func (s *componentService) Create(ctx context.Context, c *domain.Component) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.components.Create(ctx, c)
}

func (s *componentService) GetByID(ctx context.Context, id string) (*domain.Component, error) {
	return s.components.GetByID(ctx, id)
}

func (s *componentService) GetByCode(ctx context.Context, categoryID, code string) (*domain.Component, error) {
	return s.components.GetByCode(ctx, categoryID, code)
}

func (s *componentService) List(ctx context.Context, f repository.ComponentFilter) ([]*domain.Component, error) {
	if f.Search != "" && (f.Limit == 0 || f.Limit > s.searchCap) && s.searchCap > 0 {
		f.Limit = s.searchCap
	}
	return s.components.List(ctx, f)
}

func (s *componentService) Update(ctx context.Context, c *domain.Component) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.components.Update(ctx, c)
}

func (s *componentService) Delete(ctx context.Context, id string) error {
	return s.components.Delete(ctx, id)
}

// Import creates one component per code in a single transaction. Empty
// and duplicate codes reject the whole batch before any write.
func (s *componentService) Import(ctx context.Context, categoryID, disciplineID string, codes []string) ([]*domain.Component, error) {
	if categoryID == "" {
		return nil, fmt.Errorf("import category is required: %w", domain.ErrValidation)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("import code list is empty: %w", domain.ErrValidation)
	}

	seen := make(map[string]bool, len(codes))
	now := time.Now().UTC()
	components := make([]*domain.Component, 0, len(codes))
	for i, raw := range codes {
		code := strings.TrimSpace(raw)
		if code == "" {
			return nil, fmt.Errorf("import line %d: empty code: %w", i+1, domain.ErrValidation)
		}
		if seen[code] {
			return nil, fmt.Errorf("import line %d: duplicate code %q: %w", i+1, code, domain.ErrValidation)
		}
		seen[code] = true
		components = append(components, &domain.Component{
			ID:           uuid.New().String(),
			Code:         code,
			CategoryID:   categoryID,
			DisciplineID: disciplineID,
			Status:       domain.ComponentNew,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteComponentRepo(tx).CreateBatch(ctx, components)
	})
	if err != nil {
		return nil, err
	}
	return components, nil
}
