package service

import (
	"context"
	"testing"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentService_CreateFillsDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := NewComponentService(env.components, env.uow, 0)
	ctx := context.Background()

	c := &domain.Component{Code: "SP-9001", CategoryID: "spool", DisciplineID: "piping", Status: domain.ComponentNew}
	require.NoError(t, svc.Create(ctx, c))
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	invalid := &domain.Component{CategoryID: "spool", DisciplineID: "piping", Status: domain.ComponentNew}
	assert.ErrorIs(t, svc.Create(ctx, invalid), domain.ErrValidation)
}

func TestComponentService_ListCapsSearch(t *testing.T) {
	env := newTestEnv(t)
	svc := NewComponentService(env.components, env.uow, 2)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		env.seedComponent(t, "spool")
	}

	// Free-text search is capped.
	got, err := svc.List(ctx, repository.ComponentFilter{Search: "SP-"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Plain listings are not.
	got, err = svc.List(ctx, repository.ComponentFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestComponentService_Import(t *testing.T) {
	env := newTestEnv(t)
	svc := NewComponentService(env.components, env.uow, 0)
	ctx := context.Background()

	created, err := svc.Import(ctx, "spool", "piping", []string{"IMP-001", " IMP-002 ", "IMP-003"})
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Equal(t, "IMP-002", created[1].Code, "codes are trimmed")

	stored, err := env.components.List(ctx, repository.ComponentFilter{CategoryID: "spool"})
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestComponentService_ImportValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewComponentService(env.components, env.uow, 0)
	ctx := context.Background()

	_, err := svc.Import(ctx, "", "piping", []string{"IMP-001"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Import(ctx, "spool", "piping", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Import(ctx, "spool", "piping", []string{"IMP-001", "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Import(ctx, "spool", "piping", []string{"IMP-001", "IMP-001"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Nothing was written by any of the rejected batches.
	stored, err := env.components.List(ctx, repository.ComponentFilter{CategoryID: "spool"})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestComponentService_ImportIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewComponentService(env.components, env.uow, 0)
	ctx := context.Background()

	// IMP-002 already exists, so the batch hits the unique constraint after
	// IMP-001 was inserted. The transaction must take IMP-001 down with it.
	require.NoError(t, svc.Create(ctx, &domain.Component{
		Code: "IMP-002", CategoryID: "spool", DisciplineID: "piping", Status: domain.ComponentNew,
	}))

	_, err := svc.Import(ctx, "spool", "piping", []string{"IMP-001", "IMP-002"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.components.GetByCode(ctx, "spool", "IMP-001")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
