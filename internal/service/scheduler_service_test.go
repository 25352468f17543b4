package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/Kiterion83/cantiere-scheduler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AssignComponent(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	free := env.seedComponent(t, "spool")

	entry, err := svc.AssignComponent(ctx, "default", free.ID, phase.ID, 2025, 10, AssignmentRequest{Priority: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, domain.EntryPlanned, entry.Status)
	assert.Equal(t, 2, entry.Priority)

	stored, err := svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ComponentID)
	assert.Equal(t, free.ID, *stored.ComponentID)
}

func TestScheduler_AssignComponentOwnedByWorkPackage(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	wp := env.seedWorkPackage(t, "default", "Piperack north")
	owned := env.seedComponent(t, "spool", testutil.WithWorkPackageID(wp.ID))

	_, err := svc.AssignComponent(ctx, "default", owned.ID, phase.ID, 2025, 10, AssignmentRequest{})
	assert.ErrorIs(t, err, repository.ErrInvalidMembership)
}

func TestScheduler_AssignComponentTwiceSameWeek(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	fitUp := env.seedPhase(t, "piping", "Fit-up")
	welding := env.seedPhase(t, "piping", "Welding")
	c := env.seedComponent(t, "spool")

	_, err := svc.AssignComponent(ctx, "default", c.ID, fitUp.ID, 2025, 10, AssignmentRequest{})
	require.NoError(t, err)

	_, err = svc.AssignComponent(ctx, "default", c.ID, welding.ID, 2025, 10, AssignmentRequest{})
	assert.ErrorIs(t, err, repository.ErrAlreadyScheduled)

	_, err = svc.AssignComponent(ctx, "default", c.ID, welding.ID, 2025, 11, AssignmentRequest{})
	assert.NoError(t, err)
}

func TestScheduler_AssignWorkPackageDefaultsSquad(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	squad := env.seedSquad(t, "Squad A")
	wp := env.seedWorkPackage(t, "default", "Piperack north", testutil.WithSquadID(squad.ID))

	entry, err := svc.AssignWorkPackage(ctx, "default", wp.ID, phase.ID, 2025, 10, AssignmentRequest{})
	require.NoError(t, err)
	require.NotNil(t, entry.SquadID)
	assert.Equal(t, squad.ID, *entry.SquadID)

	// An explicit squad on the request wins.
	other := env.seedSquad(t, "Squad B")
	entry, err = svc.AssignWorkPackage(ctx, "default", wp.ID, phase.ID, 2025, 11, AssignmentRequest{SquadID: &other.ID})
	require.NoError(t, err)
	require.NotNil(t, entry.SquadID)
	assert.Equal(t, other.ID, *entry.SquadID)
}

func TestScheduler_AssignValidatesWeek(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	c := env.seedComponent(t, "spool")

	_, err := svc.AssignComponent(ctx, "default", c.ID, phase.ID, 2025, 0, AssignmentRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AssignComponent(ctx, "default", c.ID, phase.ID, 2025, 54, AssignmentRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestScheduler_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	c := env.seedComponent(t, "spool")

	entry, err := svc.AssignComponent(ctx, "default", c.ID, phase.ID, 2025, 10, AssignmentRequest{})
	require.NoError(t, err)

	started, err := svc.Start(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryInProgress, started.Status)

	done, err := svc.Complete(ctx, entry.ID, "mario")
	require.NoError(t, err)
	assert.Equal(t, domain.EntryCompleted, done.Status)
	assert.Equal(t, "mario", done.CompletedBy)
	require.NotNil(t, done.CompletedAt)

	// Terminal: nothing moves a completed entry.
	_, err = svc.Start(ctx, entry.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = svc.Postpone(ctx, entry.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// The transition stuck.
	stored, err := svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryCompleted, stored.Status)
}

func TestScheduler_PostponePersistsNewWeek(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	c := env.seedComponent(t, "spool")

	entry, err := svc.AssignComponent(ctx, "default", c.ID, phase.ID, 2024, 52, AssignmentRequest{})
	require.NoError(t, err)

	moved, err := svc.Postpone(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryPostponed, moved.Status)
	assert.Equal(t, 2025, moved.Year)
	assert.Equal(t, 1, moved.Week)

	stored, err := svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 2025, stored.Year)
	assert.Equal(t, 1, stored.Week)
}

func TestScheduler_PostponeIntoOccupiedWeek(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	c := env.seedComponent(t, "spool")

	entry, err := svc.AssignComponent(ctx, "default", c.ID, phase.ID, 2025, 10, AssignmentRequest{})
	require.NoError(t, err)
	_, err = svc.AssignComponent(ctx, "default", c.ID, phase.ID, 2025, 11, AssignmentRequest{})
	require.NoError(t, err)

	_, err = svc.Postpone(ctx, entry.ID)
	assert.ErrorIs(t, err, repository.ErrAlreadyScheduled)

	// Nothing moved.
	stored, err := svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Week)
	assert.Equal(t, domain.EntryPlanned, stored.Status)
}

func TestScheduler_ProblemFlow(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	c := env.seedComponent(t, "spool")

	entry, err := svc.AssignComponent(ctx, "default", c.ID, phase.ID, 2025, 10, AssignmentRequest{})
	require.NoError(t, err)
	_, err = svc.Start(ctx, entry.ID)
	require.NoError(t, err)

	flagged, err := svc.ReportProblem(ctx, entry.ID, "crane unavailable", "mario")
	require.NoError(t, err)
	assert.True(t, flagged.HasOpenProblem())
	assert.Equal(t, domain.EntryInProgress, flagged.Status, "problems never change status")

	// Work continues and finishes while the problem stays open.
	done, err := svc.Complete(ctx, entry.ID, "mario")
	require.NoError(t, err)
	assert.True(t, done.HasOpenProblem())

	resolved, err := svc.ResolveProblem(ctx, entry.ID, "luigi")
	require.NoError(t, err)
	assert.False(t, resolved.HasOpenProblem())
	assert.Equal(t, "luigi", resolved.ProblemResolvedBy)
}

func TestScheduler_PlanComponents(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	wp := env.seedWorkPackage(t, "default", "Piperack north")
	members := env.seedMembers(t, wp.ID, 3)

	entry, err := svc.PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, componentIDs(members[:2]))
	require.NoError(t, err)
	assert.Len(t, entry.Components, 2)

	t.Run("replace swaps the whole list", func(t *testing.T) {
		entry, err := svc.PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, []string{members[2].ID})
		require.NoError(t, err)
		require.Len(t, entry.Components, 1)
		assert.Equal(t, members[2].ID, entry.Components[0].ComponentID)
	})

	t.Run("same list twice is stable", func(t *testing.T) {
		ids := []string{members[2].ID}
		first, err := svc.PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, ids)
		require.NoError(t, err)
		second, err := svc.PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, ids)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, second.Components, 1)
	})

	t.Run("non-member rejected", func(t *testing.T) {
		stranger := env.seedComponent(t, "spool")
		_, err := svc.PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, []string{stranger.ID})
		assert.ErrorIs(t, err, repository.ErrInvalidMembership)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		_, err := svc.PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, []string{members[0].ID, members[0].ID})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("week out of range rejected", func(t *testing.T) {
		_, err := svc.PlanComponents(ctx, wp.ID, phase.ID, 2025, 54, componentIDs(members[:1]))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestScheduler_PlanComponentsRollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	wp := env.seedWorkPackage(t, "default", "Piperack north")
	members := env.seedMembers(t, wp.ID, 3)

	// Establish a known list with a healthy unit of work.
	_, err := env.schedulerService(nil).PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, []string{members[0].ID})
	require.NoError(t, err)

	// Within the replace transaction: touch entry, delete old rows, then one
	// insert per component. Failing on the second insert leaves the first
	// already applied, so only a rollback can restore the old list.
	boom := errors.New("disk I/O error")
	failing := &testutil.FailOnNthExecUoW{DB: env.database, FailOn: 4, Err: boom}

	_, err = env.schedulerService(failing).PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, componentIDs(members[1:]))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrPartialWrite)
	assert.ErrorIs(t, err, boom)

	// The previous list survived intact.
	entry, err := env.plans.GetEntry(ctx, wp.ID, phase.ID, 2025, 10)
	require.NoError(t, err)
	require.Len(t, entry.Components, 1)
	assert.Equal(t, members[0].ID, entry.Components[0].ComponentID)
}

func TestScheduler_ToggleCompletion(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	wp := env.seedWorkPackage(t, "default", "Piperack north")
	members := env.seedMembers(t, wp.ID, 1)

	entry, err := svc.PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, componentIDs(members))
	require.NoError(t, err)
	pcID := entry.Components[0].ID

	pc, err := svc.ToggleCompletion(ctx, pcID)
	require.NoError(t, err)
	assert.True(t, pc.Completed)
	assert.NotNil(t, pc.CompletedAt)

	pc, err = svc.ToggleCompletion(ctx, pcID)
	require.NoError(t, err)
	assert.False(t, pc.Completed)
	assert.Nil(t, pc.CompletedAt)

	_, err = svc.ToggleCompletion(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScheduler_WeekBoard(t *testing.T) {
	env := newTestEnv(t)
	svc := env.schedulerService(nil)
	ctx := context.Background()

	phase := env.seedPhase(t, "piping", "Fit-up")
	free := env.seedComponent(t, "spool")
	wp := env.seedWorkPackage(t, "default", "Piperack north")
	members := env.seedMembers(t, wp.ID, 2)

	_, err := svc.AssignComponent(ctx, "default", free.ID, phase.ID, 2025, 10, AssignmentRequest{})
	require.NoError(t, err)
	_, err = svc.AssignWorkPackage(ctx, "default", wp.ID, phase.ID, 2025, 10, AssignmentRequest{})
	require.NoError(t, err)
	_, err = svc.PlanComponents(ctx, wp.ID, phase.ID, 2025, 10, componentIDs(members))
	require.NoError(t, err)

	// Noise in another week.
	_, err = svc.AssignComponent(ctx, "default", free.ID, phase.ID, 2025, 11, AssignmentRequest{})
	require.NoError(t, err)

	board, err := svc.WeekBoard(ctx, "default", 2025, 10)
	require.NoError(t, err)
	assert.Equal(t, 2025, board.Year)
	assert.Equal(t, 10, board.Week)
	assert.Len(t, board.Entries, 2)
	require.Len(t, board.Plans, 1)
	assert.Len(t, board.Plans[0].Components, 2)
}
