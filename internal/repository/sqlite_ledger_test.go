package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(database)
	ctx := context.Background()

	phase := seedPhase(t, database, "piping", "Fit-up")
	squad := seedSquad(t, database, "Squad A")
	c := seedComponent(t, database, "spool")

	e := testutil.NewTestLedgerEntry("default", phase.ID, 2025, 10,
		testutil.ForComponent(c.ID),
		testutil.WithEntrySquad(squad.ID),
		testutil.WithInstructions("check gaskets first"))
	e.Priority = 3
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "default", got.ProjectID)
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, 10, got.Week)
	assert.Equal(t, domain.EntryPlanned, got.Status)
	assert.Equal(t, 3, got.Priority)
	assert.Equal(t, "check gaskets first", got.Instructions)
	require.NotNil(t, got.ComponentID)
	assert.Equal(t, c.ID, *got.ComponentID)
	assert.Nil(t, got.WorkPackageID)
	require.NotNil(t, got.SquadID)
	assert.Equal(t, squad.ID, *got.SquadID)
	assert.False(t, got.Problem)
	assert.Nil(t, got.CompletedAt)
}

func TestLedgerRepo_OneEntryPerUnitPerWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(database)
	ctx := context.Background()

	phase := seedPhase(t, database, "piping", "Fit-up")
	weld := seedPhase(t, database, "piping", "Welding")
	c := seedComponent(t, database, "spool")
	wp := seedWorkPackage(t, database, "default", "Piperack north")

	seedLedgerEntry(t, database, "default", phase.ID, 2025, 10, testutil.ForComponent(c.ID))

	t.Run("component blocked in same week even for another phase", func(t *testing.T) {
		dup := testutil.NewTestLedgerEntry("default", weld.ID, 2025, 10, testutil.ForComponent(c.ID))
		assert.ErrorIs(t, repo.Create(ctx, dup), ErrAlreadyScheduled)
	})

	t.Run("component fine in another week", func(t *testing.T) {
		next := testutil.NewTestLedgerEntry("default", phase.ID, 2025, 11, testutil.ForComponent(c.ID))
		assert.NoError(t, repo.Create(ctx, next))
	})

	t.Run("work packages constrained independently", func(t *testing.T) {
		first := testutil.NewTestLedgerEntry("default", phase.ID, 2025, 10, testutil.ForWorkPackage(wp.ID))
		require.NoError(t, repo.Create(ctx, first))

		dup := testutil.NewTestLedgerEntry("default", weld.ID, 2025, 10, testutil.ForWorkPackage(wp.ID))
		assert.ErrorIs(t, repo.Create(ctx, dup), ErrAlreadyScheduled)
	})
}

func TestLedgerRepo_UpdateIntoOccupiedWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(database)
	ctx := context.Background()

	phase := seedPhase(t, database, "piping", "Fit-up")
	c := seedComponent(t, database, "spool")

	seedLedgerEntry(t, database, "default", phase.ID, 2025, 10, testutil.ForComponent(c.ID))
	movable := seedLedgerEntry(t, database, "default", phase.ID, 2025, 11, testutil.ForComponent(c.ID))

	// A postpone that lands on an already scheduled week must be rejected.
	movable.Year = 2025
	movable.Week = 10
	movable.UpdatedAt = time.Now().UTC()
	assert.ErrorIs(t, repo.Update(ctx, movable), ErrAlreadyScheduled)
}

func TestLedgerRepo_UpdatePersistsLifecycleFields(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(database)
	ctx := context.Background()

	phase := seedPhase(t, database, "piping", "Fit-up")
	c := seedComponent(t, database, "spool")
	e := seedLedgerEntry(t, database, "default", phase.ID, 2025, 10, testutil.ForComponent(c.ID))

	now := time.Now().UTC().Truncate(time.Second)
	e.Status = domain.EntryCompleted
	e.CompletedBy = "mario"
	e.CompletedAt = &now
	e.Problem = true
	e.ProblemDescription = "crane unavailable"
	e.ProblemReporter = "anna"
	e.UpdatedAt = now
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryCompleted, got.Status)
	assert.Equal(t, "mario", got.CompletedBy)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(now))
	assert.True(t, got.Problem)
	assert.Equal(t, "crane unavailable", got.ProblemDescription)
	assert.False(t, got.ProblemResolved)
}

func TestLedgerRepo_ListFilters(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(database)
	ctx := context.Background()

	phase := seedPhase(t, database, "piping", "Fit-up")
	squad := seedSquad(t, database, "Squad A")
	c1 := seedComponent(t, database, "spool")
	c2 := seedComponent(t, database, "spool")
	c3 := seedComponent(t, database, "spool")

	seedLedgerEntry(t, database, "default", phase.ID, 2025, 10,
		testutil.ForComponent(c1.ID), testutil.WithEntrySquad(squad.ID))
	inProgress := seedLedgerEntry(t, database, "default", phase.ID, 2025, 10,
		testutil.ForComponent(c2.ID), testutil.WithEntryStatus(domain.EntryInProgress))
	troubled := seedLedgerEntry(t, database, "default", phase.ID, 2025, 11,
		testutil.ForComponent(c3.ID))
	seedLedgerEntry(t, database, "other-project", phase.ID, 2025, 10,
		testutil.ForComponent(c3.ID))

	troubled.Problem = true
	troubled.ProblemDescription = "missing material"
	troubled.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, troubled))

	t.Run("by week", func(t *testing.T) {
		got, err := repo.List(ctx, LedgerFilter{ProjectID: "default", Year: 2025, Week: 10})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by status", func(t *testing.T) {
		got, err := repo.List(ctx, LedgerFilter{ProjectID: "default", Status: domain.EntryInProgress})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, inProgress.ID, got[0].ID)
	})

	t.Run("by squad", func(t *testing.T) {
		got, err := repo.List(ctx, LedgerFilter{ProjectID: "default", SquadID: squad.ID})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("open problems", func(t *testing.T) {
		got, err := repo.List(ctx, LedgerFilter{ProjectID: "default", OpenProblems: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, troubled.ID, got[0].ID)
	})

	t.Run("resolved problems drop out", func(t *testing.T) {
		troubled.ProblemResolved = true
		troubled.ProblemResolvedBy = "luigi"
		require.NoError(t, repo.Update(ctx, troubled))

		got, err := repo.List(ctx, LedgerFilter{ProjectID: "default", OpenProblems: true})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestLedgerRepo_ListOrdersByWeekThenPriority(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(database)
	ctx := context.Background()

	phase := seedPhase(t, database, "piping", "Fit-up")
	c1 := seedComponent(t, database, "spool")
	c2 := seedComponent(t, database, "spool")

	low := testutil.NewTestLedgerEntry("default", phase.ID, 2025, 10, testutil.ForComponent(c1.ID))
	low.Priority = 1
	require.NoError(t, repo.Create(ctx, low))

	high := testutil.NewTestLedgerEntry("default", phase.ID, 2025, 10, testutil.ForComponent(c2.ID))
	high.Priority = 9
	require.NoError(t, repo.Create(ctx, high))

	earlier := seedLedgerEntry(t, database, "default", phase.ID, 2025, 9, testutil.ForComponent(c1.ID))

	got, err := repo.List(ctx, LedgerFilter{ProjectID: "default"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, earlier.ID, got[0].ID)
	assert.Equal(t, high.ID, got[1].ID)
	assert.Equal(t, low.ID, got[2].ID)
}

func TestLedgerRepo_StatusCounts(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(database)
	ctx := context.Background()

	phase := seedPhase(t, database, "piping", "Fit-up")
	c1 := seedComponent(t, database, "spool")
	c2 := seedComponent(t, database, "spool")
	c3 := seedComponent(t, database, "spool")

	seedLedgerEntry(t, database, "default", phase.ID, 2025, 10,
		testutil.ForComponent(c1.ID), testutil.WithEntryStatus(domain.EntryCompleted))
	seedLedgerEntry(t, database, "default", phase.ID, 2025, 10,
		testutil.ForComponent(c2.ID))
	seedLedgerEntry(t, database, "default", phase.ID, 2025, 11,
		testutil.ForComponent(c3.ID), testutil.WithEntryStatus(domain.EntryInProgress))

	completed, total, err := repo.StatusCounts(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 3, total)

	completed, total, err = repo.StatusCounts(ctx, "empty-project")
	require.NoError(t, err)
	assert.Zero(t, completed)
	assert.Zero(t, total)
}

func TestLedgerRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(database)
	ctx := context.Background()

	phase := seedPhase(t, database, "piping", "Fit-up")
	c := seedComponent(t, database, "spool")
	e := seedLedgerEntry(t, database, "default", phase.ID, 2025, 10, testutil.ForComponent(c.ID))

	require.NoError(t, repo.Delete(ctx, e.ID))
	_, err := repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Freed week is schedulable again.
	again := testutil.NewTestLedgerEntry("default", phase.ID, 2025, 10, testutil.ForComponent(c.ID))
	assert.NoError(t, repo.Create(ctx, again))
}
