package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func componentEntry(status EntryStatus, year, week int) *LedgerEntry {
	componentID := "comp-1"
	return &LedgerEntry{
		ID:          "entry-1",
		ProjectID:   "default",
		Year:        year,
		Week:        week,
		PhaseID:     "phase-1",
		ComponentID: &componentID,
		Status:      status,
	}
}

func TestLedgerEntry_Validate(t *testing.T) {
	e := componentEntry(EntryPlanned, 2025, 10)
	require.NoError(t, e.Validate())

	t.Run("requires exactly one unit", func(t *testing.T) {
		wpID := "wp-1"
		both := componentEntry(EntryPlanned, 2025, 10)
		both.WorkPackageID = &wpID
		assert.ErrorIs(t, both.Validate(), ErrValidation)

		neither := componentEntry(EntryPlanned, 2025, 10)
		neither.ComponentID = nil
		assert.ErrorIs(t, neither.Validate(), ErrValidation)
	})

	t.Run("week bounds", func(t *testing.T) {
		low := componentEntry(EntryPlanned, 2025, 0)
		assert.ErrorIs(t, low.Validate(), ErrValidation)

		high := componentEntry(EntryPlanned, 2025, 54)
		assert.ErrorIs(t, high.Validate(), ErrValidation)

		w53 := componentEntry(EntryPlanned, 2026, 53)
		assert.NoError(t, w53.Validate())
	})
}

func TestLedgerEntry_StartTransitions(t *testing.T) {
	now := time.Now().UTC()

	e := componentEntry(EntryPlanned, 2025, 10)
	require.NoError(t, e.Start(now))
	assert.Equal(t, EntryInProgress, e.Status)

	for _, status := range []EntryStatus{EntryInProgress, EntryCompleted, EntryPostponed} {
		e := componentEntry(status, 2025, 10)
		assert.ErrorIs(t, e.Start(now), ErrInvalidTransition, "start from %s", status)
	}
}

func TestLedgerEntry_Complete(t *testing.T) {
	now := time.Now().UTC()

	e := componentEntry(EntryInProgress, 2025, 10)
	require.NoError(t, e.Complete("mario", now))
	assert.Equal(t, EntryCompleted, e.Status)
	assert.Equal(t, "mario", e.CompletedBy)
	require.NotNil(t, e.CompletedAt)
	assert.Equal(t, now, *e.CompletedAt)

	for _, status := range []EntryStatus{EntryPlanned, EntryCompleted, EntryPostponed} {
		e := componentEntry(status, 2025, 10)
		assert.ErrorIs(t, e.Complete("mario", now), ErrInvalidTransition, "complete from %s", status)
	}
}

func TestLedgerEntry_Postpone(t *testing.T) {
	now := time.Now().UTC()

	t.Run("advances one week", func(t *testing.T) {
		e := componentEntry(EntryPlanned, 2025, 10)
		require.NoError(t, e.Postpone(now))
		assert.Equal(t, EntryPostponed, e.Status)
		assert.Equal(t, 2025, e.Year)
		assert.Equal(t, 11, e.Week)
	})

	t.Run("rolls into next year from week 52 of 2024", func(t *testing.T) {
		e := componentEntry(EntryPlanned, 2024, 52)
		require.NoError(t, e.Postpone(now))
		assert.Equal(t, 2025, e.Year)
		assert.Equal(t, 1, e.Week)
		assert.Equal(t, EntryPostponed, e.Status)
	})

	t.Run("respects 53-week years", func(t *testing.T) {
		e := componentEntry(EntryInProgress, 2020, 52)
		require.NoError(t, e.Postpone(now))
		assert.Equal(t, 2020, e.Year)
		assert.Equal(t, 53, e.Week)
	})

	t.Run("postponed again keeps moving", func(t *testing.T) {
		e := componentEntry(EntryPostponed, 2025, 10)
		require.NoError(t, e.Postpone(now))
		assert.Equal(t, 11, e.Week)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		e := componentEntry(EntryCompleted, 2025, 10)
		assert.ErrorIs(t, e.Postpone(now), ErrInvalidTransition)
	})
}

func TestLedgerEntry_ProblemOrthogonalToStatus(t *testing.T) {
	now := time.Now().UTC()

	e := componentEntry(EntryInProgress, 2025, 10)
	e.ReportProblem("crane unavailable", "mario", now)

	assert.Equal(t, EntryInProgress, e.Status)
	assert.True(t, e.Problem)
	assert.True(t, e.HasOpenProblem())
	assert.Equal(t, "crane unavailable", e.ProblemDescription)
	assert.Equal(t, "mario", e.ProblemReporter)

	require.NoError(t, e.ResolveProblem("luigi", now))
	assert.Equal(t, EntryInProgress, e.Status)
	assert.True(t, e.ProblemResolved)
	assert.False(t, e.HasOpenProblem())
	assert.Equal(t, "luigi", e.ProblemResolvedBy)
	require.NotNil(t, e.ProblemResolvedAt)
}

func TestLedgerEntry_ResolveWithoutProblem(t *testing.T) {
	e := componentEntry(EntryPlanned, 2025, 10)
	assert.ErrorIs(t, e.ResolveProblem("luigi", time.Now().UTC()), ErrInvalidTransition)
}

func TestLedgerEntry_ReportAgainClearsResolution(t *testing.T) {
	now := time.Now().UTC()

	e := componentEntry(EntryInProgress, 2025, 10)
	e.ReportProblem("first", "mario", now)
	require.NoError(t, e.ResolveProblem("luigi", now))

	e.ReportProblem("second", "anna", now)
	assert.True(t, e.HasOpenProblem())
	assert.False(t, e.ProblemResolved)
	assert.Empty(t, e.ProblemResolvedBy)
	assert.Nil(t, e.ProblemResolvedAt)
	assert.Equal(t, "second", e.ProblemDescription)
}
