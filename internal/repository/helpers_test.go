package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Seed helpers insert valid parent rows so foreign keys hold in the
// scheduling and plan tests below.

func seedSquad(t *testing.T, database *sql.DB, name string) *domain.Squad {
	t.Helper()
	s := testutil.NewTestSquad(name)
	require.NoError(t, NewSQLiteSquadRepo(database).Create(context.Background(), s))
	return s
}

func seedPhase(t *testing.T, database *sql.DB, disciplineID, name string) *domain.Phase {
	t.Helper()
	p := testutil.NewTestPhase(disciplineID, name)
	require.NoError(t, NewSQLitePhaseRepo(database).Create(context.Background(), p))
	return p
}

func seedWorkPackage(t *testing.T, database *sql.DB, projectID, name string, opts ...testutil.WorkPackageOption) *domain.WorkPackage {
	t.Helper()
	w := testutil.NewTestWorkPackage(projectID, name, opts...)
	require.NoError(t, NewSQLiteWorkPackageRepo(database).Create(context.Background(), w))
	return w
}

func seedComponent(t *testing.T, database *sql.DB, categoryID string, opts ...testutil.ComponentOption) *domain.Component {
	t.Helper()
	c := testutil.NewTestComponent(categoryID, opts...)
	require.NoError(t, NewSQLiteComponentRepo(database).Create(context.Background(), c))
	return c
}

func seedLedgerEntry(t *testing.T, database *sql.DB, projectID, phaseID string, year, week int, opts ...testutil.LedgerOption) *domain.LedgerEntry {
	t.Helper()
	e := testutil.NewTestLedgerEntry(projectID, phaseID, year, week, opts...)
	require.NoError(t, NewSQLiteLedgerRepo(database).Create(context.Background(), e))
	return e
}
