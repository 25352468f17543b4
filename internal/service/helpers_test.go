package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
	"github.com/Kiterion83/cantiere-scheduler/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv bundles a fresh database with repos and wired services.
type testEnv struct {
	database *sql.DB
	uow      db.UnitOfWork

	components   *repository.SQLiteComponentRepo
	phases       *repository.SQLitePhaseRepo
	squads       *repository.SQLiteSquadRepo
	workPackages *repository.SQLiteWorkPackageRepo
	ledger       *repository.SQLiteLedgerRepo
	plans        *repository.SQLitePlanRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		database:     database,
		uow:          testutil.NewTestUoW(database),
		components:   repository.NewSQLiteComponentRepo(database),
		phases:       repository.NewSQLitePhaseRepo(database),
		squads:       repository.NewSQLiteSquadRepo(database),
		workPackages: repository.NewSQLiteWorkPackageRepo(database),
		ledger:       repository.NewSQLiteLedgerRepo(database),
		plans:        repository.NewSQLitePlanRepo(database),
	}
}

func (e *testEnv) schedulerService(uow db.UnitOfWork) SchedulerService {
	if uow == nil {
		uow = e.uow
	}
	return NewSchedulerService(e.ledger, e.plans, e.components, e.workPackages, uow, nil)
}

func (e *testEnv) seedSquad(t *testing.T, name string) *domain.Squad {
	t.Helper()
	s := testutil.NewTestSquad(name)
	require.NoError(t, e.squads.Create(context.Background(), s))
	return s
}

func (e *testEnv) seedPhase(t *testing.T, disciplineID, name string, opts ...testutil.PhaseOption) *domain.Phase {
	t.Helper()
	p := testutil.NewTestPhase(disciplineID, name, opts...)
	require.NoError(t, e.phases.Create(context.Background(), p))
	return p
}

func (e *testEnv) seedWorkPackage(t *testing.T, projectID, name string, opts ...testutil.WorkPackageOption) *domain.WorkPackage {
	t.Helper()
	w := testutil.NewTestWorkPackage(projectID, name, opts...)
	require.NoError(t, e.workPackages.Create(context.Background(), w))
	return w
}

func (e *testEnv) seedComponent(t *testing.T, categoryID string, opts ...testutil.ComponentOption) *domain.Component {
	t.Helper()
	c := testutil.NewTestComponent(categoryID, opts...)
	require.NoError(t, e.components.Create(context.Background(), c))
	return c
}

// seedMembers creates n components owned by the work package.
func (e *testEnv) seedMembers(t *testing.T, wpID string, n int) []*domain.Component {
	t.Helper()
	members := make([]*domain.Component, n)
	for i := range members {
		members[i] = e.seedComponent(t, "spool", testutil.WithWorkPackageID(wpID))
	}
	return members
}

func componentIDs(cs []*domain.Component) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}
