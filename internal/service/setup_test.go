package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/push"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db            *sql.DB
	uow           db.UnitOfWork
	projects      *repository.SQLiteProjectRepo
	tasks         *repository.SQLiteTaskRepo
	resources     *repository.SQLiteResourceRepo
	allocations   *repository.SQLiteAllocationRepo
	sov           *repository.SQLiteSOVRepo
	incidents     *repository.SQLiteIncidentRepo
	financials    *repository.SQLiteFinancialRepo
	notifications *repository.SQLiteNotificationRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:            database,
		uow:           testutil.NewTestUoW(database),
		projects:      repository.NewSQLiteProjectRepo(database),
		tasks:         repository.NewSQLiteTaskRepo(database),
		resources:     repository.NewSQLiteResourceRepo(database),
		allocations:   repository.NewSQLiteAllocationRepo(database),
		sov:           repository.NewSQLiteSOVRepo(database),
		incidents:     repository.NewSQLiteIncidentRepo(database),
		financials:    repository.NewSQLiteFinancialRepo(database),
		notifications: repository.NewSQLiteNotificationRepo(database),
	}
}

func (e *testEnv) project(t *testing.T, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, opts...)
	require.NoError(t, e.projects.Create(context.Background(), p))
	return p
}

func (e *testEnv) resource(t *testing.T, name string, typ domain.ResourceType, opts ...testutil.ResourceOption) *domain.Resource {
	t.Helper()
	r := testutil.NewTestResource(name, typ, opts...)
	require.NoError(t, e.resources.Create(context.Background(), r))
	return r
}

func (e *testEnv) task(t *testing.T, projectID, name string, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(projectID, name, opts...)
	require.NoError(t, e.tasks.Create(context.Background(), task))
	return task
}

// recordingPusher captures pushed messages and fails for listed users.
type recordingPusher struct {
	mu       sync.Mutex
	messages []push.Message
	failFor  map[string]bool
}

func (p *recordingPusher) Push(_ context.Context, msg push.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFor[msg.UserEmail] {
		return push.ErrUnavailable
	}
	p.messages = append(p.messages, msg)
	return nil
}

type recordingRecorder struct {
	runs   []bool
	alerts []string
	sent   int
}

func (r *recordingRecorder) ObserveMonitorRun(success bool, _ time.Duration) {
	r.runs = append(r.runs, success)
}
func (r *recordingRecorder) AlertRaised(alertType string) { r.alerts = append(r.alerts, alertType) }
func (r *recordingRecorder) NotificationsSent(n int)      { r.sent += n }

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

var errInjected = errors.New("injected failure")
