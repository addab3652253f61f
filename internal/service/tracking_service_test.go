package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRFIService_NumbersPerProject(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRFIService(repository.NewSQLiteRFIRepo(env.db), env.uow)
	ctx := context.Background()
	p1 := env.project(t, "Tower")
	p2 := env.project(t, "Bridge")

	a := &domain.RFI{ProjectID: p1.ID, Subject: "Beam splice"}
	b := &domain.RFI{ProjectID: p1.ID, Subject: "Anchor bolts"}
	c := &domain.RFI{ProjectID: p2.ID, Subject: "Deck camber"}
	for _, r := range []*domain.RFI{a, b, c} {
		require.NoError(t, svc.Create(ctx, r))
	}

	assert.Equal(t, 1, a.Number)
	assert.Equal(t, 2, b.Number)
	assert.Equal(t, 1, c.Number)
	assert.Equal(t, domain.RFIOpen, a.Status)
	assert.Equal(t, domain.PriorityMedium, a.Priority)
}

func TestRFIService_AnswerOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRFIService(repository.NewSQLiteRFIRepo(env.db), env.uow)
	ctx := context.Background()
	p := env.project(t, "Tower")
	r := &domain.RFI{ProjectID: p.ID, Subject: "Beam splice"}
	require.NoError(t, svc.Create(ctx, r))

	answered, err := svc.Answer(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RFIAnswered, answered.Status)
	assert.NotNil(t, answered.AnsweredAt)

	_, err = svc.Answer(ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestChangeOrderService_SetStatus(t *testing.T) {
	env := newTestEnv(t)
	svc := NewChangeOrderService(repository.NewSQLiteChangeOrderRepo(env.db), env.uow)
	ctx := context.Background()
	p := env.project(t, "Tower")
	c := &domain.ChangeOrder{ProjectID: p.ID, Title: "Add mezzanine", CostImpact: 42000, ScheduleImpactDays: 5}
	require.NoError(t, svc.Create(ctx, c))
	assert.Equal(t, 1, c.Number)
	assert.Equal(t, domain.ChangeOrderPending, c.Status)

	_, err := svc.SetStatus(ctx, c.ID, domain.ChangeOrderPending)
	assert.ErrorIs(t, err, domain.ErrValidation)

	approved, err := svc.SetStatus(ctx, c.ID, domain.ChangeOrderApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeOrderApproved, approved.Status)

	_, err = svc.SetStatus(ctx, c.ID, domain.ChangeOrderRejected)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeliveryService_MarkDelivered(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDeliveryService(repository.NewSQLiteDeliveryRepo(env.db))
	ctx := context.Background()
	p := env.project(t, "Tower")
	d := &domain.Delivery{ProjectID: p.ID, Description: "W12x26 beams", Supplier: "Nucor",
		ScheduledDate: testutil.Date("2026-02-01")}
	require.NoError(t, svc.Create(ctx, d))
	assert.Equal(t, domain.DeliveryScheduled, d.Status)

	got, err := svc.MarkDelivered(ctx, d.ID, testutil.Date("2026-02-04"))
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryDelivered, got.Status)
	assert.Equal(t, 3, got.DelayDays())

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].DeliveredDate)
}

func TestSOVService_Bill(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSOVService(env.sov)
	ctx := context.Background()
	p := env.project(t, "Tower")
	item := &domain.SOVItem{ProjectID: p.ID, ItemNumber: "05-100", ScheduledValue: 1000}
	require.NoError(t, svc.Create(ctx, item))

	got, err := svc.Bill(ctx, item.ID, 250)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got.PercentBilled(), 0.001)

	_, err = svc.Bill(ctx, item.ID, 800)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Bill(ctx, item.ID, -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIncidentService_CreateAndClose(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIncidentService(env.incidents)
	ctx := context.Background()
	p := env.project(t, "Tower")
	inc := &domain.SafetyIncident{ProjectID: p.ID, Title: "Dropped load", Severity: domain.PriorityCritical}
	require.NoError(t, svc.Create(ctx, inc))
	assert.True(t, inc.IsCritical())
	assert.False(t, inc.ReportedAt.IsZero())

	closed, err := svc.Close(ctx, inc.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsCritical())
	assert.NotNil(t, closed.ClosedAt)

	err = svc.Create(ctx, &domain.SafetyIncident{ProjectID: p.ID, Title: "Slip", Severity: "extreme"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFinancialService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFinancialService(env.financials)
	ctx := context.Background()
	p := env.project(t, "Tower")
	f := &domain.Financial{ProjectID: p.ID, Category: "Steel", BudgetAmount: 1000}
	require.NoError(t, svc.Create(ctx, f))

	f.ActualAmount = 1200
	require.NoError(t, svc.Update(ctx, f))

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.InDelta(t, -200.0, list[0].Variance(), 0.001)

	require.NoError(t, svc.Delete(ctx, f.ID))
	assert.ErrorIs(t, svc.Delete(ctx, f.ID), domain.ErrNotFound)
}
