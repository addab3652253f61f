package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/allocation"
	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/push"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MonitorRecorder receives monitor run telemetry. *metrics.Metrics satisfies it.
type MonitorRecorder interface {
	ObserveMonitorRun(success bool, d time.Duration)
	AlertRaised(alertType string)
	NotificationsSent(n int)
}

type noopRecorder struct{}

func (noopRecorder) ObserveMonitorRun(bool, time.Duration) {}
func (noopRecorder) AlertRaised(string)                    {}
func (noopRecorder) NotificationsSent(int)                 {}

type MonitorConfig struct {
	CertWindow time.Duration
	Pusher     push.Pusher
	Recorder   MonitorRecorder
	Logger     *zap.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

type monitorService struct {
	uow        db.UnitOfWork
	certWindow time.Duration
	pusher     push.Pusher
	recorder   MonitorRecorder
	log        *zap.Logger
	now        func() time.Time
	observer   UseCaseObserver
}

func NewMonitorService(uow db.UnitOfWork, cfg MonitorConfig, observers ...UseCaseObserver) MonitorService {
	s := &monitorService{
		uow:        uow,
		certWindow: cfg.CertWindow,
		pusher:     cfg.Pusher,
		recorder:   cfg.Recorder,
		log:        cfg.Logger,
		now:        cfg.Now,
		observer:   useCaseObserverOrNoop(observers),
	}
	if s.pusher == nil {
		s.pusher = push.NoopPusher{}
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// alert is one condition found on an in-progress project.
type alert struct {
	project     *domain.Project
	kind        domain.NotificationType
	referenceID string
	title       string
	message     string
	priority    domain.Priority
}

// monitorSnapshot is the state a monitor run evaluates.
type monitorSnapshot struct {
	projects    []*domain.Project
	resources   map[string]*domain.Resource
	tasks       []*domain.Task
	incidents   []*domain.SafetyIncident
	utilization map[string]allocation.ResourceUtilization
}

func (s *monitorService) MonitorCriticalEvents(ctx context.Context) (resp *contract.MonitorResponse, err error) {
	started := time.Now()
	start := s.now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "monitor-critical-events", fields, &err)()
	defer func() {
		s.recorder.ObserveMonitorRun(err == nil, time.Since(started))
	}()

	snap, err := s.load(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("loading monitor snapshot: %w", err)
	}

	alerts := s.detect(snap, start)
	resp = &contract.MonitorResponse{Success: true, AlertsFound: len(alerts), Results: make([]contract.AlertResult, 0, len(alerts))}

	for _, a := range alerts {
		result, err := s.raise(ctx, a, start)
		if err != nil {
			return nil, err
		}
		resp.NotificationsSent += result.NotificationsSent
		resp.Results = append(resp.Results, result)
	}

	fields["alerts_found"] = resp.AlertsFound
	fields["notifications_sent"] = resp.NotificationsSent
	s.recorder.NotificationsSent(resp.NotificationsSent)
	return resp, nil
}

func (s *monitorService) load(ctx context.Context, now time.Time) (*monitorSnapshot, error) {
	snap := &monitorSnapshot{resources: make(map[string]*domain.Resource)}
	err := s.uow.Snapshot(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		snap.projects, err = repository.NewSQLiteProjectRepo(tx).ListByStatus(ctx, domain.ProjectInProgress)
		if err != nil {
			return fmt.Errorf("loading projects: %w", err)
		}
		in, err := loadAllocationInputs(ctx, tx)
		if err != nil {
			return err
		}
		snap.tasks = in.Tasks
		for _, r := range in.Resources {
			snap.resources[r.ID] = r
		}
		snap.utilization = make(map[string]allocation.ResourceUtilization, len(in.Resources))
		for _, u := range allocation.ComputeAll(in, now) {
			snap.utilization[u.Resource.ID] = u
		}
		snap.incidents, err = repository.NewSQLiteIncidentRepo(tx).List(ctx, "")
		if err != nil {
			return fmt.Errorf("loading safety incidents: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// detect walks every in-progress project and collects alerts in a stable
// order: resource alerts in task order, then safety incidents.
func (s *monitorService) detect(snap *monitorSnapshot, now time.Time) []alert {
	var alerts []alert
	for _, p := range snap.projects {
		seen := make(map[string]bool)
		for _, t := range snap.tasks {
			if t.ProjectID != p.ID || !t.IsActive() {
				continue
			}
			for _, rid := range t.ResourceIDs() {
				if seen[rid] {
					continue
				}
				seen[rid] = true
				res, ok := snap.resources[rid]
				if !ok {
					continue
				}
				alerts = append(alerts, s.resourceAlerts(p, res, snap.utilization[rid], now)...)
			}
		}

		for _, inc := range snap.incidents {
			if inc.ProjectID != p.ID || !inc.IsCritical() {
				continue
			}
			alerts = append(alerts, alert{
				project:     p,
				kind:        domain.AlertSafetyIncident,
				referenceID: inc.ID,
				title:       fmt.Sprintf("Safety incident: %s", inc.Title),
				message:     fmt.Sprintf("A %s severity safety incident is open on %s.", inc.Severity, p.Name),
				priority:    inc.Severity,
			})
		}
	}
	return alerts
}

func (s *monitorService) resourceAlerts(p *domain.Project, res *domain.Resource, u allocation.ResourceUtilization, now time.Time) []alert {
	ref := p.ID + ":" + res.ID
	var out []alert
	switch res.Type {
	case domain.ResourceEquipment:
		if res.IsOutOfService() {
			out = append(out, alert{
				project:     p,
				kind:        domain.AlertEquipmentUnavailable,
				referenceID: ref,
				title:       fmt.Sprintf("Equipment unavailable: %s", res.Name),
				message:     fmt.Sprintf("%s is %s but assigned to active tasks on %s.", res.Name, res.Status, p.Name),
				priority:    domain.PriorityHigh,
			})
		}
	case domain.ResourceLabor:
		if u.Resource != nil && u.IsOverallocated {
			out = append(out, alert{
				project:     p,
				kind:        domain.AlertLaborOverallocated,
				referenceID: ref,
				title:       fmt.Sprintf("Labor over-allocated: %s", res.Name),
				message: fmt.Sprintf("%s has %d active tasks (max %d) and %.0f%% allocated today.",
					res.Name, len(u.ActiveTasks), res.MaxConcurrent(), u.TotalAllocationPercent),
				priority: domain.PriorityMedium,
			})
		}
		for _, c := range res.Certifications {
			if !c.ExpiresWithin(now, s.certWindow) {
				continue
			}
			priority, verb := domain.PriorityMedium, "expires"
			if c.ExpiresOn.Before(domain.StartOfDay(now)) {
				priority, verb = domain.PriorityHigh, "expired"
			}
			out = append(out, alert{
				project:     p,
				kind:        domain.AlertCertificationExpiring,
				referenceID: ref + ":" + c.Name,
				title:       fmt.Sprintf("Certification %s: %s", verb, res.Name),
				message: fmt.Sprintf("%s's %s certification %s on %s.",
					res.Name, c.Name, verb, c.ExpiresOn.Format(domain.DateLayout)),
				priority: priority,
			})
		}
	}
	return out
}

// raise deduplicates an alert, stores one notification per assigned user
// and pushes each stored notification. Push failures are reported in the
// result without failing the run.
func (s *monitorService) raise(ctx context.Context, a alert, now time.Time) (contract.AlertResult, error) {
	result := contract.AlertResult{
		Type:        string(a.kind),
		ProjectID:   a.project.ID,
		ReferenceID: a.referenceID,
		Title:       a.title,
		Message:     a.message,
		Priority:    string(a.priority),
		Status:      contract.AlertSkipped,
	}

	var created []*domain.Notification
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		notifications := repository.NewSQLiteNotificationRepo(tx)
		exists, err := notifications.ExistsForReference(ctx, a.kind, a.referenceID)
		if err != nil {
			return fmt.Errorf("checking existing alerts: %w", err)
		}
		if exists {
			return nil
		}
		for _, email := range a.project.AssignedUsers {
			n := &domain.Notification{
				ID:          uuid.New().String(),
				UserEmail:   email,
				Type:        a.kind,
				ReferenceID: a.referenceID,
				ProjectID:   a.project.ID,
				Title:       a.title,
				Message:     a.message,
				Priority:    a.priority,
				CreatedAt:   now.UTC(),
			}
			if err := notifications.Create(ctx, n); err != nil {
				return fmt.Errorf("creating notification for %s: %w", email, err)
			}
			created = append(created, n)
		}
		result.Status = contract.AlertCreated
		return nil
	})
	if err != nil {
		return result, err
	}
	if result.Status == contract.AlertSkipped {
		return result, nil
	}

	s.recorder.AlertRaised(string(a.kind))
	for _, n := range created {
		err := s.pusher.Push(ctx, push.Message{
			UserEmail:   n.UserEmail,
			Title:       n.Title,
			Body:        n.Message,
			Type:        string(n.Type),
			ReferenceID: n.ReferenceID,
			ProjectID:   n.ProjectID,
			Priority:    string(n.Priority),
		})
		if err != nil {
			s.log.Warn("push failed",
				zap.String("user", n.UserEmail),
				zap.String("type", string(n.Type)),
				zap.Error(err))
			result.PushErrors = append(result.PushErrors, fmt.Sprintf("%s: %v", n.UserEmail, err))
			continue
		}
		result.NotificationsSent++
	}
	return result, nil
}
