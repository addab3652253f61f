package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/google/uuid"
)

type rfiService struct {
	rfis repository.RFIRepo
	uow  db.UnitOfWork
}

func NewRFIService(rfis repository.RFIRepo, uow db.UnitOfWork) RFIService {
	return &rfiService{rfis: rfis, uow: uow}
}

// Create numbers the RFI sequentially within its project.
func (s *rfiService) Create(ctx context.Context, r *domain.RFI) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = domain.RFIOpen
	}
	if r.Priority == "" {
		r.Priority = domain.PriorityMedium
	}
	if err := r.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRFIs := repository.NewSQLiteRFIRepo(tx)
		n, err := txRFIs.NextNumber(ctx, r.ProjectID)
		if err != nil {
			return fmt.Errorf("numbering RFI: %w", err)
		}
		r.Number = n
		return txRFIs.Create(ctx, r)
	})
}

func (s *rfiService) List(ctx context.Context, projectID string) ([]*domain.RFI, error) {
	return s.rfis.List(ctx, projectID)
}

func (s *rfiService) Answer(ctx context.Context, id string) (*domain.RFI, error) {
	r, err := s.rfis.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.RFIOpen {
		return nil, fmt.Errorf("%w: RFI #%d is already %s", domain.ErrValidation, r.Number, r.Status)
	}
	now := time.Now().UTC()
	r.Status = domain.RFIAnswered
	r.AnsweredAt = &now
	r.UpdatedAt = now
	if err := s.rfis.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *rfiService) Close(ctx context.Context, id string) (*domain.RFI, error) {
	r, err := s.rfis.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Status = domain.RFIClosed
	r.UpdatedAt = time.Now().UTC()
	if err := s.rfis.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *rfiService) Delete(ctx context.Context, id string) error {
	return s.rfis.Delete(ctx, id)
}

type changeOrderService struct {
	orders repository.ChangeOrderRepo
	uow    db.UnitOfWork
}

func NewChangeOrderService(orders repository.ChangeOrderRepo, uow db.UnitOfWork) ChangeOrderService {
	return &changeOrderService{orders: orders, uow: uow}
}

func (s *changeOrderService) Create(ctx context.Context, c *domain.ChangeOrder) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = domain.ChangeOrderPending
	}
	if err := c.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteChangeOrderRepo(tx)
		n, err := txOrders.NextNumber(ctx, c.ProjectID)
		if err != nil {
			return fmt.Errorf("numbering change order: %w", err)
		}
		c.Number = n
		return txOrders.Create(ctx, c)
	})
}

func (s *changeOrderService) List(ctx context.Context, projectID string) ([]*domain.ChangeOrder, error) {
	return s.orders.List(ctx, projectID)
}

// SetStatus moves a pending change order to approved or rejected.
func (s *changeOrderService) SetStatus(ctx context.Context, id string, status domain.ChangeOrderStatus) (*domain.ChangeOrder, error) {
	if status != domain.ChangeOrderApproved && status != domain.ChangeOrderRejected {
		return nil, fmt.Errorf("%w: change order status must be approved or rejected, got %q", domain.ErrValidation, status)
	}
	c, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.ChangeOrderPending {
		return nil, fmt.Errorf("%w: change order #%d is already %s", domain.ErrValidation, c.Number, c.Status)
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	if err := s.orders.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *changeOrderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

type deliveryService struct {
	deliveries repository.DeliveryRepo
}

func NewDeliveryService(deliveries repository.DeliveryRepo) DeliveryService {
	return &deliveryService{deliveries: deliveries}
}

func (s *deliveryService) Create(ctx context.Context, d *domain.Delivery) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Status == "" {
		d.Status = domain.DeliveryScheduled
	}
	if err := d.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	return s.deliveries.Create(ctx, d)
}

func (s *deliveryService) List(ctx context.Context, projectID string) ([]*domain.Delivery, error) {
	return s.deliveries.List(ctx, projectID)
}

func (s *deliveryService) MarkDelivered(ctx context.Context, id string, on time.Time) (*domain.Delivery, error) {
	d, err := s.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	day := domain.StartOfDay(on)
	d.Status = domain.DeliveryDelivered
	d.DeliveredDate = &day
	d.UpdatedAt = time.Now().UTC()
	if err := s.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deliveryService) Delete(ctx context.Context, id string) error {
	return s.deliveries.Delete(ctx, id)
}

type financialService struct {
	financials repository.FinancialRepo
}

func NewFinancialService(financials repository.FinancialRepo) FinancialService {
	return &financialService{financials: financials}
}

func (s *financialService) Create(ctx context.Context, f *domain.Financial) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if err := f.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	return s.financials.Create(ctx, f)
}

func (s *financialService) List(ctx context.Context, projectID string) ([]*domain.Financial, error) {
	return s.financials.List(ctx, projectID)
}

func (s *financialService) Update(ctx context.Context, f *domain.Financial) error {
	if err := f.Validate(); err != nil {
		return err
	}
	f.UpdatedAt = time.Now().UTC()
	return s.financials.Update(ctx, f)
}

func (s *financialService) Delete(ctx context.Context, id string) error {
	return s.financials.Delete(ctx, id)
}

type incidentService struct {
	incidents repository.IncidentRepo
}

func NewIncidentService(incidents repository.IncidentRepo) IncidentService {
	return &incidentService{incidents: incidents}
}

func (s *incidentService) Create(ctx context.Context, inc *domain.SafetyIncident) error {
	if inc.ID == "" {
		inc.ID = uuid.New().String()
	}
	if inc.Status == "" {
		inc.Status = domain.IncidentOpen
	}
	if err := inc.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if inc.ReportedAt.IsZero() {
		inc.ReportedAt = now
	}
	inc.CreatedAt = now
	return s.incidents.Create(ctx, inc)
}

func (s *incidentService) List(ctx context.Context, projectID string) ([]*domain.SafetyIncident, error) {
	return s.incidents.List(ctx, projectID)
}

func (s *incidentService) Close(ctx context.Context, id string) (*domain.SafetyIncident, error) {
	inc, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	inc.Status = domain.IncidentClosed
	inc.ClosedAt = &now
	if err := s.incidents.Update(ctx, inc); err != nil {
		return nil, err
	}
	return inc, nil
}

func (s *incidentService) Delete(ctx context.Context, id string) error {
	return s.incidents.Delete(ctx, id)
}

type notificationService struct {
	notifications repository.NotificationRepo
}

func NewNotificationService(notifications repository.NotificationRepo) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) List(ctx context.Context, email string, unreadOnly bool) ([]*domain.Notification, error) {
	return s.notifications.ListByUser(ctx, email, unreadOnly)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}
