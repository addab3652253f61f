package domain

import (
	"math"
	"strings"
	"time"
)

// RFI is a Request for Information raised against a project's drawings or specs.
type RFI struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	Number     int        `json:"number"`
	Subject    string     `json:"subject"`
	Question   string     `json:"question"`
	Status     RFIStatus  `json:"status"`
	Priority   Priority   `json:"priority"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (r *RFI) Validate() error {
	if r.ProjectID == "" {
		return invalidf("RFI project is required")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return invalidf("RFI subject is required")
	}
	if r.Priority != "" && !ValidPriorities[string(r.Priority)] {
		return invalidf("invalid RFI priority %q", r.Priority)
	}
	return nil
}

// IsOverdue reports whether an unanswered RFI is past its due date.
func (r *RFI) IsOverdue(now time.Time) bool {
	return r.Status == RFIOpen && r.DueDate != nil && StartOfDay(now).After(*r.DueDate)
}

type ChangeOrder struct {
	ID                 string            `json:"id"`
	ProjectID          string            `json:"project_id"`
	Number             int               `json:"number"`
	Title              string            `json:"title"`
	Status             ChangeOrderStatus `json:"status"`
	CostImpact         float64           `json:"cost_impact"`
	ScheduleImpactDays int               `json:"schedule_impact_days"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func (c *ChangeOrder) Validate() error {
	if c.ProjectID == "" {
		return invalidf("change order project is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return invalidf("change order title is required")
	}
	return nil
}

type Delivery struct {
	ID            string         `json:"id"`
	ProjectID     string         `json:"project_id"`
	Description   string         `json:"description"`
	Supplier      string         `json:"supplier"`
	Status        DeliveryStatus `json:"status"`
	ScheduledDate time.Time      `json:"scheduled_date"`
	DeliveredDate *time.Time     `json:"delivered_date,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (d *Delivery) Validate() error {
	if d.ProjectID == "" {
		return invalidf("delivery project is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return invalidf("delivery description is required")
	}
	if d.Status != "" && !ValidDeliveryStatuses[string(d.Status)] {
		return invalidf("invalid delivery status %q", d.Status)
	}
	return nil
}

// DelayDays is the number of whole days a delivery arrived after schedule.
// Deliveries that are early, on time or not yet delivered report zero.
func (d *Delivery) DelayDays() int {
	if d.DeliveredDate == nil {
		return 0
	}
	days := d.DeliveredDate.Sub(d.ScheduledDate).Hours() / 24
	if days <= 0 {
		return 0
	}
	return int(math.Ceil(days))
}

// Financial is a budget line for one cost category of a project.
type Financial struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	Category        string    `json:"category"`
	BudgetAmount    float64   `json:"budget_amount"`
	CommittedAmount float64   `json:"committed_amount"`
	ActualAmount    float64   `json:"actual_amount"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Variance is budget minus actual; negative means over budget.
func (f *Financial) Variance() float64 {
	return f.BudgetAmount - f.ActualAmount
}

func (f *Financial) Validate() error {
	if f.ProjectID == "" {
		return invalidf("financial project is required")
	}
	if strings.TrimSpace(f.Category) == "" {
		return invalidf("financial category is required")
	}
	return nil
}

type SafetyIncident struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"project_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Severity    Priority       `json:"severity"`
	Status      IncidentStatus `json:"status"`
	ReportedAt  time.Time      `json:"reported_at"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// IsCritical reports whether the incident is open and severe enough to alert on.
func (s *SafetyIncident) IsCritical() bool {
	return s.Status == IncidentOpen && (s.Severity == PriorityHigh || s.Severity == PriorityCritical)
}

func (s *SafetyIncident) Validate() error {
	if s.ProjectID == "" {
		return invalidf("incident project is required")
	}
	if strings.TrimSpace(s.Title) == "" {
		return invalidf("incident title is required")
	}
	if !ValidPriorities[string(s.Severity)] {
		return invalidf("invalid incident severity %q", s.Severity)
	}
	return nil
}
