package report

import (
	"strconv"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

// Entity names a record collection in a Dataset.
type Entity string

const (
	Projects        Entity = "projects"
	Tasks           Entity = "tasks"
	RFIs            Entity = "rfis"
	ChangeOrders    Entity = "change_orders"
	Deliveries      Entity = "deliveries"
	Financials      Entity = "financials"
	SOVItems        Entity = "sov_items"
	SafetyIncidents Entity = "safety_incidents"
)

var validEntities = map[Entity]bool{
	Projects: true, Tasks: true, RFIs: true, ChangeOrders: true,
	Deliveries: true, Financials: true, SOVItems: true, SafetyIncidents: true,
}

// Record is the read-only view the aggregator has of an entity.
// Number and Text report false for fields the record does not carry.
type Record interface {
	ProjectKey() string
	ReportDate() (time.Time, bool)
	Number(field string) (float64, bool)
	Text(field string) (string, bool)
}

// Source holds the raw entities a Dataset is built from.
type Source struct {
	Projects        []*domain.Project
	Tasks           []*domain.Task
	RFIs            []*domain.RFI
	ChangeOrders    []*domain.ChangeOrder
	Deliveries      []*domain.Delivery
	Financials      []*domain.Financial
	SOVItems        []*domain.SOVItem
	SafetyIncidents []*domain.SafetyIncident
}

type Dataset struct {
	records map[Entity][]Record
}

func NewDataset(src Source) *Dataset {
	d := &Dataset{records: make(map[Entity][]Record)}
	for _, p := range src.Projects {
		d.Add(Projects, projectRecord{p})
	}
	for _, t := range src.Tasks {
		d.Add(Tasks, taskRecord{t})
	}
	for _, r := range src.RFIs {
		d.Add(RFIs, rfiRecord{r})
	}
	for _, c := range src.ChangeOrders {
		d.Add(ChangeOrders, changeOrderRecord{c})
	}
	for _, dl := range src.Deliveries {
		d.Add(Deliveries, deliveryRecord{dl})
	}
	for _, f := range src.Financials {
		d.Add(Financials, financialRecord{f})
	}
	for _, s := range src.SOVItems {
		d.Add(SOVItems, sovRecord{s})
	}
	for _, s := range src.SafetyIncidents {
		d.Add(SafetyIncidents, incidentRecord{s})
	}
	return d
}

func (d *Dataset) Add(e Entity, recs ...Record) {
	d.records[e] = append(d.records[e], recs...)
}

func (d *Dataset) Records(e Entity) []Record {
	return d.records[e]
}

type projectRecord struct{ p *domain.Project }

func (r projectRecord) ProjectKey() string            { return r.p.ID }
func (r projectRecord) ReportDate() (time.Time, bool) { return r.p.StartDate, true }
func (r projectRecord) Number(field string) (float64, bool) {
	if field == "contract_value" {
		return r.p.ContractValue, true
	}
	return 0, false
}
func (r projectRecord) Text(field string) (string, bool) {
	switch field {
	case "status":
		return string(r.p.Status), true
	case "client":
		return r.p.Client, true
	case "location":
		return r.p.Location, true
	case "project_number":
		return r.p.ProjectNumber, true
	}
	return "", false
}

type taskRecord struct{ t *domain.Task }

func (r taskRecord) ProjectKey() string { return r.t.ProjectID }

// ReportDate is the task start; tasks with unreadable starts have none.
func (r taskRecord) ReportDate() (time.Time, bool) {
	d, err := domain.ParseDate(r.t.StartDate)
	return d, err == nil
}
func (r taskRecord) Number(field string) (float64, bool) {
	if field == "progress" {
		return r.t.Progress, true
	}
	return 0, false
}
func (r taskRecord) Text(field string) (string, bool) {
	if field == "status" {
		return string(r.t.Status), true
	}
	return "", false
}

type rfiRecord struct{ r *domain.RFI }

func (r rfiRecord) ProjectKey() string            { return r.r.ProjectID }
func (r rfiRecord) ReportDate() (time.Time, bool) { return r.r.CreatedAt, true }
func (r rfiRecord) Number(string) (float64, bool) { return 0, false }
func (r rfiRecord) Text(field string) (string, bool) {
	switch field {
	case "status":
		return string(r.r.Status), true
	case "priority":
		return string(r.r.Priority), true
	}
	return "", false
}

type changeOrderRecord struct{ c *domain.ChangeOrder }

func (r changeOrderRecord) ProjectKey() string            { return r.c.ProjectID }
func (r changeOrderRecord) ReportDate() (time.Time, bool) { return r.c.CreatedAt, true }
func (r changeOrderRecord) Number(field string) (float64, bool) {
	switch field {
	case "cost_impact":
		return r.c.CostImpact, true
	case "schedule_impact_days":
		return float64(r.c.ScheduleImpactDays), true
	}
	return 0, false
}
func (r changeOrderRecord) Text(field string) (string, bool) {
	if field == "status" {
		return string(r.c.Status), true
	}
	return "", false
}

type deliveryRecord struct{ d *domain.Delivery }

func (r deliveryRecord) ProjectKey() string            { return r.d.ProjectID }
func (r deliveryRecord) ReportDate() (time.Time, bool) { return r.d.ScheduledDate, true }
func (r deliveryRecord) Number(field string) (float64, bool) {
	if field == "delay_days" {
		return float64(r.d.DelayDays()), true
	}
	return 0, false
}
func (r deliveryRecord) Text(field string) (string, bool) {
	switch field {
	case "status":
		return string(r.d.Status), true
	case "supplier":
		return r.d.Supplier, true
	case "late":
		return strconv.FormatBool(r.d.DelayDays() > 0 || r.d.Status == domain.DeliveryDelayed), true
	}
	return "", false
}

type financialRecord struct{ f *domain.Financial }

func (r financialRecord) ProjectKey() string            { return r.f.ProjectID }
func (r financialRecord) ReportDate() (time.Time, bool) { return r.f.CreatedAt, true }
func (r financialRecord) Number(field string) (float64, bool) {
	switch field {
	case "budget_amount":
		return r.f.BudgetAmount, true
	case "committed_amount":
		return r.f.CommittedAmount, true
	case "actual_amount":
		return r.f.ActualAmount, true
	}
	return 0, false
}
func (r financialRecord) Text(field string) (string, bool) {
	if field == "category" {
		return r.f.Category, true
	}
	return "", false
}

type sovRecord struct{ s *domain.SOVItem }

func (r sovRecord) ProjectKey() string            { return r.s.ProjectID }
func (r sovRecord) ReportDate() (time.Time, bool) { return r.s.CreatedAt, true }
func (r sovRecord) Number(field string) (float64, bool) {
	switch field {
	case "scheduled_value":
		return r.s.ScheduledValue, true
	case "billed_to_date":
		return r.s.BilledToDate, true
	}
	return 0, false
}
func (r sovRecord) Text(field string) (string, bool) {
	if field == "item_number" {
		return r.s.ItemNumber, true
	}
	return "", false
}

type incidentRecord struct{ s *domain.SafetyIncident }

func (r incidentRecord) ProjectKey() string            { return r.s.ProjectID }
func (r incidentRecord) ReportDate() (time.Time, bool) { return r.s.ReportedAt, true }
func (r incidentRecord) Number(string) (float64, bool) { return 0, false }
func (r incidentRecord) Text(field string) (string, bool) {
	switch field {
	case "status":
		return string(r.s.Status), true
	case "severity":
		return string(r.s.Severity), true
	}
	return "", false
}
