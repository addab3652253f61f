package contract

import (
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/report"
)

// ReportRequest selects metrics and filters. Dates are YYYY-MM-DD and inclusive.
type ReportRequest struct {
	Metrics   []string
	ProjectID string
	From      string
	To        string
}

func NewReportRequest(metrics ...string) ReportRequest {
	return ReportRequest{Metrics: metrics}
}

// Filter converts the request's filters, rejecting malformed or inverted dates.
func (r ReportRequest) Filter() (report.Filter, error) {
	f := report.Filter{ProjectID: r.ProjectID}
	from, err := domain.ParseOptionalDate(r.From)
	if err != nil {
		return report.Filter{}, fmt.Errorf("%w: from: %v", domain.ErrValidation, err)
	}
	to, err := domain.ParseOptionalDate(r.To)
	if err != nil {
		return report.Filter{}, fmt.Errorf("%w: to: %v", domain.ErrValidation, err)
	}
	if from != nil && to != nil && to.Before(*from) {
		return report.Filter{}, fmt.Errorf("%w: date range ends before it starts", domain.ErrValidation)
	}
	f.From, f.To = from, to
	return f, nil
}

type GroupView struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type MetricView struct {
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Aggregation string      `json:"aggregation"`
	Format      string      `json:"format,omitempty"`
	Value       float64     `json:"value"`
	Groups      []GroupView `json:"groups,omitempty"`
}

func NewMetricView(r report.Result) MetricView {
	v := MetricView{
		Key:         r.Key,
		Label:       r.Label,
		Aggregation: string(r.Aggregation),
		Format:      r.Format,
		Value:       r.Value,
	}
	for _, g := range r.Groups {
		v.Groups = append(v.Groups, GroupView{Key: g.Key, Count: g.Count})
	}
	return v
}

type ReportResponse struct {
	GeneratedAt time.Time    `json:"generated_at"`
	ProjectID   string       `json:"project_id,omitempty"`
	From        string       `json:"from,omitempty"`
	To          string       `json:"to,omitempty"`
	Metrics     []MetricView `json:"metrics"`
}

// FilterSummary describes the applied filters in one line for export headers.
func (r *ReportResponse) FilterSummary() string {
	project := r.ProjectID
	if project == "" {
		project = "all"
	}
	from, to := r.From, r.To
	if from == "" {
		from = "*"
	}
	if to == "" {
		to = "*"
	}
	return fmt.Sprintf("project=%s from=%s to=%s", project, from, to)
}
