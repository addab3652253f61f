// Package export writes report and utilization tables as CSV or XLSX files.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case CSV, "":
		return CSV, nil
	case XLSX:
		return XLSX, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q (csv, xlsx)", domain.ErrValidation, s)
}

func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Extension() string {
	return "." + string(f)
}

// Meta is a key/value line written above the table.
type Meta struct {
	Key   string
	Value string
}

// Table is a titled grid. Cell values are strings, ints, float64s or bools.
type Table struct {
	Title  string
	Meta   []Meta
	Header []string
	Rows   [][]any
}

// Write renders t in the requested format.
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case CSV:
		return WriteCSV(w, t)
	case XLSX:
		return WriteXLSX(w, t)
	}
	return fmt.Errorf("%w: unknown export format %q", domain.ErrValidation, f)
}

// ReportTable lays out report results one metric per row. Grouped metrics
// add one row per group beneath their total.
func ReportTable(resp *contract.ReportResponse) Table {
	t := Table{
		Title: "SteelBuild Report",
		Meta: []Meta{
			{Key: "Generated", Value: resp.GeneratedAt.Format(time.RFC3339)},
			{Key: "Filters", Value: resp.FilterSummary()},
		},
		Header: []string{"Metric", "Label", "Group", "Value"},
	}
	for _, m := range resp.Metrics {
		if len(m.Groups) == 0 {
			t.Rows = append(t.Rows, []any{m.Key, m.Label, "", m.Value})
			continue
		}
		total := 0
		for _, g := range m.Groups {
			total += g.Count
		}
		t.Rows = append(t.Rows, []any{m.Key, m.Label, "total", total})
		for _, g := range m.Groups {
			t.Rows = append(t.Rows, []any{m.Key, m.Label, g.Key, g.Count})
		}
	}
	return t
}

func UtilizationTable(resp *contract.UtilizationResponse) Table {
	s := resp.Summary
	t := Table{
		Title: "Resource Utilization",
		Meta: []Meta{
			{Key: "Generated", Value: resp.GeneratedAt.Format(time.RFC3339)},
			{Key: "Resources", Value: strconv.Itoa(s.TotalResources)},
			{Key: "Over-allocated", Value: strconv.Itoa(s.Overallocated)},
			{Key: "Conflicts", Value: strconv.Itoa(s.ConflictCount)},
		},
		Header: []string{"Resource", "Type", "Status", "Active Tasks", "Max Concurrent",
			"Utilization %", "Allocated %", "Projects", "Conflicts", "Over-allocated"},
	}
	for _, r := range resp.Resources {
		t.Rows = append(t.Rows, []any{
			r.Name, r.Type, r.Status, r.ActiveTasks, r.MaxConcurrent,
			r.Utilization, r.TotalAllocationPercent, r.ProjectsCount, len(r.Conflicts), r.IsOverallocated,
		})
	}
	return t
}

// cellString formats a cell for text output.
func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
