package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/report"
)

func FormatMetricCatalog(defs []report.Definition) string {
	headers := []string{"KEY", "LABEL", "ENTITY", "AGGREGATION"}
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{StylePurple.Render(d.Key), d.Label, string(d.Entity), string(d.Aggregation)})
	}
	return RenderTable(headers, rows)
}

// FormatMetricValue renders a metric value by its declared format.
func FormatMetricValue(m contract.MetricView) string {
	switch m.Format {
	case "currency":
		return Money(m.Value)
	case "percent":
		return fmt.Sprintf("%.1f%%", m.Value)
	}
	if m.Value == float64(int64(m.Value)) {
		return fmt.Sprintf("%d", int64(m.Value))
	}
	return fmt.Sprintf("%.2f", m.Value)
}

func FormatReport(resp *contract.ReportResponse) string {
	var b strings.Builder
	b.WriteString(Dim(resp.FilterSummary()) + "\n\n")
	for _, m := range resp.Metrics {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleBold.Render(m.Label), StyleGreen.Render(FormatMetricValue(m))))
		for _, g := range m.Groups {
			b.WriteString(fmt.Sprintf("    %s %d\n", Dim(fmt.Sprintf("%-16s", g.Key)), g.Count))
		}
	}
	return RenderBox("Report", strings.TrimRight(b.String(), "\n"))
}
