package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

// FormatMonitorResult summarizes one monitorCriticalEvents run.
func FormatMonitorResult(resp *contract.MonitorResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d   %s %d\n", Dim("Alerts found"), resp.AlertsFound,
		Dim("Notifications sent"), resp.NotificationsSent))
	if len(resp.Results) == 0 {
		b.WriteString("\n" + StyleGreen.Render("No critical events."))
		return RenderBox("Monitor", b.String())
	}
	b.WriteString("\n")
	for _, r := range resp.Results {
		status := StyleGreen.Render("new    ")
		if r.Status == contract.AlertSkipped {
			status = Dim("skipped")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", status, PriorityIndicator(domain.Priority(r.Priority)), r.Title))
		for _, e := range r.PushErrors {
			b.WriteString("        " + StyleRed.Render("push failed: "+e) + "\n")
		}
	}
	return RenderBox("Monitor", strings.TrimRight(b.String(), "\n"))
}
