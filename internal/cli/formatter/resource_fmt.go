package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

func FormatResourceList(resources []*domain.Resource, now time.Time) string {
	headers := []string{"ID", "NAME", "TYPE", "TRADE", "STATUS", "MAX", "RATE", "CERTIFICATIONS"}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		certs := make([]string, 0, len(r.Certifications))
		for _, c := range r.Certifications {
			switch {
			case c.ExpiresOn == nil:
				certs = append(certs, c.Name)
			case c.ExpiresOn.Before(domain.StartOfDay(now)):
				certs = append(certs, StyleRed.Render(c.Name+" (expired)"))
			default:
				certs = append(certs, fmt.Sprintf("%s (%s)", c.Name, c.ExpiresOn.Format(domain.DateLayout)))
			}
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Name),
			string(r.Type),
			orDash(r.Trade),
			ResourceStatusPill(r.Status),
			fmt.Sprintf("%d", r.MaxConcurrent()),
			Money(r.HourlyRate),
			strings.Join(certs, ", "),
		})
	}
	return RenderTable(headers, rows)
}

// FormatUtilization renders the utilization summary and one row per resource.
func FormatUtilization(resp *contract.UtilizationResponse) string {
	s := resp.Summary
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d   %s %s   %s %s   %s %s\n\n",
		Dim("Resources"), s.TotalResources,
		Dim("Over-allocated"), countStyled(s.Overallocated),
		Dim("Conflicts"), countStyled(s.ConflictCount),
		Dim("Avg utilization"), fmt.Sprintf("%.1f%%", s.AverageUtilization)))

	if len(resp.Resources) == 0 {
		b.WriteString(Dim("No resources match."))
		return RenderBox("Resource Utilization", b.String())
	}

	headers := []string{"RESOURCE", "TYPE", "ACTIVE", "MAX", "LOAD", "ALLOC", "PROJECTS", "CONFLICTS"}
	rows := make([][]string, 0, len(resp.Resources))
	for _, r := range resp.Resources {
		name := Bold(r.Name)
		if r.IsOverallocated {
			name = StyleRed.Render("▲ " + r.Name)
		}
		rows = append(rows, []string{
			name,
			r.Type,
			fmt.Sprintf("%d", r.ActiveTasks),
			fmt.Sprintf("%d", r.MaxConcurrent),
			RenderLoad(r.Utilization, r.IsOverallocated, 10),
			fmt.Sprintf("%.0f%%", r.TotalAllocationPercent),
			fmt.Sprintf("%d", r.ProjectsCount),
			countStyled(len(r.Conflicts)),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return RenderBox("Resource Utilization", b.String())
}

// FormatConflicts lists every double-booking and date error by resource.
func FormatConflicts(resp *contract.UtilizationResponse) string {
	var b strings.Builder
	found := false
	for _, r := range resp.Resources {
		if len(r.Conflicts) == 0 && len(r.DateErrors) == 0 {
			continue
		}
		found = true
		b.WriteString(Header(r.Name) + "\n")
		for _, c := range r.Conflicts {
			kind := StyleYellow.Render(c.Type)
			if c.Type == "cross-project" {
				kind = StyleRed.Render(c.Type)
			}
			b.WriteString(fmt.Sprintf("  %s  %s ↔ %s\n", kind, c.Task1Name, c.Task2Name))
		}
		for _, e := range r.DateErrors {
			b.WriteString(fmt.Sprintf("  %s  %s\n", StyleRed.Render("date error"), e))
		}
		b.WriteString("\n")
	}
	if !found {
		return StyleGreen.Render("No scheduling conflicts detected.")
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatAllocationList(allocs []*domain.ResourceAllocation, names map[string]string) string {
	headers := []string{"ID", "RESOURCE", "START", "END", "PERCENT", "NOTES"}
	rows := make([][]string, 0, len(allocs))
	for _, a := range allocs {
		name, ok := names[a.ResourceID]
		if !ok {
			name = TruncID(a.ResourceID)
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			name,
			a.StartDate.Format(domain.DateLayout),
			a.EndDate.Format(domain.DateLayout),
			fmt.Sprintf("%.0f%%", a.AllocationPercentage),
			a.Notes,
		})
	}
	return RenderTable(headers, rows)
}

func countStyled(n int) string {
	if n == 0 {
		return StyleGreen.Render("0")
	}
	return StyleRed.Render(fmt.Sprintf("%d", n))
}
