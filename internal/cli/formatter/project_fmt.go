package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ProjectInspectData holds what the project inspect card shows.
type ProjectInspectData struct {
	Project  *domain.Project
	Tasks    []*domain.Task
	SOVItems []*domain.SOVItem
}

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"NUMBER", "NAME", "CLIENT", "STATUS", "START", "CONTRACT"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.DisplayID(),
			Bold(p.Name),
			p.Client,
			ProjectStatusPill(p.Status),
			p.StartDate.Format(domain.DateLayout),
			Money(p.ContractValue),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectInspect renders project metadata beside its task list.
func FormatProjectInspect(data ProjectInspectData) string {
	left := projectMetadata(data.Project, data.SOVItems)
	right := FormatTaskTable(data.Tasks, nil)
	if len(data.Tasks) == 0 {
		right = Dim("No tasks yet.")
	}
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func projectMetadata(p *domain.Project, items []*domain.SOVItem) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "\n")
	b.WriteString(StylePurple.Render(p.ProjectNumber) + "\n\n")

	field := func(name, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-9s", name)), value))
	}
	field("STATUS", ProjectStatusPill(p.Status))
	field("CLIENT", p.Client)
	field("LOCATION", p.Location)
	field("START", p.StartDate.Format(domain.DateLayout))
	field("TARGET", Date(p.TargetCompletion))
	field("CONTRACT", Money(p.ContractValue))
	if len(p.AssignedUsers) > 0 {
		field("TEAM", strings.Join(p.AssignedUsers, ", "))
	}

	if len(items) > 0 {
		var scheduled, billed float64
		for _, s := range items {
			scheduled += s.ScheduledValue
			billed += s.BilledToDate
		}
		pct := 0.0
		if scheduled > 0 {
			pct = billed / scheduled * 100
		}
		b.WriteString("\n")
		field("BILLED", fmt.Sprintf("%s of %s", Money(billed), Money(scheduled)))
		field("", RenderProgress(pct, 20))
	}
	return b.String()
}

// FormatTaskTable lists tasks. names maps resource ids to display names;
// unknown ids are shown truncated.
func FormatTaskTable(tasks []*domain.Task, names map[string]string) string {
	headers := []string{"ID", "TASK", "STATUS", "START", "END", "PROGRESS", "RESOURCES"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		ids := t.ResourceIDs()
		crew := make([]string, 0, len(ids))
		for _, id := range ids {
			if n, ok := names[id]; ok {
				crew = append(crew, n)
			} else {
				crew = append(crew, TruncID(id))
			}
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Name,
			TaskStatusPill(t.Status),
			orDash(t.StartDate),
			orDash(t.EndDate),
			RenderProgress(t.Progress, 10),
			strings.Join(crew, ", "),
		})
	}
	return RenderTable(headers, rows)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
