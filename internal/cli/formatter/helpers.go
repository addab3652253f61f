package formatter

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes terminal styling from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date such as "In 3d".
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueStyled colors a relative date by urgency. Past dates are red.
func DueStyled(t, now time.Time) string {
	text := RelativeDateFrom(t, now)
	days := int(math.Round(t.Sub(now).Hours() / 24))
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	}
	return StyleFg.Render(text)
}

// TimestampFrom renders t relative to now at minute granularity, falling
// back to a calendar date after a day.
func TimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	return t.Format("Jan 2, 2006")
}

// Date renders an optional calendar date, "--" when unset.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Dim("--")
	}
	return t.Format(domain.DateLayout)
}

// Money renders a dollar amount with thousands separators and no cents.
func Money(v float64) string {
	neg := v < 0
	n := int64(math.Round(math.Abs(v)))
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// TruncID shortens a UUID for table display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func ProjectStatusPill(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.ProjectPlanning:
		return StyleBlue.Render("○ Planning")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectCancelled, domain.ProjectArchived:
		return StyleDim.Render("✖ " + label(string(s)))
	}
	return StyleDim.Render(string(s))
}

func TaskStatusPill(s domain.TaskStatus) string {
	switch s {
	case domain.TaskNotStarted:
		return StyleBlue.Render("○ Not Started")
	case domain.TaskInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.TaskOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.TaskCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.TaskCancelled:
		return StyleDim.Render("✖ Cancelled")
	}
	return StyleDim.Render(string(s))
}

func ResourceStatusPill(s domain.ResourceStatus) string {
	switch s {
	case domain.ResourceAvailable:
		return StyleGreen.Render("● Available")
	case domain.ResourceAssigned:
		return StyleBlue.Render("● Assigned")
	case domain.ResourceMaintenance:
		return StyleYellow.Render("▲ Maintenance")
	case domain.ResourceUnavailable:
		return StyleRed.Render("✖ Unavailable")
	}
	return StyleDim.Render(string(s))
}

// label turns a snake_case value into title case words.
func label(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
