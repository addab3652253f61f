package domain

import "time"

// Dashboard widget identifiers.
const (
	WidgetUtilization   = "utilization"
	WidgetConflicts     = "conflicts"
	WidgetFinancials    = "financials"
	WidgetRFIs          = "rfis"
	WidgetDeliveries    = "deliveries"
	WidgetNotifications = "notifications"
)

// ValidWidgets is the canonical set of dashboard widget ids.
var ValidWidgets = map[string]bool{
	WidgetUtilization: true, WidgetConflicts: true, WidgetFinancials: true,
	WidgetRFIs: true, WidgetDeliveries: true, WidgetNotifications: true,
}

// DefaultWidgets is the widget selection for a user with nothing saved.
var DefaultWidgets = []string{WidgetUtilization, WidgetConflicts, WidgetFinancials}

// DashboardPreferences is a user's persisted dashboard layout.
type DashboardPreferences struct {
	UserEmail string    `json:"user_email"`
	Widgets   []string  `json:"widgets,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultDashboardPreferences returns the layout used before anything is saved.
func DefaultDashboardPreferences(email string) *DashboardPreferences {
	widgets := make([]string, len(DefaultWidgets))
	copy(widgets, DefaultWidgets)
	return &DashboardPreferences{UserEmail: email, Widgets: widgets}
}

func (p *DashboardPreferences) Validate() error {
	if p.UserEmail == "" {
		return invalidf("preferences user is required")
	}
	seen := make(map[string]bool, len(p.Widgets))
	for _, w := range p.Widgets {
		if !ValidWidgets[w] {
			return invalidf("unknown dashboard widget %q", w)
		}
		if seen[w] {
			return invalidf("dashboard widget %q listed twice", w)
		}
		seen[w] = true
	}
	return nil
}

// Shows reports whether widget is part of the selection.
func (p *DashboardPreferences) Shows(widget string) bool {
	for _, w := range p.Widgets {
		if w == widget {
			return true
		}
	}
	return false
}
