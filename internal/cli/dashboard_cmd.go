package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the widgets selected in your dashboard preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := app.Preferences.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			if once || !app.IsInteractive {
				data, err := loadDashboard(cmd.Context(), app, prefs.Widgets)
				if err != nil {
					return err
				}
				writeln(cmd, renderDashboard(data))
				return nil
			}
			_, err = tea.NewProgram(newDashboardModel(app, prefs.Widgets), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Print every widget once instead of opening the live view")
	cmd.AddCommand(newDashboardWidgetsCmd(app))
	return cmd
}

func newDashboardWidgetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "Show the selected dashboard widgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := app.Preferences.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			writeln(cmd, strings.Join(prefs.Widgets, ", "))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set WIDGET...",
		Short: "Choose dashboard widgets (" + widgetChoices() + ")",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var widgets []string
			for _, a := range args {
				for _, w := range strings.Split(a, ",") {
					if w = strings.TrimSpace(w); w != "" {
						widgets = append(widgets, w)
					}
				}
			}
			prefs, err := app.Preferences.SetDashboard(cmd.Context(), widgets)
			if err != nil {
				return err
			}
			printf(cmd, "Dashboard widgets: %s\n", strings.Join(prefs.Widgets, ", "))
			return nil
		},
	})

	return cmd
}

func widgetChoices() string {
	return strings.Join([]string{
		domain.WidgetUtilization, domain.WidgetConflicts, domain.WidgetFinancials,
		domain.WidgetRFIs, domain.WidgetDeliveries, domain.WidgetNotifications,
	}, "|")
}

// ── data loading ─────────────────────────────────────────────────────────────

// dashboardSection is one rendered widget.
type dashboardSection struct {
	widget string
	title  string
	body   string
}

var widgetTitles = map[string]string{
	domain.WidgetUtilization:   "Utilization",
	domain.WidgetConflicts:     "Conflicts",
	domain.WidgetFinancials:    "Financials",
	domain.WidgetRFIs:          "RFIs",
	domain.WidgetDeliveries:    "Deliveries",
	domain.WidgetNotifications: "Notifications",
}

// loadDashboard renders the selected widgets in order. Only data a selected
// widget needs is read.
func loadDashboard(ctx context.Context, app *App, widgets []string) ([]dashboardSection, error) {
	now := app.now()
	var util *contract.UtilizationResponse
	utilization := func() (*contract.UtilizationResponse, error) {
		if util != nil {
			return util, nil
		}
		req := contract.NewUtilizationRequest()
		req.Now = &now
		var err error
		util, err = app.Utilization.Compute(ctx, req)
		return util, err
	}

	sections := make([]dashboardSection, 0, len(widgets))
	for _, w := range widgets {
		var body string
		switch w {
		case domain.WidgetUtilization:
			resp, err := utilization()
			if err != nil {
				return nil, err
			}
			body = formatter.FormatUtilization(resp)
		case domain.WidgetConflicts:
			resp, err := utilization()
			if err != nil {
				return nil, err
			}
			body = formatter.FormatConflicts(resp)
		case domain.WidgetFinancials:
			lines, err := app.Financials.List(ctx, "")
			if err != nil {
				return nil, err
			}
			body = emptyOr(len(lines), "No budget lines.", func() string { return formatter.FormatFinancialList(lines) })
		case domain.WidgetRFIs:
			rfis, err := app.RFIs.List(ctx, "")
			if err != nil {
				return nil, err
			}
			body = emptyOr(len(rfis), "No RFIs.", func() string { return formatter.FormatRFIList(rfis, now) })
		case domain.WidgetDeliveries:
			deliveries, err := app.Deliveries.List(ctx, "")
			if err != nil {
				return nil, err
			}
			body = emptyOr(len(deliveries), "No deliveries.", func() string { return formatter.FormatDeliveryList(deliveries, now) })
		case domain.WidgetNotifications:
			me, err := app.Auth.Me(ctx)
			if err != nil {
				return nil, err
			}
			ns, err := app.Notifications.List(ctx, me.Email, true)
			if err != nil {
				return nil, err
			}
			body = emptyOr(len(ns), "No unread notifications.", func() string { return formatter.FormatNotificationList(ns, now) })
		default:
			continue
		}
		sections = append(sections, dashboardSection{widget: w, title: widgetTitles[w], body: body})
	}
	return sections, nil
}

func emptyOr(n int, empty string, render func() string) string {
	if n == 0 {
		return formatter.Dim(empty)
	}
	return render()
}

// renderDashboard prints every section one after another.
func renderDashboard(sections []dashboardSection) string {
	if len(sections) == 0 {
		return formatter.Dim("No dashboard widgets selected.")
	}
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatter.Header(s.title))
		b.WriteString("\n")
		b.WriteString(s.body)
		b.WriteString("\n")
	}
	return b.String()
}

// ── messages ─────────────────────────────────────────────────────────────────

type dashboardLoadedMsg struct {
	sections []dashboardSection
	err      error
}

// ── model ────────────────────────────────────────────────────────────────────

type dashboardKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultDashboardKeys() dashboardKeyMap {
	return dashboardKeyMap{
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Refresh, k.Quit}
}

// dashboardModel shows one widget at a time with a tab strip.
type dashboardModel struct {
	app      *App
	widgets  []string
	keys     dashboardKeyMap
	spinner  spinner.Model
	sections []dashboardSection
	active   int
	loading  bool
	err      error
	width    int
}

func newDashboardModel(app *App, widgets []string) dashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return dashboardModel{
		app:     app,
		widgets: widgets,
		keys:    defaultDashboardKeys(),
		spinner: sp,
		loading: true,
	}
}

func (m dashboardModel) load() tea.Cmd {
	app, widgets := m.app, m.widgets
	return func() tea.Msg {
		sections, err := loadDashboard(context.Background(), app, widgets)
		return dashboardLoadedMsg{sections: sections, err: err}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.sections = msg.sections
		if m.active >= len(m.sections) {
			m.active = 0
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.load(), m.spinner.Tick)
		case key.Matches(msg, m.keys.Next):
			if n := len(m.sections); n > 0 {
				m.active = (m.active + 1) % n
			}
		case key.Matches(msg, m.keys.Prev):
			if n := len(m.sections); n > 0 {
				m.active = (m.active - 1 + n) % n
			}
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("SteelBuild Pro"))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.sections) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case len(m.sections) == 0:
		b.WriteString(formatter.Dim("No dashboard widgets selected."))
		b.WriteString("\n")
	default:
		b.WriteString(m.tabs())
		b.WriteString("\n\n")
		b.WriteString(m.sections[m.active].body)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help())
	return b.String()
}

func (m dashboardModel) tabs() string {
	active := lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	parts := make([]string, len(m.sections))
	for i, s := range m.sections {
		if i == m.active {
			parts[i] = active.Render(s.title)
		} else {
			parts[i] = inactive.Render(s.title)
		}
	}
	return strings.Join(parts, "   ")
}

func (m dashboardModel) help() string {
	var parts []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	if m.loading && len(m.sections) > 0 {
		parts = append(parts, m.spinner.View()+" refreshing")
	}
	return formatter.Dim(strings.Join(parts, " • "))
}
