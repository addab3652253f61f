package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/spf13/cobra"
)

// lookupFunc lists every record of one kind so an id prefix can be matched.
type lookupFunc[T any] func(ctx context.Context) ([]T, error)

// pick resolves an id or id prefix against all records of one kind.
func pick[T any](ctx context.Context, kind, input string, list lookupFunc[T], id func(T) string) (T, error) {
	items, err := list(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return matchID(kind, input, items, id)
}

// newRemoveCmd builds the "remove ID" subcommand shared by the tracking records.
func newRemoveCmd[T any](kind string, list lookupFunc[T], id func(T) string, del func(context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := pick(cmd.Context(), kind, args[0], list, id)
			if err != nil {
				return err
			}
			if err := del(cmd.Context(), id(item)); err != nil {
				return err
			}
			printf(cmd, "Removed %s %s\n", kind, formatter.TruncID(id(item)))
			return nil
		},
	}
}

// projectList resolves the optional --project flag and lists through fn.
func projectList[T any](cmd *cobra.Command, app *App, project string, fn func(context.Context, string) ([]T, error)) ([]T, error) {
	projectID, err := resolveProjectFlag(cmd.Context(), app, project)
	if err != nil {
		return nil, err
	}
	return fn(cmd.Context(), projectID)
}

// ── Schedule of Values ──────────────────────────────────────────────────────

func newSOVCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sov",
		Short: "Manage Schedule of Values billing lines",
	}

	all := func(ctx context.Context) ([]*domain.SOVItem, error) { return app.SOV.List(ctx, "") }
	id := func(s *domain.SOVItem) string { return s.ID }

	cmd.AddCommand(
		newSOVAddCmd(app),
		newSOVListCmd(app),
		newSOVBillCmd(app, all, id),
		newRemoveCmd("SOV line", all, id, app.SOV.Delete),
	)
	return cmd
}

func newSOVAddCmd(app *App) *cobra.Command {
	var project, item, description string
	var value float64
	var resources []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a billing line",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			ids, err := resolveResourceIDs(ctx, app, resources)
			if err != nil {
				return err
			}
			s := &domain.SOVItem{
				ProjectID:         p.ID,
				ItemNumber:        item,
				Description:       description,
				ScheduledValue:    value,
				AssignedResources: ids,
			}
			if err := app.SOV.Create(ctx, s); err != nil {
				return err
			}
			printf(cmd, "Added SOV line %s to %s (%s)\n", item, p.ProjectNumber, formatter.Money(value))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number or id")
	cmd.Flags().StringVar(&item, "item", "", "Item number")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().Float64Var(&value, "value", 0, "Scheduled value")
	cmd.Flags().StringArrayVar(&resources, "resource", nil, "Assigned resource (repeatable)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newSOVListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List billing lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := projectList(cmd, app, project, app.SOV.List)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				writeln(cmd, "No SOV lines found.")
				return nil
			}
			writeln(cmd, formatter.FormatSOVList(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only lines of this project")
	return cmd
}

func newSOVBillCmd(app *App, all lookupFunc[*domain.SOVItem], id func(*domain.SOVItem) string) *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "bill ID",
		Short: "Bill an amount against a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := pick(cmd.Context(), "SOV line", args[0], all, id)
			if err != nil {
				return err
			}
			updated, err := app.SOV.Bill(cmd.Context(), item.ID, amount)
			if err != nil {
				return err
			}
			printf(cmd, "%s billed to date: %s of %s (%.0f%%)\n", updated.ItemNumber,
				formatter.Money(updated.BilledToDate), formatter.Money(updated.ScheduledValue), updated.PercentBilled())
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to bill")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// ── RFIs ────────────────────────────────────────────────────────────────────

func newRFICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rfi",
		Short: "Track Requests for Information",
	}

	all := func(ctx context.Context) ([]*domain.RFI, error) { return app.RFIs.List(ctx, "") }
	id := func(r *domain.RFI) string { return r.ID }
	transition := func(use, short, verb string, fn func(context.Context, string) (*domain.RFI, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " ID",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := pick(cmd.Context(), "RFI", args[0], all, id)
				if err != nil {
					return err
				}
				if r, err = fn(cmd.Context(), r.ID); err != nil {
					return err
				}
				printf(cmd, "RFI #%d %s\n", r.Number, verb)
				return nil
			},
		}
	}

	cmd.AddCommand(
		newRFIAddCmd(app),
		newRFIListCmd(app),
		transition("answer", "Mark an RFI answered", "answered", app.RFIs.Answer),
		transition("close", "Close an RFI", "closed", app.RFIs.Close),
		newRemoveCmd("RFI", all, id, app.RFIs.Delete),
	)
	return cmd
}

func newRFIAddCmd(app *App) *cobra.Command {
	var project, subject, question, priority, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Raise an RFI",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			dueDate, err := parseOptionalDateFlag("due", due)
			if err != nil {
				return err
			}
			r := &domain.RFI{
				ProjectID: p.ID,
				Subject:   subject,
				Question:  question,
				Priority:  domain.Priority(priority),
				DueDate:   dueDate,
			}
			if err := app.RFIs.Create(ctx, r); err != nil {
				return err
			}
			printf(cmd, "Raised RFI #%d on %s: %s\n", r.Number, p.ProjectNumber, r.Subject)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number or id")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject")
	cmd.Flags().StringVar(&question, "question", "", "Question text")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|critical)")
	cmd.Flags().StringVar(&due, "due", "", "Response due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func newRFIListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List RFIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rfis, err := projectList(cmd, app, project, app.RFIs.List)
			if err != nil {
				return err
			}
			if len(rfis) == 0 {
				writeln(cmd, "No RFIs found.")
				return nil
			}
			writeln(cmd, formatter.FormatRFIList(rfis, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only RFIs of this project")
	return cmd
}

// ── Change orders ───────────────────────────────────────────────────────────

func newChangeOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "changeorder",
		Aliases: []string{"co"},
		Short:   "Track change orders",
	}

	all := func(ctx context.Context) ([]*domain.ChangeOrder, error) { return app.ChangeOrders.List(ctx, "") }
	id := func(c *domain.ChangeOrder) string { return c.ID }
	decide := func(status domain.ChangeOrderStatus) *cobra.Command {
		verb := map[domain.ChangeOrderStatus]string{
			domain.ChangeOrderApproved: "approve",
			domain.ChangeOrderRejected: "reject",
		}[status]
		return &cobra.Command{
			Use:   verb + " ID",
			Short: "Mark a pending change order " + string(status),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := pick(cmd.Context(), "change order", args[0], all, id)
				if err != nil {
					return err
				}
				if c, err = app.ChangeOrders.SetStatus(cmd.Context(), c.ID, status); err != nil {
					return err
				}
				printf(cmd, "Change order #%d %s\n", c.Number, c.Status)
				return nil
			},
		}
	}

	cmd.AddCommand(
		newChangeOrderAddCmd(app),
		newChangeOrderListCmd(app),
		decide(domain.ChangeOrderApproved),
		decide(domain.ChangeOrderRejected),
		newRemoveCmd("change order", all, id, app.ChangeOrders.Delete),
	)
	return cmd
}

func newChangeOrderAddCmd(app *App) *cobra.Command {
	var project, title string
	var cost float64
	var days int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a change order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			c := &domain.ChangeOrder{
				ProjectID:          p.ID,
				Title:              title,
				CostImpact:         cost,
				ScheduleImpactDays: days,
			}
			if err := app.ChangeOrders.Create(ctx, c); err != nil {
				return err
			}
			printf(cmd, "Submitted change order #%d on %s (%s, %+d days)\n",
				c.Number, p.ProjectNumber, formatter.Money(cost), days)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number or id")
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Cost impact")
	cmd.Flags().IntVar(&days, "days", 0, "Schedule impact in days")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newChangeOrderListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List change orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := projectList(cmd, app, project, app.ChangeOrders.List)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				writeln(cmd, "No change orders found.")
				return nil
			}
			writeln(cmd, formatter.FormatChangeOrderList(orders))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only change orders of this project")
	return cmd
}

// ── Deliveries ──────────────────────────────────────────────────────────────

func newDeliveryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delivery",
		Short: "Track material deliveries",
	}

	all := func(ctx context.Context) ([]*domain.Delivery, error) { return app.Deliveries.List(ctx, "") }
	id := func(d *domain.Delivery) string { return d.ID }

	cmd.AddCommand(
		newDeliveryAddCmd(app),
		newDeliveryListCmd(app),
		newDeliveryReceivedCmd(app, all, id),
		newRemoveCmd("delivery", all, id, app.Deliveries.Delete),
	)
	return cmd
}

func newDeliveryAddCmd(app *App) *cobra.Command {
	var project, description, supplier, scheduled, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a delivery",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			on, err := domain.ParseDate(scheduled)
			if err != nil {
				return fmt.Errorf("--scheduled: %w", err)
			}
			d := &domain.Delivery{
				ProjectID:     p.ID,
				Description:   description,
				Supplier:      supplier,
				Status:        domain.DeliveryStatus(status),
				ScheduledDate: on,
			}
			if err := app.Deliveries.Create(ctx, d); err != nil {
				return err
			}
			printf(cmd, "Scheduled delivery %q for %s\n", description, scheduled)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number or id")
	cmd.Flags().StringVar(&description, "description", "", "What is being delivered")
	cmd.Flags().StringVar(&supplier, "supplier", "", "Supplier")
	cmd.Flags().StringVar(&scheduled, "scheduled", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Status (scheduled|in_transit|delivered|delayed|cancelled)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("scheduled")

	return cmd
}

func newDeliveryListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deliveries",
		RunE: func(cmd *cobra.Command, args []string) error {
			deliveries, err := projectList(cmd, app, project, app.Deliveries.List)
			if err != nil {
				return err
			}
			if len(deliveries) == 0 {
				writeln(cmd, "No deliveries found.")
				return nil
			}
			writeln(cmd, formatter.FormatDeliveryList(deliveries, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only deliveries of this project")
	return cmd
}

func newDeliveryReceivedCmd(app *App, all lookupFunc[*domain.Delivery], id func(*domain.Delivery) string) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "received ID",
		Short: "Record that a delivery arrived",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := pick(cmd.Context(), "delivery", args[0], all, id)
			if err != nil {
				return err
			}
			when := app.now()
			if on != "" {
				if when, err = domain.ParseDate(on); err != nil {
					return fmt.Errorf("--on: %w", err)
				}
			}
			if d, err = app.Deliveries.MarkDelivered(cmd.Context(), d.ID, when); err != nil {
				return err
			}
			if late := d.DelayDays(); late > 0 {
				printf(cmd, "Delivered %q, %d day(s) late\n", d.Description, late)
				return nil
			}
			printf(cmd, "Delivered %q on time\n", d.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Delivery date (YYYY-MM-DD, default today)")
	return cmd
}

// ── Financials ──────────────────────────────────────────────────────────────

func newFinancialCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "financial",
		Short: "Track budget lines per cost category",
	}

	all := func(ctx context.Context) ([]*domain.Financial, error) { return app.Financials.List(ctx, "") }
	id := func(f *domain.Financial) string { return f.ID }

	cmd.AddCommand(
		newFinancialAddCmd(app),
		newFinancialListCmd(app),
		newFinancialUpdateCmd(app, all, id),
		newRemoveCmd("budget line", all, id, app.Financials.Delete),
	)
	return cmd
}

func newFinancialAddCmd(app *App) *cobra.Command {
	var project, category string
	var budget, committed, actual float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a budget line",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			f := &domain.Financial{
				ProjectID:       p.ID,
				Category:        category,
				BudgetAmount:    budget,
				CommittedAmount: committed,
				ActualAmount:    actual,
			}
			if err := app.Financials.Create(ctx, f); err != nil {
				return err
			}
			printf(cmd, "Added %s budget of %s to %s\n", category, formatter.Money(budget), p.ProjectNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number or id")
	cmd.Flags().StringVar(&category, "category", "", "Cost category")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget amount")
	cmd.Flags().Float64Var(&committed, "committed", 0, "Committed amount")
	cmd.Flags().Float64Var(&actual, "actual", 0, "Actual amount")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newFinancialListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budget lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := projectList(cmd, app, project, app.Financials.List)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				writeln(cmd, "No budget lines found.")
				return nil
			}
			writeln(cmd, formatter.FormatFinancialList(lines))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only lines of this project")
	return cmd
}

func newFinancialUpdateCmd(app *App, all lookupFunc[*domain.Financial], id func(*domain.Financial) string) *cobra.Command {
	var budget, committed, actual float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update amounts on a budget line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := pick(cmd.Context(), "budget line", args[0], all, id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("budget") {
				f.BudgetAmount = budget
			}
			if flags.Changed("committed") {
				f.CommittedAmount = committed
			}
			if flags.Changed("actual") {
				f.ActualAmount = actual
			}
			if err := app.Financials.Update(cmd.Context(), f); err != nil {
				return err
			}
			printf(cmd, "%s: variance %s\n", f.Category, formatter.Money(f.Variance()))
			return nil
		},
	}

	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget amount")
	cmd.Flags().Float64Var(&committed, "committed", 0, "Committed amount")
	cmd.Flags().Float64Var(&actual, "actual", 0, "Actual amount")
	return cmd
}

// ── Safety incidents ────────────────────────────────────────────────────────

func newIncidentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incident",
		Short: "Record safety incidents",
	}

	all := func(ctx context.Context) ([]*domain.SafetyIncident, error) { return app.Incidents.List(ctx, "") }
	id := func(s *domain.SafetyIncident) string { return s.ID }

	closeCmd := &cobra.Command{
		Use:   "close ID",
		Short: "Close an incident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inc, err := pick(cmd.Context(), "incident", args[0], all, id)
			if err != nil {
				return err
			}
			if inc, err = app.Incidents.Close(cmd.Context(), inc.ID); err != nil {
				return err
			}
			printf(cmd, "Closed incident %q\n", inc.Title)
			return nil
		},
	}

	cmd.AddCommand(
		newIncidentAddCmd(app),
		newIncidentListCmd(app),
		closeCmd,
		newRemoveCmd("incident", all, id, app.Incidents.Delete),
	)
	return cmd
}

func newIncidentAddCmd(app *App) *cobra.Command {
	var project, title, description, severity string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Report a safety incident",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			inc := &domain.SafetyIncident{
				ProjectID:   p.ID,
				Title:       title,
				Description: description,
				Severity:    domain.Priority(severity),
			}
			if err := app.Incidents.Create(ctx, inc); err != nil {
				return err
			}
			printf(cmd, "Reported %s incident on %s: %s\n",
				formatter.PriorityIndicator(inc.Severity), p.ProjectNumber, inc.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project number or id")
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&description, "description", "", "What happened")
	cmd.Flags().StringVar(&severity, "severity", string(domain.PriorityMedium), "Severity (low|medium|high|critical)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newIncidentListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List safety incidents",
		RunE: func(cmd *cobra.Command, args []string) error {
			incidents, err := projectList(cmd, app, project, app.Incidents.List)
			if err != nil {
				return err
			}
			if len(incidents) == 0 {
				writeln(cmd, "No incidents recorded.")
				return nil
			}
			writeln(cmd, formatter.FormatIncidentList(incidents, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only incidents of this project")
	return cmd
}

// ── Notifications ───────────────────────────────────────────────────────────

func newNotificationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"inbox"},
		Short:   "Read alert notifications",
	}
	cmd.AddCommand(newNotificationListCmd(app), newNotificationReadCmd(app))
	return cmd
}

// inboxOwner returns --user, falling back to the signed-in user.
func inboxOwner(cmd *cobra.Command, app *App, user string) (string, error) {
	if user != "" {
		return user, nil
	}
	me, err := app.Auth.Me(cmd.Context())
	if err != nil {
		return "", err
	}
	return me.Email, nil
}

func newNotificationListCmd(app *App) *cobra.Command {
	var user string
	var unread bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := inboxOwner(cmd, app, user)
			if err != nil {
				return err
			}
			ns, err := app.Notifications.List(cmd.Context(), email, unread)
			if err != nil {
				return err
			}
			if len(ns) == 0 {
				writeln(cmd, "No notifications.")
				return nil
			}
			writeln(cmd, formatter.FormatNotificationList(ns, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Recipient email (default: you)")
	cmd.Flags().BoolVar(&unread, "unread", false, "Only unread notifications")
	return cmd
}

func newNotificationReadCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "read ID",
		Short: "Mark a notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := inboxOwner(cmd, app, user)
			if err != nil {
				return err
			}
			list := func(ctx context.Context) ([]*domain.Notification, error) {
				return app.Notifications.List(ctx, email, false)
			}
			n, err := pick(cmd.Context(), "notification", args[0], list, func(n *domain.Notification) string { return n.ID })
			if err != nil {
				return err
			}
			if err := app.Notifications.MarkRead(cmd.Context(), n.ID); err != nil {
				return err
			}
			printf(cmd, "Marked read: %s\n", n.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Recipient email (default: you)")
	return cmd
}
