package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

func FormatSOVList(items []*domain.SOVItem) string {
	headers := []string{"ID", "ITEM", "DESCRIPTION", "SCHEDULED", "BILLED", "BILLED %"}
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.ItemNumber,
			s.Description,
			Money(s.ScheduledValue),
			Money(s.BilledToDate),
			fmt.Sprintf("%.1f%%", s.PercentBilled()),
		})
	}
	return RenderTable(headers, rows)
}

func FormatRFIList(rfis []*domain.RFI, now time.Time) string {
	headers := []string{"ID", "#", "SUBJECT", "STATUS", "PRIORITY", "DUE"}
	rows := make([][]string, 0, len(rfis))
	for _, r := range rfis {
		due := Dim("--")
		if r.DueDate != nil {
			due = RelativeDateFrom(*r.DueDate, now)
			if r.IsOverdue(now) {
				due = StyleRed.Render(due)
			}
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			fmt.Sprintf("RFI-%03d", r.Number),
			r.Subject,
			string(r.Status),
			PriorityIndicator(r.Priority),
			due,
		})
	}
	return RenderTable(headers, rows)
}

func FormatChangeOrderList(orders []*domain.ChangeOrder) string {
	headers := []string{"ID", "#", "TITLE", "STATUS", "COST", "DAYS"}
	rows := make([][]string, 0, len(orders))
	for _, c := range orders {
		status := string(c.Status)
		switch c.Status {
		case domain.ChangeOrderApproved:
			status = StyleGreen.Render(status)
		case domain.ChangeOrderRejected:
			status = StyleDim.Render(status)
		default:
			status = StyleYellow.Render(status)
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			fmt.Sprintf("CO-%03d", c.Number),
			c.Title,
			status,
			Money(c.CostImpact),
			fmt.Sprintf("%d", c.ScheduleImpactDays),
		})
	}
	return RenderTable(headers, rows)
}

func FormatDeliveryList(deliveries []*domain.Delivery, now time.Time) string {
	headers := []string{"ID", "DESCRIPTION", "SUPPLIER", "STATUS", "SCHEDULED", "DELAY"}
	rows := make([][]string, 0, len(deliveries))
	for _, d := range deliveries {
		scheduled := d.ScheduledDate.Format(domain.DateLayout)
		if d.DeliveredDate == nil && d.Status != domain.DeliveryCancelled {
			scheduled = DueStyled(d.ScheduledDate, now)
		}
		delay := Dim("--")
		if n := d.DelayDays(); n > 0 {
			delay = StyleRed.Render(fmt.Sprintf("%dd late", n))
		} else if d.DeliveredDate != nil {
			delay = StyleGreen.Render("on time")
		}
		rows = append(rows, []string{
			TruncID(d.ID),
			d.Description,
			orDash(d.Supplier),
			string(d.Status),
			scheduled,
			delay,
		})
	}
	return RenderTable(headers, rows)
}

func FormatFinancialList(lines []*domain.Financial) string {
	headers := []string{"ID", "CATEGORY", "BUDGET", "COMMITTED", "ACTUAL", "VARIANCE"}
	rows := make([][]string, 0, len(lines)+1)
	var budget, committed, actual float64
	for _, f := range lines {
		budget += f.BudgetAmount
		committed += f.CommittedAmount
		actual += f.ActualAmount
		rows = append(rows, []string{
			TruncID(f.ID),
			f.Category,
			Money(f.BudgetAmount),
			Money(f.CommittedAmount),
			Money(f.ActualAmount),
			variance(f.Variance()),
		})
	}
	if len(lines) > 1 {
		rows = append(rows, []string{"", Bold("TOTAL"), Money(budget), Money(committed), Money(actual), variance(budget - actual)})
	}
	return RenderTable(headers, rows)
}

func variance(v float64) string {
	if v < 0 {
		return StyleRed.Render(Money(v))
	}
	return StyleGreen.Render(Money(v))
}

func FormatIncidentList(incidents []*domain.SafetyIncident, now time.Time) string {
	headers := []string{"ID", "TITLE", "SEVERITY", "STATUS", "REPORTED"}
	rows := make([][]string, 0, len(incidents))
	for _, s := range incidents {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.Title,
			PriorityIndicator(s.Severity),
			string(s.Status),
			TimestampFrom(s.ReportedAt, now),
		})
	}
	return RenderTable(headers, rows)
}

func FormatNotificationList(ns []*domain.Notification, now time.Time) string {
	headers := []string{"ID", "", "TYPE", "TITLE", "PRIORITY", "WHEN"}
	rows := make([][]string, 0, len(ns))
	for _, n := range ns {
		mark := StyleBlue.Render("●")
		if n.IsRead {
			mark = " "
		}
		rows = append(rows, []string{
			TruncID(n.ID),
			mark,
			string(n.Type),
			n.Title,
			PriorityIndicator(n.Priority),
			TimestampFrom(n.CreatedAt, now),
		})
	}
	return RenderTable(headers, rows)
}
