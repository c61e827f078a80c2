package service

import (
	"testing"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
)

func TestComputeBillTotals(t *testing.T) {
	bills := []domain.Bill{
		{ID: "b1", Value: dec("100"), Status: domain.BillPending},
		{ID: "b2", Value: dec("50"), Status: domain.BillPending},
		{ID: "b3", Value: dec("200"), Status: domain.BillPaid},
		{ID: "b4", Value: dec("75"), Status: domain.BillOverdue},
	}

	totals := ComputeBillTotals(bills)
	if totals.PendingCount != 2 || !totals.PendingValue.Equal(dec("150")) {
		t.Errorf("pending: got %d / %s", totals.PendingCount, totals.PendingValue)
	}
	if totals.PaidCount != 1 || !totals.PaidValue.Equal(dec("200")) {
		t.Errorf("paid: got %d / %s", totals.PaidCount, totals.PaidValue)
	}
	if totals.OverdueCount != 1 || !totals.OverdueValue.Equal(dec("75")) {
		t.Errorf("overdue: got %d / %s", totals.OverdueCount, totals.OverdueValue)
	}
}

func TestFilterBills(t *testing.T) {
	bills := []domain.Bill{
		{ID: "b1", Status: domain.BillPending},
		{ID: "b2", Status: domain.BillPaid},
	}

	if got := FilterBills(bills, ""); len(got) != 2 {
		t.Errorf("empty status should return all, got %d", len(got))
	}
	got := FilterBills(bills, domain.BillPaid)
	if len(got) != 1 || got[0].ID != "b2" {
		t.Errorf("expected only b2, got %+v", got)
	}
}

func TestBillAlerts_SeveritiesAndOrdering(t *testing.T) {
	// The 15th of the month: due days map to -5, 0, 1, 3, 10 and 25.
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	bills := []domain.Bill{
		{ID: "far", Description: "Seguro", DueDate: 30, Status: domain.BillPending},    // +15, suppressed
		{ID: "info", Description: "Internet", DueDate: 25, Status: domain.BillPending}, // +10
		{ID: "warn", Description: "Energia", DueDate: 18, Status: domain.BillPending},  // +3
		{ID: "tomorrow", Description: "Água", DueDate: 16, Status: domain.BillPending}, // +1
		{ID: "today", Description: "Aluguel", DueDate: 15, Status: domain.BillPending}, // 0
		{ID: "late", Description: "Telefone", DueDate: 10, Status: domain.BillPending}, // -5
		{ID: "paid", Description: "Gás", DueDate: 15, Status: domain.BillPaid},         // suppressed
	}

	alerts := BillAlerts(bills, now)
	if len(alerts) != 5 {
		t.Fatalf("expected 5 alerts, got %d", len(alerts))
	}

	wantOrder := []string{"late", "today", "tomorrow", "warn", "info"}
	for i, want := range wantOrder {
		if alerts[i].Bill.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, alerts[i].Bill.ID)
		}
	}

	if alerts[0].Severity != domain.AlertOverdue {
		t.Errorf("late bill severity: %s", alerts[0].Severity)
	}
	if alerts[1].Severity != domain.AlertToday || alerts[2].Severity != domain.AlertToday {
		t.Errorf("today/tomorrow severities: %s / %s", alerts[1].Severity, alerts[2].Severity)
	}
	if alerts[3].Severity != domain.AlertWarning {
		t.Errorf("warning severity: %s", alerts[3].Severity)
	}
	if alerts[4].Severity != domain.AlertInfo {
		t.Errorf("info severity: %s", alerts[4].Severity)
	}
}

func TestBillAlerts_PaidBillsNeverAlert(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	bills := []domain.Bill{
		{ID: "b1", Description: "Luz", DueDate: 10, Status: domain.BillPaid},
	}
	if alerts := BillAlerts(bills, now); len(alerts) != 0 {
		t.Errorf("expected no alerts for paid bill, got %d", len(alerts))
	}
}

func TestBillAlerts_DayOfMonthComparison(t *testing.T) {
	// On the 28th, a bill due on the 2nd counts as overdue by 26 days
	// rather than due in a few days. Day numbers are compared directly.
	now := time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC)
	bills := []domain.Bill{
		{ID: "b1", Description: "Dízimo repasse", DueDate: 2, Status: domain.BillPending},
	}

	alerts := BillAlerts(bills, now)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].DaysUntil != -26 || alerts[0].Severity != domain.AlertOverdue {
		t.Errorf("expected daysUntil -26 overdue, got %d %s", alerts[0].DaysUntil, alerts[0].Severity)
	}
}
