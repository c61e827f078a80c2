package service

import (
	"fmt"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
)

// ============================================================
// Read-side entry points
// ============================================================

// Dashboard builds the landing view figures from the current working set.
func (t *Treasury) Dashboard() domain.DashboardStats {
	return ComputeDashboardStats(t.Snapshot(), t.now())
}

// Balances returns every account with its derived balance.
func (t *Treasury) Balances() []domain.AccountBalance {
	data := t.Snapshot()
	return AccountBalances(data.Accounts, data.Transactions)
}

// Alerts returns due-date notices for unpaid bills.
func (t *Treasury) Alerts() []domain.BillAlert {
	return BillAlerts(t.Snapshot().Bills, t.now())
}

// BillSummary aggregates bills by status.
func (t *Treasury) BillSummary() domain.BillTotals {
	return ComputeBillTotals(t.Snapshot().Bills)
}

// Series returns the trailing six month income/expense chart data.
func (t *Treasury) Series() []domain.MonthPoint {
	return TrailingSeries(t.Snapshot().Transactions, t.now(), 6)
}

// Progress derives the mission campaign progress view.
func (t *Treasury) Progress() domain.MissionProgress {
	return ComputeMissionProgress(t.Snapshot())
}

// Years lists the years available to the report picker.
func (t *Treasury) Years() []int {
	return AvailableYears(t.Snapshot().Transactions, t.now())
}

// Statement builds (or reuses) the monthly statement. Statements are
// memoised until the working set changes, since a month re-renders often
// while its data is stable.
func (t *Treasury) Statement(year, month int) (domain.MonthlyStatement, error) {
	if month < 1 || month > 12 {
		return domain.MonthlyStatement{}, &domain.ErrValidation{Field: "month", Message: "mês deve estar entre 1 e 12"}
	}

	key := fmt.Sprintf("statement:%04d-%02d", year, month)
	if cached, ok := t.stmtCache.Get(key); ok {
		t.metrics.IncrCacheHit("statement")
		return cached, nil
	}
	t.metrics.IncrCacheMiss("statement")

	stmt := BuildStatement(t.Snapshot(), year, month)
	t.stmtCache.Set(key, stmt)
	return stmt, nil
}
