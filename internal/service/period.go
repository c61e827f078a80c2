package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// ============================================================
// Period aggregation engine
// ============================================================

// monthLabels are the pt-BR short month names used on charts.
var monthLabels = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

func monthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}

// MonthlyTotals sums income and expense transactions for one calendar month.
// Transfers move money between accounts and are excluded.
func MonthlyTotals(transactions []domain.Transaction, year, month int) (income, expense decimal.Decimal) {
	prefix := monthPrefix(year, month)
	for _, tx := range transactions {
		if !strings.HasPrefix(tx.Date, prefix) {
			continue
		}
		switch tx.Type {
		case domain.TransactionIncome:
			income = income.Add(tx.Value)
		case domain.TransactionExpense:
			expense = expense.Add(tx.Value)
		}
	}
	return income, expense
}

// ComputeDashboardStats builds the landing view figures for the month
// containing now.
func ComputeDashboardStats(data domain.AppData, now time.Time) domain.DashboardStats {
	income, expense := MonthlyTotals(data.Transactions, now.Year(), int(now.Month()))

	pending := 0
	for _, b := range data.Bills {
		if b.Status != domain.BillPaid {
			pending++
		}
	}

	return domain.DashboardStats{
		TotalBalance:   ConsolidatedTotal(data.Accounts, data.Transactions),
		MonthlyIncome:  income,
		MonthlyExpense: expense,
		MonthlyNet:     income.Sub(expense),
		PendingBills:   pending,
	}
}

// CategoryBreakdown totals one transaction type per category for a month,
// largest first.
func CategoryBreakdown(transactions []domain.Transaction, txType domain.TransactionType, year, month int) []domain.CategoryTotal {
	prefix := monthPrefix(year, month)
	byCategory := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Type != txType || !strings.HasPrefix(tx.Date, prefix) {
			continue
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Value)
	}

	out := make([]domain.CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		out = append(out, domain.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Equal(out[j].Total) {
			return out[i].Category < out[j].Category
		}
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// TrailingSeries builds the income/expense chart data for the n months
// ending with the month containing now, oldest first.
func TrailingSeries(transactions []domain.Transaction, now time.Time, n int) []domain.MonthPoint {
	points := make([]domain.MonthPoint, 0, n)
	// Anchor on the first of the month so month arithmetic never normalises
	// a day-31 date into the wrong month.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := n - 1; i >= 0; i-- {
		ref := first.AddDate(0, -i, 0)
		year, month := ref.Year(), int(ref.Month())
		income, expense := MonthlyTotals(transactions, year, month)
		points = append(points, domain.MonthPoint{
			Label:   monthLabels[month-1],
			Year:    year,
			Month:   month,
			Income:  income,
			Expense: expense,
		})
	}
	return points
}

// AvailableYears lists the selectable report years: the contiguous ascending
// range from the earliest transaction year through one year past the latest
// of the current year and the newest transaction year. Sparse history leaves
// no gaps. Without any transactions only the current year is offered.
func AvailableYears(transactions []domain.Transaction, now time.Time) []int {
	minYear, maxYear := 0, now.Year()
	for _, tx := range transactions {
		if len(tx.Date) < 4 {
			continue
		}
		var y int
		if _, err := fmt.Sscanf(tx.Date[:4], "%d", &y); err != nil {
			continue
		}
		if minYear == 0 || y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	if minYear == 0 {
		return []int{now.Year()}
	}

	years := make([]int, 0, maxYear+2-minYear)
	for y := minYear; y <= maxYear+1; y++ {
		years = append(years, y)
	}
	return years
}
