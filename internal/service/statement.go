package service

import (
	"sort"
	"strings"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// ============================================================
// Monthly statement engine
// ============================================================

// BuildStatement assembles the full report for one calendar month. The
// opening balance is everything the church held before the 1st: the sum of
// account initial balances plus every income and expense dated strictly
// earlier. Month income is partitioned the way the printed statement lays it
// out, with tithes and offerings in their own sections.
func BuildStatement(data domain.AppData, year, month int) domain.MonthlyStatement {
	prefix := monthPrefix(year, month)
	firstOfMonth := prefix + "01"

	opening := decimal.Zero
	for _, a := range data.Accounts {
		opening = opening.Add(a.InitialBalance)
	}

	stmt := domain.MonthlyStatement{
		Year:  year,
		Month: month,
	}

	for _, tx := range data.Transactions {
		switch {
		case tx.Date < firstOfMonth:
			switch tx.Type {
			case domain.TransactionIncome:
				opening = opening.Add(tx.Value)
			case domain.TransactionExpense:
				opening = opening.Sub(tx.Value)
			}
		case strings.HasPrefix(tx.Date, prefix):
			line := domain.StatementLine{
				Date:        tx.Date,
				Description: tx.Description,
				Category:    tx.Category,
				Value:       tx.Value,
			}
			switch tx.Type {
			case domain.TransactionIncome:
				switch tx.Category {
				case "Dízimos":
					stmt.Tithes = append(stmt.Tithes, line)
					stmt.TithesTotal = stmt.TithesTotal.Add(tx.Value)
				case "Ofertas":
					stmt.Offerings = append(stmt.Offerings, line)
					stmt.OfferingsTotal = stmt.OfferingsTotal.Add(tx.Value)
				default:
					stmt.OtherIncome = append(stmt.OtherIncome, line)
					stmt.OtherTotal = stmt.OtherTotal.Add(tx.Value)
				}
			case domain.TransactionExpense:
				stmt.Expenses = append(stmt.Expenses, line)
				stmt.ExpenseTotal = stmt.ExpenseTotal.Add(tx.Value)
			}
		}
	}

	for _, section := range [][]domain.StatementLine{stmt.Tithes, stmt.Offerings, stmt.OtherIncome, stmt.Expenses} {
		sort.SliceStable(section, func(i, j int) bool {
			return section[i].Date < section[j].Date
		})
	}

	stmt.OpeningBalance = opening
	stmt.IncomeTotal = stmt.TithesTotal.Add(stmt.OfferingsTotal).Add(stmt.OtherTotal)
	stmt.ClosingBalance = opening.Add(stmt.IncomeTotal).Sub(stmt.ExpenseTotal)

	for _, c := range data.Closings {
		if c.Year == year && c.Month == month && c.IsClosed {
			stmt.IsClosed = true
			break
		}
	}
	return stmt
}
