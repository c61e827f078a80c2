package service

import (
	"testing"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
)

func statementFixture() domain.AppData {
	return domain.AppData{
		Accounts: []domain.BankAccount{
			{ID: "a1", InitialBalance: dec("1000")},
			{ID: "a2", InitialBalance: dec("500")},
		},
		Transactions: []domain.Transaction{
			// Before June: moves the opening balance.
			{Type: domain.TransactionIncome, Value: dec("200"), Date: "2025-05-10", Category: "Dízimos", Description: "Dízimo"},
			{Type: domain.TransactionExpense, Value: dec("100"), Date: "2025-04-20", Category: "Luz", Description: "Conta de luz"},
			// Transfers never touch statement arithmetic.
			{Type: domain.TransactionTransfer, Value: dec("9999"), Date: "2025-05-15", AccountID: "a1", ToAccountID: "a2"},
			// June entries.
			{Type: domain.TransactionIncome, Value: dec("300"), Date: "2025-06-08", Category: "Dízimos", Description: "Dízimo João"},
			{Type: domain.TransactionIncome, Value: dec("150"), Date: "2025-06-01", Category: "Dízimos", Description: "Dízimo Maria"},
			{Type: domain.TransactionIncome, Value: dec("80"), Date: "2025-06-15", Category: "Ofertas", Description: "Oferta culto"},
			{Type: domain.TransactionIncome, Value: dec("50"), Date: "2025-06-20", Category: "Eventos", Description: "Cantina"},
			{Type: domain.TransactionExpense, Value: dec("120"), Date: "2025-06-10", Category: "Aluguel", Description: "Aluguel salão"},
			// After June: ignored entirely.
			{Type: domain.TransactionIncome, Value: dec("777"), Date: "2025-07-01", Category: "Dízimos", Description: "Futuro"},
		},
		Closings: []domain.MonthlyClosing{
			{Year: 2025, Month: 6, IsClosed: true},
		},
	}
}

func TestBuildStatement_OpeningBalance(t *testing.T) {
	stmt := BuildStatement(statementFixture(), 2025, 6)

	// 1500 initial + 200 income - 100 expense before June 1st.
	if !stmt.OpeningBalance.Equal(dec("1600")) {
		t.Errorf("opening: expected 1600, got %s", stmt.OpeningBalance)
	}
}

func TestBuildStatement_PartitionAndTotals(t *testing.T) {
	stmt := BuildStatement(statementFixture(), 2025, 6)

	if len(stmt.Tithes) != 2 || !stmt.TithesTotal.Equal(dec("450")) {
		t.Errorf("tithes: %d lines, total %s", len(stmt.Tithes), stmt.TithesTotal)
	}
	if len(stmt.Offerings) != 1 || !stmt.OfferingsTotal.Equal(dec("80")) {
		t.Errorf("offerings: %d lines, total %s", len(stmt.Offerings), stmt.OfferingsTotal)
	}
	if len(stmt.OtherIncome) != 1 || !stmt.OtherTotal.Equal(dec("50")) {
		t.Errorf("other income: %d lines, total %s", len(stmt.OtherIncome), stmt.OtherTotal)
	}
	if len(stmt.Expenses) != 1 || !stmt.ExpenseTotal.Equal(dec("120")) {
		t.Errorf("expenses: %d lines, total %s", len(stmt.Expenses), stmt.ExpenseTotal)
	}
	if !stmt.IncomeTotal.Equal(dec("580")) {
		t.Errorf("income total: expected 580, got %s", stmt.IncomeTotal)
	}

	// Lines sorted by date within each section.
	if stmt.Tithes[0].Date != "2025-06-01" || stmt.Tithes[1].Date != "2025-06-08" {
		t.Errorf("tithes not date sorted: %+v", stmt.Tithes)
	}
}

func TestBuildStatement_ClosingBalance(t *testing.T) {
	stmt := BuildStatement(statementFixture(), 2025, 6)

	// 1600 opening + 580 income - 120 expense.
	if !stmt.ClosingBalance.Equal(dec("2060")) {
		t.Errorf("closing: expected 2060, got %s", stmt.ClosingBalance)
	}
	if !stmt.IsClosed {
		t.Error("expected June 2025 to be marked closed")
	}
}

func TestBuildStatement_EmptyMonth(t *testing.T) {
	stmt := BuildStatement(statementFixture(), 2024, 1)

	if !stmt.OpeningBalance.Equal(dec("1500")) {
		t.Errorf("opening for empty past month: expected 1500, got %s", stmt.OpeningBalance)
	}
	if !stmt.IncomeTotal.IsZero() || !stmt.ExpenseTotal.IsZero() {
		t.Errorf("expected zero movement, got %s / %s", stmt.IncomeTotal, stmt.ExpenseTotal)
	}
	if !stmt.ClosingBalance.Equal(stmt.OpeningBalance) {
		t.Errorf("closing should equal opening for empty month")
	}
	if stmt.IsClosed {
		t.Error("January 2024 has no closing record")
	}
}
