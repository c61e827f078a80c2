package service

import (
	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// ============================================================
// Balance engine
// ============================================================

// CurrentBalance derives an account's balance from its initial balance plus
// every movement touching it. Incomes add, expenses subtract, and a transfer
// subtracts from the origin and adds to the destination.
func CurrentBalance(account domain.BankAccount, transactions []domain.Transaction) decimal.Decimal {
	balance := account.InitialBalance
	for _, tx := range transactions {
		if tx.AccountID == account.ID {
			switch tx.Type {
			case domain.TransactionIncome:
				balance = balance.Add(tx.Value)
			case domain.TransactionExpense, domain.TransactionTransfer:
				balance = balance.Sub(tx.Value)
			}
		}
		if tx.Type == domain.TransactionTransfer && tx.ToAccountID == account.ID {
			balance = balance.Add(tx.Value)
		}
	}
	return balance
}

// ConsolidatedTotal sums the current balance of every account. Transfers
// cancel out across accounts, so the total only moves with incomes and
// expenses.
func ConsolidatedTotal(accounts []domain.BankAccount, transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(CurrentBalance(a, transactions))
	}
	return total
}

// AccountBalances pairs every account with its derived balance, preserving
// account order.
func AccountBalances(accounts []domain.BankAccount, transactions []domain.Transaction) []domain.AccountBalance {
	out := make([]domain.AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, domain.AccountBalance{
			Account: a,
			Balance: CurrentBalance(a, transactions),
		})
	}
	return out
}
