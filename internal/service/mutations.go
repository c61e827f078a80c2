package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Every write follows the same protocol: validate against the local working
// set, send to the backend, and only on confirmed success apply the change
// locally. The local apply is optimistic bookkeeping; the next Refresh
// re-fetches authoritative state.

// ============================================================
// Transactions
// ============================================================

func (t *Treasury) CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Treasury.CreateTransaction")
	defer span.End()

	if err := t.validateTransaction(&tx); err != nil {
		return nil, err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	created, err := t.store.CreateTransaction(ctx, &tx)
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("transaction")

	t.mutate(func(data *domain.AppData) {
		data.Transactions = append(data.Transactions, *created)
	})
	return created, nil
}

func (t *Treasury) validateTransaction(tx *domain.Transaction) error {
	switch tx.Type {
	case domain.TransactionIncome, domain.TransactionExpense, domain.TransactionTransfer:
	default:
		return &domain.ErrValidation{Field: "type", Message: "tipo de transação inválido"}
	}
	if tx.Value.LessThanOrEqual(decimal.Zero) {
		return &domain.ErrValidation{Field: "value", Message: "valor deve ser positivo"}
	}
	if _, err := time.Parse("2006-01-02", tx.Date); err != nil {
		return &domain.ErrValidation{Field: "date", Message: "data deve estar no formato AAAA-MM-DD"}
	}
	if strings.TrimSpace(tx.Description) == "" {
		return &domain.ErrValidation{Field: "description", Message: "descrição é obrigatória"}
	}

	data := t.Snapshot()
	if findAccount(data.Accounts, tx.AccountID) == nil {
		return &domain.ErrNotFound{Resource: "account", ID: tx.AccountID}
	}
	if tx.Type == domain.TransactionTransfer {
		if tx.ToAccountID == "" {
			return &domain.ErrValidation{Field: "toAccountId", Message: "conta de destino é obrigatória"}
		}
		if tx.ToAccountID == tx.AccountID {
			return &domain.ErrValidation{Field: "toAccountId", Message: "conta de destino deve ser diferente da origem"}
		}
		if findAccount(data.Accounts, tx.ToAccountID) == nil {
			return &domain.ErrNotFound{Resource: "account", ID: tx.ToAccountID}
		}
	}
	return nil
}

func (t *Treasury) DeleteTransaction(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Treasury.DeleteTransaction")
	defer span.End()

	data := t.Snapshot()
	found := false
	for _, tx := range data.Transactions {
		if tx.ID == id {
			found = true
			break
		}
	}
	if !found {
		return &domain.ErrNotFound{Resource: "transaction", ID: id}
	}

	if err := t.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	t.metrics.IncrMutation("transaction")

	t.mutate(func(data *domain.AppData) {
		data.Transactions = removeByID(data.Transactions, id, func(tx domain.Transaction) string { return tx.ID })
	})
	return nil
}

// ============================================================
// Accounts
// ============================================================

func (t *Treasury) CreateAccount(ctx context.Context, a domain.BankAccount) (*domain.BankAccount, error) {
	ctx, span := tracer.Start(ctx, "Treasury.CreateAccount")
	defer span.End()

	if strings.TrimSpace(a.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "nome é obrigatório"}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	created, err := t.store.CreateAccount(ctx, &a)
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("account")

	t.mutate(func(data *domain.AppData) {
		data.Accounts = append(data.Accounts, *created)
	})
	return created, nil
}

func (t *Treasury) DeleteAccount(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Treasury.DeleteAccount")
	defer span.End()

	data := t.Snapshot()
	if findAccount(data.Accounts, id) == nil {
		return &domain.ErrNotFound{Resource: "account", ID: id}
	}
	for _, tx := range data.Transactions {
		if tx.AccountID == id || tx.ToAccountID == id {
			return &domain.ErrConflict{Message: "conta possui transações e não pode ser removida"}
		}
	}

	if err := t.store.DeleteAccount(ctx, id); err != nil {
		return err
	}
	t.metrics.IncrMutation("account")

	t.mutate(func(data *domain.AppData) {
		data.Accounts = removeByID(data.Accounts, id, func(a domain.BankAccount) string { return a.ID })
	})
	return nil
}

// ApplyBalanceEdit sets the consolidated balance to newTotal by shifting the
// first account's initial balance by the difference. With no accounts yet, a
// main cash account is created holding the full amount.
func (t *Treasury) ApplyBalanceEdit(ctx context.Context, newTotal decimal.Decimal) (*domain.BankAccount, error) {
	ctx, span := tracer.Start(ctx, "Treasury.ApplyBalanceEdit")
	defer span.End()

	data := t.Snapshot()

	if len(data.Accounts) == 0 {
		account := domain.BankAccount{
			ID:             "main",
			Name:           "Saldo Principal",
			Type:           "Caixa",
			InitialBalance: newTotal,
		}
		created, err := t.store.CreateAccount(ctx, &account)
		if err != nil {
			return nil, err
		}
		t.metrics.IncrMutation("account")
		t.mutate(func(data *domain.AppData) {
			data.Accounts = append(data.Accounts, *created)
		})
		return created, nil
	}

	current := ConsolidatedTotal(data.Accounts, data.Transactions)
	delta := newTotal.Sub(current)
	first := data.Accounts[0]
	newInitial := first.InitialBalance.Add(delta)

	updated, err := t.store.UpdateAccount(ctx, first.ID, map[string]any{
		"initialBalance": newInitial.InexactFloat64(),
	})
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("account")

	t.logger.Info("balance edited",
		zap.String("account_id", first.ID),
		zap.String("old_total", current.String()),
		zap.String("new_total", newTotal.String()),
	)

	t.mutate(func(data *domain.AppData) {
		data.Accounts = slices.Clone(data.Accounts)
		for i := range data.Accounts {
			if data.Accounts[i].ID == first.ID {
				data.Accounts[i] = *updated
				break
			}
		}
	})
	return updated, nil
}

// ============================================================
// Bills
// ============================================================

func (t *Treasury) CreateBill(ctx context.Context, b domain.Bill) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "Treasury.CreateBill")
	defer span.End()

	if strings.TrimSpace(b.Description) == "" {
		return nil, &domain.ErrValidation{Field: "description", Message: "descrição é obrigatória"}
	}
	if b.Value.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "value", Message: "valor deve ser positivo"}
	}
	if b.DueDate < 1 || b.DueDate > 31 {
		return nil, &domain.ErrValidation{Field: "dueDate", Message: "dia de vencimento deve estar entre 1 e 31"}
	}
	if b.Status == "" {
		b.Status = domain.BillPending
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	created, err := t.store.CreateBill(ctx, &b)
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("bill")

	t.mutate(func(data *domain.AppData) {
		data.Bills = append(data.Bills, *created)
	})
	return created, nil
}

func (t *Treasury) DeleteBill(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Treasury.DeleteBill")
	defer span.End()

	data := t.Snapshot()
	if findBill(data.Bills, id) == nil {
		return &domain.ErrNotFound{Resource: "bill", ID: id}
	}

	if err := t.store.DeleteBill(ctx, id); err != nil {
		return err
	}
	t.metrics.IncrMutation("bill")

	t.mutate(func(data *domain.AppData) {
		data.Bills = removeByID(data.Bills, id, func(b domain.Bill) string { return b.ID })
	})
	return nil
}

// PayBill records an expense for the bill and marks it paid. The expense is
// created first; if the status update then fails, the expense is deleted
// again so the caller never observes a half-applied payment.
func (t *Treasury) PayBill(ctx context.Context, billID, userID string) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "Treasury.PayBill")
	defer span.End()

	data := t.Snapshot()
	bill := findBill(data.Bills, billID)
	if bill == nil {
		return nil, &domain.ErrNotFound{Resource: "bill", ID: billID}
	}
	if bill.Status == domain.BillPaid {
		return nil, &domain.ErrConflict{Message: "conta já está paga"}
	}
	if len(data.Accounts) == 0 {
		return nil, &domain.ErrValidation{Field: "accounts", Message: "nenhuma conta bancária cadastrada"}
	}

	today := t.now().Format("2006-01-02")
	expense := domain.Transaction{
		ID:          uuid.NewString(),
		Type:        domain.TransactionExpense,
		Value:       bill.Value,
		Date:        today,
		Description: "Pagamento: " + bill.Description,
		Category:    bill.Category,
		AccountID:   data.Accounts[0].ID,
		UserID:      userID,
	}

	createdTx, err := t.store.CreateTransaction(ctx, &expense)
	if err != nil {
		return nil, err
	}

	updatedBill, err := t.store.UpdateBill(ctx, billID, map[string]any{
		"status":          string(domain.BillPaid),
		"lastPaymentDate": today,
	})
	if err != nil {
		// Compensate: the payment must not exist without the paid status.
		if delErr := t.store.DeleteTransaction(ctx, createdTx.ID); delErr != nil {
			t.logger.Error("pay bill: compensation failed, orphan expense left on backend",
				zap.String("bill_id", billID),
				zap.String("transaction_id", createdTx.ID),
				zap.Error(delErr),
			)
		}
		return nil, err
	}
	t.metrics.IncrMutation("bill")
	t.metrics.IncrMutation("transaction")

	t.logger.Info("bill paid",
		zap.String("bill_id", billID),
		zap.String("value", bill.Value.String()),
	)

	t.mutate(func(data *domain.AppData) {
		data.Transactions = append(data.Transactions, *createdTx)
		data.Bills = slices.Clone(data.Bills)
		for i := range data.Bills {
			if data.Bills[i].ID == billID {
				data.Bills[i] = *updatedBill
				break
			}
		}
	})
	return updatedBill, nil
}

// ============================================================
// Missions
// ============================================================

// CreateCampaign opens a new fundraising campaign. Only one campaign may be
// active at a time; this is the single place that rule is enforced.
func (t *Treasury) CreateCampaign(ctx context.Context, c domain.MissionCampaign) (*domain.MissionCampaign, error) {
	ctx, span := tracer.Start(ctx, "Treasury.CreateCampaign")
	defer span.End()

	if strings.TrimSpace(c.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "nome é obrigatório"}
	}
	if c.Target.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "target", Message: "meta deve ser positiva"}
	}

	data := t.Snapshot()
	if active := ActiveCampaign(data.Campaigns); active != nil {
		return nil, &domain.ErrConflict{Message: fmt.Sprintf("campanha '%s' ainda está ativa", active.Name)}
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.StartDate == "" {
		c.StartDate = t.now().Format("2006-01-02")
	}
	c.Status = domain.CampaignActive

	created, err := t.store.CreateCampaign(ctx, &c)
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("campaign")

	t.mutate(func(data *domain.AppData) {
		data.Campaigns = append(data.Campaigns, *created)
	})
	return created, nil
}

// CompleteCampaign closes the currently active campaign.
func (t *Treasury) CompleteCampaign(ctx context.Context) (*domain.MissionCampaign, error) {
	ctx, span := tracer.Start(ctx, "Treasury.CompleteCampaign")
	defer span.End()

	data := t.Snapshot()
	active := ActiveCampaign(data.Campaigns)
	if active == nil {
		return nil, &domain.ErrNotFound{Resource: "campaign", ID: "active"}
	}

	updated, err := t.store.UpdateCampaign(ctx, active.ID, map[string]any{
		"status":  string(domain.CampaignCompleted),
		"endDate": t.now().Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("campaign")

	t.mutate(func(data *domain.AppData) {
		data.Campaigns = slices.Clone(data.Campaigns)
		for i := range data.Campaigns {
			if data.Campaigns[i].ID == active.ID {
				data.Campaigns[i] = *updated
				break
			}
		}
	})
	return updated, nil
}

// CreateMissionIncome records a campaign contribution. Contributions require
// an active campaign and always attach to it.
func (t *Treasury) CreateMissionIncome(ctx context.Context, mi domain.MissionIncome) (*domain.MissionIncome, error) {
	ctx, span := tracer.Start(ctx, "Treasury.CreateMissionIncome")
	defer span.End()

	if mi.Value.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "value", Message: "valor deve ser positivo"}
	}
	if !validMissionSource(mi.Source) {
		return nil, &domain.ErrValidation{Field: "source", Message: "origem inválida"}
	}

	data := t.Snapshot()
	active := ActiveCampaign(data.Campaigns)
	if active == nil {
		return nil, &domain.ErrValidation{Field: "campaignId", Message: "nenhuma campanha ativa"}
	}
	mi.CampaignID = active.ID

	if mi.ID == "" {
		mi.ID = uuid.NewString()
	}
	if mi.Date == "" {
		mi.Date = t.now().Format("2006-01-02")
	}

	created, err := t.store.CreateMissionIncome(ctx, &mi)
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("mission_income")

	t.mutate(func(data *domain.AppData) {
		data.MissionIncomes = append(data.MissionIncomes, *created)
	})
	return created, nil
}

func (t *Treasury) DeleteMissionIncome(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Treasury.DeleteMissionIncome")
	defer span.End()

	data := t.Snapshot()
	found := false
	for _, mi := range data.MissionIncomes {
		if mi.ID == id {
			found = true
			break
		}
	}
	if !found {
		return &domain.ErrNotFound{Resource: "mission income", ID: id}
	}

	if err := t.store.DeleteMissionIncome(ctx, id); err != nil {
		return err
	}
	t.metrics.IncrMutation("mission_income")

	t.mutate(func(data *domain.AppData) {
		data.MissionIncomes = removeByID(data.MissionIncomes, id, func(mi domain.MissionIncome) string { return mi.ID })
	})
	return nil
}

// ============================================================
// Settings & closings
// ============================================================

func (t *Treasury) UpdateSettings(ctx context.Context, updates map[string]any) (*domain.Settings, error) {
	ctx, span := tracer.Start(ctx, "Treasury.UpdateSettings")
	defer span.End()

	updated, err := t.store.UpdateSettings(ctx, updates)
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("settings")

	t.mutate(func(data *domain.AppData) {
		data.Settings = *updated
	})
	return updated, nil
}

// CloseMonth marks a month as closed so its statement becomes final.
func (t *Treasury) CloseMonth(ctx context.Context, year, month int) (*domain.MonthlyClosing, error) {
	ctx, span := tracer.Start(ctx, "Treasury.CloseMonth")
	defer span.End()

	if month < 1 || month > 12 {
		return nil, &domain.ErrValidation{Field: "month", Message: "mês deve estar entre 1 e 12"}
	}

	closing := domain.MonthlyClosing{
		Month:    month,
		Year:     year,
		IsClosed: true,
		ClosedAt: t.now().Format(time.RFC3339),
	}
	saved, err := t.store.UpsertClosing(ctx, &closing)
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("closing")

	t.mutate(func(data *domain.AppData) {
		data.Closings = slices.Clone(data.Closings)
		for i := range data.Closings {
			if data.Closings[i].Year == year && data.Closings[i].Month == month {
				data.Closings[i] = *saved
				return
			}
		}
		data.Closings = append(data.Closings, *saved)
	})
	return saved, nil
}

// ============================================================
// Helpers
// ============================================================

func findAccount(accounts []domain.BankAccount, id string) *domain.BankAccount {
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}

func findBill(bills []domain.Bill, id string) *domain.Bill {
	for i := range bills {
		if bills[i].ID == id {
			return &bills[i]
		}
	}
	return nil
}

func validMissionSource(source string) bool {
	for _, s := range domain.MissionSources {
		if s == source {
			return true
		}
	}
	return false
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
