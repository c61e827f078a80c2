package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/cache"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/observability"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/resilience"
	"github.com/tesourariapro/tesouraria-bff/internal/port"

	"go.uber.org/zap"
)

// --- Mocks ---

var errBackendDown = errors.New("connection refused")

// mockStore implements port.TreasuryStore. Every method succeeds with the
// configured data unless its error field is set; writes are recorded so tests
// can assert on what reached the backend.
type mockStore struct {
	users        []domain.User
	accounts     []domain.BankAccount
	transactions []domain.Transaction
	bills        []domain.Bill
	closings     []domain.MonthlyClosing
	settings     domain.Settings
	incomes      []domain.MissionIncome
	campaigns    []domain.MissionCampaign

	listErr       error
	createErr     error
	updateBillErr error

	createdTransactions []domain.Transaction
	deletedTransactions []string
}

func (m *mockStore) ListUsers(context.Context) ([]domain.User, error) {
	return m.users, m.listErr
}
func (m *mockStore) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, m.createErr
}
func (m *mockStore) UpdateUser(_ context.Context, id string, _ map[string]any) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}
func (m *mockStore) DeleteUser(context.Context, string) error { return nil }

func (m *mockStore) ListAccounts(context.Context) ([]domain.BankAccount, error) {
	return m.accounts, m.listErr
}
func (m *mockStore) CreateAccount(_ context.Context, a *domain.BankAccount) (*domain.BankAccount, error) {
	return a, m.createErr
}
func (m *mockStore) UpdateAccount(_ context.Context, id string, _ map[string]any) (*domain.BankAccount, error) {
	return &domain.BankAccount{ID: id}, nil
}
func (m *mockStore) DeleteAccount(context.Context, string) error { return nil }

func (m *mockStore) ListTransactions(context.Context) ([]domain.Transaction, error) {
	return m.transactions, m.listErr
}
func (m *mockStore) CreateTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdTransactions = append(m.createdTransactions, *tx)
	return tx, nil
}
func (m *mockStore) DeleteTransaction(_ context.Context, id string) error {
	m.deletedTransactions = append(m.deletedTransactions, id)
	return nil
}

func (m *mockStore) ListBills(context.Context) ([]domain.Bill, error) {
	return m.bills, m.listErr
}
func (m *mockStore) CreateBill(_ context.Context, b *domain.Bill) (*domain.Bill, error) {
	return b, m.createErr
}
func (m *mockStore) UpdateBill(_ context.Context, id string, updates map[string]any) (*domain.Bill, error) {
	if m.updateBillErr != nil {
		return nil, m.updateBillErr
	}
	return &domain.Bill{ID: id, Status: domain.BillPaid}, nil
}
func (m *mockStore) DeleteBill(context.Context, string) error { return nil }

func (m *mockStore) ListClosings(context.Context) ([]domain.MonthlyClosing, error) {
	return m.closings, m.listErr
}
func (m *mockStore) UpsertClosing(_ context.Context, c *domain.MonthlyClosing) (*domain.MonthlyClosing, error) {
	return c, nil
}

func (m *mockStore) GetSettings(context.Context) (*domain.Settings, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return &m.settings, nil
}
func (m *mockStore) UpdateSettings(_ context.Context, _ map[string]any) (*domain.Settings, error) {
	return &m.settings, nil
}

func (m *mockStore) ListMissionIncomes(context.Context) ([]domain.MissionIncome, error) {
	return m.incomes, m.listErr
}
func (m *mockStore) CreateMissionIncome(_ context.Context, mi *domain.MissionIncome) (*domain.MissionIncome, error) {
	return mi, m.createErr
}
func (m *mockStore) DeleteMissionIncome(context.Context, string) error { return nil }

func (m *mockStore) ListCampaigns(context.Context) ([]domain.MissionCampaign, error) {
	return m.campaigns, m.listErr
}
func (m *mockStore) CreateCampaign(_ context.Context, c *domain.MissionCampaign) (*domain.MissionCampaign, error) {
	return c, m.createErr
}
func (m *mockStore) UpdateCampaign(_ context.Context, id string, _ map[string]any) (*domain.MissionCampaign, error) {
	return &domain.MissionCampaign{ID: id, Status: domain.CampaignCompleted}, nil
}

// mockSnapshots keeps everything in memory.
type mockSnapshots struct {
	data  *domain.AppData
	saves int
}

func (m *mockSnapshots) Load() (*domain.AppData, error) {
	if m.data == nil {
		m.data = seedData()
	}
	return m.data, nil
}

func (m *mockSnapshots) Save(data *domain.AppData) error {
	m.data = data
	m.saves++
	return nil
}

var _ port.TreasuryStore = (*mockStore)(nil)
var _ port.SnapshotStore = (*mockSnapshots)(nil)

// seedData returns the default working set with one bank account added, the
// shape most write flows need.
func seedData() *domain.AppData {
	data := domain.DefaultAppData()
	data.Accounts = []domain.BankAccount{
		{ID: "a1", Name: "Caixa Geral", Type: "Caixa", InitialBalance: dec("500")},
	}
	return &data
}

func newTestTreasury(t *testing.T, store *mockStore, snapshots *mockSnapshots) *Treasury {
	t.Helper()
	svc, err := NewTreasury(
		store,
		snapshots,
		cache.New[domain.MonthlyStatement](5*time.Minute),
		resilience.NewBulkhead(8),
		observability.NewMetrics(),
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewTreasury: %v", err)
	}
	return svc
}

// --- Tests ---

func TestRefresh_ReplacesWorkingSet(t *testing.T) {
	store := &mockStore{
		accounts: []domain.BankAccount{{ID: "a1", Name: "Banco", InitialBalance: dec("100")}},
		transactions: []domain.Transaction{
			{ID: "t1", Type: domain.TransactionIncome, Value: dec("50")},
		},
	}
	snapshots := &mockSnapshots{}
	svc := newTestTreasury(t, store, snapshots)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	data := svc.Snapshot()
	if len(data.Accounts) != 1 || data.Accounts[0].ID != "a1" {
		t.Errorf("accounts not replaced: %+v", data.Accounts)
	}
	if len(data.Transactions) != 1 {
		t.Errorf("transactions not replaced: %+v", data.Transactions)
	}
	if snapshots.saves == 0 {
		t.Error("refresh should persist the snapshot")
	}
}

func TestRefresh_AllCollectionsDownKeepsLocalData(t *testing.T) {
	store := &mockStore{listErr: errBackendDown}
	snapshots := &mockSnapshots{}
	svc := newTestTreasury(t, store, snapshots)

	before := svc.Snapshot()

	err := svc.Refresh(context.Background())
	var extErr *domain.ErrExternalService
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}

	after := svc.Snapshot()
	if len(after.Users) != len(before.Users) || len(after.Bills) != len(before.Bills) {
		t.Error("a failed refresh must not wipe the local working set")
	}
}

func TestCreateTransaction_RejectsSelfTransfer(t *testing.T) {
	store := &mockStore{}
	svc := newTestTreasury(t, store, &mockSnapshots{})

	data := svc.Snapshot()
	accountID := data.Accounts[0].ID

	_, err := svc.CreateTransaction(context.Background(), domain.Transaction{
		Type:        domain.TransactionTransfer,
		Value:       dec("10"),
		Date:        "2025-06-01",
		Description: "Transferência",
		AccountID:   accountID,
		ToAccountID: accountID,
	})

	var vErr *domain.ErrValidation
	if !errors.As(err, &vErr) || vErr.Field != "toAccountId" {
		t.Fatalf("expected toAccountId validation error, got %v", err)
	}
	if len(store.createdTransactions) != 0 {
		t.Error("invalid transaction must never reach the backend")
	}
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	svc := newTestTreasury(t, &mockStore{}, &mockSnapshots{})

	_, err := svc.CreateTransaction(context.Background(), domain.Transaction{
		Type:        domain.TransactionIncome,
		Value:       dec("10"),
		Date:        "2025-06-01",
		Description: "Dízimo",
		AccountID:   "nope",
	})

	var nfErr *domain.ErrNotFound
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPayBill_CreatesExpenseAndMarksPaid(t *testing.T) {
	store := &mockStore{}
	svc := newTestTreasury(t, store, &mockSnapshots{})
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	data := svc.Snapshot()
	billID := data.Bills[0].ID

	paid, err := svc.PayBill(context.Background(), billID, "u1")
	if err != nil {
		t.Fatalf("pay bill: %v", err)
	}
	if paid.Status != domain.BillPaid {
		t.Errorf("expected paid status, got %s", paid.Status)
	}

	if len(store.createdTransactions) != 1 {
		t.Fatalf("expected one expense, got %d", len(store.createdTransactions))
	}
	expense := store.createdTransactions[0]
	if expense.Type != domain.TransactionExpense {
		t.Errorf("expected expense, got %s", expense.Type)
	}
	if expense.Description != "Pagamento: "+data.Bills[0].Description {
		t.Errorf("unexpected description: %s", expense.Description)
	}
	if expense.Date != "2025-06-15" {
		t.Errorf("expected payment dated today, got %s", expense.Date)
	}
	if !expense.Value.Equal(data.Bills[0].Value) {
		t.Errorf("expense value %s does not match bill value %s", expense.Value, data.Bills[0].Value)
	}
}

func TestPayBill_AlreadyPaid(t *testing.T) {
	store := &mockStore{}
	snapshots := &mockSnapshots{data: seedData()}
	snapshots.data.Bills[0].Status = domain.BillPaid
	svc := newTestTreasury(t, store, snapshots)

	_, err := svc.PayBill(context.Background(), snapshots.data.Bills[0].ID, "u1")

	var cErr *domain.ErrConflict
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(store.createdTransactions) != 0 {
		t.Error("paying a paid bill must not create an expense")
	}
}

func TestPayBill_CompensatesWhenStatusUpdateFails(t *testing.T) {
	store := &mockStore{updateBillErr: errBackendDown}
	svc := newTestTreasury(t, store, &mockSnapshots{})

	data := svc.Snapshot()
	_, err := svc.PayBill(context.Background(), data.Bills[0].ID, "u1")
	if err == nil {
		t.Fatal("expected error when status update fails")
	}

	if len(store.createdTransactions) != 1 {
		t.Fatalf("expense should have been attempted, got %d", len(store.createdTransactions))
	}
	if len(store.deletedTransactions) != 1 || store.deletedTransactions[0] != store.createdTransactions[0].ID {
		t.Error("the created expense must be deleted when the bill update fails")
	}

	// Locally nothing changed.
	after := svc.Snapshot()
	if after.Bills[0].Status == domain.BillPaid {
		t.Error("bill must not be paid locally after a failed payment")
	}
	if len(after.Transactions) != len(data.Transactions) {
		t.Error("no expense must be applied locally after a failed payment")
	}
}

func TestMutationsLeaveEarlierSnapshotsIntact(t *testing.T) {
	svc := newTestTreasury(t, &mockStore{}, &mockSnapshots{})

	before := svc.Snapshot()
	origDescription := before.Bills[0].Description
	origStatus := before.Bills[0].Status

	// The mock returns a stripped bill on update, so any write-through into
	// the shared backing array would visibly zero the held snapshot.
	if _, err := svc.PayBill(context.Background(), before.Bills[0].ID, "u1"); err != nil {
		t.Fatalf("pay bill: %v", err)
	}
	if before.Bills[0].Description != origDescription || before.Bills[0].Status != origStatus {
		t.Error("paying a bill must not rewrite bills inside a snapshot taken earlier")
	}

	if _, err := svc.ApplyBalanceEdit(context.Background(), dec("9999")); err != nil {
		t.Fatalf("balance edit: %v", err)
	}
	if !before.Accounts[0].InitialBalance.Equal(dec("500")) {
		t.Error("a balance edit must not rewrite accounts inside a snapshot taken earlier")
	}

	if svc.Snapshot().Bills[0].Status != domain.BillPaid {
		t.Error("the live working set should observe the payment")
	}
}

func TestCreateCampaign_SecondActiveRejected(t *testing.T) {
	store := &mockStore{}
	snapshots := &mockSnapshots{data: seedData()}
	snapshots.data.Campaigns = []domain.MissionCampaign{
		{ID: "c1", Name: "Construção", Status: domain.CampaignActive, Target: dec("1000")},
	}
	svc := newTestTreasury(t, store, snapshots)

	_, err := svc.CreateCampaign(context.Background(), domain.MissionCampaign{
		Name:   "Nova",
		Target: dec("500"),
	})

	var cErr *domain.ErrConflict
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateCampaign_SetsActiveStatusAndStartDate(t *testing.T) {
	svc := newTestTreasury(t, &mockStore{}, &mockSnapshots{})
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	created, err := svc.CreateCampaign(context.Background(), domain.MissionCampaign{
		Name:   "Missões 2025",
		Target: dec("3000"),
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if created.Status != domain.CampaignActive {
		t.Errorf("expected active status, got %s", created.Status)
	}
	if created.StartDate != "2025-06-01" {
		t.Errorf("expected today's start date, got %s", created.StartDate)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestCreateMissionIncome_RequiresActiveCampaign(t *testing.T) {
	svc := newTestTreasury(t, &mockStore{}, &mockSnapshots{})

	_, err := svc.CreateMissionIncome(context.Background(), domain.MissionIncome{
		Source: "Ofertas",
		Value:  dec("100"),
	})

	var vErr *domain.ErrValidation
	if !errors.As(err, &vErr) || vErr.Field != "campaignId" {
		t.Fatalf("expected campaignId validation error, got %v", err)
	}
}

func TestCreateMissionIncome_AttachesToActiveCampaign(t *testing.T) {
	snapshots := &mockSnapshots{data: seedData()}
	snapshots.data.Campaigns = []domain.MissionCampaign{
		{ID: "c1", Name: "Missões", Status: domain.CampaignActive, Target: dec("1000")},
	}
	svc := newTestTreasury(t, &mockStore{}, snapshots)

	created, err := svc.CreateMissionIncome(context.Background(), domain.MissionIncome{
		Source:     "Cantina",
		Value:      dec("100"),
		CampaignID: "spoofed",
	})
	if err != nil {
		t.Fatalf("create mission income: %v", err)
	}
	if created.CampaignID != "c1" {
		t.Errorf("contribution must attach to the active campaign, got %s", created.CampaignID)
	}
}

func TestCreateMissionIncome_InvalidSource(t *testing.T) {
	svc := newTestTreasury(t, &mockStore{}, &mockSnapshots{})

	_, err := svc.CreateMissionIncome(context.Background(), domain.MissionIncome{
		Source: "Rifa",
		Value:  dec("50"),
	})

	var vErr *domain.ErrValidation
	if !errors.As(err, &vErr) || vErr.Field != "source" {
		t.Fatalf("expected source validation error, got %v", err)
	}
}

func TestDeleteAccount_WithTransactionsConflicts(t *testing.T) {
	snapshots := &mockSnapshots{data: seedData()}
	snapshots.data.Accounts = []domain.BankAccount{{ID: "a1", Name: "Banco"}}
	snapshots.data.Transactions = []domain.Transaction{
		{ID: "t1", Type: domain.TransactionIncome, Value: dec("10"), AccountID: "a1"},
	}
	svc := newTestTreasury(t, &mockStore{}, snapshots)

	err := svc.DeleteAccount(context.Background(), "a1")

	var cErr *domain.ErrConflict
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestApplyBalanceEdit_NoAccountsCreatesMain(t *testing.T) {
	snapshots := &mockSnapshots{data: seedData()}
	snapshots.data.Accounts = nil
	svc := newTestTreasury(t, &mockStore{}, snapshots)

	created, err := svc.ApplyBalanceEdit(context.Background(), dec("1500"))
	if err != nil {
		t.Fatalf("balance edit: %v", err)
	}
	if created.ID != "main" || created.Name != "Saldo Principal" {
		t.Errorf("unexpected account: %+v", created)
	}
	if !created.InitialBalance.Equal(dec("1500")) {
		t.Errorf("expected initial balance 1500, got %s", created.InitialBalance)
	}
}

func TestCloseMonth_InvalidMonth(t *testing.T) {
	svc := newTestTreasury(t, &mockStore{}, &mockSnapshots{})

	_, err := svc.CloseMonth(context.Background(), 2025, 13)

	var vErr *domain.ErrValidation
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
