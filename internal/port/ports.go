// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from concrete implementations.
package port

import (
	"context"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
)

// TreasuryStore defines all data operations against the remote treasury
// backend. Implemented by the backend REST adapter.
type TreasuryStore interface {
	// Users
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, updates map[string]any) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Accounts
	ListAccounts(ctx context.Context) ([]domain.BankAccount, error)
	CreateAccount(ctx context.Context, a *domain.BankAccount) (*domain.BankAccount, error)
	UpdateAccount(ctx context.Context, id string, updates map[string]any) (*domain.BankAccount, error)
	DeleteAccount(ctx context.Context, id string) error

	// Transactions
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	// Bills
	ListBills(ctx context.Context) ([]domain.Bill, error)
	CreateBill(ctx context.Context, b *domain.Bill) (*domain.Bill, error)
	UpdateBill(ctx context.Context, id string, updates map[string]any) (*domain.Bill, error)
	DeleteBill(ctx context.Context, id string) error

	// Monthly closings
	ListClosings(ctx context.Context) ([]domain.MonthlyClosing, error)
	UpsertClosing(ctx context.Context, c *domain.MonthlyClosing) (*domain.MonthlyClosing, error)

	// Settings
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, updates map[string]any) (*domain.Settings, error)

	// Mission incomes
	ListMissionIncomes(ctx context.Context) ([]domain.MissionIncome, error)
	CreateMissionIncome(ctx context.Context, mi *domain.MissionIncome) (*domain.MissionIncome, error)
	DeleteMissionIncome(ctx context.Context, id string) error

	// Mission campaigns
	ListCampaigns(ctx context.Context) ([]domain.MissionCampaign, error)
	CreateCampaign(ctx context.Context, c *domain.MissionCampaign) (*domain.MissionCampaign, error)
	UpdateCampaign(ctx context.Context, id string, updates map[string]any) (*domain.MissionCampaign, error)
}

// SnapshotStore persists a full working set locally so the application can
// start and serve reads while the backend is unreachable.
type SnapshotStore interface {
	Load() (*domain.AppData, error)
	Save(data *domain.AppData) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Purge()
}
