// Package domain defines the core business entities for the treasury BFF.
// These models mirror the records owned by the remote treasury backend and
// are the canonical shapes used throughout the application.
package domain

import "github.com/shopspring/decimal"

// ============================================================
// Enumerations
// ============================================================

// TransactionType classifies a money movement.
type TransactionType string

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionTransfer TransactionType = "TRANSFER"
)

// BillStatus is the stored state of a payable bill. The BFF only ever
// advances Pendente → Pago via the pay action; Atrasado is a legal value
// written by the operator or the backend, never by this layer.
type BillStatus string

const (
	BillPending BillStatus = "Pendente"
	BillPaid    BillStatus = "Pago"
	BillOverdue BillStatus = "Atrasado"
)

// UserRole controls what a logged-in user may do. Observador is read-only.
type UserRole string

const (
	RoleAdmin     UserRole = "Administrador"
	RoleTreasurer UserRole = "Tesoureiro"
	RoleViewer    UserRole = "Observador"
)

// CampaignStatus is the lifecycle state of a mission campaign.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
)

// MissionSources are the four fixed contribution sources for campaign incomes.
var MissionSources = [4]string{"Ofertas", "Cantina", "Bazzar", "Outro"}

// Conventional account types. Account.Type is free text; these are the values
// the UI offers.
const (
	AccountTypeChecking = "Conta Corrente"
	AccountTypeSavings  = "Conta Poupança"
	AccountTypeCash     = "Caixa Físico"
)

// ============================================================
// Accounts & Transactions
// ============================================================

// BankAccount is a named money container (bank or physical cash box).
// InitialBalance is a base offset, not the current balance; the current
// balance is always derived from it plus the transaction history.
type BankAccount struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	BankName       string          `json:"bankName,omitempty"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// Transaction is a single dated money movement. Value is always stored
// positive; the sign is derived from Type at aggregation time.
// Date is a local calendar date in YYYY-MM-DD form, with no instant semantics.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Value       decimal.Decimal `json:"value"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	AccountID   string          `json:"accountId"`
	ToAccountID string          `json:"toAccountId,omitempty"`
	IsRecurring bool            `json:"isRecurring,omitempty"`
	UserID      string          `json:"userId,omitempty"`
}

// ============================================================
// Bills
// ============================================================

// Bill is a recurring or one-off payable obligation, tracked separately from
// transactions until it is paid. DueDate is a day of month (1–31).
type Bill struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	Value           decimal.Decimal `json:"value"`
	DueDate         int             `json:"dueDate"`
	Category        string          `json:"category"`
	IsRecurring     bool            `json:"isRecurring"`
	Status          BillStatus      `json:"status"`
	LastPaymentDate string          `json:"lastPaymentDate,omitempty"`
}

// ============================================================
// Missions
// ============================================================

// MissionCampaign is a time-bounded fundraising goal. At most one campaign is
// active at any time; the service layer enforces this on creation.
type MissionCampaign struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Target    decimal.Decimal `json:"target"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate,omitempty"`
	Status    CampaignStatus  `json:"status"`
}

// MissionIncome is a categorized contribution scoped to exactly one campaign.
type MissionIncome struct {
	ID          string          `json:"id"`
	CampaignID  string          `json:"campaignId"`
	Source      string          `json:"source"`
	Value       decimal.Decimal `json:"value"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
}

// MissionProject is a named allocation of the mission budget (fixed value,
// not a percentage).
type MissionProject struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// ============================================================
// Users & Settings
// ============================================================

// User is a treasury operator. Password is write-only: it is sent on
// creation and never round-tripped for display.
type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Username   string   `json:"username"`
	Password   string   `json:"password,omitempty"`
	Role       UserRole `json:"role"`
	ChurchName string   `json:"churchName,omitempty"`
	PastorName string   `json:"pastorName,omitempty"`
	Email      string   `json:"email,omitempty"`
}

// Redacted returns a copy safe to expose to clients.
func (u User) Redacted() User {
	u.Password = ""
	return u
}

// Settings holds backend-owned configuration values.
type Settings struct {
	MissionTarget   decimal.Decimal  `json:"missionTarget"`
	MissionProjects []MissionProject `json:"missionProjects"`
}

// MonthlyClosing marks a month as closed for bookkeeping purposes.
type MonthlyClosing struct {
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	IsClosed bool   `json:"isClosed"`
	ClosedAt string `json:"closedAt,omitempty"`
}
