package domain

import "github.com/shopspring/decimal"

// Derived read-model shapes. None of these are stored; each is computed from
// an AppData snapshot on demand.

// AccountBalance pairs an account with its derived current balance.
type AccountBalance struct {
	Account BankAccount     `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// DashboardStats is the headline figures block for the landing view.
type DashboardStats struct {
	TotalBalance   decimal.Decimal `json:"totalBalance"`
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense decimal.Decimal `json:"monthlyExpense"`
	MonthlyNet     decimal.Decimal `json:"monthlyNet"`
	PendingBills   int             `json:"pendingBills"`
}

// BillTotals aggregates bills by status for the bills overview header.
type BillTotals struct {
	PendingCount  int             `json:"pendingCount"`
	PendingValue  decimal.Decimal `json:"pendingValue"`
	PaidCount     int             `json:"paidCount"`
	PaidValue     decimal.Decimal `json:"paidValue"`
	OverdueCount  int             `json:"overdueCount"`
	OverdueValue  decimal.Decimal `json:"overdueValue"`
}

// AlertSeverity orders bill alerts from most to least urgent.
type AlertSeverity string

const (
	AlertOverdue AlertSeverity = "overdue"
	AlertToday   AlertSeverity = "today"
	AlertWarning AlertSeverity = "warning"
	AlertInfo    AlertSeverity = "info"
)

// BillAlert is a due-soon or overdue notice for a single unpaid bill.
type BillAlert struct {
	Bill      Bill          `json:"bill"`
	DaysUntil int           `json:"daysUntil"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
}

// CategoryTotal is one slice of a category breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthPoint is one month of the trailing income/expense series.
type MonthPoint struct {
	Label   string          `json:"label"`
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// StatementLine is a single transaction row inside a monthly statement.
type StatementLine struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Value       decimal.Decimal `json:"value"`
}

// MonthlyStatement is the full report for one calendar month, partitioned
// the way the printed church statement lays it out: tithes, offerings and
// other income each get their own section.
type MonthlyStatement struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Tithes         []StatementLine `json:"tithes"`
	Offerings      []StatementLine `json:"offerings"`
	OtherIncome    []StatementLine `json:"otherIncome"`
	Expenses       []StatementLine `json:"expenses"`
	TithesTotal    decimal.Decimal `json:"tithesTotal"`
	OfferingsTotal decimal.Decimal `json:"offeringsTotal"`
	OtherTotal     decimal.Decimal `json:"otherTotal"`
	IncomeTotal    decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal   decimal.Decimal `json:"expenseTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	IsClosed       bool            `json:"isClosed"`
}

// SourceTotal is one contribution source's share of a campaign. Percentage
// is the share of everything raised, "0.00" when nothing was raised yet.
type SourceTotal struct {
	Source     string          `json:"source"`
	Total      decimal.Decimal `json:"total"`
	Percentage string          `json:"percentage"`
}

// SyncMetrics is an operational snapshot of backend synchronisation health,
// exposed for dashboards.
type SyncMetrics struct {
	TotalSyncs    int64   `json:"totalSyncs"`
	SuccessSyncs  int64   `json:"successSyncs"`
	PartialSyncs  int64   `json:"partialSyncs"`
	FailedSyncs   int64   `json:"failedSyncs"`
	SyncErrorRate float64 `json:"syncErrorRate"`
	CacheHitRate  float64 `json:"cacheHitRate"`
	Period        string  `json:"period"`
}

// MissionProgress is the campaign progress view: raised vs. target plus a
// breakdown over the four fixed contribution sources.
type MissionProgress struct {
	Campaign   *MissionCampaign `json:"campaign,omitempty"`
	Target     decimal.Decimal  `json:"target"`
	Raised     decimal.Decimal  `json:"raised"`
	Remaining  decimal.Decimal  `json:"remaining"`
	Percentage string           `json:"percentage"`
	Sources    []SourceTotal    `json:"sources"`
}
