package domain

import "github.com/shopspring/decimal"

// AppData is the full in-memory working set of the application: every
// collection the remote backend owns, held together so reads observe a
// consistent snapshot and sub-collections can be replaced wholesale.
type AppData struct {
	Users           []User            `json:"users"`
	Accounts        []BankAccount     `json:"accounts"`
	Transactions    []Transaction     `json:"transactions"`
	Bills           []Bill            `json:"bills"`
	Closings        []MonthlyClosing  `json:"closings"`
	Settings        Settings          `json:"settings"`
	MissionIncomes  []MissionIncome   `json:"missionIncomes"`
	Campaigns       []MissionCampaign `json:"campaigns"`
	CurrentUserID   string            `json:"currentUserId,omitempty"`
	IsSetupComplete bool              `json:"isSetupComplete"`
}

// DefaultAppData returns the seed working set used before any backend sync
// has succeeded and no local snapshot exists: a demo administrator, two
// sample bills and a default mission budget.
func DefaultAppData() AppData {
	return AppData{
		Users: []User{
			{
				ID:         "u1",
				Name:       "Administrador Demo",
				Username:   "admin",
				Password:   "admin",
				Role:       RoleAdmin,
				ChurchName: "Igreja Sede Demo",
				PastorName: "Pastor Exemplo",
				Email:      "admin@exemplo.com",
			},
		},
		Accounts:     []BankAccount{},
		Transactions: []Transaction{},
		Bills: []Bill{
			{
				ID:          "b1",
				Description: "Energia Elétrica",
				Value:       decimal.NewFromInt(350),
				DueDate:     10,
				Category:    "Luz",
				IsRecurring: true,
				Status:      BillPending,
			},
			{
				ID:          "b2",
				Description: "Internet Fibra",
				Value:       decimal.NewFromInt(120),
				DueDate:     5,
				Category:    "Internet",
				IsRecurring: true,
				Status:      BillPending,
			},
		},
		Closings: []MonthlyClosing{},
		Settings: Settings{
			MissionTarget: decimal.NewFromInt(2000),
			MissionProjects: []MissionProject{
				{Name: "EBF (Escola Bíblica de Férias)", Value: decimal.NewFromInt(500)},
				{Name: "Missões Mundiais", Value: decimal.NewFromInt(800)},
				{Name: "Ação Social Local", Value: decimal.NewFromInt(600)},
			},
		},
		MissionIncomes:  []MissionIncome{},
		Campaigns:       []MissionCampaign{},
		IsSetupComplete: false,
	}
}

// IncomeCategories and ExpenseCategories are the fixed category vocabularies
// offered for transaction entry. Free-text categories are still accepted.
var IncomeCategories = []string{
	"Dízimos",
	"Ofertas",
	"Campanhas",
	"Doações",
	"Eventos",
	"Missões (Entrada)",
	"Outros",
}

var ExpenseCategories = []string{
	"Água",
	"Luz",
	"Internet",
	"Aluguel",
	"Manutenção",
	"Materiais",
	"Ajuda Social",
	"Missões (Saída)",
	"Outros",
}
