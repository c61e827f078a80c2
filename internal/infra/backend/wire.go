package backend

import (
	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// Wire structs map backend JSON documents to our domain. The backend stores
// monetary values as plain JSON numbers, so money crosses the wire as float64
// and is converted to decimal at the boundary.

type wireAccount struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	BankName       string  `json:"bankName,omitempty"`
	Type           string  `json:"type"`
	InitialBalance float64 `json:"initialBalance"`
}

func (w wireAccount) toDomain() domain.BankAccount {
	return domain.BankAccount{
		ID:             w.ID,
		Name:           w.Name,
		BankName:       w.BankName,
		Type:           w.Type,
		InitialBalance: decimal.NewFromFloat(w.InitialBalance),
	}
}

func accountToWire(a *domain.BankAccount) wireAccount {
	return wireAccount{
		ID:             a.ID,
		Name:           a.Name,
		BankName:       a.BankName,
		Type:           a.Type,
		InitialBalance: a.InitialBalance.InexactFloat64(),
	}
}

type wireTransaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	AccountID   string  `json:"accountId"`
	ToAccountID string  `json:"toAccountId,omitempty"`
	IsRecurring bool    `json:"isRecurring,omitempty"`
	UserID      string  `json:"userId,omitempty"`
}

func (w wireTransaction) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:          w.ID,
		Type:        domain.TransactionType(w.Type),
		Value:       decimal.NewFromFloat(w.Value),
		Date:        w.Date,
		Description: w.Description,
		Category:    w.Category,
		AccountID:   w.AccountID,
		ToAccountID: w.ToAccountID,
		IsRecurring: w.IsRecurring,
		UserID:      w.UserID,
	}
}

func transactionToWire(t *domain.Transaction) wireTransaction {
	return wireTransaction{
		ID:          t.ID,
		Type:        string(t.Type),
		Value:       t.Value.InexactFloat64(),
		Date:        t.Date,
		Description: t.Description,
		Category:    t.Category,
		AccountID:   t.AccountID,
		ToAccountID: t.ToAccountID,
		IsRecurring: t.IsRecurring,
		UserID:      t.UserID,
	}
}

type wireBill struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	Value           float64 `json:"value"`
	DueDate         int     `json:"dueDate"`
	Category        string  `json:"category"`
	IsRecurring     bool    `json:"isRecurring"`
	Status          string  `json:"status"`
	LastPaymentDate string  `json:"lastPaymentDate,omitempty"`
}

func (w wireBill) toDomain() domain.Bill {
	return domain.Bill{
		ID:              w.ID,
		Description:     w.Description,
		Value:           decimal.NewFromFloat(w.Value),
		DueDate:         w.DueDate,
		Category:        w.Category,
		IsRecurring:     w.IsRecurring,
		Status:          domain.BillStatus(w.Status),
		LastPaymentDate: w.LastPaymentDate,
	}
}

func billToWire(b *domain.Bill) wireBill {
	return wireBill{
		ID:              b.ID,
		Description:     b.Description,
		Value:           b.Value.InexactFloat64(),
		DueDate:         b.DueDate,
		Category:        b.Category,
		IsRecurring:     b.IsRecurring,
		Status:          string(b.Status),
		LastPaymentDate: b.LastPaymentDate,
	}
}

type wireCampaign struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Target    float64 `json:"target"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate,omitempty"`
	Status    string  `json:"status"`
}

func (w wireCampaign) toDomain() domain.MissionCampaign {
	return domain.MissionCampaign{
		ID:        w.ID,
		Name:      w.Name,
		Target:    decimal.NewFromFloat(w.Target),
		StartDate: w.StartDate,
		EndDate:   w.EndDate,
		Status:    domain.CampaignStatus(w.Status),
	}
}

func campaignToWire(c *domain.MissionCampaign) wireCampaign {
	return wireCampaign{
		ID:        c.ID,
		Name:      c.Name,
		Target:    c.Target.InexactFloat64(),
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Status:    string(c.Status),
	}
}

type wireMissionIncome struct {
	ID          string  `json:"id"`
	CampaignID  string  `json:"campaignId"`
	Source      string  `json:"source"`
	Value       float64 `json:"value"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
}

func (w wireMissionIncome) toDomain() domain.MissionIncome {
	return domain.MissionIncome{
		ID:          w.ID,
		CampaignID:  w.CampaignID,
		Source:      w.Source,
		Value:       decimal.NewFromFloat(w.Value),
		Date:        w.Date,
		Description: w.Description,
	}
}

func missionIncomeToWire(mi *domain.MissionIncome) wireMissionIncome {
	return wireMissionIncome{
		ID:          mi.ID,
		CampaignID:  mi.CampaignID,
		Source:      mi.Source,
		Value:       mi.Value.InexactFloat64(),
		Date:        mi.Date,
		Description: mi.Description,
	}
}

type wireProject struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type wireSettings struct {
	MissionTarget   float64       `json:"missionTarget"`
	MissionProjects []wireProject `json:"missionProjects"`
}

func (w wireSettings) toDomain() domain.Settings {
	projects := make([]domain.MissionProject, 0, len(w.MissionProjects))
	for _, p := range w.MissionProjects {
		projects = append(projects, domain.MissionProject{
			Name:  p.Name,
			Value: decimal.NewFromFloat(p.Value),
		})
	}
	return domain.Settings{
		MissionTarget:   decimal.NewFromFloat(w.MissionTarget),
		MissionProjects: projects,
	}
}
