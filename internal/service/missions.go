package service

import (
	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// ============================================================
// Campaign progress engine
// ============================================================

var oneHundred = decimal.NewFromInt(100)

// ActiveCampaign returns the first active campaign, or nil. Creation
// guarantees at most one exists, so first-wins is deterministic even if the
// backend ever holds stale duplicates.
func ActiveCampaign(campaigns []domain.MissionCampaign) *domain.MissionCampaign {
	for i := range campaigns {
		if campaigns[i].Status == domain.CampaignActive {
			return &campaigns[i]
		}
	}
	return nil
}

// ComputeMissionProgress derives the campaign progress view. With an active
// campaign, its target and its contributions apply; without one, the default
// mission target from settings is measured against all contributions.
func ComputeMissionProgress(data domain.AppData) domain.MissionProgress {
	campaign := ActiveCampaign(data.Campaigns)

	target := data.Settings.MissionTarget
	if campaign != nil {
		target = campaign.Target
	}

	raised := decimal.Zero
	for _, mi := range data.MissionIncomes {
		if campaign == nil || mi.CampaignID == campaign.ID {
			raised = raised.Add(mi.Value)
		}
	}

	// Progress can legitimately exceed 100%; only the remainder is clamped.
	percentage := "0.00"
	if target.IsPositive() {
		percentage = raised.Div(target).Mul(oneHundred).StringFixed(2)
	}
	remaining := target.Sub(raised)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return domain.MissionProgress{
		Campaign:   campaign,
		Target:     target,
		Raised:     raised,
		Remaining:  remaining,
		Percentage: percentage,
		Sources:    SourceBreakdown(data.MissionIncomes, campaign),
	}
}

// SourceBreakdown totals contributions for the four fixed sources in their
// canonical order. Sources with no contributions still appear with zero, and
// each carries its percentage of everything raised.
func SourceBreakdown(incomes []domain.MissionIncome, campaign *domain.MissionCampaign) []domain.SourceTotal {
	totals := make([]decimal.Decimal, len(domain.MissionSources))
	raised := decimal.Zero
	for i, source := range domain.MissionSources {
		total := decimal.Zero
		for _, mi := range incomes {
			if mi.Source != source {
				continue
			}
			if campaign != nil && mi.CampaignID != campaign.ID {
				continue
			}
			total = total.Add(mi.Value)
		}
		totals[i] = total
		raised = raised.Add(total)
	}

	out := make([]domain.SourceTotal, 0, len(domain.MissionSources))
	for i, source := range domain.MissionSources {
		pct := "0.00"
		if raised.IsPositive() {
			pct = totals[i].Div(raised).Mul(oneHundred).StringFixed(2)
		}
		out = append(out, domain.SourceTotal{Source: source, Total: totals[i], Percentage: pct})
	}
	return out
}

// CampaignIncomes filters contributions belonging to one campaign.
func CampaignIncomes(incomes []domain.MissionIncome, campaignID string) []domain.MissionIncome {
	out := make([]domain.MissionIncome, 0, len(incomes))
	for _, mi := range incomes {
		if mi.CampaignID == campaignID {
			out = append(out, mi)
		}
	}
	return out
}
