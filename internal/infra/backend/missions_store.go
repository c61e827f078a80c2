package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/resilience"

	"go.uber.org/zap"
)

// ============================================================
// Mission incomes & campaigns
// ============================================================

func (c *Client) ListMissionIncomes(ctx context.Context) ([]domain.MissionIncome, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListMissionIncomes")
	defer span.End()

	var incomes []domain.MissionIncome

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, "/missoes")
			if err != nil {
				return err
			}
			if body == nil {
				incomes = []domain.MissionIncome{}
				return nil
			}

			var rows []wireMissionIncome
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode mission incomes: %w", err)
			}
			incomes = make([]domain.MissionIncome, 0, len(rows))
			for _, r := range rows {
				incomes = append(incomes, r.toDomain())
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/missoes", Err: err}
	}
	return incomes, nil
}

func (c *Client) CreateMissionIncome(ctx context.Context, mi *domain.MissionIncome) (*domain.MissionIncome, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateMissionIncome")
	defer span.End()

	body, err := c.doPost(ctx, "/missoes", missionIncomeToWire(mi))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/missoes", Err: err}
	}

	var created wireMissionIncome
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created mission income: %w", err)
	}
	out := created.toDomain()

	c.logger.Info("backend: mission income created",
		zap.String("income_id", out.ID),
		zap.String("source", out.Source),
	)
	return &out, nil
}

func (c *Client) DeleteMissionIncome(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Backend.DeleteMissionIncome")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("/missoes/%s", id)); err != nil {
		return &domain.ErrExternalService{Service: "backend/missoes", Err: err}
	}
	return nil
}

func (c *Client) ListCampaigns(ctx context.Context) ([]domain.MissionCampaign, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListCampaigns")
	defer span.End()

	var campaigns []domain.MissionCampaign

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, "/missoes/campaigns")
			if err != nil {
				return err
			}
			if body == nil {
				campaigns = []domain.MissionCampaign{}
				return nil
			}

			var rows []wireCampaign
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode campaigns: %w", err)
			}
			campaigns = make([]domain.MissionCampaign, 0, len(rows))
			for _, r := range rows {
				campaigns = append(campaigns, r.toDomain())
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/campaigns", Err: err}
	}
	return campaigns, nil
}

func (c *Client) CreateCampaign(ctx context.Context, camp *domain.MissionCampaign) (*domain.MissionCampaign, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateCampaign")
	defer span.End()

	body, err := c.doPost(ctx, "/missoes/campaigns", campaignToWire(camp))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/campaigns", Err: err}
	}

	var created wireCampaign
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created campaign: %w", err)
	}
	out := created.toDomain()

	c.logger.Info("backend: campaign created",
		zap.String("campaign_id", out.ID),
		zap.String("name", out.Name),
	)
	return &out, nil
}

func (c *Client) UpdateCampaign(ctx context.Context, id string, updates map[string]any) (*domain.MissionCampaign, error) {
	ctx, span := tracer.Start(ctx, "Backend.UpdateCampaign")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("/missoes/campaigns/%s", id), updates)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/campaigns", Err: err}
	}

	var updated wireCampaign
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated campaign: %w", err)
	}
	out := updated.toDomain()
	return &out, nil
}
