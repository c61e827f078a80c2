package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/resilience"
)

// ============================================================
// Settings & monthly closings
// ============================================================

// GetSettings fetches the singleton settings document.
func (c *Client) GetSettings(ctx context.Context) (*domain.Settings, error) {
	ctx, span := tracer.Start(ctx, "Backend.GetSettings")
	defer span.End()

	var settings *domain.Settings

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, "/settings")
			if err != nil {
				return err
			}
			if body == nil {
				return &domain.ErrNotFound{Resource: "settings", ID: "singleton"}
			}

			var w wireSettings
			if err := json.Unmarshal(body, &w); err != nil {
				return fmt.Errorf("decode settings: %w", err)
			}
			s := w.toDomain()
			settings = &s
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/settings", Err: err}
	}
	return settings, nil
}

func (c *Client) UpdateSettings(ctx context.Context, updates map[string]any) (*domain.Settings, error) {
	ctx, span := tracer.Start(ctx, "Backend.UpdateSettings")
	defer span.End()

	body, err := c.doPatch(ctx, "/settings", updates)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/settings", Err: err}
	}

	var w wireSettings
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decode updated settings: %w", err)
	}
	s := w.toDomain()
	return &s, nil
}

func (c *Client) ListClosings(ctx context.Context) ([]domain.MonthlyClosing, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListClosings")
	defer span.End()

	var closings []domain.MonthlyClosing

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, "/closings")
			if err != nil {
				return err
			}
			if body == nil {
				closings = []domain.MonthlyClosing{}
				return nil
			}
			if err := json.Unmarshal(body, &closings); err != nil {
				return fmt.Errorf("decode closings: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/closings", Err: err}
	}
	return closings, nil
}

// UpsertClosing writes the closing record for a month. The backend keys
// closings by year-month, so a PUT either creates or replaces.
func (c *Client) UpsertClosing(ctx context.Context, cl *domain.MonthlyClosing) (*domain.MonthlyClosing, error) {
	ctx, span := tracer.Start(ctx, "Backend.UpsertClosing")
	defer span.End()

	path := fmt.Sprintf("/closings/%d-%02d", cl.Year, cl.Month)
	body, err := c.doPut(ctx, path, cl)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/closings", Err: err}
	}

	var saved domain.MonthlyClosing
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, fmt.Errorf("decode saved closing: %w", err)
	}
	return &saved, nil
}
