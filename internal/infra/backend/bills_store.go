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
// Bills
// ============================================================

func (c *Client) ListBills(ctx context.Context) ([]domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListBills")
	defer span.End()

	var bills []domain.Bill

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, "/bills")
			if err != nil {
				return err
			}
			if body == nil {
				bills = []domain.Bill{}
				return nil
			}

			var rows []wireBill
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode bills: %w", err)
			}
			bills = make([]domain.Bill, 0, len(rows))
			for _, r := range rows {
				bills = append(bills, r.toDomain())
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/bills", Err: err}
	}
	return bills, nil
}

func (c *Client) CreateBill(ctx context.Context, b *domain.Bill) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateBill")
	defer span.End()

	body, err := c.doPost(ctx, "/bills", billToWire(b))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/bills", Err: err}
	}

	var created wireBill
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created bill: %w", err)
	}
	out := created.toDomain()

	c.logger.Info("backend: bill created",
		zap.String("bill_id", out.ID),
		zap.String("description", out.Description),
	)
	return &out, nil
}

// UpdateBill patches a bill, typically to flip its status to paid.
func (c *Client) UpdateBill(ctx context.Context, id string, updates map[string]any) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "Backend.UpdateBill")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("/bills/%s", id), updates)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/bills", Err: err}
	}

	var updated wireBill
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated bill: %w", err)
	}
	out := updated.toDomain()
	return &out, nil
}

func (c *Client) DeleteBill(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Backend.DeleteBill")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("/bills/%s", id)); err != nil {
		return &domain.ErrExternalService{Service: "backend/bills", Err: err}
	}
	return nil
}
