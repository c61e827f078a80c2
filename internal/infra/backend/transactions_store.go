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
// Transactions
// ============================================================

func (c *Client) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListTransactions")
	defer span.End()

	var transactions []domain.Transaction

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, "/transactions")
			if err != nil {
				return err
			}
			if body == nil {
				transactions = []domain.Transaction{}
				return nil
			}

			var rows []wireTransaction
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode transactions: %w", err)
			}
			transactions = make([]domain.Transaction, 0, len(rows))
			for _, r := range rows {
				transactions = append(transactions, r.toDomain())
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/transactions", Err: err}
	}
	return transactions, nil
}

func (c *Client) CreateTransaction(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateTransaction")
	defer span.End()

	body, err := c.doPost(ctx, "/transactions", transactionToWire(t))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/transactions", Err: err}
	}

	var created wireTransaction
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created transaction: %w", err)
	}
	out := created.toDomain()

	c.logger.Info("backend: transaction created",
		zap.String("transaction_id", out.ID),
		zap.String("type", string(out.Type)),
		zap.String("value", out.Value.String()),
	)
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Backend.DeleteTransaction")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("/transactions/%s", id)); err != nil {
		return &domain.ErrExternalService{Service: "backend/transactions", Err: err}
	}
	return nil
}
