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
// Accounts
// ============================================================

// ListAccounts fetches all bank accounts. This path feeds the sync fan-out,
// so it runs under the circuit breaker with retries.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListAccounts")
	defer span.End()

	var accounts []domain.BankAccount

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, "/accounts")
			if err != nil {
				return err
			}
			if body == nil {
				accounts = []domain.BankAccount{}
				return nil
			}

			var rows []wireAccount
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode accounts: %w", err)
			}
			accounts = make([]domain.BankAccount, 0, len(rows))
			for _, r := range rows {
				accounts = append(accounts, r.toDomain())
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/accounts", Err: err}
	}
	return accounts, nil
}

func (c *Client) CreateAccount(ctx context.Context, a *domain.BankAccount) (*domain.BankAccount, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateAccount")
	defer span.End()

	body, err := c.doPost(ctx, "/accounts", accountToWire(a))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/accounts", Err: err}
	}

	var created wireAccount
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created account: %w", err)
	}
	out := created.toDomain()

	c.logger.Info("backend: account created",
		zap.String("account_id", out.ID),
		zap.String("name", out.Name),
	)
	return &out, nil
}

func (c *Client) UpdateAccount(ctx context.Context, id string, updates map[string]any) (*domain.BankAccount, error) {
	ctx, span := tracer.Start(ctx, "Backend.UpdateAccount")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("/accounts/%s", id), updates)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/accounts", Err: err}
	}

	var updated wireAccount
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated account: %w", err)
	}
	out := updated.toDomain()
	return &out, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Backend.DeleteAccount")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("/accounts/%s", id)); err != nil {
		return &domain.ErrExternalService{Service: "backend/accounts", Err: err}
	}
	return nil
}
