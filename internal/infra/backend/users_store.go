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
// Users
// ============================================================

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListUsers")
	defer span.End()

	var users []domain.User

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doGet(ctx, "/users")
			if err != nil {
				return err
			}
			if body == nil {
				users = []domain.User{}
				return nil
			}
			if err := json.Unmarshal(body, &users); err != nil {
				return fmt.Errorf("decode users: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/users", Err: err}
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateUser")
	defer span.End()

	body, err := c.doPost(ctx, "/users", u)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/users", Err: err}
	}

	var created domain.User
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created user: %w", err)
	}

	c.logger.Info("backend: user created",
		zap.String("user_id", created.ID),
		zap.String("role", string(created.Role)),
	)
	return &created, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, updates map[string]any) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Backend.UpdateUser")
	defer span.End()

	body, err := c.doPatch(ctx, fmt.Sprintf("/users/%s", id), updates)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "backend/users", Err: err}
	}

	var updated domain.User
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated user: %w", err)
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Backend.DeleteUser")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("/users/%s", id)); err != nil {
		return &domain.ErrExternalService{Service: "backend/users", Err: err}
	}
	return nil
}
