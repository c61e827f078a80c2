package service

import (
	"context"
	"slices"
	"strings"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ============================================================
// User management
// ============================================================

// ListUsers returns the known users with passwords stripped.
func (t *Treasury) ListUsers() []domain.User {
	data := t.Snapshot()
	out := make([]domain.User, 0, len(data.Users))
	for _, u := range data.Users {
		out = append(out, u.Redacted())
	}
	return out
}

func (t *Treasury) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Treasury.CreateUser")
	defer span.End()

	if strings.TrimSpace(u.Username) == "" {
		return nil, &domain.ErrValidation{Field: "username", Message: "usuário é obrigatório"}
	}
	if len(u.Password) < 4 {
		return nil, &domain.ErrValidation{Field: "password", Message: "senha deve ter pelo menos 4 caracteres"}
	}
	switch u.Role {
	case domain.RoleAdmin, domain.RoleTreasurer, domain.RoleViewer:
	default:
		return nil, &domain.ErrValidation{Field: "role", Message: "perfil inválido"}
	}

	data := t.Snapshot()
	for _, existing := range data.Users {
		if strings.EqualFold(existing.Username, u.Username) {
			return nil, &domain.ErrConflict{Message: "nome de usuário já existe"}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.Password = string(hash)
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	created, err := t.store.CreateUser(ctx, &u)
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("user")

	t.mutate(func(data *domain.AppData) {
		data.Users = append(data.Users, *created)
	})

	redacted := created.Redacted()
	return &redacted, nil
}

func (t *Treasury) DeleteUser(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Treasury.DeleteUser")
	defer span.End()

	data := t.Snapshot()
	var target *domain.User
	admins := 0
	for i := range data.Users {
		if data.Users[i].Role == domain.RoleAdmin {
			admins++
		}
		if data.Users[i].ID == id {
			target = &data.Users[i]
		}
	}
	if target == nil {
		return &domain.ErrNotFound{Resource: "user", ID: id}
	}
	if target.Role == domain.RoleAdmin && admins == 1 {
		return &domain.ErrConflict{Message: "não é possível remover o último administrador"}
	}

	if err := t.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	t.metrics.IncrMutation("user")

	t.mutate(func(data *domain.AppData) {
		data.Users = removeByID(data.Users, id, func(u domain.User) string { return u.ID })
	})
	return nil
}

// CompleteSetup finishes first-run onboarding: the initial admin is renamed
// and re-credentialed, and the church identity is stored.
func (t *Treasury) CompleteSetup(ctx context.Context, churchName, pastorName, adminName, username, password string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Treasury.CompleteSetup")
	defer span.End()

	data := t.Snapshot()
	if data.IsSetupComplete {
		return nil, &domain.ErrConflict{Message: "configuração inicial já foi concluída"}
	}
	if strings.TrimSpace(churchName) == "" {
		return nil, &domain.ErrValidation{Field: "churchName", Message: "nome da igreja é obrigatório"}
	}
	if strings.TrimSpace(username) == "" || len(password) < 4 {
		return nil, &domain.ErrValidation{Field: "username", Message: "credenciais inválidas"}
	}

	var admin *domain.User
	for i := range data.Users {
		if data.Users[i].Role == domain.RoleAdmin {
			admin = &data.Users[i]
			break
		}
	}
	if admin == nil {
		return nil, &domain.ErrNotFound{Resource: "user", ID: "admin"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	updated, err := t.store.UpdateUser(ctx, admin.ID, map[string]any{
		"name":       adminName,
		"username":   username,
		"password":   string(hash),
		"churchName": churchName,
		"pastorName": pastorName,
	})
	if err != nil {
		return nil, err
	}
	t.metrics.IncrMutation("user")

	t.logger.Info("setup completed", zap.String("church", churchName))

	t.mutate(func(data *domain.AppData) {
		data.Users = slices.Clone(data.Users)
		for i := range data.Users {
			if data.Users[i].ID == updated.ID {
				data.Users[i] = *updated
				break
			}
		}
		data.IsSetupComplete = true
	})

	redacted := updated.Redacted()
	return &redacted, nil
}
