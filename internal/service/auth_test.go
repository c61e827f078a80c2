package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, snapshots *mockSnapshots) *Auth {
	t.Helper()
	treasury := newTestTreasury(t, &mockStore{}, snapshots)
	return NewAuth(treasury, "test-secret", time.Hour, zap.NewNop())
}

func TestLogin_SeedPlainPassword(t *testing.T) {
	auth := newTestAuth(t, &mockSnapshots{})

	resp, err := auth.Login(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected an access token")
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expected 3600s ttl, got %d", resp.ExpiresIn)
	}
	if resp.User.Password != "" {
		t.Error("login response must never carry the password")
	}
}

func TestLogin_UsernameCaseInsensitive(t *testing.T) {
	auth := newTestAuth(t, &mockSnapshots{})

	if _, err := auth.Login(context.Background(), "ADMIN", "admin"); err != nil {
		t.Fatalf("expected case-insensitive username match, got %v", err)
	}
}

func TestLogin_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha!forte"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	snapshots := &mockSnapshots{data: seedData()}
	snapshots.data.Users = append(snapshots.data.Users, domain.User{
		ID:       "u2",
		Name:     "Tesoureira",
		Username: "maria",
		Password: string(hash),
		Role:     domain.RoleTreasurer,
	})
	auth := newTestAuth(t, snapshots)

	if _, err := auth.Login(context.Background(), "maria", "s3nha!forte"); err != nil {
		t.Fatalf("bcrypt login: %v", err)
	}
	if _, err := auth.Login(context.Background(), "maria", "errada"); err == nil {
		t.Fatal("wrong password must be rejected")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	auth := newTestAuth(t, &mockSnapshots{})

	_, err := auth.Login(context.Background(), "admin", "wrong")

	var uErr *domain.ErrUnauthorized
	if !errors.As(err, &uErr) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	auth := newTestAuth(t, &mockSnapshots{})

	_, err := auth.Login(context.Background(), "ghost", "admin")

	var uErr *domain.ErrUnauthorized
	if !errors.As(err, &uErr) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateAccessToken_RoundTrip(t *testing.T) {
	auth := newTestAuth(t, &mockSnapshots{})

	resp, err := auth.Login(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := auth.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Sub != "u1" {
		t.Errorf("expected sub u1, got %s", claims.Sub)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", claims.Role)
	}
	if claims.Type != "access" {
		t.Errorf("expected access type, got %s", claims.Type)
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	auth := newTestAuth(t, &mockSnapshots{})
	other := newTestAuth(t, &mockSnapshots{})
	other.jwtSecret = []byte("another-secret")

	resp, err := other.Login(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := auth.ValidateAccessToken(resp.AccessToken); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	auth := newTestAuth(t, &mockSnapshots{})
	auth.accessTTL = -time.Minute

	resp, err := auth.Login(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := auth.ValidateAccessToken(resp.AccessToken); err == nil {
		t.Fatal("expired token must be rejected")
	}

	var uErr *domain.ErrUnauthorized
	if _, err := auth.ValidateAccessToken(resp.AccessToken); !errors.As(err, &uErr) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	auth := newTestAuth(t, &mockSnapshots{})

	if _, err := auth.ValidateAccessToken("not.a.token"); err == nil {
		t.Fatal("garbage token must be rejected")
	}
}
