package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/handler"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/cache"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/observability"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/resilience"
	"github.com/tesourariapro/tesouraria-bff/internal/infra/snapshot"
	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"go.uber.org/zap"
)

// stubStore accepts every write and returns nothing on reads; the service
// keeps serving the seeded local working set.
type stubStore struct{}

func (stubStore) ListUsers(context.Context) ([]domain.User, error) { return nil, nil }
func (stubStore) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (stubStore) UpdateUser(_ context.Context, id string, _ map[string]any) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}
func (stubStore) DeleteUser(context.Context, string) error { return nil }

func (stubStore) ListAccounts(context.Context) ([]domain.BankAccount, error) { return nil, nil }
func (stubStore) CreateAccount(_ context.Context, a *domain.BankAccount) (*domain.BankAccount, error) {
	return a, nil
}
func (stubStore) UpdateAccount(_ context.Context, id string, _ map[string]any) (*domain.BankAccount, error) {
	return &domain.BankAccount{ID: id}, nil
}
func (stubStore) DeleteAccount(context.Context, string) error { return nil }

func (stubStore) ListTransactions(context.Context) ([]domain.Transaction, error) { return nil, nil }
func (stubStore) CreateTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	return tx, nil
}
func (stubStore) DeleteTransaction(context.Context, string) error { return nil }

func (stubStore) ListBills(context.Context) ([]domain.Bill, error) { return nil, nil }
func (stubStore) CreateBill(_ context.Context, b *domain.Bill) (*domain.Bill, error) {
	return b, nil
}
func (stubStore) UpdateBill(_ context.Context, id string, _ map[string]any) (*domain.Bill, error) {
	return &domain.Bill{ID: id, Status: domain.BillPaid}, nil
}
func (stubStore) DeleteBill(context.Context, string) error { return nil }

func (stubStore) ListClosings(context.Context) ([]domain.MonthlyClosing, error) { return nil, nil }
func (stubStore) UpsertClosing(_ context.Context, c *domain.MonthlyClosing) (*domain.MonthlyClosing, error) {
	return c, nil
}

func (stubStore) GetSettings(context.Context) (*domain.Settings, error) {
	return &domain.Settings{}, nil
}
func (stubStore) UpdateSettings(_ context.Context, _ map[string]any) (*domain.Settings, error) {
	return &domain.Settings{}, nil
}

func (stubStore) ListMissionIncomes(context.Context) ([]domain.MissionIncome, error) {
	return nil, nil
}
func (stubStore) CreateMissionIncome(_ context.Context, mi *domain.MissionIncome) (*domain.MissionIncome, error) {
	return mi, nil
}
func (stubStore) DeleteMissionIncome(context.Context, string) error { return nil }

func (stubStore) ListCampaigns(context.Context) ([]domain.MissionCampaign, error) { return nil, nil }
func (stubStore) CreateCampaign(_ context.Context, c *domain.MissionCampaign) (*domain.MissionCampaign, error) {
	return c, nil
}
func (stubStore) UpdateCampaign(_ context.Context, id string, _ map[string]any) (*domain.MissionCampaign, error) {
	return &domain.MissionCampaign{ID: id, Status: domain.CampaignCompleted}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	svc, err := service.NewTreasury(
		stubStore{},
		snapshot.NewStore(t.TempDir(), logger),
		cache.New[domain.MonthlyStatement](time.Minute),
		resilience.NewBulkhead(4),
		metrics,
		logger,
	)
	if err != nil {
		t.Fatalf("NewTreasury: %v", err)
	}
	authSvc := service.NewAuth(svc, "test-secret", time.Hour, logger)

	return handler.NewRouter(svc, authSvc, metrics, logger)
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.AccessToken
}

func doJSON(router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOperationalEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/ping"} {
		rec := doJSON(router, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestDashboard_RequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/v1/dashboard", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(router, http.MethodGet, "/v1/dashboard", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with garbage token, got %d", rec.Code)
	}
}

func TestLoginAndDashboard(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin")

	rec := doJSON(router, http.MethodGet, "/v1/dashboard", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stats domain.DashboardStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestViewer_CannotWrite(t *testing.T) {
	router := newTestRouter(t)
	adminToken := login(t, router, "admin", "admin")

	rec := doJSON(router, http.MethodPost, "/v1/users", adminToken, map[string]string{
		"name":     "Leitor",
		"username": "leitor",
		"password": "1234",
		"role":     string(domain.RoleViewer),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create viewer: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	viewerToken := login(t, router, "leitor", "1234")

	// Reads work.
	rec = doJSON(router, http.MethodGet, "/v1/bills", viewerToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("viewer read: expected 200, got %d", rec.Code)
	}

	// Writes are forbidden.
	rec = doJSON(router, http.MethodPost, "/v1/bills", viewerToken, map[string]any{
		"description": "Água",
		"value":       80,
		"dueDate":     15,
		"category":    "Água",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("viewer write: expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTreasurer_CannotManageUsers(t *testing.T) {
	router := newTestRouter(t)
	adminToken := login(t, router, "admin", "admin")

	rec := doJSON(router, http.MethodPost, "/v1/users", adminToken, map[string]string{
		"name":     "Tesoureira",
		"username": "maria",
		"password": "1234",
		"role":     string(domain.RoleTreasurer),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create treasurer: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	treasurerToken := login(t, router, "maria", "1234")

	rec = doJSON(router, http.MethodGet, "/v1/users", treasurerToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("treasurer listing users: expected 403, got %d", rec.Code)
	}

	// But ordinary writes still work.
	rec = doJSON(router, http.MethodPost, "/v1/bills", treasurerToken, map[string]any{
		"description": "Água",
		"value":       80,
		"dueDate":     15,
		"category":    "Água",
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("treasurer write: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBillLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin")

	// Paying needs a bank account.
	rec := doJSON(router, http.MethodPut, "/v1/accounts/balance", token, map[string]any{
		"newTotal": 1000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("balance edit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodPost, "/v1/bills", token, map[string]any{
		"description": "Aluguel do salão",
		"value":       600,
		"dueDate":     1,
		"category":    "Aluguel",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bill: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var bill domain.Bill
	if err := json.NewDecoder(rec.Body).Decode(&bill); err != nil {
		t.Fatalf("decode bill: %v", err)
	}

	rec = doJSON(router, http.MethodPost, "/v1/bills/"+bill.ID+"/pay", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pay bill: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// The payment shows up as an expense.
	rec = doJSON(router, http.MethodGet, "/v1/transactions", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list transactions: expected 200, got %d", rec.Code)
	}
	var txs []domain.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&txs); err != nil {
		t.Fatalf("decode transactions: %v", err)
	}
	found := false
	for _, tx := range txs {
		if tx.Description == "Pagamento: Aluguel do salão" {
			found = true
		}
	}
	if !found {
		t.Error("expected a payment expense in the transaction list")
	}
}

func TestStatementCSVEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin")

	rec := doJSON(router, http.MethodGet, "/v1/reports/2025/6/csv", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Errorf("expected text/csv content type, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "relatorio-2025-06.csv") {
		t.Errorf("unexpected content disposition: %q", cd)
	}
}

func TestStatementEndpoint_InvalidMonth(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "admin", "admin")

	rec := doJSON(router, http.MethodGet, "/v1/reports/2025/13", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for month 13, got %d", rec.Code)
	}
}

func TestSetup_ThenConflictOnSecondRun(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]string{
		"churchName": "Igreja Batista Central",
		"pastorName": "Pr. José",
		"adminName":  "João",
		"username":   "joao",
		"password":   "nova-senha",
	}

	rec := doJSON(router, http.MethodPost, "/v1/setup", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("setup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodPost, "/v1/setup", "", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("second setup: expected 409, got %d", rec.Code)
	}
}
