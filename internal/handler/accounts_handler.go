package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ============================================================
// Accounts
// ============================================================

func listAccountsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Balances())
	}
}

type createAccountRequest struct {
	Name           string          `json:"name"`
	BankName       string          `json:"bankName"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

func createAccountHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}

		created, err := svc.CreateAccount(r.Context(), domain.BankAccount{
			Name:           req.Name,
			BankName:       req.BankName,
			Type:           req.Type,
			InitialBalance: req.InitialBalance,
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func deleteAccountHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteAccount(r.Context(), chi.URLParam(r, "accountId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type balanceEditRequest struct {
	NewTotal decimal.Decimal `json:"newTotal"`
}

// editBalanceHandler sets the consolidated balance directly; the adjustment
// lands on the first account's initial balance.
func editBalanceHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req balanceEditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}

		updated, err := svc.ApplyBalanceEdit(r.Context(), req.NewTotal)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
