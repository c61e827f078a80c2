package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ============================================================
// Transactions
// ============================================================

// listTransactionsHandler returns the working set transactions, optionally
// filtered by ?type= and ?month=YYYY-MM.
func listTransactionsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactions := svc.Snapshot().Transactions

		txType := r.URL.Query().Get("type")
		month := r.URL.Query().Get("month")
		if txType == "" && month == "" {
			writeJSON(w, http.StatusOK, transactions)
			return
		}

		filtered := make([]domain.Transaction, 0, len(transactions))
		for _, tx := range transactions {
			if txType != "" && string(tx.Type) != txType {
				continue
			}
			if month != "" && !strings.HasPrefix(tx.Date, month+"-") {
				continue
			}
			filtered = append(filtered, tx)
		}
		writeJSON(w, http.StatusOK, filtered)
	}
}

type createTransactionRequest struct {
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	AccountID   string          `json:"accountId"`
	ToAccountID string          `json:"toAccountId"`
	IsRecurring bool            `json:"isRecurring"`
}

func createTransactionHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}

		created, err := svc.CreateTransaction(r.Context(), domain.Transaction{
			Type:        domain.TransactionType(req.Type),
			Value:       req.Value,
			Date:        req.Date,
			Description: req.Description,
			Category:    req.Category,
			AccountID:   req.AccountID,
			ToAccountID: req.ToAccountID,
			IsRecurring: req.IsRecurring,
			UserID:      UserIDFromContext(r.Context()),
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func deleteTransactionHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteTransaction(r.Context(), chi.URLParam(r, "transactionId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// categoriesHandler exposes the fixed category vocabularies for entry forms.
func categoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{
			"income":  domain.IncomeCategories,
			"expense": domain.ExpenseCategories,
		})
	}
}
