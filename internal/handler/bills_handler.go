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
// Bills
// ============================================================

func listBillsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := domain.BillStatus(r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, service.FilterBills(svc.Snapshot().Bills, status))
	}
}

func billSummaryHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.BillSummary())
	}
}

type createBillRequest struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	DueDate     int             `json:"dueDate"`
	Category    string          `json:"category"`
	IsRecurring bool            `json:"isRecurring"`
}

func createBillHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}

		created, err := svc.CreateBill(r.Context(), domain.Bill{
			Description: req.Description,
			Value:       req.Value,
			DueDate:     req.DueDate,
			Category:    req.Category,
			IsRecurring: req.IsRecurring,
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func deleteBillHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteBill(r.Context(), chi.URLParam(r, "billId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func payBillHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paid, err := svc.PayBill(r.Context(), chi.URLParam(r, "billId"), UserIDFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, paid)
	}
}
