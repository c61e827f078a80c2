package handler

import (
	"fmt"
	"net/http"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Monthly reports
// ============================================================

func reportYearsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Years())
	}
}

func statementHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, okY := urlParamInt(r, "year")
		month, okM := urlParamInt(r, "month")
		if !okY || !okM {
			writeError(w, http.StatusBadRequest, "ano e mês devem ser numéricos")
			return
		}

		stmt, err := svc.Statement(year, month)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stmt)
	}
}

// churchName pulls the configured church name off the admin user; the seed
// data has none, so a generic header is the fallback.
func churchName(data domain.AppData) string {
	for _, u := range data.Users {
		if u.Role == domain.RoleAdmin && u.ChurchName != "" {
			return u.ChurchName
		}
	}
	return "Tesouraria da Igreja"
}

func statementCSVHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, okY := urlParamInt(r, "year")
		month, okM := urlParamInt(r, "month")
		if !okY || !okM {
			writeError(w, http.StatusBadRequest, "ano e mês devem ser numéricos")
			return
		}

		stmt, err := svc.Statement(year, month)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		out, err := service.StatementCSV(stmt, churchName(svc.Snapshot()))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="relatorio-%04d-%02d.csv"`, year, month))
		w.WriteHeader(http.StatusOK)
		w.Write(out)
	}
}

func statementPrintHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, okY := urlParamInt(r, "year")
		month, okM := urlParamInt(r, "month")
		if !okY || !okM {
			writeError(w, http.StatusBadRequest, "ano e mês devem ser numéricos")
			return
		}

		stmt, err := svc.Statement(year, month)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		out, err := service.StatementHTML(stmt, churchName(svc.Snapshot()))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(out)
	}
}

func closeMonthHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, okY := urlParamInt(r, "year")
		month, okM := urlParamInt(r, "month")
		if !okY || !okM {
			writeError(w, http.StatusBadRequest, "ano e mês devem ser numéricos")
			return
		}

		closing, err := svc.CloseMonth(r.Context(), year, month)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, closing)
	}
}
