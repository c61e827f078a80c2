package handler

import (
	"net/http"

	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Dashboard: headline stats, chart series, bill alerts
// ============================================================

func dashboardHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Dashboard())
	}
}

func seriesHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Series())
	}
}

func alertsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Alerts())
	}
}
