package handler

import (
	"net/http"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/infra/observability"
	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Sync and operational endpoints
// ============================================================

// syncHandler triggers a full backend re-fetch. A failed refresh is not
// fatal to the caller: local data keeps serving, so the outcome is reported
// in the body instead of a 5xx.
func syncHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		err := svc.Refresh(r.Context())

		resp := map[string]any{
			"durationMs": time.Since(start).Milliseconds(),
			"syncedAt":   time.Now().Format(time.RFC3339),
		}
		if err != nil {
			logger.Warn("manual sync failed, serving local data", zap.Error(err))
			resp["status"] = "offline"
			resp["error"] = err.Error()
			writeJSON(w, http.StatusOK, resp)
			return
		}
		resp["status"] = "synced"
		writeJSON(w, http.StatusOK, resp)
	}
}

func syncMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetSyncSnapshot())
	}
}

// healthzHandler reports liveness plus a best-effort backend probe.
func healthzHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := svc.Snapshot()
		writeJSON(w, http.StatusOK, map[string]any{
			"status":       "healthy",
			"checkedAt":    time.Now().Format(time.RFC3339),
			"transactions": len(data.Transactions),
			"setupDone":    data.IsSetupComplete,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
