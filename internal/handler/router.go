package handler

import (
	"net/http"

	"github.com/tesourariapro/tesouraria-bff/internal/infra/observability"
	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter creates the HTTP router with all routes and middleware.
// Everything under /v1 except login requires a valid access token, and
// writes additionally require a non-viewer role.
func NewRouter(svc *service.Treasury, authSvc *service.Auth, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Autenticação
		// =============================================
		r.Post("/auth/login", loginHandler(authSvc, logger))

		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(authSvc, logger))

			// =============================================
			// Painel
			// =============================================
			r.Get("/dashboard", dashboardHandler(svc, logger))
			r.Get("/dashboard/series", seriesHandler(svc, logger))
			r.Get("/dashboard/alerts", alertsHandler(svc, logger))

			// =============================================
			// Contas bancárias
			// =============================================
			r.Get("/accounts", listAccountsHandler(svc, logger))

			// =============================================
			// Transações
			// =============================================
			r.Get("/transactions", listTransactionsHandler(svc, logger))
			r.Get("/transactions/categories", categoriesHandler())

			// =============================================
			// Contas a pagar
			// =============================================
			r.Get("/bills", listBillsHandler(svc, logger))
			r.Get("/bills/summary", billSummaryHandler(svc, logger))

			// =============================================
			// Missões
			// =============================================
			r.Get("/missions/progress", missionProgressHandler(svc, logger))
			r.Get("/missions/campaigns", listCampaignsHandler(svc, logger))
			r.Get("/missions/incomes", listMissionIncomesHandler(svc, logger))
			r.Get("/missions/report", missionReportHandler(svc, logger))

			// =============================================
			// Relatórios mensais
			// =============================================
			r.Get("/reports/years", reportYearsHandler(svc, logger))
			r.Get("/reports/{year}/{month}", statementHandler(svc, logger))
			r.Get("/reports/{year}/{month}/csv", statementCSVHandler(svc, logger))
			r.Get("/reports/{year}/{month}/print", statementPrintHandler(svc, logger))

			// =============================================
			// Configurações
			// =============================================
			r.Get("/settings", getSettingsHandler(svc, logger))

			// =============================================
			// Métricas de sincronização
			// =============================================
			r.Get("/metrics/sync", syncMetricsHandler(metrics, logger))

			// --- Writes: any non-viewer role ---
			r.Group(func(r chi.Router) {
				r.Use(RequireWriter(logger))

				r.Post("/accounts", createAccountHandler(svc, logger))
				r.Delete("/accounts/{accountId}", deleteAccountHandler(svc, logger))
				r.Put("/accounts/balance", editBalanceHandler(svc, logger))

				r.Post("/transactions", createTransactionHandler(svc, logger))
				r.Delete("/transactions/{transactionId}", deleteTransactionHandler(svc, logger))

				r.Post("/bills", createBillHandler(svc, logger))
				r.Delete("/bills/{billId}", deleteBillHandler(svc, logger))
				r.Post("/bills/{billId}/pay", payBillHandler(svc, logger))

				r.Post("/missions/campaigns", createCampaignHandler(svc, logger))
				r.Post("/missions/campaigns/complete", completeCampaignHandler(svc, logger))
				r.Post("/missions/incomes", createMissionIncomeHandler(svc, logger))
				r.Delete("/missions/incomes/{incomeId}", deleteMissionIncomeHandler(svc, logger))

				r.Post("/reports/{year}/{month}/close", closeMonthHandler(svc, logger))

				r.Post("/sync", syncHandler(svc, logger))
			})

			// --- Admin only ---
			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin(logger))

				r.Get("/users", listUsersHandler(svc, logger))
				r.Post("/users", createUserHandler(svc, logger))
				r.Delete("/users/{userId}", deleteUserHandler(svc, logger))

				r.Patch("/settings", updateSettingsHandler(svc, logger))
			})
		})

		// Setup runs before any user can log in.
		r.Post("/setup", setupHandler(svc, logger))
	})

	return r
}
