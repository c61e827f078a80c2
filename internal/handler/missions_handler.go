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
// Missions: campaigns, contributions, progress
// ============================================================

func missionProgressHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Progress())
	}
}

func listCampaignsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Snapshot().Campaigns)
	}
}

type createCampaignRequest struct {
	Name      string          `json:"name"`
	Target    decimal.Decimal `json:"target"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
}

func createCampaignHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}

		created, err := svc.CreateCampaign(r.Context(), domain.MissionCampaign{
			Name:      req.Name,
			Target:    req.Target,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func completeCampaignHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		completed, err := svc.CompleteCampaign(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, completed)
	}
}

func listMissionIncomesHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := svc.Snapshot()
		if campaignID := r.URL.Query().Get("campaignId"); campaignID != "" {
			writeJSON(w, http.StatusOK, service.CampaignIncomes(data.MissionIncomes, campaignID))
			return
		}
		writeJSON(w, http.StatusOK, data.MissionIncomes)
	}
}

type createMissionIncomeRequest struct {
	Source      string          `json:"source"`
	Value       decimal.Decimal `json:"value"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

func createMissionIncomeHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMissionIncomeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}

		created, err := svc.CreateMissionIncome(r.Context(), domain.MissionIncome{
			Source:      req.Source,
			Value:       req.Value,
			Date:        req.Date,
			Description: req.Description,
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func deleteMissionIncomeHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteMissionIncome(r.Context(), chi.URLParam(r, "incomeId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// missionReportHandler bundles the progress view with the campaign's
// contribution history and the budgeted projects, matching the printed
// mission report.
func missionReportHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := svc.Snapshot()
		progress := svc.Progress()

		incomes := data.MissionIncomes
		if progress.Campaign != nil {
			incomes = service.CampaignIncomes(data.MissionIncomes, progress.Campaign.ID)
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"progress": progress,
			"incomes":  incomes,
			"projects": data.Settings.MissionProjects,
		})
	}
}
