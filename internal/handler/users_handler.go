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
// Users, settings and first-run setup
// ============================================================

func listUsersHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.ListUsers())
	}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func createUserHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}

		created, err := svc.CreateUser(r.Context(), domain.User{
			Name:     req.Name,
			Username: req.Username,
			Password: req.Password,
			Role:     domain.UserRole(req.Role),
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func deleteUserHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteUser(r.Context(), chi.URLParam(r, "userId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getSettingsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Snapshot().Settings)
	}
}

type updateSettingsRequest struct {
	MissionTarget   *decimal.Decimal        `json:"missionTarget"`
	MissionProjects []domain.MissionProject `json:"missionProjects"`
}

func updateSettingsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}

		updates := map[string]any{}
		if req.MissionTarget != nil {
			if req.MissionTarget.IsNegative() {
				writeError(w, http.StatusBadRequest, "meta de missões não pode ser negativa")
				return
			}
			updates["missionTarget"] = req.MissionTarget.InexactFloat64()
		}
		if req.MissionProjects != nil {
			projects := make([]map[string]any, 0, len(req.MissionProjects))
			for _, p := range req.MissionProjects {
				projects = append(projects, map[string]any{
					"name":  p.Name,
					"value": p.Value.InexactFloat64(),
				})
			}
			updates["missionProjects"] = projects
		}
		if len(updates) == 0 {
			writeError(w, http.StatusBadRequest, "nenhum campo para atualizar")
			return
		}

		updated, err := svc.UpdateSettings(r.Context(), updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

type setupRequest struct {
	ChurchName string `json:"churchName"`
	PastorName string `json:"pastorName"`
	AdminName  string `json:"adminName"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

func setupHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}

		admin, err := svc.CompleteSetup(r.Context(), req.ChurchName, req.PastorName, req.AdminName, req.Username, req.Password)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, admin)
	}
}
