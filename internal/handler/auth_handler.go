package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Auth: POST /v1/auth/login
// ============================================================

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func loginHandler(authSvc *service.Auth, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "corpo de requisição inválido")
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "usuário e senha são obrigatórios")
			return
		}

		resp, err := authSvc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
