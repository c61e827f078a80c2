package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"
	"github.com/tesourariapro/tesouraria-bff/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// JWTAuthMiddleware validates Bearer tokens and injects the user identity
// into context.
func JWTAuthMiddleware(authSvc *service.Auth, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Token de autenticação não fornecido")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: invalid token format",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Formato de token inválido")
				return
			}

			claims, err := authSvc.ValidateAccessToken(parts[1])
			if err != nil {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.Sub)
			ctx = context.WithValue(ctx, userRoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireWriter blocks mutations from read-only operators. Observador can see
// everything but change nothing.
func RequireWriter(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) == domain.RoleViewer {
				logger.Warn("viewer attempted write",
					zap.String("path", r.URL.Path),
					zap.String("user_id", UserIDFromContext(r.Context())),
				)
				writeError(w, http.StatusForbidden, "perfil somente leitura")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin restricts an endpoint to administrators.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != domain.RoleAdmin {
				logger.Warn("non-admin attempted admin action",
					zap.String("path", r.URL.Path),
					zap.String("user_id", UserIDFromContext(r.Context())),
				)
				writeError(w, http.StatusForbidden, "apenas administradores")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// RoleFromContext extracts the authenticated user role from context.
func RoleFromContext(ctx context.Context) domain.UserRole {
	v, _ := ctx.Value(userRoleKey).(domain.UserRole)
	return v
}
