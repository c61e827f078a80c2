package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authTracer = otel.Tracer("service/auth")

// Auth validates operator credentials against the synced user list and
// issues access tokens.
type Auth struct {
	treasury  *Treasury
	jwtSecret []byte
	accessTTL time.Duration
	logger    *zap.Logger
}

// NewAuth creates the auth service.
func NewAuth(treasury *Treasury, jwtSecret string, accessTTL time.Duration, logger *zap.Logger) *Auth {
	return &Auth{
		treasury:  treasury,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
		logger:    logger,
	}
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	ExpiresIn   int         `json:"expiresIn"`
	User        domain.User `json:"user"`
}

// Login checks username and password. Passwords created through this
// application are bcrypt hashes; the seed demo user still carries a plain
// password, so a constant-time plain comparison is the fallback.
func (a *Auth) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	_, span := authTracer.Start(ctx, "Auth.Login")
	defer span.End()

	data := a.treasury.Snapshot()
	var user *domain.User
	for i := range data.Users {
		if strings.EqualFold(data.Users[i].Username, username) {
			user = &data.Users[i]
			break
		}
	}
	if user == nil {
		return nil, &domain.ErrUnauthorized{Message: "Usuário ou senha inválidos"}
	}

	if !passwordMatches(user.Password, password) {
		a.logger.Warn("login failed", zap.String("username", username))
		return nil, &domain.ErrUnauthorized{Message: "Usuário ou senha inválidos"}
	}

	token, err := a.signAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	a.logger.Info("login ok",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return &LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(a.accessTTL.Seconds()),
		User:        user.Redacted(),
	}, nil
}

func passwordMatches(stored, given string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// ============================================================
// JWT
// ============================================================

// JWTClaims represents the custom claims in access tokens.
type JWTClaims struct {
	Sub  string          `json:"sub"`
	Role domain.UserRole `json:"role"`
	Type string          `json:"type"`
	jwt.RegisteredClaims
}

func (a *Auth) signAccessToken(userID string, role domain.UserRole) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Sub:  userID,
		Role: role,
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.accessTTL)),
			Issuer:    "tesouraria-bff",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateAccessToken parses and verifies a token. Used by middleware.
func (a *Auth) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "Token inválido ou expirado"}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "Token inválido"}
	}
	if claims.Type != "access" {
		return nil, &domain.ErrUnauthorized{Message: "Tipo de token inválido"}
	}
	return claims, nil
}
