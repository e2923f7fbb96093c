package middleware

import (
	"errors"
	"strings"

	"greenleaf/internal/domain/account"
	"greenleaf/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxAccountIDKey   = "account_id"
	CtxAccountKindKey = "account_kind"
	CtxEmailKey       = "email"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// RequireAuth validates the bearer access token and stores its claims in locals.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}
		kind, err := account.ParseKind(claims.AccountKind)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxAccountIDKey, claims.AccountID)
		c.Locals(CtxAccountKindKey, kind)
		c.Locals(CtxEmailKey, claims.Email)

		return c.Next()
	}
}

// RequireKind must run after RequireAuth.
func (m *AuthMiddleware) RequireKind(kind account.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		got, ok := c.Locals(CtxAccountKindKey).(account.Kind)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if got != kind {
			return NewAppError(fiber.StatusForbidden, "This action requires a "+string(kind)+" account", nil, nil)
		}
		return c.Next()
	}
}

// AccountID reads the authenticated account id set by RequireAuth.
func AccountID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxAccountIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func AccountKind(c fiber.Ctx) (account.Kind, bool) {
	k, ok := c.Locals(CtxAccountKindKey).(account.Kind)
	return k, ok
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
