package handler

import (
	"context"
	"strings"
	"time"

	"greenleaf/internal/delivery/http/dto"
	"greenleaf/internal/delivery/http/middleware"
	"greenleaf/internal/pkg/response"
	"greenleaf/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthUsecase interface {
	StartEmail(ctx context.Context, email, kind string) error
	VerifyEmail(ctx context.Context, email, token string) (usecase.Tokens, error)
	OAuthURL(ctx context.Context, provider, kind string) (string, error)
	OAuthCallback(ctx context.Context, provider, state, code string) (usecase.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (usecase.Tokens, error)
}

type AuthHandler struct {
	uc        AuthUsecase
	accessTTL time.Duration
}

func NewAuthHandler(uc AuthUsecase, accessTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, accessTTL: accessTTL}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/email/start", h.StartEmail)
	r.Post("/email/verify", h.VerifyEmail)
	r.Get("/oauth/:provider/start", h.OAuthStart)
	r.Get("/oauth/:provider/callback", h.OAuthCallback)
	r.Post("/refresh", h.Refresh)
	r.Get("/session", auth, h.Session)
}

func (h *AuthHandler) StartEmail(c fiber.Ctx) error {
	var req dto.EmailStartRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.uc.StartEmail(c.Context(), req.Email, req.Kind); err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return response.Success(c, fiber.StatusAccepted, "Sign-in link sent", nil)
}

func (h *AuthHandler) VerifyEmail(c fiber.Ctx) error {
	var req dto.EmailVerifyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	tokens, err := h.uc.VerifyEmail(c.Context(), req.Email, req.Token)
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return response.OK(c, h.tokens(tokens))
}

func (h *AuthHandler) OAuthStart(c fiber.Ctx) error {
	url, err := h.uc.OAuthURL(c.Context(), c.Params("provider"), c.Query("kind"))
	if err != nil {
		return mapUsecaseError(err, "Unknown provider")
	}
	return response.OK(c, dto.OAuthStartResponse{URL: url})
}

func (h *AuthHandler) OAuthCallback(c fiber.Ctx) error {
	if msg := c.Query("error"); msg != "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Authorization denied: "+msg, nil, nil)
	}

	tokens, err := h.uc.OAuthCallback(c.Context(), c.Params("provider"), c.Query("state"), c.Query("code"))
	if err != nil {
		return mapUsecaseError(err, "Unknown provider")
	}
	return response.OK(c, h.tokens(tokens))
}

// Refresh reads the refresh token from the JSON body or, failing that, the bearer header.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}
	tok := strings.TrimSpace(req.RefreshToken)
	if tok == "" {
		var ok bool
		if tok, ok = middleware.BearerToken(c.Get("Authorization")); !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return response.OK(c, h.tokens(tokens))
}

func (h *AuthHandler) Session(c fiber.Ctx) error {
	id, err := currentAccount(c)
	if err != nil {
		return err
	}
	kind, _ := middleware.AccountKind(c)
	email, _ := c.Locals(middleware.CtxEmailKey).(string)

	return response.OK(c, dto.AccountResponse{ID: id, Kind: string(kind), Email: email})
}

func (h *AuthHandler) tokens(t usecase.Tokens) dto.TokenResponse {
	return dto.NewTokenResponse(t, int64(h.accessTTL/time.Second))
}
