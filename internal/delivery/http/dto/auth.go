package dto

import (
	"greenleaf/internal/usecase"

	"github.com/google/uuid"
)

type EmailStartRequest struct {
	Email string `json:"email"`
	Kind  string `json:"kind"`
}

type EmailVerifyRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AccountResponse struct {
	ID      uuid.UUID `json:"id"`
	Kind    string    `json:"kind"`
	Email   string    `json:"email"`
	Created bool      `json:"created,omitempty"`
}

type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int64           `json:"expires_in,omitempty"`
	Account      AccountResponse `json:"account"`
}

func NewTokenResponse(t usecase.Tokens, expiresIn int64) TokenResponse {
	return TokenResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		Account: AccountResponse{
			ID:      t.Session.AccountID,
			Kind:    string(t.Session.Kind),
			Email:   t.Session.Email,
			Created: t.Session.Created,
		},
	}
}

type OAuthStartResponse struct {
	URL string `json:"url"`
}
