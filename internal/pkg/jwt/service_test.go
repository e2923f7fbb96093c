package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	s := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	id := uuid.New()

	access, err := s.GenerateAccessToken(id, "company", "hr@acme.example")
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}
	claims, err := s.ValidateToken(access)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if claims.AccountID != id || claims.AccountKind != "company" || claims.Email != "hr@acme.example" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if s.IsRefreshToken(claims) {
		t.Fatalf("access token reported as refresh")
	}

	refresh, err := s.GenerateRefreshToken(id, "company", "hr@acme.example")
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}
	claims, err = s.ValidateToken(refresh)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if !s.IsRefreshToken(claims) || claims.AccountKind != "company" {
		t.Fatalf("unexpected refresh claims: %+v", claims)
	}
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("a", "r", time.Minute, time.Hour)
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	tok, err := s.GenerateAccessToken(uuid.New(), "user", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_RejectsForeignSecretAndMissingKind(t *testing.T) {
	s := NewHMACService("a", "r", time.Minute, time.Hour)
	other := NewHMACService("x", "y", time.Minute, time.Hour)

	tok, err := other.GenerateAccessToken(uuid.New(), "user", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := s.GenerateAccessToken(uuid.New(), "", ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for missing kind, got %v", err)
	}
}
