package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindUser    Kind = "user"
	KindCompany Kind = "company"
)

var (
	ErrUnknownKind  = errors.New("unknown account kind")
	ErrLinkNotFound = errors.New("identity link not found")
	ErrLinkExists   = errors.New("identity already linked")
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindUser:
		return KindUser, nil
	case KindCompany:
		return KindCompany, nil
	}
	return "", ErrUnknownKind
}

// Identity is an external identity as reported by a sign-in provider.
type Identity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}

// Link maps one external identity to exactly one account of one kind.
type Link struct {
	Provider  string
	Subject   string
	Kind      Kind
	AccountID uuid.UUID
	Email     string
	CreatedAt time.Time
}

type Repository interface {
	GetLink(ctx context.Context, provider, subject string) (Link, error)
	CreateLink(ctx context.Context, l Link) error
	GetLinkByAccount(ctx context.Context, kind Kind, accountID uuid.UUID) (Link, error)
}
