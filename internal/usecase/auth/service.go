package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greenleaf/internal/domain/account"
	"greenleaf/internal/domain/company"
	"greenleaf/internal/domain/user"
	"greenleaf/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrAccountKindConflict means the identity is already linked to an account of another kind.
	ErrAccountKindConflict = errors.New("identity is linked to a different account kind")
	ErrEmailInUse          = errors.New("email already belongs to an account")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
)

type UserCreator interface {
	Create(ctx context.Context, u user.User) (user.User, error)
}

type CompanyCreator interface {
	CreateCompany(ctx context.Context, c company.Company) (company.Company, error)
}

type Session struct {
	AccountID uuid.UUID
	Kind      account.Kind
	Email     string
	Created   bool
}

// Service resolves external identities to accounts through the identity link table.
type Service struct {
	links     account.Repository
	users     UserCreator
	companies CompanyCreator
	logger    *zap.Logger
}

func NewService(links account.Repository, users UserCreator, companies CompanyCreator, log *zap.Logger) *Service {
	return &Service{links: links, users: users, companies: companies, logger: logger.Named(log, "auth")}
}

// SignIn returns the account linked to id, creating an account of the requested kind
// and its link on first sign-in. The link is the only source of the account kind.
func (s *Service) SignIn(ctx context.Context, id account.Identity, kind account.Kind) (Session, error) {
	id.Provider = strings.ToLower(strings.TrimSpace(id.Provider))
	id.Subject = strings.TrimSpace(id.Subject)
	id.Email = strings.ToLower(strings.TrimSpace(id.Email))
	if id.Provider == "" || id.Subject == "" {
		return Session{}, ErrInvalidInput
	}
	if _, err := account.ParseKind(string(kind)); err != nil {
		return Session{}, ErrInvalidInput
	}

	link, err := s.links.GetLink(ctx, id.Provider, id.Subject)
	switch {
	case err == nil:
		return sessionFor(link, kind, false)
	case !errors.Is(err, account.ErrLinkNotFound):
		return Session{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	accountID, err := s.createAccount(ctx, id, kind)
	if err != nil {
		return Session{}, err
	}

	link = account.Link{Provider: id.Provider, Subject: id.Subject, Kind: kind, AccountID: accountID, Email: id.Email}
	if err := s.links.CreateLink(ctx, link); err != nil {
		if !errors.Is(err, account.ErrLinkExists) {
			return Session{}, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		// A concurrent first sign-in won; its link decides.
		s.logger.Warn("identity linked concurrently, created account left unlinked",
			zap.String("provider", id.Provider),
			zap.String("account_id", accountID.String()),
		)
		existing, err := s.links.GetLink(ctx, id.Provider, id.Subject)
		if err != nil {
			return Session{}, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return sessionFor(existing, kind, false)
	}

	s.logger.Info("account created",
		zap.String("provider", id.Provider),
		zap.String("kind", string(kind)),
		zap.String("account_id", accountID.String()),
	)
	return Session{AccountID: accountID, Kind: kind, Email: id.Email, Created: true}, nil
}

func sessionFor(link account.Link, requested account.Kind, created bool) (Session, error) {
	if link.Kind != requested {
		return Session{}, ErrAccountKindConflict
	}
	return Session{AccountID: link.AccountID, Kind: link.Kind, Email: link.Email, Created: created}, nil
}

func (s *Service) createAccount(ctx context.Context, id account.Identity, kind account.Kind) (uuid.UUID, error) {
	var email *string
	if id.Email != "" {
		email = &id.Email
	}

	switch kind {
	case account.KindUser:
		var name *string
		if id.Name != "" {
			name = &id.Name
		}
		u, err := s.users.Create(ctx, user.User{Email: email, Name: name})
		if err != nil {
			if errors.Is(err, user.ErrEmailTaken) {
				return uuid.Nil, ErrEmailInUse
			}
			return uuid.Nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return u.ID, nil

	case account.KindCompany:
		newID := uuid.New()
		c, err := s.companies.CreateCompany(ctx, company.Company{
			ID:           newID,
			Name:         PlaceholderCompanyName(newID),
			ContactEmail: email,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return c.ID, nil
	}
	return uuid.Nil, ErrInvalidInput
}

// PlaceholderCompanyName names a company created by sign-in until its owner renames it.
func PlaceholderCompanyName(id uuid.UUID) string {
	return "pending-" + strings.ReplaceAll(id.String(), "-", "")[:12]
}
