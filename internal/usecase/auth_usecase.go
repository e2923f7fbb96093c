package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"greenleaf/internal/domain/account"
	"greenleaf/internal/infrastructure/mailer"
	"greenleaf/internal/infrastructure/oauth"
	"greenleaf/internal/logger"
	"greenleaf/internal/pkg/jwt"
	ucauth "greenleaf/internal/usecase/auth"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	ProviderEmail = "email"

	magicLinkKeyPrefix  = "auth:magic:"
	oauthStateKeyPrefix = "auth:oauth:state:"
)

var ErrAccountKindConflict = ucauth.ErrAccountKindConflict

// TokenStore keeps short-lived sign-in secrets and reports an error when the store is down.
type TokenStore interface {
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, bool, error)
	GetDel(ctx context.Context, key string) (string, bool, error)
}

type OAuthProviders interface {
	Get(name string) (oauth.Flow, error)
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
	Session      ucauth.Session
}

type AuthOptions struct {
	PublicURL     string
	MagicLinkTTL  time.Duration
	OAuthStateTTL time.Duration
}

type Auth struct {
	signIn    *ucauth.Service
	links     account.Repository
	jwt       jwt.Service
	store     TokenStore
	mailer    mailer.Mailer
	providers OAuthProviders
	opts      AuthOptions
	logger    *zap.Logger
}

func NewAuthUsecase(signIn *ucauth.Service, links account.Repository, jwtSvc jwt.Service, store TokenStore, m mailer.Mailer, providers OAuthProviders, opts AuthOptions, log *zap.Logger) *Auth {
	if opts.MagicLinkTTL <= 0 {
		opts.MagicLinkTTL = 24 * time.Hour
	}
	if opts.OAuthStateTTL <= 0 {
		opts.OAuthStateTTL = 10 * time.Minute
	}
	return &Auth{
		signIn:    signIn,
		links:     links,
		jwt:       jwtSvc,
		store:     store,
		mailer:    m,
		providers: providers,
		opts:      opts,
		logger:    logger.Named(log, "auth"),
	}
}

// StartEmail mails a single-use sign-in link. Only a bcrypt hash of the token is stored.
func (u *Auth) StartEmail(ctx context.Context, email string, kind string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	k, err := account.ParseKind(kind)
	if err != nil {
		return ErrInvalidInput
	}

	token, err := randomToken()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := u.store.SetString(ctx, magicLinkKeyPrefix+email, string(k)+"|"+string(hash), u.opts.MagicLinkTTL); err != nil {
		return fmt.Errorf("%w: store magic link: %w", ErrInternal, err)
	}

	q := url.Values{}
	q.Set("email", email)
	q.Set("token", token)
	link := strings.TrimRight(u.opts.PublicURL, "/") + "/auth/verify?" + q.Encode()

	msg := mailer.Message{
		To:      email,
		Subject: "Your Greenleaf sign-in link",
		Body: fmt.Sprintf("Use the link below to sign in to Greenleaf. It expires in %s.\n\n%s\n",
			u.opts.MagicLinkTTL, link),
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: send magic link: %w", ErrInternal, err)
	}

	u.logger.Info("magic link sent", zap.String("kind", string(k)))
	return nil
}

// VerifyEmail consumes a magic-link token and signs in with provider "email".
func (u *Auth) VerifyEmail(ctx context.Context, email, token string) (Tokens, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return Tokens{}, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Tokens{}, ErrInvalidInput
	}

	key := magicLinkKeyPrefix + email
	stored, ok, err := u.store.GetString(ctx, key)
	if err != nil {
		return Tokens{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !ok {
		return Tokens{}, ErrUnauthorized
	}
	kindRaw, hash, found := strings.Cut(stored, "|")
	if !found {
		return Tokens{}, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		return Tokens{}, ErrUnauthorized
	}
	// A link works once.
	_, ok, err = u.store.GetDel(ctx, key)
	if err != nil {
		return Tokens{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !ok {
		return Tokens{}, ErrUnauthorized
	}

	kind, err := account.ParseKind(kindRaw)
	if err != nil {
		return Tokens{}, ErrUnauthorized
	}
	return u.complete(ctx, account.Identity{Provider: ProviderEmail, Subject: email, Email: email}, kind)
}

// OAuthURL starts an authorization-code flow for the requested account kind.
func (u *Auth) OAuthURL(ctx context.Context, provider, kind string) (string, error) {
	flow, err := u.providers.Get(provider)
	if err != nil {
		return "", ErrNotFound
	}
	k, err := account.ParseKind(kind)
	if err != nil {
		return "", ErrInvalidInput
	}

	state, err := randomToken()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	value := strings.ToLower(strings.TrimSpace(provider)) + "|" + string(k)
	if err := u.store.SetString(ctx, oauthStateKeyPrefix+state, value, u.opts.OAuthStateTTL); err != nil {
		return "", fmt.Errorf("%w: store oauth state: %w", ErrInternal, err)
	}
	return flow.AuthCodeURL(state), nil
}

func (u *Auth) OAuthCallback(ctx context.Context, provider, state, code string) (Tokens, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	flow, err := u.providers.Get(provider)
	if err != nil {
		return Tokens{}, ErrNotFound
	}
	if strings.TrimSpace(state) == "" || strings.TrimSpace(code) == "" {
		return Tokens{}, ErrInvalidInput
	}

	stored, ok, err := u.store.GetDel(ctx, oauthStateKeyPrefix+state)
	if err != nil {
		return Tokens{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !ok {
		return Tokens{}, ErrUnauthorized
	}
	storedProvider, kindRaw, _ := strings.Cut(stored, "|")
	if storedProvider != provider {
		return Tokens{}, ErrUnauthorized
	}
	kind, err := account.ParseKind(kindRaw)
	if err != nil {
		return Tokens{}, ErrUnauthorized
	}

	id, err := flow.Identity(ctx, code)
	if err != nil {
		u.logger.Warn("oauth identity lookup failed", zap.String("provider", provider), zap.Error(err))
		return Tokens{}, ErrUnauthorized
	}
	return u.complete(ctx, id, kind)
}

// Refresh reissues tokens from refresh-token claims. The link table confirms the account
// still exists with the same kind.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}
	kind, err := account.ParseKind(claims.AccountKind)
	if err != nil {
		return Tokens{}, ErrInvalidRefreshToken
	}

	if _, err := u.links.GetLinkByAccount(ctx, kind, claims.AccountID); err != nil {
		if errors.Is(err, account.ErrLinkNotFound) {
			return Tokens{}, ErrInvalidRefreshToken
		}
		return Tokens{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return u.issue(ucauth.Session{AccountID: claims.AccountID, Kind: kind, Email: claims.Email})
}

func (u *Auth) complete(ctx context.Context, id account.Identity, kind account.Kind) (Tokens, error) {
	s, err := u.signIn.SignIn(ctx, id, kind)
	if err != nil {
		switch {
		case errors.Is(err, ucauth.ErrAccountKindConflict):
			return Tokens{}, ErrAccountKindConflict
		case errors.Is(err, ucauth.ErrEmailInUse):
			return Tokens{}, ErrConflict
		case errors.Is(err, ucauth.ErrInvalidInput):
			return Tokens{}, ErrInvalidInput
		}
		return Tokens{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return u.issue(s)
}

func (u *Auth) issue(s ucauth.Session) (Tokens, error) {
	access, err := u.jwt.GenerateAccessToken(s.AccountID, string(s.Kind), s.Email)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(s.AccountID, string(s.Kind), s.Email)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{AccessToken: access, RefreshToken: refresh, Session: s}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidInput
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidInput
	}
	return email, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
