package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"greenleaf/internal/config"
	"greenleaf/internal/domain/account"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/linkedin"
)

const (
	ProviderGoogle   = "google"
	ProviderLinkedIn = "linkedin"
)

var ErrUnknownProvider = errors.New("unknown oauth provider")

const (
	googleUserInfoURL   = "https://openidconnect.googleapis.com/v1/userinfo"
	linkedInUserInfoURL = "https://api.linkedin.com/v2/userinfo"
)

// Flow is one provider's authorization-code flow.
type Flow interface {
	AuthCodeURL(state string) string
	Identity(ctx context.Context, code string) (account.Identity, error)
}

// Provider runs the authorization-code flow against one OpenID Connect provider.
type Provider struct {
	name        string
	config      *oauth2.Config
	userInfoURL string
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Identity exchanges code for a token and reads the signed-in identity from the
// provider's userinfo endpoint.
func (p *Provider) Identity(ctx context.Context, code string) (account.Identity, error) {
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return account.Identity{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return account.Identity{}, err
	}
	resp, err := p.config.Client(ctx, tok).Do(req)
	if err != nil {
		return account.Identity{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return account.Identity{}, fmt.Errorf("userinfo status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var info struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return account.Identity{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if strings.TrimSpace(info.Sub) == "" {
		return account.Identity{}, errors.New("userinfo without subject")
	}

	return account.Identity{
		Provider: p.name,
		Subject:  info.Sub,
		Email:    strings.ToLower(strings.TrimSpace(info.Email)),
		Name:     strings.TrimSpace(info.Name),
	}, nil
}

// Registry holds the providers that have credentials configured.
type Registry struct {
	providers map[string]*Provider
}

func NewRegistry(cfg config.OAuthConfig, publicURL string) *Registry {
	r := &Registry{providers: map[string]*Provider{}}
	base := strings.TrimRight(publicURL, "/")

	if cfg.Google.Enabled() {
		r.add(ProviderGoogle, cfg.Google, google.Endpoint, base, googleUserInfoURL)
	}
	if cfg.LinkedIn.Enabled() {
		r.add(ProviderLinkedIn, cfg.LinkedIn, linkedin.Endpoint, base, linkedInUserInfoURL)
	}
	return r
}

func (r *Registry) add(name string, pc config.OAuthProviderConfig, ep oauth2.Endpoint, base, userInfoURL string) {
	r.providers[name] = &Provider{
		name: name,
		config: &oauth2.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			Endpoint:     ep,
			RedirectURL:  base + "/api/auth/oauth/" + name + "/callback",
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: userInfoURL,
	}
}

func (r *Registry) Get(name string) (Flow, error) {
	if r == nil {
		return nil, ErrUnknownProvider
	}
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}
