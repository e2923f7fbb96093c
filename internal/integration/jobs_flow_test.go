package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"greenleaf/internal/app"
	"greenleaf/internal/config"
	"greenleaf/internal/domain/account"
	"greenleaf/internal/domain/company"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type jobItem struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	BusinessName string    `json:"business_name"`
	GreenScore   int       `json:"green_score"`
}

type jobPage struct {
	Items []jobItem `json:"items"`
	Total int       `json:"total"`
}

type evaluateResult struct {
	Score     int            `json:"score"`
	Breakdown map[string]int `json:"breakdown"`
}

func TestIntegration_CompanyPostsScoredJob(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := testConfig(t)
	c, err := app.NewContainer(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	defer func() { _ = c.Close() }()

	web := app.New(cfg, c).Fiber

	co := seedCompany(t, ctx, c)
	defer cleanupCompany(t, ctx, c, co.ID)

	tok, err := c.JWT.GenerateAccessToken(co.ID, string(account.KindCompany), "")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	// esg 80, b corp, unlisted sector, classifier "1", remote description
	var eval evaluateResult
	status := doJSON(t, web, http.MethodPost, "/api/green-scores/evaluate", "", map[string]string{
		"businessName": co.Name,
		"title":        "Solar Installer",
		"description":  "Install panels, remote planning",
		"location":     "Lisbon",
	}, &eval)
	if status != http.StatusOK || eval.Score != 10 {
		t.Fatalf("evaluate: status=%d score=%d breakdown=%v", status, eval.Score, eval.Breakdown)
	}

	var created semanticResponse
	status = doJSON(t, web, http.MethodPost, "/api/jobs", tok, map[string]string{
		"title":       "Solar Installer",
		"description": "Install panels, remote planning",
		"location":    "Lisbon",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create: status=%d message=%s", status, created.Message)
	}
	var j jobItem
	if err := json.Unmarshal(created.Data, &j); err != nil {
		t.Fatalf("create: decode: %v", err)
	}
	if j.GreenScore != 10 || j.BusinessName != co.Name {
		t.Fatalf("create: unexpected job %+v", j)
	}

	var found semanticResponse
	status = doJSON(t, web, http.MethodGet, "/api/jobs?company="+url.QueryEscape(co.Name), "", nil, &found)
	if status != http.StatusOK {
		t.Fatalf("search: status=%d", status)
	}
	var page jobPage
	if err := json.Unmarshal(found.Data, &page); err != nil {
		t.Fatalf("search: decode: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].ID != j.ID {
		t.Fatalf("search: unexpected page %+v", page)
	}

	var anon semanticResponse
	if status := doJSON(t, web, http.MethodDelete, "/api/jobs/"+j.ID.String(), "", nil, &anon); status != http.StatusUnauthorized {
		t.Fatalf("anonymous delete: expected 401, got %d", status)
	}

	var deleted semanticResponse
	if status := doJSON(t, web, http.MethodDelete, "/api/jobs/"+j.ID.String(), tok, nil, &deleted); status != http.StatusOK {
		t.Fatalf("delete: status=%d message=%s", status, deleted.Message)
	}

	var missing semanticResponse
	if status := doJSON(t, web, http.MethodGet, "/api/jobs/"+j.ID.String(), "", nil, &missing); status != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", status)
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	host := stringsOrDefault(os.Getenv("GREENLEAF_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("GREENLEAF_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("GREENLEAF_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("GREENLEAF_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("GREENLEAF_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("GREENLEAF_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set GREENLEAF_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	return config.Config{
		App: config.AppConfig{AppName: "greenleaf", Environment: "test", HTTPPort: "0", PublicURL: "http://localhost"},
		Database: config.DatabaseConfig{
			DBHost:         host,
			DBPort:         port,
			DBName:         name,
			DBUser:         user,
			DBPassword:     pass,
			DBSSLMode:      ssl,
			ConnectTimeout: 5 * time.Second,
			RunMigrations:  true,
		},
		// unreachable redis; the search cache is bypassed
		Redis: config.RedisConfig{Host: "127.0.0.1", Port: "1"},
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
		Auth:       config.AuthConfig{MagicLinkTTL: 15 * time.Minute, OAuthStateTTL: 10 * time.Minute},
		Mail:       config.MailConfig{Driver: "log"},
		Classifier: config.ClassifierConfig{Provider: "static", StaticReply: "1"},
		GreenScore: config.GreenScoreConfig{MissingESGPolicy: "neutral", RescoreWorkers: 2},
	}
}

func seedCompany(t *testing.T, ctx context.Context, c *app.Container) company.Company {
	t.Helper()

	esg, bcorp, industry := 80.0, true, "education"
	co, err := c.Companies.Create(ctx, company.Company{
		Name:     fmt.Sprintf("it-green-%s", uuid.NewString()[:8]),
		ESGScore: &esg,
		BCorp:    &bcorp,
		Industry: &industry,
	})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return co
}

func cleanupCompany(t *testing.T, ctx context.Context, c *app.Container, id uuid.UUID) {
	t.Helper()

	_, _ = c.DB.Exec(ctx, `DELETE FROM jobs WHERE business_name = (SELECT name FROM companies WHERE id = $1)`, id)
	_, _ = c.DB.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
}

func doJSON(t *testing.T, web *fiber.App, method, path, token string, body any, out any) int {
	t.Helper()

	var r *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	} else {
		r = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := web.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
