package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"greenleaf/internal/delivery/http/middleware"
	"greenleaf/internal/domain/account"
	"greenleaf/internal/domain/job"
	"greenleaf/internal/greenscore"
	"greenleaf/internal/pkg/jwt"
	"greenleaf/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubJobs struct {
	createErr error
	updateErr error
	companyID uuid.UUID
	search    usecase.JobSearchParams
}

func (s *stubJobs) Create(_ context.Context, companyID uuid.UUID, in usecase.CreateJobInput) (job.Job, error) {
	s.companyID = companyID
	if s.createErr != nil {
		return job.Job{}, s.createErr
	}
	return job.Job{ID: uuid.New(), Title: in.Title, GreenScore: 7, Status: job.StatusActive}, nil
}

func (s *stubJobs) Get(_ context.Context, id uuid.UUID) (job.Job, error) {
	return job.Job{}, usecase.ErrNotFound
}

func (s *stubJobs) Search(_ context.Context, p usecase.JobSearchParams) (usecase.JobPage, error) {
	s.search = p
	return usecase.JobPage{Items: []job.Job{}, Limit: 20}, nil
}

func (s *stubJobs) Update(_ context.Context, _, _ uuid.UUID, _ job.Patch) (job.Job, error) {
	return job.Job{}, s.updateErr
}

func (s *stubJobs) Delete(_ context.Context, _, _ uuid.UUID) error { return nil }

func newJobsApp(uc JobsUsecase, svc jwt.Service) *fiber.App {
	mw := middleware.NewAuthMiddleware(svc)
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewJobsHandler(uc).RegisterRoutes(app.Group("/api/jobs"), mw.RequireAuth(), mw.RequireKind(account.KindCompany))
	return app
}

func TestJobsRoutes(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	companyID := uuid.New()
	companyTok, _ := svc.GenerateAccessToken(companyID, "company", "c@x.io")
	userTok, _ := svc.GenerateAccessToken(uuid.New(), "user", "u@x.io")

	tests := []struct {
		name       string
		stub       *stubJobs
		method     string
		path       string
		token      string
		body       string
		wantStatus int
	}{
		{name: "search is public", stub: &stubJobs{}, method: "GET", path: "/api/jobs?query=solar&limit=5", wantStatus: 200},
		{name: "bad limit", stub: &stubJobs{}, method: "GET", path: "/api/jobs?limit=abc", wantStatus: 400},
		{name: "get unknown", stub: &stubJobs{}, method: "GET", path: "/api/jobs/" + uuid.NewString(), wantStatus: 404},
		{name: "get bad id", stub: &stubJobs{}, method: "GET", path: "/api/jobs/nope", wantStatus: 400},
		{name: "create needs auth", stub: &stubJobs{}, method: "POST", path: "/api/jobs", body: `{"title":"t"}`, wantStatus: 401},
		{name: "create needs company", stub: &stubJobs{}, method: "POST", path: "/api/jobs", token: userTok, body: `{"title":"t"}`, wantStatus: 403},
		{name: "create", stub: &stubJobs{}, method: "POST", path: "/api/jobs", token: companyTok, body: `{"title":"t"}`, wantStatus: 201},
		{
			name:   "create scoring unavailable",
			stub:   &stubJobs{createErr: greenscore.ErrDependency},
			method: "POST", path: "/api/jobs", token: companyTok, body: `{"title":"t"}`,
			wantStatus: 500,
		},
		{
			name:   "update not owner",
			stub:   &stubJobs{updateErr: usecase.ErrForbidden},
			method: "PUT", path: "/api/jobs/" + uuid.NewString(), token: companyTok, body: `{"status":"filled"}`,
			wantStatus: 403,
		},
		{name: "delete", stub: &stubJobs{}, method: "DELETE", path: "/api/jobs/" + uuid.NewString(), token: companyTok, wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newJobsApp(tt.stub, svc)
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestJobsCreate_UsesTokenCompany(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	companyID := uuid.New()
	tok, _ := svc.GenerateAccessToken(companyID, "company", "c@x.io")
	stub := &stubJobs{}

	req := httptest.NewRequest("POST", "/api/jobs", strings.NewReader(`{"title":"t","description":"d","location":"l"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	if _, err := newJobsApp(stub, svc).Test(req); err != nil {
		t.Fatalf("request: %v", err)
	}
	if stub.companyID != companyID {
		t.Fatalf("company id = %s, want %s", stub.companyID, companyID)
	}
}
