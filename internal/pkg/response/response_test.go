package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c fiber.Ctx) error { return OK(c, map[string]int{"n": 1}) })
	app.Get("/bad-status", func(c fiber.Ctx) error { return Error(c, 42, "", nil) })
	app.Get("/not-found", func(c fiber.Ctx) error { return Error(c, fiber.StatusNotFound, "", nil) })

	tests := []struct {
		path       string
		wantStatus int
		wantMsg    string
	}{
		{path: "/ok", wantStatus: 200, wantMsg: MessageOK},
		{path: "/bad-status", wantStatus: 500, wantMsg: MessageInternalServerError},
		{path: "/not-found", wantStatus: 404, wantMsg: MessageNotFound},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", tt.path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		var env SemanticResponse
		if err := json.Unmarshal(body, &env); err != nil {
			t.Fatalf("%s: decode %q: %v", tt.path, body, err)
		}
		if resp.StatusCode != tt.wantStatus || env.Status != tt.wantStatus || env.Message != tt.wantMsg {
			t.Fatalf("%s: got %d %+v", tt.path, resp.StatusCode, env)
		}
	}
}
