package app

import (
	"context"
	"fmt"
	"strings"

	"greenleaf/internal/config"
	"greenleaf/internal/delivery/http/handler"
	"greenleaf/internal/delivery/http/middleware"
	"greenleaf/internal/delivery/http/routes"
	"greenleaf/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application around an existing container.
func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the app with a
// cleanup function that stops the hub and releases the container.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(cfg, c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	h := routes.Handlers{
		Health:     handler.NewHealthHandler(c.DB, c.Redis),
		GreenScore: handler.NewGreenScoreHandler(c.Evaluator),
		Jobs:       handler.NewJobsHandler(c.Jobs),
		Companies:  handler.NewCompanyHandler(c.Companies, c.Rescore),
		Users:      handler.NewUserHandler(c.Users),
		Auth:       handler.NewAuthHandler(c.Auth, c.JWT.AccessTTL()),
		WS:         ws.NewHandler(c.Hub, c.Logger),
	}
	routes.NewRegistry(h, middleware.NewAuthMiddleware(c.JWT)).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
