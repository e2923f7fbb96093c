package routes

import (
	"greenleaf/internal/delivery/http/handler"
	"greenleaf/internal/delivery/http/middleware"
	"greenleaf/internal/domain/account"
	"greenleaf/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health     *handler.HealthHandler
	GreenScore *handler.GreenScoreHandler
	Jobs       *handler.JobsHandler
	Companies  *handler.CompanyHandler
	Users      *handler.UserHandler
	Auth       *handler.AuthHandler
	WS         *ws.Handler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.handlers.Health.RegisterRoutes(app)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.handlers.WS != nil {
		app.Get("/ws/jobs", r.handlers.WS.Subscribe)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	requireAuth := r.auth.RequireAuth()

	r.handlers.GreenScore.RegisterRoutes(api.Group("/green-scores"))
	r.handlers.Jobs.RegisterRoutes(api.Group("/jobs"), requireAuth, r.auth.RequireKind(account.KindCompany))
	r.handlers.Companies.RegisterRoutes(api.Group("/companies"), requireAuth, r.auth.RequireKind(account.KindCompany))
	r.handlers.Users.RegisterRoutes(api.Group("/users"), requireAuth, r.auth.RequireKind(account.KindUser))
	r.handlers.Auth.RegisterRoutes(api.Group("/auth"), requireAuth)
}
