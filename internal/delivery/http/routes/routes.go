package routes

import (
	"local-link/internal/delivery/http/handler"
	v1 "local-link/internal/delivery/http/routes/v1"
	"local-link/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	events *ws.Handler
}

func NewRegistry(events *ws.Handler) *Registry {
	return &Registry{health: handler.NewHealthHandler(), events: events}
}

func (r *Registry) Register(app *fiber.App, deps v1.Dependencies) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerEvents(app)
	r.registerAPI(app, deps)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerEvents(app *fiber.App) {
	if r.events == nil {
		return
	}
	app.Get("/ws/events", r.events.HandleEvents)
}

func (r *Registry) registerAPI(app *fiber.App, deps v1.Dependencies) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), deps)
}
