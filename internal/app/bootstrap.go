package app

import (
	"fmt"
	"strings"

	"local-link/internal/config"
	"local-link/internal/delivery/http/middleware"
	"local-link/internal/delivery/http/routes"
	v1 "local-link/internal/delivery/http/routes/v1"
	"local-link/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(cfg, c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())

	logMw := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(logMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	registry := routes.NewRegistry(ws.NewHandler(c.Hub, c.Logger))
	registry.Register(app, v1.Dependencies{
		JWT:     c.JWT,
		Auth:    c.Auth,
		Search:  c.Search,
		Listing: c.Listing,
		Booking: c.Booking,
		Profile: c.Profile,
	})
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
