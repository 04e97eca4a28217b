package collab

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/execkit/core/config"
	"github.com/dmitrymomot/execkit/core/engine"
	"github.com/dmitrymomot/execkit/core/healthcheck"
	"github.com/dmitrymomot/execkit/core/logger"
	"github.com/dmitrymomot/execkit/core/router"
	"github.com/dmitrymomot/execkit/core/server"
	"github.com/dmitrymomot/execkit/httpcollab"
	"github.com/dmitrymomot/execkit/middleware"
)

// App hosts a WebSocket collaborator, built around ctrl's engine.Controller,
// alongside liveness and readiness probes, on a single core/server.Server.
// It is the "external collaborator" role spec.md §1 describes, made
// concrete: every inbound connection becomes its own Execution, and the
// process as a whole is reachable like any other HTTP service.
type App struct {
	config Config
	ctrl   *engine.Controller
	logger *slog.Logger
	router router.Router[*Context]
	server *server.Server

	ws        *httpcollab.WebSocketHandler
	readiness []func(context.Context) error
}

// Option configures App construction.
type Option func(*App) error

// WithLogger overrides the App's logger, used for both routing and the
// WebSocket handler it hosts.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) error {
		if log == nil {
			return errors.New("collab: logger cannot be nil")
		}
		a.logger = log
		return nil
	}
}

// WithRouter overrides the App's router entirely, bypassing the default
// route wiring below. Useful for tests that want to inspect or extend the
// registered routes.
func WithRouter(r router.Router[*Context]) Option {
	return func(a *App) error {
		if r == nil {
			return errors.New("collab: router cannot be nil")
		}
		a.router = r
		return nil
	}
}

// WithServer overrides the App's core/server.Server, bypassing config-driven
// construction.
func WithServer(s *server.Server) Option {
	return func(a *App) error {
		if s == nil {
			return errors.New("collab: server cannot be nil")
		}
		a.server = s
		return nil
	}
}

// WithReadinessChecks registers dependency checks (database pings, queue
// connectivity, anything adaptable to func(context.Context) error) that the
// /health/ready route must pass before reporting ready. See the
// healthchecks package for adapters over common drivers.
func WithReadinessChecks(fn ...func(context.Context) error) Option {
	return func(a *App) error {
		a.readiness = append(a.readiness, fn...)
		return nil
	}
}

// New builds an App whose WebSocket route dispatches inbound frames to
// onMsg, one Execution per connection, on ctrl's worker pool.
func New(ctrl *engine.Controller, onMsg httpcollab.MessageFunc, opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	a := &App{
		config: cfg,
		ctrl:   ctrl,
		logger: logger.New(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	a.ws = httpcollab.NewWebSocketHandler(a.ctrl, a.logger, onMsg)

	if a.router == nil {
		r := router.New(
			router.WithContextFactory(newContext),
			router.WithLogger[*Context](a.logger),
		)
		r.Use(middleware.Logging[*Context]())
		r.Get("/ws", httpcollab.Handler[*Context](a.ws))
		r.Get("/health/live", healthcheck.Handler[*Context](a.logger))
		r.Get("/health/ready", healthcheck.Handler[*Context](a.logger, a.readiness...))
		a.router = r
	}

	if a.server == nil {
		s, err := server.NewFromConfig(a.config.Server, server.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.server = s
	}

	return a, nil
}

// Run starts the App's server and blocks until ctx is canceled or the
// server fails to start. Mirrors core/server.Server.Start's contract.
func (a *App) Run(ctx context.Context) error {
	return a.server.Start(ctx, a.router)
}

// Stop gracefully shuts down the App's server.
func (a *App) Stop() error {
	return a.server.Stop()
}

// Router returns the App's router, mainly so tests can drive requests
// through it directly with httptest.
func (a *App) Router() router.Router[*Context] { return a.router }
