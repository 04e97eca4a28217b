// Package healthchecks adapts external dependency checks to both idioms
// this module speaks: a core/engine.Promise for use inside an Execution,
// and a plain func(context.Context) error for core/healthcheck.Handler's
// readiness probe signature.
package healthchecks

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/execkit/core/engine"
)

// PromisePing returns a Promise that resolves once pool.Ping succeeds, or
// resolves to its error otherwise. It runs on its own goroutine via
// engine.Blocking, since a database round trip must never stall an
// event-loop worker.
func PromisePing(ctrl *engine.Controller, pool *pgxpool.Pool) engine.Promise[struct{}] {
	return engine.Blocking(ctrl, func() (struct{}, error) {
		return struct{}{}, pool.Ping(context.Background())
	})
}

// Readiness adapts pool.Ping to core/healthcheck.Handler's dependency
// function signature.
func Readiness(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		return pool.Ping(ctx)
	}
}
