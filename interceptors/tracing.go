// Package interceptors provides core/engine.Interceptor implementations for
// cross-cutting concerns: tracing today, following the same "wrap every
// user segment" model the teacher repo uses otelhttp for at the transport
// layer.
package interceptors

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/execkit/core/engine"
)

// Tracing opens one span per user-code segment and closes it once the
// segment returns, recording the segment's outcome. Install it as a global
// interceptor via engine.WithInterceptor so every Execution's segments are
// traced uniformly.
type Tracing struct {
	tracer trace.Tracer
}

var _ engine.Interceptor = (*Tracing)(nil)

// NewTracing builds a Tracing interceptor using the named tracer from the
// global OTel provider.
func NewTracing(tracerName string) *Tracing {
	return &Tracing{tracer: otel.Tracer(tracerName)}
}

// Intercept opens a span named after execType, tags it with the
// Execution's id, runs continuation inside it, and marks the span as
// failed if continuation panics, re-panicking afterward so core/engine's
// own segment-level recovery still converts the panic into a routed error.
func (t *Tracing) Intercept(exec *engine.Execution, execType engine.ExecType, continuation func()) {
	_, span := t.tracer.Start(context.Background(), "engine."+execType.String(),
		trace.WithAttributes(attribute.String("execution.id", exec.ID())))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, fmt.Sprintf("%v", r))
			panic(r)
		}
	}()

	continuation()
}
