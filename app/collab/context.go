// Package collab hosts core/engine's WebSocket collaborator (httpcollab) and
// its liveness/readiness probes on one core/server.Server, routed through
// core/router -- the thing that turns the runtime's transport-agnostic
// Promise/Execution model into an actual process other services can dial.
package collab

import (
	"context"
	"net/http"
	"time"
)

// Context is the request context bound to every route registered on the
// collaborator's router. It delegates to the underlying *http.Request's
// context for cancellation, the same way the teacher's own default context
// implementation does.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
}

func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *Context) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *Context) Err() error                  { return c.r.Context().Err() }
func (c *Context) Value(key any) any           { return c.r.Context().Value(key) }

// SetValue stores a value in the request's context, replacing the request
// this Context wraps with one carrying the augmented context.
func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

// Request returns the underlying HTTP request.
func (c *Context) Request() *http.Request { return c.r }

// ResponseWriter returns the underlying HTTP response writer.
func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

// Param returns the named path parameter, or "" if it is not set.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{w: w, r: r, params: params}
}
