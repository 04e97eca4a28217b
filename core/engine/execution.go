package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/execkit/core/registry"
)

// Execution is a logical thread of control: at most one of its segments runs
// at a time, always on its owning worker goroutine. Use Current to retrieve
// the Execution bound to the calling goroutine from inside a segment.
type Execution struct {
	id          string
	ctrl        *Controller
	worker      int
	stream      *stream
	reg         registry.Registry
	regIntercep []Interceptor // registry-scoped tier, snapshotted once at construction

	reservations int64 // atomic; outstanding subscriptions not yet Complete'd

	mu            sync.Mutex
	interceptors  []Interceptor
	onErrorFn     func(error)
	onCompleteFns []func()
	onCloseFns    []func()
	done          bool
}

// InterceptorSource is the well-known Registry entry type used to seed an
// Execution's registry-scoped interceptor tier: every value of this type
// found in the Execution's registry at construction time is flattened,
// child-before-parent, into one snapshot inserted between the Controller's
// global interceptors and the Execution's own ad-hoc ones. Snapshotting once
// up front (rather than re-querying the registry per segment) keeps a
// mid-Execution registry mutation from reordering an already-running
// pipeline.
type InterceptorSource []Interceptor

func (e *Execution) openReservation()  { atomic.AddInt64(&e.reservations, 1) }
func (e *Execution) closeReservation() { atomic.AddInt64(&e.reservations, -1) }
func (e *Execution) hasReservations() bool {
	return atomic.LoadInt64(&e.reservations) > 0
}

func newExecution(ctrl *Controller, worker int, reg registry.Registry, onError func(error)) *Execution {
	if reg == nil {
		reg = registry.Empty
	}
	var regIntercep []Interceptor
	for _, src := range registry.GetAll[InterceptorSource](reg) {
		regIntercep = append(regIntercep, src...)
	}
	return &Execution{
		id:          uuid.NewString(),
		ctrl:        ctrl,
		worker:      worker,
		stream:      newStream(),
		reg:         reg,
		regIntercep: regIntercep,
		onErrorFn:   onError,
	}
}

// ID returns the Execution's unique identifier.
func (e *Execution) ID() string { return e.id }

// Registry returns the Execution's registry, typically joined from the
// Controller's global registry and any per-Execution values supplied at
// Start time.
func (e *Execution) Registry() registry.Registry { return e.reg }

// AddInterceptor appends an interceptor to this Execution's pipeline. It
// only affects segments scheduled after the call.
func (e *Execution) AddInterceptor(ic Interceptor) {
	e.mu.Lock()
	e.interceptors = append(e.interceptors, ic)
	e.mu.Unlock()
}

// OnComplete registers fn to run once, after the Execution has no more
// segments to run. Hooks run in reverse registration order.
func (e *Execution) OnComplete(fn func()) {
	e.mu.Lock()
	if e.done {
		e.mu.Unlock()
		fn()
		return
	}
	e.onCompleteFns = append(e.onCompleteFns, fn)
	e.mu.Unlock()
}

// OnClose registers fn to run once, strictly after every OnComplete hook has
// run, whether or not those hooks panicked. Close hooks are each isolated
// from one another the same way completion hooks are: a panic in one is
// recovered and logged at warn level (not error), and later close hooks
// still run. Use OnClose for teardown that must happen regardless of how
// the completion hooks behaved, such as releasing a connection reserved
// before the completion hooks were registered.
func (e *Execution) OnClose(fn func()) {
	e.mu.Lock()
	if e.done {
		e.mu.Unlock()
		runProtectedAt(fn, e.id, slog.LevelWarn)
		return
	}
	e.onCloseFns = append(e.onCloseFns, fn)
	e.mu.Unlock()
}

// OnError installs the handler invoked when a user segment's error reaches
// the top of the Execution without being caught by a closer handler. Only
// one handler is active at a time; later calls replace earlier ones.
func (e *Execution) OnError(fn func(error)) {
	e.mu.Lock()
	e.onErrorFn = fn
	e.mu.Unlock()
}

func (e *Execution) isDone() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.done
}

// allInterceptors concatenates the three interceptor tiers, outermost
// first: global (Controller-wide, §WithInterceptor), registry-scoped (the
// InterceptorSource values snapshotted from the Registry at construction
// time), then ad-hoc (AddInterceptor, added by the Execution itself).
func (e *Execution) allInterceptors() []Interceptor {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Interceptor, 0, len(e.ctrl.interceptors)+len(e.regIntercep)+len(e.interceptors))
	out = append(out, e.ctrl.interceptors...)
	out = append(out, e.regIntercep...)
	out = append(out, e.interceptors...)
	return out
}

func (e *Execution) errorHandler() func(error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onErrorFn
}

// Drain schedules a pass of the event loop on the Execution's owning
// worker. It is safe to call from any goroutine, any number of times; extra
// calls simply find nothing left to do.
func (e *Execution) Drain() {
	e.ctrl.submit(e.worker, e.runLoop)
}

func (e *Execution) runLoop() {
	if e.isDone() {
		return
	}
	bind(e)
	defer unbind()
	for {
		item, ok := e.stream.next()
		if ok {
			e.runSegment(item)
			continue
		}
		if e.hasReservations() {
			return // idle: a pending async completion will Drain us again
		}
		e.finish()
		return
	}
}

func (e *Execution) runSegment(item segmentItem) {
	run := func() {
		err := safeCall(item.fn)
		if err == nil {
			return
		}
		if item.kind == segmentUser {
			e.handleError(err)
			return
		}
		slog.Default().Error("engine: infrastructure segment failed", "error", err, "execution_id", e.id)
	}
	if item.kind == segmentUser {
		runIntercepted(e, ExecTypeCompute, e.allInterceptors(), run)
		return
	}
	run()
}

func safeCall(fn segmentFn) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: segment panicked: %v", r)
		}
	}()
	return fn()
}

func (e *Execution) handleError(err error) {
	handler := e.errorHandler()
	if handler == nil {
		slog.Default().Error("engine: unhandled execution error", "error", err, "execution_id", e.id)
		return
	}
	e.stream.replaceHead(segmentItem{kind: segmentInfra, fn: func() error {
		defer func() {
			if r := recover(); r != nil {
				slog.Default().Error("engine: onError handler panicked", "panic", r, "execution_id", e.id, "original_error", err)
			}
		}()
		handler(err)
		return nil
	}})
}

// finish marks the Execution done and runs its completion hooks, then its
// close hooks. Runs on the owning worker, at the moment the stream has
// nothing left to schedule and no subscription reservation is outstanding.
func (e *Execution) finish() {
	e.mu.Lock()
	e.done = true
	hooks := e.onCompleteFns
	closeHooks := e.onCloseFns
	e.onCompleteFns = nil
	e.onCloseFns = nil
	e.mu.Unlock()
	for i := len(hooks) - 1; i >= 0; i-- {
		runProtectedAt(hooks[i], e.id, slog.LevelError)
	}
	for i := len(closeHooks) - 1; i >= 0; i-- {
		runProtectedAt(closeHooks[i], e.id, slog.LevelWarn)
	}
}

// runProtectedAt runs fn with its own recover, so one hook panicking never
// stops a sibling hook from running. Completion hooks log at error level;
// close hooks log at warn, since by the time they run the Execution's
// primary work (and its error handler) has already had its say.
func runProtectedAt(fn func(), execID string, level slog.Level) {
	defer func() {
		if r := recover(); r != nil {
			slog.Default().Log(context.Background(), level, "engine: hook panicked", "panic", r, "execution_id", execID)
		}
	}()
	fn()
}
