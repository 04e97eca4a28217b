package xexec

import (
	"sync"

	"github.com/dmitrymomot/execkit/core/engine"
)

type cacheState uint8

const (
	cachePending cacheState = iota
	cacheComputing
	cacheDone
)

// CachingPromise computes a value at most once and fans the single result
// out to every caller, across any number of distinct Executions. The first
// Get call triggers computation; every Get registered while it is in
// flight, from any Execution, joins the same wait list and is resolved
// the moment it completes.
type CachingPromise[T any] struct {
	ctrl   *engine.Controller
	source func(*engine.Execution) engine.Promise[T]

	mu      sync.Mutex
	state   cacheState
	result  T
	err     error
	waiters []func(T, error)
}

// NewCachingPromise builds a CachingPromise around source, which is invoked
// exactly once, the first time any caller's Get triggers computation.
func NewCachingPromise[T any](ctrl *engine.Controller, source func(*engine.Execution) engine.Promise[T]) *CachingPromise[T] {
	return &CachingPromise[T]{ctrl: ctrl, source: source}
}

// Get returns a Promise resolving to the cached value, computing it first
// if this is the first caller. Must be called from inside a running
// Execution, same as any other Promise-producing call.
func (c *CachingPromise[T]) Get() engine.Promise[T] {
	return engine.FromAsync(func(d *engine.Downstream[T]) {
		c.mu.Lock()
		switch c.state {
		case cacheDone:
			v, err := c.result, c.err
			c.mu.Unlock()
			deliver(d, v, err)
			return
		case cacheComputing:
			c.waiters = append(c.waiters, func(v T, err error) { deliver(d, v, err) })
			c.mu.Unlock()
			return
		default: // cachePending
			c.state = cacheComputing
			c.waiters = append(c.waiters, func(v T, err error) { deliver(d, v, err) })
			c.mu.Unlock()
		}
		c.start()
	})
}

// Reset clears the cached result, so the next Get recomputes from scratch.
// Intended for tests and for sources whose upstream data can legitimately
// change between uses.
func (c *CachingPromise[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.state = cachePending
	c.result = zero
	c.err = nil
	c.waiters = nil
}

func deliver[T any](d *engine.Downstream[T], v T, err error) {
	if err != nil {
		d.Error(err)
		return
	}
	d.Success(v)
}

// start kicks off the single underlying computation on a fresh Execution of
// its own, so it survives independently of whichever caller happened to
// trigger it. Its result is captured via Wiretap and fanned out to every
// registered waiter; OnError recovers locally so the bootstrap Execution
// itself never reports an error to its own (absent) handler.
func (c *CachingPromise[T]) start() {
	c.ctrl.Start(func(exec *engine.Execution) {
		p := c.source(exec).Wiretap(func(v T, err error) { c.resolve(v, err) })
		_ = p.OnError(func(error) engine.Promise[T] {
			var zero T
			return engine.Of(zero)
		}).Then(func(T) {})
	}, nil)
}

func (c *CachingPromise[T]) resolve(v T, err error) {
	c.mu.Lock()
	c.result, c.err = v, err
	c.state = cacheDone
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()
	for _, w := range waiters {
		w(v, err)
	}
}
