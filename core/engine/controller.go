package engine

import (
	"sync"

	"github.com/dmitrymomot/execkit/core/registry"
)

// Controller owns a fixed pool of single-threaded event-loop workers and
// schedules Executions onto them. One goroutine per worker enforces that an
// Execution's segments never run concurrently with each other.
type Controller struct {
	workers      []chan func()
	next         uint64
	nextMu       sync.Mutex
	baseReg      registry.Registry
	interceptors []Interceptor
	wg           sync.WaitGroup
	closeOnce    sync.Once
	closed       chan struct{}
}

// StartOption configures Controller construction.
type StartOption func(*Controller)

// WithWorkers sets the worker pool size. Defaults to 1.
func WithWorkers(n int) StartOption {
	return func(c *Controller) {
		if n > 0 {
			c.workers = make([]chan func(), n)
		}
	}
}

// WithRegistry sets the Controller-wide base registry every Execution's
// registry is joined against.
func WithRegistry(reg registry.Registry) StartOption {
	return func(c *Controller) { c.baseReg = reg }
}

// WithInterceptor registers a global interceptor applied to every
// Execution's segments, ahead of any per-Execution interceptor.
func WithInterceptor(ic Interceptor) StartOption {
	return func(c *Controller) { c.interceptors = append(c.interceptors, ic) }
}

// NewController builds a Controller and starts its worker goroutines.
func NewController(opts ...StartOption) (*Controller, error) {
	c := &Controller{
		baseReg: registry.Empty,
		closed:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.workers) == 0 {
		c.workers = make([]chan func(), 1)
	}
	for i := range c.workers {
		c.workers[i] = make(chan func(), 256)
		c.wg.Add(1)
		go c.runWorker(i)
	}
	return c, nil
}

func (c *Controller) runWorker(i int) {
	defer c.wg.Done()
	for {
		select {
		case fn, ok := <-c.workers[i]:
			if !ok {
				return
			}
			fn()
		case <-c.closed:
			return
		}
	}
}

func (c *Controller) submit(worker int, fn func()) {
	select {
	case c.workers[worker] <- fn:
	case <-c.closed:
	}
}

func (c *Controller) pickWorker() int {
	c.nextMu.Lock()
	defer c.nextMu.Unlock()
	w := int(c.next % uint64(len(c.workers)))
	c.next++
	return w
}

// Close stops accepting new work and waits for worker goroutines to exit.
// Work still queued on a worker's channel when Close is called may be
// dropped rather than run. In-flight Executions are not forcibly cancelled.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
	c.wg.Wait()
}

// Start begins a new Execution, running action as its first segment on a
// worker selected round-robin from the pool. registryValues, if non-empty,
// are joined as a child overlay on top of the Controller's base registry.
// onError, if non-nil, becomes the Execution's initial error handler.
func (c *Controller) Start(action func(*Execution), onError func(error), registryValues ...any) *Execution {
	worker := c.pickWorker()
	reg := c.baseReg
	if len(registryValues) > 0 {
		reg = reg.Join(registry.New(registryValues...))
	}
	exec := newExecution(c, worker, reg, onError)
	exec.stream.enqueueHead(segmentItem{kind: segmentUser, fn: func() error {
		action(exec)
		return nil
	}})
	exec.Drain()
	return exec
}

// runBlocking dispatches fn to its own goroutine, off the event-loop
// worker pool entirely. Used by Blocking promises so slow I/O never stalls
// a worker that other Executions are sharing.
func (c *Controller) runBlocking(fn func()) {
	go fn()
}
