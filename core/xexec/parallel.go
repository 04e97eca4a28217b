package xexec

import (
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/execkit/core/engine"
)

// ParallelAll fans out one Execution per named maker, runs them concurrently
// on ctrl's worker pool, and resolves once every one of them has completed,
// delivering a combined result keyed by the caller-provided name. If any
// branch fails, the returned Promise resolves to one of the branch errors
// (which one is not defined when several fail); otherwise it resolves to a map of every branch's result keyed the same
// way makers was. Running each branch in its own Execution (rather than all
// on the caller's) is what makes this safe to call from inside a Throttled
// promise without deadlocking the caller's worker.
func ParallelAll[T any](ctrl *engine.Controller, makers map[string]func(*engine.Execution) engine.Promise[T]) engine.Promise[map[string]T] {
	return engine.FromAsync(func(d *engine.Downstream[map[string]T]) {
		n := len(makers)
		if n == 0 {
			d.Success(map[string]T{})
			return
		}

		var mu sync.Mutex
		results := make(map[string]T, n)
		errs := make(map[string]error, n)
		var remaining atomic.Int64
		remaining.Store(int64(n))

		finish := func() {
			if remaining.Add(-1) != 0 {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, err := range errs {
				if err != nil {
					d.Error(err)
					return
				}
			}
			d.Success(results)
		}

		for name, mk := range makers {
			name, mk := name, mk
			ctrl.Start(func(exec *engine.Execution) {
				exec.OnComplete(finish)
				p := mk(exec).Wiretap(func(v T, err error) {
					mu.Lock()
					results[name] = v
					errs[name] = err
					mu.Unlock()
				})
				if err := p.Then(func(T) {}); err != nil {
					mu.Lock()
					errs[name] = err
					mu.Unlock()
				}
			}, nil)
		}
	})
}
