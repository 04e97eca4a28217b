package engine

import "sync/atomic"

// outcome is the one delivery a Downstream ever carries: a value, an error,
// or a value-less completion. Exactly one of err != nil or completed is
// true, or neither (a plain success).
type outcome[T any] struct {
	val       T
	err       error
	completed bool
}

// Downstream is the sink a Promise's producer delivers its one result to.
// Exactly one of Success, Error, or Complete must be called, exactly once;
// a second call panics with ErrDoubleFire.
type Downstream[T any] struct {
	fired   atomic.Bool
	deliver func(outcome[T])
}

func newDownstream[T any](deliver func(outcome[T])) *Downstream[T] {
	return &Downstream[T]{deliver: deliver}
}

// Success delivers v as the Promise's result.
func (d *Downstream[T]) Success(v T) { d.fire(outcome[T]{val: v}) }

// Error delivers err as the Promise's result.
func (d *Downstream[T]) Error(err error) { d.fire(outcome[T]{err: err}) }

// Complete delivers a value-less completion: neither a success value nor an
// error, used by producers that signal "done, nothing to report" (draining
// a stream, acknowledging a side effect). Map and FlatMap let a complete
// outcome pass through to their downstream unchanged, without invoking
// their transform function; Then resolves its reservation without invoking
// its consumer.
func (d *Downstream[T]) Complete() { d.fire(outcome[T]{completed: true}) }

func (d *Downstream[T]) fire(o outcome[T]) {
	if !d.fired.CompareAndSwap(false, true) {
		panic(ErrDoubleFire)
	}
	d.deliver(o)
}

// Upstream produces a Promise's single result by delivering to down exactly
// once, synchronously or from any other goroutine.
type Upstream[T any] func(down *Downstream[T])

// Promise is a lazy, one-shot asynchronous value. Nothing runs until a
// terminal operation (Then) subscribes to it from inside a running
// Execution; every subsequent operator call builds a new, still-inert
// Promise wrapping the previous one.
type Promise[T any] struct {
	up Upstream[T]
}

func newPromise[T any](up Upstream[T]) Promise[T] {
	return Promise[T]{up: up}
}

// Of returns a Promise that resolves immediately to v.
func Of[T any](v T) Promise[T] {
	return newPromise(func(d *Downstream[T]) { d.Success(v) })
}

// OfError returns a Promise that resolves immediately to err.
func OfError[T any](err error) Promise[T] {
	return newPromise(func(d *Downstream[T]) { d.Error(err) })
}

// FromCallable returns a Promise that resolves by invoking fn synchronously
// at subscription time.
func FromCallable[T any](fn func() (T, error)) Promise[T] {
	return newPromise(func(d *Downstream[T]) {
		v, err := fn()
		if err != nil {
			d.Error(err)
			return
		}
		d.Success(v)
	})
}

// FromAsync returns a Promise backed by an arbitrary producer, which may
// deliver to its Downstream from any goroutine at any later time.
func FromAsync[T any](up Upstream[T]) Promise[T] {
	return newPromise(up)
}

// Blocking returns a Promise whose fn runs on its own goroutine, off ctrl's
// event-loop workers entirely, suitable for slow synchronous I/O. If called
// from inside a running Execution, fn is still wrapped by that Execution's
// interceptors (as ExecTypeBlocking), so tracing and logging interceptors
// see it like any other segment.
func Blocking[T any](ctrl *Controller, fn func() (T, error)) Promise[T] {
	return newPromise(func(d *Downstream[T]) {
		exec, _ := Current()
		ctrl.runBlocking(func() {
			body := func() {
				v, err := fn()
				if err != nil {
					d.Error(err)
					return
				}
				d.Success(v)
			}
			if exec != nil {
				runIntercepted(exec, ExecTypeBlocking, exec.allInterceptors(), body)
				return
			}
			body()
		})
	})
}

// Map transforms a successful result. Errors and a value-less completion
// pass through unchanged, without invoking fn. Map is a package-level
// function, not a method, because Go methods cannot introduce a new type
// parameter (U) beyond the receiver's own.
func Map[T, U any](p Promise[T], fn func(T) U) Promise[U] {
	return newPromise(func(d *Downstream[U]) {
		p.up(newDownstream(func(o outcome[T]) {
			switch {
			case o.err != nil:
				d.Error(o.err)
			case o.completed:
				d.Complete()
			default:
				d.Success(fn(o.val))
			}
		}))
	})
}

// FlatMap chains a successful result into another Promise. Errors and a
// value-less completion pass through unchanged, without invoking fn. Like
// Map, this must be a package-level function.
func FlatMap[T, U any](p Promise[T], fn func(T) Promise[U]) Promise[U] {
	return newPromise(func(d *Downstream[U]) {
		p.up(newDownstream(func(o outcome[T]) {
			switch {
			case o.err != nil:
				d.Error(o.err)
			case o.completed:
				d.Complete()
			default:
				fn(o.val).up(d)
			}
		}))
	})
}

// MapError transforms an error result, leaving a success or completion
// result untouched.
func (p Promise[T]) MapError(fn func(error) error) Promise[T] {
	return newPromise(func(d *Downstream[T]) {
		p.up(newDownstream(func(o outcome[T]) {
			switch {
			case o.err != nil:
				d.Error(fn(o.err))
			case o.completed:
				d.Complete()
			default:
				d.Success(o.val)
			}
		}))
	})
}

// OnError recovers from an error result by substituting a replacement
// Promise, which may itself resolve to another error. A success or
// completion result passes through untouched.
func (p Promise[T]) OnError(handler func(error) Promise[T]) Promise[T] {
	return newPromise(func(d *Downstream[T]) {
		p.up(newDownstream(func(o outcome[T]) {
			switch {
			case o.err != nil:
				handler(o.err).up(d)
			case o.completed:
				d.Complete()
			default:
				d.Success(o.val)
			}
		}))
	})
}

// Wiretap observes the eventual result without altering it. fn runs before
// the result reaches the next stage. On a value-less completion, fn runs
// with the zero value and a nil error, since there is no value to report.
func (p Promise[T]) Wiretap(fn func(T, error)) Promise[T] {
	return newPromise(func(d *Downstream[T]) {
		p.up(newDownstream(func(o outcome[T]) {
			fn(o.val, o.err)
			switch {
			case o.err != nil:
				d.Error(o.err)
			case o.completed:
				d.Complete()
			default:
				d.Success(o.val)
			}
		}))
	})
}

// Wrap rebuilds the Promise by passing it through fn, useful for applying a
// reusable transformation (retry, timeout, instrumentation) written against
// the Promise type itself rather than a single operator.
func (p Promise[T]) Wrap(fn func(Promise[T]) Promise[T]) Promise[T] {
	return fn(p)
}

// Throttler fairly rate-limits concurrent access to some resource. Acquire
// must eventually call onReady exactly once, handing it a release func to
// call when the caller is done. Acquire may call onReady synchronously or
// from another goroutine once a slot frees up; it must never block the
// calling goroutine itself, since Throttled promises are typically acquired
// from an event-loop worker. core/xexec.Throttle implements this interface;
// it lives in a separate package purely to keep golang.org/x/sync out of
// this package's dependency footprint.
type Throttler interface {
	Acquire(onReady func(release func()))
}

// Throttled defers running p's upstream until t grants a slot, releasing it
// as soon as p resolves.
func (p Promise[T]) Throttled(t Throttler) Promise[T] {
	return newPromise(func(d *Downstream[T]) {
		t.Acquire(func(release func()) {
			p.up(newDownstream(func(o outcome[T]) {
				release()
				switch {
				case o.err != nil:
					d.Error(o.err)
				case o.completed:
					d.Complete()
				default:
					d.Success(o.val)
				}
			}))
		})
	})
}

// Then subscribes consumer to p's eventual success, running it as a segment
// on the calling goroutine's bound Execution. An error result (one not
// already recovered by OnError) is routed to the Execution's error handler
// instead of calling consumer. A value-less completion resolves the
// reservation without calling consumer at all, the same way Map/FlatMap let
// it pass through unchanged rather than treating it as a value. Then must
// be called from inside a running Execution; it returns ErrUnmanagedThread
// otherwise.
func (p Promise[T]) Then(consumer func(T)) error {
	exec, err := Current()
	if err != nil {
		return err
	}
	return exec.subscribe(func(handle *StreamHandle) {
		p.up(newDownstream(func(o outcome[T]) {
			handle.Complete(func() error {
				if o.err != nil {
					return o.err
				}
				if o.completed {
					return nil
				}
				consumer(o.val)
				return nil
			})
		}))
	})
}
