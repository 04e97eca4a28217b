package xexec

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/execkit/core/engine"
)

var _ engine.Throttler = (*Throttle)(nil)

// Throttle is a fair, FIFO semaphore for limiting how many Promises run
// concurrently. It implements engine.Throttler, so it plugs directly into
// Promise.Throttled.
type Throttle struct {
	sem     *semaphore.Weighted
	size    int64
	active  atomic.Int64
	waiting atomic.Int64
}

// Unlimited builds a Throttle that applies no gating at all: Acquire hands
// onReady the slot immediately, synchronously, with a release that only
// decrements the Active count. This
// is the default a caller should reach for when a resource has no real
// concurrency ceiling but still wants to route through Promise.Throttled
// (for uniform instrumentation, say) without actually serializing anything.
func Unlimited() *Throttle {
	return &Throttle{}
}

// OfSize builds a Throttle allowing up to size concurrent holders. A
// non-positive size means no gating at all, same as Unlimited -- it is
// never silently clamped up to a single slot.
func OfSize(size int) *Throttle {
	if size <= 0 {
		return Unlimited()
	}
	return &Throttle{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

// Size returns the throttle's configured concurrency limit, or 0 for an
// unlimited Throttle.
func (t *Throttle) Size() int { return int(t.size) }

// Active returns how many holders currently hold a slot.
func (t *Throttle) Active() int { return int(t.active.Load()) }

// Waiting returns how many Acquire calls are blocked waiting for a slot.
func (t *Throttle) Waiting() int { return int(t.waiting.Load()) }

// Acquire reserves a slot on its own goroutine, since acquiring a
// semaphore.Weighted blocks, and Throttled promises are often constructed
// from an event-loop worker that must never block. onReady fires once a
// slot is available, with a release func that must be called exactly once.
// An unlimited Throttle (sem == nil) has no slots to wait for, so onReady
// fires synchronously on the calling goroutine.
func (t *Throttle) Acquire(onReady func(release func())) {
	if t.sem == nil {
		t.active.Add(1)
		onReady(func() { t.active.Add(-1) })
		return
	}

	t.waiting.Add(1)
	go func() {
		err := t.sem.Acquire(context.Background(), 1)
		t.waiting.Add(-1)
		if err != nil {
			return
		}
		t.active.Add(1)
		var once sync.Once
		onReady(func() {
			once.Do(func() {
				t.active.Add(-1)
				t.sem.Release(1)
			})
		})
	}()
}
