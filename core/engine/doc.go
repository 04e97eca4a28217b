// Package engine implements the cooperative, per-request single-threaded
// execution runtime that the rest of this module's HTTP surface rides on
// top of.
//
// An Execution is a logical thread of control pinned to one event-loop
// worker. Work inside an Execution is broken into segments, grouped into
// FIFO events; events form a LIFO stack so that a segment which subscribes
// to the stream gets a nested event whose segments run to completion before
// the remainder of the parent event resumes. At most one segment of a given
// Execution ever runs at a time, and it always runs on the Execution's
// owning worker goroutine, regardless of which goroutine triggered the
// continuation.
//
// Promise[T] composes asynchronous values on top of the same stream: every
// terminal subscription (Then) reserves a stream position so that delivery
// -- synchronous or from a foreign goroutine -- is always replayed onto the
// owning worker.
//
//	ctrl, _ := engine.NewController()
//	ctrl.Start(func(exec *engine.Execution) {
//		tripled := engine.Map(engine.Of(2), func(n int) int { return n * 3 })
//		tripled.Then(func(n int) { fmt.Println(n) })
//	}, nil)
//
// Map and FlatMap are package-level functions rather than methods, since a
// Go method cannot introduce a type parameter beyond its receiver's own.
package engine
