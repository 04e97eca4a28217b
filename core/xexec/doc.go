// Package xexec provides cross-execution coordination primitives built on
// top of core/engine's Promise: a fair semaphore (Throttle), a single-fire
// multi-waiter cache (CachingPromise), and fan-out/fan-in helpers
// (ParallelAll). All three compose with engine.Promise without requiring
// their callers to reason about which goroutine or Execution is asking.
package xexec
