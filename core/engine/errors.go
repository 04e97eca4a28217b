package engine

import "errors"

// Programming-error conditions. These surface as Go errors (or panics, for
// the double-fire case, which can only be triggered by a broken Downstream
// implementation rather than ordinary control flow).
var (
	// ErrUnmanagedThread is returned by Current when called from a
	// goroutine with no bound Execution.
	ErrUnmanagedThread = errors.New("engine: current execution requested from an unmanaged goroutine")

	// ErrExecutionCompleted is returned when something attempts to
	// subscribe to the stream of an Execution that already reached done=true.
	ErrExecutionCompleted = errors.New("engine: execution already completed")

	// ErrDoubleFire indicates a Downstream was delivered to more than once.
	ErrDoubleFire = errors.New("engine: downstream invoked more than once")

	// ErrNoWorkers names the empty-worker-pool condition. NewController does
	// not return it: a worker count below one falls back to a single worker.
	ErrNoWorkers = errors.New("engine: controller requires at least one worker")
)
