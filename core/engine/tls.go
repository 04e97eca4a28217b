package engine

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// bindings emulates the thread-local "current execution" slot the original
// design relies on. Go has no goroutine-local storage, so the binding is
// keyed by goroutine id, parsed once per bind/unbind from the runtime stack
// header. This is confined entirely to this file: nothing outside engine
// ever sees a goroutine id.
var bindings sync.Map // map[uint64]*Execution

func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	// Header looks like "goroutine 123 [running]:".
	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return 0
	}
	buf = buf[len(prefix):]
	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// bind associates e with the calling goroutine. Must be unwound with unbind
// before the goroutine is reused for other work.
func bind(e *Execution) { bindings.Store(goroutineID(), e) }

// unbind clears the calling goroutine's binding.
func unbind() { bindings.Delete(goroutineID()) }

// boundExecution returns the Execution bound to the calling goroutine, if any.
func boundExecution() (*Execution, bool) {
	v, ok := bindings.Load(goroutineID())
	if !ok {
		return nil, false
	}
	return v.(*Execution), true
}

// Current returns the Execution bound to the calling goroutine. It fails
// with ErrUnmanagedThread when called from a goroutine that isn't currently
// running a segment.
func Current() (*Execution, error) {
	e, ok := boundExecution()
	if !ok {
		return nil, ErrUnmanagedThread
	}
	return e, nil
}
