package engine

import "sync"

// event is a FIFO queue of segments. Nested events form a LIFO stack on the
// stream; the head (top) event is the currently-executing scope.
type event struct {
	segs    []segmentItem
	onStack bool
}

func (e *event) push(item segmentItem) {
	e.segs = append(e.segs, item)
}

func (e *event) pop() (segmentItem, bool) {
	if len(e.segs) == 0 {
		return segmentItem{}, false
	}
	item := e.segs[0]
	e.segs = e.segs[1:]
	return item, true
}

func (e *event) empty() bool { return len(e.segs) == 0 }

// stream is the per-Execution "queue of queues": a stack of events, each a
// FIFO queue of segments. Only the stack/event bookkeeping is guarded by a
// mutex, since completions can arrive on a foreign goroutine and must be
// able to re-attach an event to the stack (see StreamHandle.Event).
type stream struct {
	mu    sync.Mutex
	stack []*event
}

func newStream() *stream {
	s := &stream{}
	root := &event{onStack: true}
	s.stack = append(s.stack, root)
	return s
}

// rootEvent returns the bottom-most event, the one the Execution's initial
// action is enqueued into.
func (s *stream) rootEvent() *event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack[0]
}

// enqueueHead appends item to the current head event's queue.
func (s *stream) enqueueHead(item segmentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		return
	}
	s.stack[len(s.stack)-1].push(item)
}

// next polls for the next runnable segment. If the head event is empty it is
// popped and the search continues with the new head; this repeats until a
// segment is found or the whole stack is drained, in which case ok is
// false. An empty stack does not by itself mean the Execution is finished:
// a reservation may still be pending and will reattach its event later.
func (s *stream) next() (segmentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.stack) > 0 {
		head := s.stack[len(s.stack)-1]
		if item, ok := head.pop(); ok {
			return item, true
		}
		head.onStack = false
		s.stack = s.stack[:len(s.stack)-1]
	}
	return segmentItem{}, false
}

// pushEvent pushes a brand-new nested event onto the stack and returns it.
// Called synchronously from within the segment that is subscribing.
func (s *stream) pushEvent() *event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := &event{onStack: true}
	s.stack = append(s.stack, ev)
	return ev
}

// reattach ensures ev is present on the stack, pushing it back on top if an
// earlier drain pass removed it for being momentarily empty. This is what
// lets an asynchronous completion "fill in" a reserved position: the
// StreamHandle captured at subscribe time keeps delivering into the same
// event object even after the stack forgot about it.
func (s *stream) reattach(ev *event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.onStack {
		return
	}
	ev.onStack = true
	s.stack = append(s.stack, ev)
}

// popSpecific removes ev from the top of the stack. It is only ever called
// from the segment that is itself running as the head of ev, so ev is
// guaranteed to be the current top.
func (s *stream) popSpecific(ev *event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 || s.stack[len(s.stack)-1] != ev {
		return
	}
	ev.onStack = false
	s.stack = s.stack[:len(s.stack)-1]
}

// replaceHead clears the current head event's pending segments and enqueues
// a single replacement. Used when a user segment throws: spec.md's drain
// algorithm discards the rest of that event and runs onError in its place.
func (s *stream) replaceHead(item segmentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		return
	}
	head := s.stack[len(s.stack)-1]
	head.segs = []segmentItem{item}
}

// StreamHandle is the reservation token returned by subscribing to the
// stream. Its methods may be called from any goroutine, synchronously or
// long after the subscribing segment returned.
type StreamHandle struct {
	exec *Execution
	ev   *event
}

// Event enqueues a user-code segment into the reserved position and wakes
// the owning worker so it gets a chance to run. A non-nil return from fn is
// routed through the Execution's error handling, same as any other segment.
func (h *StreamHandle) Event(fn func() error) {
	h.exec.stream.mu.Lock()
	h.ev.push(segmentItem{kind: segmentUser, fn: fn})
	h.exec.stream.mu.Unlock()
	h.exec.stream.reattach(h.ev)
	h.exec.Drain()
}

// Complete pops the reserved nested event back to its parent and, if fn is
// non-nil, runs fn immediately afterward as a user-code segment. It also
// releases the reservation opened by subscribe, allowing the Execution to
// finish once nothing else is pending.
func (h *StreamHandle) Complete(fn func() error) {
	ev := h.ev
	h.exec.stream.mu.Lock()
	ev.push(segmentItem{kind: segmentUser, fn: func() error {
		h.exec.stream.popSpecific(ev)
		h.exec.closeReservation()
		if fn != nil {
			return fn()
		}
		return nil
	}})
	h.exec.stream.mu.Unlock()
	h.exec.stream.reattach(ev)
	h.exec.Drain()
}

// subscribe appends consumer to the current event as a fresh segment. When
// that segment runs, it pushes a nested event and hands consumer a
// StreamHandle bound to it. The reservation keeps the Execution alive (not
// "finished") until the corresponding Complete is observed.
func (e *Execution) subscribe(consumer func(*StreamHandle)) error {
	if e.isDone() {
		return ErrExecutionCompleted
	}
	e.openReservation()
	e.stream.enqueueHead(segmentItem{kind: segmentUser, fn: func() error {
		ev := e.stream.pushEvent()
		consumer(&StreamHandle{exec: e, ev: ev})
		return nil
	}})
	return nil
}
