package errcore

import "github.com/google/uuid"

// Handler is one entry in the process-wide, singly-linked LIFO stack of
// installed handlers. Haltable handlers catch every error including halt;
// unhaltable handlers re-raise halt to the next outer handler instead of
// handling it themselves.
type Handler struct {
	Snapshot *Snapshot
	Prev     *Handler
	Haltable bool

	// id is advisory only, for log correlation; it plays no part in
	// Fail's target selection or Error.Equal.
	id string
}

func (h *Handler) ID() string { return h.id }

// pushHandler installs a new handler of the given flavor as the new head
// of rt.handlers and snapshots the current runtime state into it.
func (rt *Runtime) pushHandler(haltable bool) *Handler {
	h := &Handler{Prev: rt.handlers, Haltable: haltable, id: uuid.NewString()}
	h.Snapshot = Snap(rt)
	rt.handlers = h
	rt.Metrics.HandlersActive.Inc()
	rt.Log.WithFields(map[string]any{
		"handler_id": h.id,
		"haltable":   haltable,
		"depth":      rt.handlerDepth(),
	}).Debug("handler installed")
	return h
}

// popHandler removes the top handler without unwinding: the plain pop
// operation, used when body completes normally.
func (rt *Runtime) popHandler(h *Handler) {
	if rt.handlers != h {
		panic("errcore: handler popped out of LIFO order")
	}
	rt.handlers = h.Prev
	rt.Metrics.HandlersActive.Dec()
	rt.Log.WithField("handler_id", h.id).Debug("handler popped")
}

func (rt *Runtime) handlerDepth() int {
	n := 0
	for h := rt.handlers; h != nil; h = h.Prev {
		n++
	}
	return n
}

// unwindSignal is the Go panic payload Fail uses to transfer control to a
// target handler — a longjump-style resume built on panic/recover since Go
// has no setjmp/longjmp. Every WithTrap/WithTrapUnhaltable recover site
// checks sig.target against its own handler and re-panics unless it
// matches, so the panic transits intermediate handler frames exactly like
// a longjmp transits intervening stack frames: mechanically, performing no
// handler-specific work.
type unwindSignal struct {
	target *Handler
	err    *Error
}

// WithTrap installs a haltable handler, runs body, and — if body fails —
// invokes onError with the resulting Error after the unwinder has already
// restored runtime state to this call's snapshot.
func (rt *Runtime) WithTrap(body func(), onError func(e *Error)) {
	h := rt.pushHandler(true)
	defer func() {
		r := recover()
		if r == nil {
			rt.popHandler(h)
			return
		}
		sig, ok := r.(*unwindSignal)
		if !ok || sig.target != h {
			panic(r)
		}
		rt.popHandler(h)
		onError(sig.err)
	}()
	body()
}

// WithTrapUnhaltable installs an unhaltable handler. A halt error reaching
// this handler is not handled locally: onHalt (if non-nil) runs for local
// cleanup, then the same error is re-failed so it propagates to the next
// outer handler — the only case where a handler body willingly calls Fail
// on an error it already owns.
func (rt *Runtime) WithTrapUnhaltable(body func(), onError func(e *Error), onHalt func(e *Error)) {
	h := rt.pushHandler(false)
	defer func() {
		r := recover()
		if r == nil {
			rt.popHandler(h)
			return
		}
		sig, ok := r.(*unwindSignal)
		if !ok || sig.target != h {
			panic(r)
		}
		rt.popHandler(h)
		if IsHalt(sig.err) {
			if onHalt != nil {
				onHalt(sig.err)
			}
			rt.Fail(ErrReason{Err: sig.err})
			return
		}
		onError(sig.err)
	}()
	body()
}
