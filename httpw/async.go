package httpw

// Executor schedules engine continuations for asynchronous writes.
// Exactly one continuation is runnable at a time for a given
// operation, so implementations need no per-operation ordering.
type Executor interface {
	// Post schedules fn as a fresh dispatch. It must not run fn on
	// the caller's stack; resumes go through Post so a body that
	// resumes inline cannot grow the stack without bound.
	Post(fn func())
	// Dispatch may run fn immediately as a continuation of the
	// current call stack.
	Dispatch(fn func())
}

// GoExecutor runs posted work on fresh goroutines and dispatches
// inline. It is the default executor.
type GoExecutor struct{}

func (GoExecutor) Post(fn func())     { go fn() }
func (GoExecutor) Dispatch(fn func()) { fn() }

// WriteAsync serializes m onto t without blocking the caller. cb
// receives the terminal result exactly once: the disposition on
// success, or the preparation/body/transport error verbatim. ex may
// be nil, selecting GoExecutor.
//
// The operation advances one transport write at a time; the body
// writer is never polled while a write is in flight.
func WriteAsync(m *Message, t AsyncTransport, ex Executor, cb func(Disposition, error)) {
	if ex == nil {
		ex = GoExecutor{}
	}
	a := &asyncWrite{op: newOperation(m), t: t, ex: ex, cb: cb}
	ex.Dispatch(a.drive)
}

type asyncWrite struct {
	op *operation
	t  AsyncTransport
	ex Executor
	cb func(Disposition, error)
}

// drive runs the engine until it must wait: for a transport
// completion, which continues via Dispatch, or for a body resume,
// which continues via Post.
func (a *asyncWrite) drive() {
	for {
		s := a.op.advance(a.resume)
		switch s.kind {
		case stepWrite:
			a.t.WriteBuffers(s.bufs, func(_ int64, err error) {
				if err != nil {
					a.cb(ConnClose, err)
					return
				}
				a.ex.Dispatch(a.drive)
			})
			return
		case stepSuspend:
			return
		default: // stepFinish
			a.cb(s.disp, s.err)
			return
		}
	}
}

func (a *asyncWrite) resume() {
	a.ex.Post(a.drive)
}
