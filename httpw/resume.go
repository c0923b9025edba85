package httpw

import "sync/atomic"

// Resume is the wake handle a suspended BodyWriter fires when its
// data becomes available. It is safe to fire from any goroutine.
//
// A handle fires at most once; a second Fire is a contract violation
// and panics. The engine arms a fresh handle for every poll, so at
// most one live handle exists per write operation at any time.
type Resume struct {
	fired atomic.Bool
	fn    func()
}

func newResume(fn func()) *Resume {
	return &Resume{fn: fn}
}

// Fire schedules re-entry into the write engine at the point of
// suspension.
func (r *Resume) Fire() {
	if !r.fired.CompareAndSwap(false, true) {
		panic("httpw: resume handle fired twice")
	}
	r.fn()
}
