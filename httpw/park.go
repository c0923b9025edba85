package httpw

import "sync"

// parker blocks the calling goroutine until an asynchronous
// capability wakes it. wait rearms the flag, so one parker serves any
// number of consecutive suspensions of the same operation.
type parker struct {
	mu    sync.Mutex
	cond  *sync.Cond
	ready bool
}

func newParker() *parker {
	p := &parker{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// wake may be called from any goroutine, before or after wait.
func (p *parker) wake() {
	p.mu.Lock()
	p.ready = true
	p.mu.Unlock()
	p.cond.Signal()
}

func (p *parker) wait() {
	p.mu.Lock()
	for !p.ready {
		p.cond.Wait()
	}
	p.ready = false
	p.mu.Unlock()
}
