package httpw

import (
	"net"
	"sync"
)

// PipeBody is a BodyWriter fed by another goroutine. The producer
// calls Push for each buffer and CloseSend when the body is complete;
// the engine polls the other end and suspends while the pipe is
// empty. This is the bridge for bodies whose data arrives from a
// source the write operation does not control.
type PipeBody struct {
	mu     sync.Mutex
	queue  net.Buffers
	closed bool
	err    error
	resume *Resume
}

// NewPipeBody returns an empty, open pipe body.
func NewPipeBody() *PipeBody {
	return &PipeBody{}
}

// Push appends p to the pipe. The producer must not modify p after
// Push; the buffer is handed to the transport without copying.
// Push panics if called after CloseSend.
func (p *PipeBody) Push(b []byte) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		panic("httpw: Push on closed PipeBody")
	}
	p.queue = append(p.queue, b)
	r := p.takeResume()
	p.mu.Unlock()
	if r != nil {
		r.Fire()
	}
}

// CloseSend marks the body complete. After any queued buffers drain,
// the engine sees end of body.
func (p *PipeBody) CloseSend() {
	p.mu.Lock()
	p.closed = true
	r := p.takeResume()
	p.mu.Unlock()
	if r != nil {
		r.Fire()
	}
}

// CloseWithError marks the body failed; the write operation aborts
// with err on its next poll.
func (p *PipeBody) CloseWithError(err error) {
	p.mu.Lock()
	p.closed = true
	p.err = err
	r := p.takeResume()
	p.mu.Unlock()
	if r != nil {
		r.Fire()
	}
}

// takeResume must be called with mu held. Firing happens outside the
// lock so a resume that re-enters Poll cannot deadlock.
func (p *PipeBody) takeResume() *Resume {
	r := p.resume
	p.resume = nil
	return r
}

func (p *PipeBody) Poll(resume *Resume) (Poll, net.Buffers, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return PollDone, nil, p.err
	}
	if len(p.queue) > 0 {
		out := p.queue
		p.queue = nil
		return PollMore, out, nil
	}
	if p.closed {
		return PollDone, nil, nil
	}
	p.resume = resume
	return PollSuspended, nil, nil
}
