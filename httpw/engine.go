package httpw

import (
	"net"

	"dqx0.com/go/wire/httpw/internal/http1"
)

// Disposition tells the caller what to do with the connection after a
// message has been written. It is a result in its own right, distinct
// from the error: a ConnClose outcome is policy, not a fault.
type Disposition int

const (
	// ConnKeepAlive means the connection may carry further messages.
	ConnKeepAlive Disposition = iota
	// ConnClose means the message was fully sent and the caller must
	// now close the connection.
	ConnClose
)

func (d Disposition) String() string {
	if d == ConnClose {
		return "close"
	}
	return "keep-alive"
}

// writeState enumerates the engine's positions between transport
// writes. One operation owns its state exclusively; it is never
// shared and the protocol is not reentrant.
type writeState int8

const (
	stateInit writeState = iota
	stateWriteHeadAndBody
	stateConsumeHead
	stateWriteBody
	stateWriteFinalChunk
	stateDone
)

// stepKind tells a driver (blocking or asynchronous) what the engine
// needs next.
type stepKind int8

const (
	stepWrite stepKind = iota
	stepSuspend
	stepFinish
)

type step struct {
	kind stepKind
	bufs net.Buffers
	disp Disposition
	err  error
}

// operation is one in-flight message write. Drivers call advance
// repeatedly; each call runs state actions until the driver must act:
// issue a transport write, suspend until the body resumes, or finish.
type operation struct {
	msg   *Message
	prep  *preparation
	state writeState
}

func newOperation(m *Message) *operation {
	return &operation{msg: m}
}

// advance performs the next state actions. wake is the driver's
// re-entry point; a fresh resume handle around it is armed for every
// poll, so the body writer never sees a stale handle.
//
// The buffer sequences returned in a stepWrite are freshly assembled
// slices; the transport may consume them in place.
func (op *operation) advance(wake func()) step {
	for {
		switch op.state {
		case stateInit:
			prep, err := newPreparation(op.msg)
			if err != nil {
				op.state = stateDone
				return step{kind: stepFinish, disp: ConnClose, err: err}
			}
			op.prep = prep
			op.state = stateWriteHeadAndBody

		case stateWriteHeadAndBody:
			st, bufs, err := op.prep.writer.Poll(newResume(wake))
			if err != nil {
				op.state = stateDone
				return step{kind: stepFinish, disp: ConnClose, err: err}
			}
			switch st {
			case PollMore:
				framed := op.frame(bufs)
				if framed == nil {
					// Empty batch: nothing to frame, poll again.
					continue
				}
				out := make(net.Buffers, 0, len(framed)+1)
				out = append(out, op.prep.head)
				out = append(out, framed...)
				op.state = stateConsumeHead
				return step{kind: stepWrite, bufs: out}
			case PollDone:
				out := net.Buffers{op.prep.head}
				if op.prep.chunked {
					out = append(out, http1.FinalChunk()...)
				}
				op.prep.head = nil
				op.state = stateDone
				return step{kind: stepWrite, bufs: out}
			default: // PollSuspended
				// The head is not flushed yet; it coalesces with the
				// first body batch once the writer resumes.
				return step{kind: stepSuspend}
			}

		case stateConsumeHead:
			// The head buffer was flushed with the first body write.
			op.prep.head = nil
			op.state = stateWriteBody

		case stateWriteBody:
			st, bufs, err := op.prep.writer.Poll(newResume(wake))
			if err != nil {
				op.state = stateDone
				return step{kind: stepFinish, disp: ConnClose, err: err}
			}
			switch st {
			case PollMore:
				framed := op.frame(bufs)
				if framed == nil {
					continue
				}
				op.state = stateConsumeHead
				return step{kind: stepWrite, bufs: framed}
			case PollDone:
				if op.prep.chunked {
					op.state = stateWriteFinalChunk
					continue
				}
				op.state = stateDone
			default: // PollSuspended
				return step{kind: stepSuspend}
			}

		case stateWriteFinalChunk:
			op.state = stateDone
			return step{kind: stepWrite, bufs: http1.FinalChunk()}

		default: // stateDone
			if op.prep.close {
				return step{kind: stepFinish, disp: ConnClose}
			}
			return step{kind: stepFinish, disp: ConnKeepAlive}
		}
	}
}

// frame applies chunk framing when the operation is chunked, and
// otherwise copies the slice header so the transport can consume the
// sequence without touching the writer's own. A batch with no bytes
// frames to nil; framing it would emit a premature terminal chunk.
func (op *operation) frame(bufs net.Buffers) net.Buffers {
	var n int
	for _, b := range bufs {
		n += len(b)
	}
	if n == 0 {
		return nil
	}
	if op.prep.chunked {
		return http1.EncodeChunk(bufs)
	}
	out := make(net.Buffers, len(bufs))
	copy(out, bufs)
	return out
}
