package httpw

// Write serializes m onto t, blocking until the message is fully sent
// or the operation fails. When the body suspends, the calling
// goroutine parks on a condition variable until the body's resume
// handle fires from wherever its data source lives.
//
// The returned Disposition is meaningful only when err is nil, except
// that after any error the caller should close the connection anyway:
// a failed write leaves the stream in an unknown state.
//
// A Message/transport pair supports one Write at a time; the protocol
// is not safe for concurrent invocation on the same body writer.
func Write(m *Message, t Transport) (Disposition, error) {
	op := newOperation(m)
	p := newParker()
	for {
		s := op.advance(p.wake)
		switch s.kind {
		case stepWrite:
			if _, err := t.WriteBuffers(s.bufs); err != nil {
				return ConnClose, err
			}
		case stepSuspend:
			p.wait()
		default: // stepFinish
			return s.disp, s.err
		}
	}
}
