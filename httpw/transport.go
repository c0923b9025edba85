package httpw

import (
	"io"
	"net"
	"time"

	"dqx0.com/go/wire/internal/obs"
)

// Transport writes one buffer sequence, blocking until every byte is
// written or an error occurs. Implementations must accept
// non-contiguous sequences without requiring the caller to coalesce
// them, and may consume the sequence in place.
type Transport interface {
	WriteBuffers(bufs net.Buffers) (int64, error)
}

// AsyncTransport writes one buffer sequence and invokes done with the
// byte count and error when the write completes. At most one write is
// outstanding per operation; the engine never pipelines.
type AsyncTransport interface {
	WriteBuffers(bufs net.Buffers, done func(int64, error))
}

// ConnTransport drives a net.Conn with vectored writes (writev where
// the platform supports it). Logger and Meter are optional hooks; nil
// means no-op.
type ConnTransport struct {
	Conn         net.Conn
	WriteTimeout time.Duration

	Logger obs.Logger
	Meter  obs.Meter
}

func (t *ConnTransport) WriteBuffers(bufs net.Buffers) (int64, error) {
	if t.WriteTimeout > 0 {
		_ = t.Conn.SetWriteDeadline(time.Now().Add(t.WriteTimeout))
	}
	n, err := bufs.WriteTo(t.Conn)
	if err != nil {
		t.logf(obs.Warn, "vectored write failed after %d bytes: %v", n, err)
		t.meter().Counter("httpw_transport_write_errors_total", 1)
		return n, err
	}
	t.meter().Counter("httpw_transport_writes_total", 1)
	t.meter().Histogram("httpw_transport_write_bytes", float64(n))
	return n, nil
}

func (t *ConnTransport) logf(level obs.Level, format string, args ...interface{}) {
	lg := t.Logger
	if lg == nil {
		lg = obs.NopLogger{}
	}
	lg.Logf(level, format, args...)
}

func (t *ConnTransport) meter() obs.Meter {
	if t.Meter != nil {
		return t.Meter
	}
	return obs.NopMeter{}
}

// WriterTransport adapts any io.Writer to the blocking Transport
// contract. Useful for buffers and tests; vectoring degrades to
// sequential writes.
type WriterTransport struct {
	W io.Writer
}

func (t WriterTransport) WriteBuffers(bufs net.Buffers) (int64, error) {
	return bufs.WriteTo(t.W)
}

// AsyncConn adapts a blocking Transport to the asynchronous contract
// by running each write on the executor. ex may be nil, selecting
// GoExecutor.
func AsyncConn(t Transport, ex Executor) AsyncTransport {
	if ex == nil {
		ex = GoExecutor{}
	}
	return &asyncConn{t: t, ex: ex}
}

type asyncConn struct {
	t  Transport
	ex Executor
}

func (a *asyncConn) WriteBuffers(bufs net.Buffers, done func(int64, error)) {
	a.ex.Post(func() {
		done(a.t.WriteBuffers(bufs))
	})
}
