package httpw

import (
	"io"
	"net"
)

// Poll is the tri-state result of asking a BodyWriter for data.
type Poll int

const (
	// PollMore means the call returned buffers to write now; the
	// writer expects to be polled again after that write completes.
	PollMore Poll = iota
	// PollDone means the body is fully produced. No buffers accompany
	// a PollDone; the last data was handed over on a prior poll.
	PollDone
	// PollSuspended means no data is available yet. The writer has
	// stored the resume handle and will fire it exactly once when it
	// can be polled again. The engine must not poll until then.
	PollSuspended
)

// BodyWriter incrementally produces a body's wire bytes. A writer is
// bound to one body value and one write operation; it owns whatever
// cursor state it needs to resume where it left off.
//
// Buffers returned with PollMore must remain valid and unmodified
// until the engine has finished writing them, which is before the
// next poll. A non-nil error aborts the operation like a transport
// fault.
type BodyWriter interface {
	Poll(resume *Resume) (Poll, net.Buffers, error)
}

// emptyBody is the writer used for messages with no body.
type emptyBody struct{}

func (emptyBody) Poll(*Resume) (Poll, net.Buffers, error) {
	return PollDone, nil, nil
}

// BytesBody returns a BodyWriter over a single in-memory buffer.
func BytesBody(p []byte) BodyWriter {
	return &bytesBody{p: p}
}

type bytesBody struct {
	p    []byte
	done bool
}

func (b *bytesBody) Poll(*Resume) (Poll, net.Buffers, error) {
	if b.done || len(b.p) == 0 {
		return PollDone, nil, nil
	}
	b.done = true
	return PollMore, net.Buffers{b.p}, nil
}

// BuffersBody returns a BodyWriter over a caller-assembled buffer
// sequence, handed to the transport in one batch without copying.
func BuffersBody(bufs net.Buffers) BodyWriter {
	return &buffersBody{bufs: bufs}
}

type buffersBody struct {
	bufs net.Buffers
	done bool
}

func (b *buffersBody) Poll(*Resume) (Poll, net.Buffers, error) {
	if b.done || len(b.bufs) == 0 {
		return PollDone, nil, nil
	}
	b.done = true
	return PollMore, b.bufs, nil
}

// ReaderBody returns a BodyWriter that streams r, reading at most
// chunk bytes per poll. The read buffer is reused between polls; the
// engine has always finished writing it before the next read.
func ReaderBody(r io.Reader, chunk int) BodyWriter {
	if chunk <= 0 {
		chunk = 32 << 10
	}
	return &readerBody{r: r, buf: make([]byte, chunk)}
}

type readerBody struct {
	r   io.Reader
	buf []byte
	eof bool
}

func (b *readerBody) Poll(*Resume) (Poll, net.Buffers, error) {
	if b.eof {
		return PollDone, nil, nil
	}
	for {
		n, err := b.r.Read(b.buf)
		if n > 0 {
			if err == io.EOF {
				b.eof = true
			} else if err != nil {
				return PollDone, nil, err
			}
			return PollMore, net.Buffers{b.buf[:n]}, nil
		}
		if err == io.EOF {
			b.eof = true
			return PollDone, nil, nil
		}
		if err != nil {
			return PollDone, nil, err
		}
	}
}
