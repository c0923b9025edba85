package httpw

import (
	"bytes"
	"strconv"
	"strings"

	"dqx0.com/go/wire/httpw/internal/http1"
)

// preparation holds everything one write operation needs: the
// serialized head, the body writer, and the framing/close policy.
// The flags are decided here and never change afterwards.
type preparation struct {
	head    []byte
	writer  BodyWriter
	chunked bool
	close   bool
}

// newPreparation serializes the start line and headers and decides
// the chunked and close flags. It fails before any byte reaches the
// transport; a returned error means nothing was written.
func newPreparation(m *Message) (*preparation, error) {
	if m.IsRequest {
		if m.Method == "" || m.RequestURI == "" {
			return nil, ErrMissingStartLine
		}
	} else if m.StatusCode == 0 {
		return nil, ErrMissingStartLine
	}

	proto := m.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	http11 := proto == "HTTP/1.1"

	hdr := m.Header
	chunked := hdr.hasChunkedTE()
	declaredCL := hdr.Get("Content-Length") != "" || (m.Body != nil && m.ContentLength >= 0)
	if chunked && declaredCL {
		return nil, ErrConflictingFraming
	}
	if chunked && !http11 {
		// Chunked framing cannot be expressed in HTTP/1.0.
		return nil, ErrConflictingFraming
	}

	closeConn := strings.EqualFold(hdr.Get("Connection"), "close")
	if m.Body != nil && !declaredCL && !chunked {
		if http11 {
			chunked = true
		} else {
			// Close-delimited body: the peer learns the length from EOF.
			closeConn = true
		}
	}
	if !http11 && !strings.EqualFold(hdr.Get("Connection"), "keep-alive") {
		closeConn = true
	}

	// The message is borrowed, not owned: inject Content-Length into a
	// copy rather than the caller's header set.
	fields := make(map[string][]string, len(hdr)+1)
	for k, vv := range hdr {
		fields[k] = vv
	}
	if m.Body != nil && m.ContentLength >= 0 && hdr.Get("Content-Length") == "" {
		fields["Content-Length"] = []string{strconv.FormatInt(m.ContentLength, 10)}
	}

	var buf bytes.Buffer
	if m.IsRequest {
		http1.EncodeRequestHead(&buf, m.Method, m.RequestURI, proto, fields, chunked, closeConn)
	} else {
		http1.EncodeResponseHead(&buf, m.StatusCode, m.Reason, proto, fields, chunked, closeConn)
	}

	w := m.Body
	if w == nil {
		w = emptyBody{}
	}
	return &preparation{
		head:    buf.Bytes(),
		writer:  w,
		chunked: chunked,
		close:   closeConn,
	}, nil
}
