package httpw

import (
	"errors"
	"strings"
	"testing"
)

func TestPreparation_ChunkedWhenLengthUnknown(t *testing.T) {
	m := NewRequest("POST", "/")
	m.Header.Set("Host", "x")
	m.Body = BytesBody([]byte("abc"))
	p, err := newPreparation(m)
	if err != nil {
		t.Fatalf("newPreparation: %v", err)
	}
	if !p.chunked || p.close {
		t.Fatalf("chunked=%v close=%v", p.chunked, p.close)
	}
	if !strings.Contains(string(p.head), "Transfer-Encoding: chunked\r\n") {
		t.Fatalf("head=%q", p.head)
	}
}

func TestPreparation_FixedLength(t *testing.T) {
	m := NewResponse(200)
	m.ContentLength = 3
	m.Body = BytesBody([]byte("abc"))
	p, err := newPreparation(m)
	if err != nil {
		t.Fatalf("newPreparation: %v", err)
	}
	if p.chunked {
		t.Fatal("fixed length must not chunk")
	}
	if !strings.Contains(string(p.head), "Content-Length: 3\r\n") {
		t.Fatalf("head=%q", p.head)
	}
}

func TestPreparation_NoBodyNoLengthHeader(t *testing.T) {
	m := NewRequest("GET", "/")
	m.Header.Set("Host", "x")
	p, err := newPreparation(m)
	if err != nil {
		t.Fatalf("newPreparation: %v", err)
	}
	if p.chunked || p.close {
		t.Fatalf("chunked=%v close=%v", p.chunked, p.close)
	}
	if strings.Contains(string(p.head), "Content-Length") {
		t.Fatalf("bodyless message grew a Content-Length: %q", p.head)
	}
}

func TestPreparation_HTTP10Close(t *testing.T) {
	m := NewRequest("GET", "/")
	m.Proto = "HTTP/1.0"
	m.Header.Set("Host", "x")
	p, err := newPreparation(m)
	if err != nil {
		t.Fatalf("newPreparation: %v", err)
	}
	if !p.close {
		t.Fatal("HTTP/1.0 without keep-alive must close")
	}
}

func TestPreparation_HTTP10KeepAlive(t *testing.T) {
	m := NewRequest("GET", "/")
	m.Proto = "HTTP/1.0"
	m.Header.Set("Host", "x")
	m.Header.Set("Connection", "keep-alive")
	p, err := newPreparation(m)
	if err != nil {
		t.Fatalf("newPreparation: %v", err)
	}
	if p.close {
		t.Fatal("explicit keep-alive must not close")
	}
}

func TestPreparation_ConnectionClose(t *testing.T) {
	m := NewResponse(200)
	m.ContentLength = 0
	p, err := newPreparation(m)
	if err != nil {
		t.Fatalf("newPreparation: %v", err)
	}
	if p.close {
		t.Fatal("plain response must not close")
	}
	m.Header.Set("Connection", "close")
	if p, err = newPreparation(m); err != nil {
		t.Fatalf("newPreparation: %v", err)
	}
	if !p.close {
		t.Fatal("Connection: close must set the close flag")
	}
}

func TestPreparation_Conflicts(t *testing.T) {
	m := NewRequest("POST", "/")
	m.Header.Set("Transfer-Encoding", "chunked")
	m.ContentLength = 3
	m.Body = BytesBody([]byte("abc"))
	if _, err := newPreparation(m); !errors.Is(err, ErrConflictingFraming) {
		t.Fatalf("CL+TE err=%v", err)
	}

	m = NewRequest("POST", "/")
	m.Proto = "HTTP/1.0"
	m.Header.Set("Transfer-Encoding", "chunked")
	m.Body = BytesBody([]byte("abc"))
	if _, err := newPreparation(m); !errors.Is(err, ErrConflictingFraming) {
		t.Fatalf("chunked on 1.0 err=%v", err)
	}
}

func TestPreparation_MissingStartLine(t *testing.T) {
	if _, err := newPreparation(&Message{IsRequest: true, RequestURI: "/"}); !errors.Is(err, ErrMissingStartLine) {
		t.Fatalf("no method err=%v", err)
	}
	if _, err := newPreparation(&Message{}); !errors.Is(err, ErrMissingStartLine) {
		t.Fatalf("no status err=%v", err)
	}
}

func TestPreparation_DoesNotMutateMessageHeader(t *testing.T) {
	m := NewResponse(200)
	m.ContentLength = 3
	m.Body = BytesBody([]byte("abc"))
	if _, err := newPreparation(m); err != nil {
		t.Fatalf("newPreparation: %v", err)
	}
	if m.Header.Get("Content-Length") != "" {
		t.Fatal("preparation wrote into the caller's header set")
	}
}
