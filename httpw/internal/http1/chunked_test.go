package http1

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"testing"
)

func flatten(bufs net.Buffers) []byte {
	var out []byte
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out
}

func TestEncodeChunk_Wire(t *testing.T) {
	got := flatten(EncodeChunk(net.Buffers{[]byte("abc"), []byte("de")}))
	if string(got) != "5\r\nabcde\r\n" {
		t.Fatalf("chunk=%q", got)
	}
}

func TestEncodeChunk_SharesData(t *testing.T) {
	data := []byte("abc")
	out := EncodeChunk(net.Buffers{data})
	data[0] = 'x'
	if got := flatten(out); string(got) != "3\r\nxbc\r\n" {
		t.Fatalf("encode copied the data buffer: %q", got)
	}
}

func TestFinalChunk(t *testing.T) {
	if got := flatten(FinalChunk()); string(got) != "0\r\n\r\n" {
		t.Fatalf("final chunk=%q", got)
	}
}

func TestChunkedReader_RoundTrip(t *testing.T) {
	batches := []net.Buffers{
		{[]byte("hello, "), []byte("world")},
		{[]byte("!")},
		{bytes.Repeat([]byte("z"), 5000)},
	}
	var wire bytes.Buffer
	var want []byte
	for _, b := range batches {
		want = append(want, flatten(b)...)
		wire.Write(flatten(EncodeChunk(b)))
	}
	wire.Write(flatten(FinalChunk()))

	got, err := io.ReadAll(NewChunkedReader(bufio.NewReader(&wire)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(want))
	}
}

func TestChunkedReader_Extensions(t *testing.T) {
	raw := "3;name=val\r\nhey\r\n0\r\n\r\n"
	got, err := io.ReadAll(NewChunkedReader(bufio.NewReader(bytes.NewBufferString(raw))))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "hey" {
		t.Fatalf("body=%q", got)
	}
}

func TestChunkedReader_BadSize(t *testing.T) {
	raw := "zz\r\nhey\r\n0\r\n\r\n"
	if _, err := io.ReadAll(NewChunkedReader(bufio.NewReader(bytes.NewBufferString(raw)))); err == nil {
		t.Fatal("expected error for invalid chunk size")
	}
}
