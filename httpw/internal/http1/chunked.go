package http1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

var (
	crlf       = []byte("\r\n")
	finalChunk = []byte("0\r\n\r\n")

	errChunkFormat = errors.New("http1: invalid chunk format")
)

// EncodeChunk wraps bufs in one chunk frame: hex size line, the data
// buffers unchanged, trailing CRLF. The returned sequence shares the
// data with bufs; only the size line is allocated. Stateless.
func EncodeChunk(bufs net.Buffers) net.Buffers {
	var n uint64
	for _, b := range bufs {
		n += uint64(len(b))
	}
	size := strconv.AppendUint(make([]byte, 0, 18), n, 16)
	size = append(size, '\r', '\n')
	out := make(net.Buffers, 0, len(bufs)+2)
	out = append(out, size)
	out = append(out, bufs...)
	return append(out, crlf)
}

// FinalChunk returns the zero-length terminal chunk ending a chunked
// body.
func FinalChunk() net.Buffers {
	return net.Buffers{finalChunk}
}

// NewChunkedReader returns an io.Reader that strips chunk framing
// from br, yielding the original body bytes. It consumes the terminal
// chunk and discards any trailers.
func NewChunkedReader(br *bufio.Reader) io.Reader {
	return &chunkedReader{br: br, remain: -1}
}

type chunkedReader struct {
	br       *bufio.Reader
	remain   int64
	finished bool
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.finished {
		return 0, io.EOF
	}
	if c.remain <= 0 {
		size, err := c.readChunkSize()
		if err != nil {
			return 0, err
		}
		if size == 0 {
			if err := c.readTrailers(); err != nil {
				return 0, err
			}
			c.finished = true
			return 0, io.EOF
		}
		c.remain = size
	}
	if len(p) == 0 {
		return 0, nil
	}
	toRead := int64(len(p))
	if toRead > c.remain {
		toRead = c.remain
	}
	n, err := io.ReadFull(c.br, p[:toRead])
	c.remain -= int64(n)
	if err != nil {
		return n, err
	}
	if c.remain == 0 {
		if err := c.expectCRLF(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *chunkedReader) readChunkSize() (int64, error) {
	line, err := readLine(c.br, 8<<10)
	if err != nil {
		return 0, err
	}
	// Strip chunk extensions if any: "<hex>;<ext>"
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, errChunkFormat
	}
	n, err := strconv.ParseInt(line, 16, 64)
	if err != nil || n < 0 {
		return 0, errChunkFormat
	}
	return n, nil
}

func (c *chunkedReader) expectCRLF() error {
	b1, err := c.br.ReadByte()
	if err != nil {
		return err
	}
	b2, err := c.br.ReadByte()
	if err != nil {
		return err
	}
	if b1 != '\r' || b2 != '\n' {
		return fmt.Errorf("http1: expected CRLF after chunk, got %q%q", b1, b2)
	}
	return nil
}

func (c *chunkedReader) readTrailers() error {
	for {
		line, err := readLine(c.br, 8<<10)
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
	}
}

func readLine(br *bufio.Reader, limit int) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '\n' {
			break
		}
		if b != '\r' {
			sb.WriteByte(b)
		}
		if limit > 0 && sb.Len() > limit {
			return "", io.ErrShortBuffer
		}
	}
	return sb.String(), nil
}
