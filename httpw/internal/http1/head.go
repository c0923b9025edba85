package http1

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// EncodeRequestHead appends a request line and header fields to buf,
// terminated by the empty line. hdr keys should be canonicalized by
// the caller and are emitted in sorted order so output is
// deterministic.
func EncodeRequestHead(buf *bytes.Buffer, method, uri, proto string, hdr map[string][]string, chunked, closeConn bool) {
	fmt.Fprintf(buf, "%s %s %s\r\n", method, uri, proto)
	encodeFields(buf, hdr, chunked, closeConn)
}

// EncodeResponseHead appends a status line and header fields to buf,
// terminated by the empty line. An empty reason is replaced by the
// default phrase for well-known codes.
func EncodeResponseHead(buf *bytes.Buffer, status int, reason, proto string, hdr map[string][]string, chunked, closeConn bool) {
	if reason == "" {
		reason = defaultReason(status)
	}
	fmt.Fprintf(buf, "%s %d %s\r\n", proto, status, reason)
	encodeFields(buf, hdr, chunked, closeConn)
}

// encodeFields writes the header block. Framing and connection policy
// lines come from the flags; user-supplied duplicates are skipped so
// each policy line appears exactly once.
func encodeFields(buf *bytes.Buffer, hdr map[string][]string, chunked, closeConn bool) {
	if chunked {
		fmt.Fprint(buf, "Transfer-Encoding: chunked\r\n")
	}
	keys := make([]string, 0, len(hdr))
	for k := range hdr {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if SanitizeHeaderKey(k) == "" {
			continue
		}
		if chunked && (k == "Content-Length" || k == "Transfer-Encoding") {
			continue
		}
		if closeConn && k == "Connection" {
			continue
		}
		for _, v := range hdr[k] {
			fmt.Fprintf(buf, "%s: %s\r\n", k, SanitizeHeaderValue(v))
		}
	}
	if closeConn {
		fmt.Fprint(buf, "Connection: close\r\n")
	}
	fmt.Fprint(buf, "\r\n")
}

func defaultReason(code int) string {
	switch code {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 204:
		return "No Content"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 304:
		return "Not Modified"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	default:
		return ""
	}
}

// SanitizeHeaderKey ensures a header name is a valid token; returns
// empty string if invalid.
func SanitizeHeaderKey(k string) string {
	if k == "" {
		return ""
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			continue
		}
		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
			continue
		default:
			return ""
		}
	}
	return k
}

// SanitizeHeaderValue removes CR/LF and control chars except HTAB.
func SanitizeHeaderValue(v string) string {
	if v == "" {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
