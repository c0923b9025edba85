package httpw

// Message is an HTTP/1.x request or response to be serialized. The
// caller owns it; the engine borrows it for the duration of one write
// operation and never mutates it.
//
// ContentLength is -1 when the body length is unknown. A nil Body
// means the message has no body.
type Message struct {
	// IsRequest selects the start line form: request line when true,
	// status line when false.
	IsRequest bool

	// Request-line fields, used when IsRequest is true.
	Method     string
	RequestURI string

	// Status-line fields, used when IsRequest is false. Reason may be
	// empty; a default phrase is substituted for well-known codes.
	StatusCode int
	Reason     string

	// Proto is "HTTP/1.1" or "HTTP/1.0". Empty defaults to HTTP/1.1.
	Proto string

	Header        Header
	ContentLength int64
	Body          BodyWriter
}

// NewRequest returns a request message with an empty header set and
// unknown body length.
func NewRequest(method, uri string) *Message {
	return &Message{
		IsRequest:     true,
		Method:        method,
		RequestURI:    uri,
		Proto:         "HTTP/1.1",
		Header:        Header{},
		ContentLength: -1,
	}
}

// NewResponse returns a response message with an empty header set and
// unknown body length.
func NewResponse(status int) *Message {
	return &Message{
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		Header:        Header{},
		ContentLength: -1,
	}
}
