// Package httpw serializes HTTP/1.x messages onto a transport,
// supporting both blocking and callback-driven asynchronous execution
// over one shared write engine.
//
// Highlights
//   - One state machine for both modes: header assembly, optional
//     chunked transfer framing, and connection-close policy are
//     decided once per message and driven identically whether the
//     caller blocks or supplies a completion callback.
//   - Streaming bodies: a BodyWriter produces wire bytes on demand
//     and may suspend when its data is not ready (disk, another
//     connection, a producer goroutine); a suspended body parks no
//     carrier goroutine in the async mode and re-enters the engine
//     through a single-shot resume handle.
//   - Vectored writes: buffer sequences reach the transport without
//     copying, and the header coalesces with the first body batch
//     into one write whenever the body has data immediately.
//   - Observability: plug-in Logger and Meter hooks on the transport
//     adapters; the engine itself has no logging side effects.
//
// Quick start (blocking):
//
//	m := httpw.NewResponse(200)
//	m.Header.Set("Content-Type", "text/plain")
//	m.ContentLength = 5
//	m.Body = httpw.BytesBody([]byte("hello"))
//	disp, err := httpw.Write(m, &httpw.ConnTransport{Conn: conn})
//	if err != nil { log.Fatal(err) }
//	if disp == httpw.ConnClose { conn.Close() }
//
// Quick start (asynchronous):
//
//	httpw.WriteAsync(m, httpw.AsyncConn(t, nil), nil, func(disp httpw.Disposition, err error) {
//	    if err != nil { log.Fatal(err) }
//	    if disp == httpw.ConnClose { conn.Close() }
//	})
package httpw
