// httpw-send serializes one POST request with a streamed body onto a
// TCP connection and prints whatever the peer sends back.
//
// Usage: httpw-send [host:port]
package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	"dqx0.com/go/wire/httpw"
	"dqx0.com/go/wire/internal/obs"
)

func main() {
	addr := "127.0.0.1:8080"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	body := httpw.NewPipeBody()
	go func() {
		for i := 0; i < 3; i++ {
			body.Push([]byte(fmt.Sprintf("line %d\n", i)))
			time.Sleep(100 * time.Millisecond)
		}
		body.CloseSend()
	}()

	m := httpw.NewRequest("POST", "/echo")
	m.Header.Set("Host", addr)
	m.Header.Set("Content-Type", "text/plain")
	m.Body = body

	t := &httpw.ConnTransport{
		Conn:         conn,
		WriteTimeout: 5 * time.Second,
		Logger:       obs.ZapLogger{S: zl.Sugar()},
	}
	disp, err := httpw.Write(m, t)
	if err != nil {
		log.Fatal(err)
	}
	zl.Sugar().Infof("request sent, connection disposition: %s", disp)

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	br := bufio.NewReader(conn)
	buf := make([]byte, 4<<10)
	for {
		n, err := br.Read(buf)
		if n > 0 {
			os.Stdout.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}

	if disp == httpw.ConnClose {
		conn.Close()
	}
}
