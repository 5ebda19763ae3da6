package http

import (
	"bufio"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// rawServer answers every connection with the exact bytes in response, so
// tests control header order and casing. It returns the base URL and a
// channel receiving each request the server read.
func rawServer(t *testing.T, response string) (string, <-chan *capturedRequest) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	requests := make(chan *capturedRequest, 16)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveRaw(conn, response, requests)
		}
	}()

	return "http://" + ln.Addr().String(), requests
}

type capturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

func serveRaw(conn net.Conn, response string, requests chan<- *capturedRequest) {
	defer conn.Close()

	req, err := http.ReadRequest(bufio.NewReader(conn))
	if err != nil {
		return
	}
	body, _ := io.ReadAll(req.Body)
	requests <- &capturedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Header: req.Header,
		Body:   body,
	}

	_, _ = conn.Write([]byte(response))
}
