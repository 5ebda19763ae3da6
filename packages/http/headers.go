package http

import (
	"bytes"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// maxHeaderBlock caps how many bytes a connection buffers while looking for
// the end of the response header block.
const maxHeaderBlock = 1 << 20

// headerRecorder keeps the last final response header block read off the
// wire. The transport reads connections on its own goroutine.
type headerRecorder struct {
	mu    sync.Mutex
	block []byte
}

func (r *headerRecorder) reset() {
	r.mu.Lock()
	r.block = nil
	r.mu.Unlock()
}

func (r *headerRecorder) set(block []byte) {
	r.mu.Lock()
	r.block = block
	r.mu.Unlock()
}

func (r *headerRecorder) last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.block
}

// recordingConn copies everything read from the connection until the first
// final (non-1xx) header block is complete.
type recordingConn struct {
	net.Conn
	rec  *headerRecorder
	buf  []byte
	done bool
}

func newRecordingConn(conn net.Conn, rec *headerRecorder) net.Conn {
	return &recordingConn{Conn: conn, rec: rec}
}

func (c *recordingConn) Read(p []byte) (int, error) {
	n, err := c.Conn.Read(p)
	if n > 0 && !c.done {
		c.capture(p[:n])
	}
	return n, err
}

func (c *recordingConn) capture(b []byte) {
	c.buf = append(c.buf, b...)
	for !c.done {
		end, sep := headerBlockEnd(c.buf)
		if end < 0 {
			if len(c.buf) > maxHeaderBlock {
				c.done = true
				c.buf = nil
			}
			return
		}

		block := c.buf[:end]
		rest := c.buf[end+sep:]
		if isInterimStatus(block) {
			c.buf = append([]byte(nil), rest...)
			continue
		}

		c.rec.set(append([]byte(nil), block...))
		c.done = true
		c.buf = nil
	}
}

// headerBlockEnd returns the offset of the blank line ending the header
// block and the length of the separator, or -1.
func headerBlockEnd(b []byte) (int, int) {
	crlf := bytes.Index(b, []byte("\r\n\r\n"))
	lf := bytes.Index(b, []byte("\n\n"))
	switch {
	case crlf < 0 && lf < 0:
		return -1, 0
	case lf < 0 || (crlf >= 0 && crlf < lf):
		return crlf, 4
	default:
		return lf, 2
	}
}

func isInterimStatus(block []byte) bool {
	code, ok := statusCodeOf(firstLine(string(block)))
	return ok && code >= 100 && code < 200 && code != http.StatusSwitchingProtocols
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimRight(line, "\r")
}

func statusCodeOf(statusLine string) (int, bool) {
	fields := strings.Fields(statusLine)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return 0, false
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return code, true
}

// ParseHeaderBlock splits a raw response header block into the status line
// and the headers in wire order. Obsolete folded continuation lines are
// joined onto the previous header.
func ParseHeaderBlock(block []byte) (string, []Header) {
	text := strings.ReplaceAll(string(block), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	statusLine := strings.TrimRight(lines[0], "\r")
	var headers []Header
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if (line[0] == ' ' || line[0] == '\t') && len(headers) > 0 {
			last := &headers[len(headers)-1]
			last.Value = strings.TrimSpace(last.Value + " " + strings.TrimSpace(line))
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers = append(headers, Header{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return statusLine, headers
}

// headersFromMap rebuilds a header list from the library's header map,
// sorted by name since the wire order is gone.
func headersFromMap(h http.Header) []Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var headers []Header
	for _, name := range names {
		for _, value := range h[name] {
			headers = append(headers, Header{Name: name, Value: value})
		}
	}
	return headers
}
