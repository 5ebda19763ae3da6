package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/abdul-hamid-achik/simple-http-client/packages/logger"
)

// DefaultMaxLogLength is the default cap on dumped request/response bytes.
const DefaultMaxLogLength = 4096

var ErrNilRequest = errors.New("request is nil")

// LogTransport is an http.RoundTripper that dumps each request and response
// header at debug level.
type LogTransport struct {
	next         http.RoundTripper
	maxLogLength int
}

func NewLogTransport(next http.RoundTripper, maxLogLength int) http.RoundTripper {
	if maxLogLength <= 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	requestDump := t.dumpRequest(req)

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.DebugKV(ctx, "request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err)
		return nil, err
	}

	// The body is left untouched so it can still be streamed by the caller.
	responseDump := t.truncate(dumpResponseHead(resp))

	logger.Debugf(ctx, "%s %s [%d] %s\nRequest: %s\nResponse: %s",
		req.Method, req.URL.String(), resp.StatusCode, duration, requestDump, responseDump)

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	dump, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		return err.Error()
	}
	return t.truncate(dump)
}

func dumpResponseHead(resp *http.Response) []byte {
	dump, err := httputil.DumpResponse(resp, false)
	if err != nil {
		return []byte(err.Error())
	}
	return dump
}

func (t *LogTransport) truncate(data []byte) string {
	if len(data) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}
	return string(data)
}
