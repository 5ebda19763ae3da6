package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	neturl "net/url"
	"sort"
	"time"

	"github.com/abdul-hamid-achik/simple-http-client/packages/logger"
)

const (
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultDialTimeout bounds connection establishment only
	DefaultDialTimeout = 30 * time.Second
)

type Client struct {
	httpClient     *http.Client
	recorder       *headerRecorder
	timeout        time.Duration
	followRedirect bool
	maxRedirects   int
	validateSSL    bool
	proxyURL       string
	defaultHeaders []Header
	logRequests    bool
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		recorder:       &headerRecorder{},
		followRedirect: true,
		maxRedirects:   DefaultMaxRedirects,
		validateSSL:    true,
	}

	for _, opt := range opts {
		opt(c)
	}

	tlsConfig := &tls.Config{}
	if !c.validateSSL {
		tlsConfig.InsecureSkipVerify = true
	}

	dialer := &net.Dialer{Timeout: DefaultDialTimeout}

	transport := &http.Transport{
		// One request per connection keeps each connection's first header
		// block attributable to exactly one response.
		DisableKeepAlives:  true,
		DisableCompression: true,
		TLSClientConfig:    tlsConfig,
		// A non-nil empty map turns HTTP/2 off; the header capture reads
		// HTTP/1.x framing.
		TLSNextProto: map[string]func(string, *tls.Conn) http.RoundTripper{},
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return newRecordingConn(conn, c.recorder), nil
		},
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			raw, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}

			cfg := tlsConfig.Clone()
			if cfg.ServerName == "" {
				host, _, err := net.SplitHostPort(addr)
				if err != nil {
					host = addr
				}
				cfg.ServerName = host
			}

			conn := tls.Client(raw, cfg)
			if err := conn.HandshakeContext(ctx); err != nil {
				raw.Close()
				return nil, err
			}
			return newRecordingConn(conn, c.recorder), nil
		},
	}

	// Configure proxy if specified
	if c.proxyURL != "" {
		proxyURL, err := neturl.Parse(c.proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	var roundTripper http.RoundTripper = transport
	if c.logRequests {
		roundTripper = NewLogTransport(transport, DefaultMaxLogLength)
	}

	redirectPolicy := func(req *http.Request, via []*http.Request) error {
		if !c.followRedirect {
			return http.ErrUseLastResponse
		}
		if len(via) >= c.maxRedirects {
			return http.ErrUseLastResponse
		}
		return nil
	}

	c.httpClient = &http.Client{
		Transport:     roundTripper,
		Timeout:       c.timeout,
		CheckRedirect: redirectPolicy,
	}

	return c
}

// WithTimeout limits the whole exchange including reading the body.
// Zero means no limit.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithFollowRedirects(follow bool) ClientOption {
	return func(c *Client) {
		c.followRedirect = follow
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		if max > 0 {
			c.maxRedirects = max
		}
	}
}

// WithDefaultHeaders adds headers sent with every request, applied in name
// order so requests are reproducible.
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for _, name := range sortedKeys(headers) {
			c.defaultHeaders = append(c.defaultHeaders, Header{Name: name, Value: headers[name]})
		}
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithLogTransport dumps requests and responses at debug level.
func WithLogTransport(enabled bool) ClientOption {
	return func(c *Client) {
		c.logRequests = enabled
	}
}

// Do sends req and returns the response with its body still open. The
// caller must Close the response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := ValidateURL(req.URL); err != nil {
		return nil, err
	}

	var body io.Reader
	if req.HasBody() {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}

	for _, h := range c.defaultHeaders {
		httpReq.Header.Set(h.Name, h.Value)
	}
	for _, h := range req.Headers {
		httpReq.Header.Add(h.Name, h.Value)
	}

	c.recorder.reset()

	logger.DebugKV(ctx, "sending request",
		"method", req.Method,
		"url", req.URL,
		"body_bytes", len(req.Body))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Body:       httpResp.Body,
	}

	statusLine, headers, ok := c.capturedHeaders(httpResp)
	if !ok {
		statusLine = httpResp.Proto + " " + httpResp.Status
		headers = headersFromMap(httpResp.Header)
		logger.DebugKV(ctx, "raw header block unavailable, using sorted headers",
			"url", req.URL)
	}

	resp.StatusLine = statusLine
	resp.Ordered = ok
	resp.Headers = append([]Header{{Value: statusLine}}, headers...)

	return resp, nil
}

// capturedHeaders returns the wire-order headers for httpResp if the
// recorded block belongs to it.
func (c *Client) capturedHeaders(httpResp *http.Response) (string, []Header, bool) {
	block := c.recorder.last()
	if block == nil {
		return "", nil, false
	}

	// An HTTPS request through a proxy only exposes the CONNECT reply.
	if httpResp.Request != nil && httpResp.Request.URL.Scheme == "https" && c.proxyURL != "" {
		return "", nil, false
	}

	statusLine, headers := ParseHeaderBlock(block)
	code, ok := statusCodeOf(statusLine)
	if !ok || code != httpResp.StatusCode {
		return "", nil, false
	}
	return statusLine, headers, true
}

func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, NewRequest("GET", url))
}

func (c *Client) Post(ctx context.Context, url string, body []byte) (*Response, error) {
	return c.Do(ctx, NewRequest("POST", url).SetBody(body))
}

// ValidateURL checks that a URL is well-formed and uses an allowed scheme
func ValidateURL(rawURL string) error {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	// Check for valid scheme
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q (only http and https are allowed)", ErrInvalidURL, u.Scheme)
	}

	// Check for valid host
	if u.Host == "" {
		return fmt.Errorf("%w: URL must have a host", ErrInvalidURL)
	}

	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
