package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/simple-http-client/packages/args"
	"github.com/abdul-hamid-achik/simple-http-client/packages/http"
	"github.com/abdul-hamid-achik/simple-http-client/packages/logger"
	"github.com/abdul-hamid-achik/simple-http-client/packages/output"
)

type Runner struct {
	client *http.Client
	config *Config
	stdout io.Writer
}

type Config struct {
	Timeout        time.Duration
	FollowRedirect bool
	MaxRedirects   int
	ValidateSSL    bool
	Proxy          string
	Headers        map[string]string
	Verbose        bool
}

// DefaultRunnerConfig mirrors the defaults of the config package.
func DefaultRunnerConfig() *Config {
	return &Config{
		FollowRedirect: true,
		MaxRedirects:   http.DefaultMaxRedirects,
		ValidateSSL:    true,
	}
}

type Option func(*Runner)

// WithStdout redirects printed lines, mainly for tests.
func WithStdout(w io.Writer) Option {
	return func(r *Runner) {
		r.stdout = w
	}
}

func NewRunner(cfg *Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = DefaultRunnerConfig()
	}

	clientOpts := []http.ClientOption{
		http.WithFollowRedirects(cfg.FollowRedirect),
		http.WithMaxRedirects(cfg.MaxRedirects),
		http.WithValidateSSL(cfg.ValidateSSL),
		http.WithLogTransport(cfg.Verbose),
	}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, http.WithTimeout(cfg.Timeout))
	}
	if cfg.Proxy != "" {
		clientOpts = append(clientOpts, http.WithProxy(cfg.Proxy))
	}
	if len(cfg.Headers) > 0 {
		clientOpts = append(clientOpts, http.WithDefaultHeaders(cfg.Headers))
	}

	r := &Runner{
		client: http.NewClient(clientOpts...),
		config: cfg,
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunResult summarises a run. Lines already printed stay printed even when
// Run returns an error.
type RunResult struct {
	StatusCode  int
	HeaderLines int
	BodyLines   int
	Charset     string
	Duration    time.Duration
}

// Run performs the request described by inv. inv must already be validated.
func (r *Runner) Run(ctx context.Context, inv *args.Invocation) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{}

	// The body is read first so a missing file never reaches the network.
	var body []byte
	if inv.RequestPath != "" {
		var err error
		body, err = http.ReadBodyFile(inv.RequestPath)
		if err != nil {
			return result, err
		}
		logger.DebugKV(ctx, "loaded request body", "path", inv.RequestPath, "bytes", len(body))
	}

	printerOpts := []output.PrinterOption{output.WithStdout(r.stdout)}
	if inv.LogPath != "" {
		logFile, err := output.OpenLog(inv.LogPath)
		if err != nil {
			return result, err
		}
		printerOpts = append(printerOpts, output.WithLog(logFile))
	}
	printer := output.NewPrinter(printerOpts...)
	defer printer.Close()

	req := http.NewRequest(inv.Method, inv.URL)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return result, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Close()

	result.StatusCode = resp.StatusCode
	logger.DebugKV(ctx, "received response",
		"status", resp.StatusCode,
		"headers", len(resp.Headers),
		"ordered", resp.Ordered)

	for _, h := range resp.Headers {
		if err := printer.Println(h.String()); err != nil {
			return result, err
		}
		result.HeaderLines++
	}
	if err := printer.Println(""); err != nil {
		return result, err
	}

	if resp.IsOK() {
		charset, found := resp.Charset()
		if found {
			result.Charset = charset
		}
		n, err := printBody(resp.Body, charset, found, printer)
		result.BodyLines = n
		if err != nil {
			return result, err
		}
	}

	result.Duration = time.Since(start)
	logger.DebugKV(ctx, "run complete",
		"status", result.StatusCode,
		"body_lines", result.BodyLines,
		"duration", result.Duration)

	if err := printer.Close(); err != nil {
		return result, err
	}
	return result, nil
}

// printBody prints the body line by line, decoding it with charset when
// one was found and as UTF-8 otherwise.
func printBody(body io.Reader, charset string, found bool, printer *output.Printer) (int, error) {
	reader := body
	if found {
		decoded, err := http.NewBodyDecoder(body, charset)
		if err != nil {
			return 0, err
		}
		reader = decoded
	}

	lines := 0
	scanner := http.NewLineScanner(reader)
	for scanner.Scan() {
		if err := printer.Println(scanner.Text()); err != nil {
			return lines, err
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("reading response body: %w", err)
	}
	return lines, nil
}
