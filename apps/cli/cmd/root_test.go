package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/simple-http-client/packages/core/config"
)

func execute(t *testing.T, argv ...string) (string, string, error) {
	t.Helper()

	if argv == nil {
		argv = []string{}
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(argv)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestRoot_MissingURL(t *testing.T) {
	out, _, err := execute(t, "-method=GET")
	require.NoError(t, err)

	assert.Equal(t, "Error: -url argument is not specified\n\n"+HelpText(), out)
}

func TestRoot_MissingURLReportedBeforeMethod(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Error: -url argument is not specified\n"))
	assert.NotContains(t, out, "-method argument")
}

func TestRoot_MissingMethod(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {})

	out, _, err := execute(t, "-url="+server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Error: -method argument is not specified\n\n"+HelpText(), out)
	assert.Equal(t, 0, *hits)
}

func TestRoot_Help(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {})

	out, _, err := execute(t, "-url="+server.URL, "-method=GET", "-help")
	require.NoError(t, err)

	assert.Equal(t, HelpText(), out)
	assert.Equal(t, 0, *hits)
	assert.Contains(t, out, BuildMarker)
}

func TestRoot_Success(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("first\nsecond\n"))
	})

	logPath := filepath.Join(t.TempDir(), "out.log")
	out, errOut, err := execute(t, "-url="+server.URL, "-method=GET", "-log="+logPath, "-ignored=1")
	require.NoError(t, err)

	assert.Equal(t, 1, *hits)
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\n"))
	assert.Contains(t, out, "Content-Type: text/plain; charset=utf-8\n")
	assert.True(t, strings.HasSuffix(out, "\n\nfirst\nsecond\n"))
	assert.Empty(t, errOut)

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, strings.ReplaceAll(out, "\n", "\r\n"), string(logged))
}

func TestRoot_MissingRequestFile(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {})

	out, errOut, err := execute(t,
		"-url="+server.URL,
		"-method=POST",
		"-req="+filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Equal(t, 0, *hits)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error:")
}

func TestRoot_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, errOut, err := execute(t, "-url=http://"+addr, "-method=GET")
	require.Error(t, err)
	assert.Equal(t, ExitNetworkError, ExitCode(err))
	assert.Contains(t, errOut, "Error:")
}

func TestRoot_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"timeout": "soon"}`), 0644))

	_, _, err := execute(t, "-url=http://127.0.0.1:1", "-method=GET", "-config="+cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

func TestRoot_EnvFileSetsDefaultHeaders(t *testing.T) {
	var gotAgent string
	server, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNoContent)
	})

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "shc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("headers:\n  User-Agent: shc-test\n"), 0644))

	t.Setenv(config.EnvNoColor, "")
	os.Unsetenv(config.EnvNoColor)
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("SHC_NO_COLOR=true\n"), 0644))

	out, _, err := execute(t, "-url="+server.URL, "-method=GET", "-config="+cfgPath, "-env="+envPath)
	require.NoError(t, err)

	assert.Equal(t, "shc-test", gotAgent)
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 204 No Content\n"))
	assert.Equal(t, "true", os.Getenv(config.EnvNoColor))
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "simple-http-client version dev")
	assert.Contains(t, out, "Built: unknown")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "config", err: fmt.Errorf("load: %w", config.ErrInvalidConfig), want: ExitConfigError},
		{name: "url error", err: &url.Error{Op: "Get", URL: "http://x", Err: errors.New("refused")}, want: ExitNetworkError},
		{name: "wrapped net error", err: fmt.Errorf("sending request: %w", &net.OpError{Op: "dial", Err: errors.New("refused")}), want: ExitNetworkError},
		{name: "other", err: os.ErrNotExist, want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
