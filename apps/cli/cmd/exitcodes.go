package cmd

import (
	"errors"
	"net"
	"net/url"

	"github.com/abdul-hamid-achik/simple-http-client/packages/core/config"
)

// Exit codes for simple-http-client
const (
	// ExitSuccess covers successful runs, -help and usage errors
	ExitSuccess = 0

	// ExitFailure indicates any other fatal error (file I/O, decoding)
	ExitFailure = 1

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, config.ErrInvalidConfig) {
		return ExitConfigError
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return ExitNetworkError
	}

	return ExitFailure
}
