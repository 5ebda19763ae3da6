package args

import (
	"errors"
	"fmt"
	"strings"
)

const (
	FlagURL     = "url"
	FlagMethod  = "method"
	FlagRequest = "req"
	FlagLog     = "log"
	FlagConfig  = "config"
	FlagEnv     = "env"
	FlagHelp    = "-help"
	FlagVerbose = "-verbose"
)

var (
	// ErrUsage marks errors caused by how the program was invoked.
	ErrUsage         = errors.New("usage error")
	ErrMissingURL    = fmt.Errorf("%w: -url argument is not specified", ErrUsage)
	ErrMissingMethod = fmt.Errorf("%w: -method argument is not specified", ErrUsage)
)

// Invocation holds the arguments of one run. Empty strings mean unset.
type Invocation struct {
	URL         string
	Method      string
	RequestPath string
	LogPath     string
	ConfigPath  string
	EnvFile     string
	Help        bool
	Verbose     bool
}

// Parse scans args for -name=value flags. Values are trimmed, later
// occurrences override earlier ones and unknown arguments are ignored.
func Parse(args []string) *Invocation {
	inv := &Invocation{}
	for _, arg := range args {
		switch arg {
		case FlagHelp:
			inv.Help = true
			continue
		case FlagVerbose:
			inv.Verbose = true
			continue
		}

		name, value, ok := splitFlag(arg)
		if !ok {
			continue
		}

		switch name {
		case FlagURL:
			inv.URL = value
		case FlagMethod:
			inv.Method = value
		case FlagRequest:
			inv.RequestPath = value
		case FlagLog:
			inv.LogPath = value
		case FlagConfig:
			inv.ConfigPath = value
		case FlagEnv:
			inv.EnvFile = value
		}
	}
	return inv
}

func splitFlag(arg string) (string, string, bool) {
	if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
		return "", "", false
	}
	name, value, ok := strings.Cut(arg[1:], "=")
	if !ok {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}

// Validate reports the first missing required flag: -url, then -method.
func Validate(inv *Invocation) error {
	if inv.URL == "" {
		return ErrMissingURL
	}
	if inv.Method == "" {
		return ErrMissingMethod
	}
	return nil
}

// UsageMessage strips the ErrUsage prefix for display.
func UsageMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrUsage.Error()+": ")
}
