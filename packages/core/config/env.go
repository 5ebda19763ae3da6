package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables that override file and default settings.
const (
	EnvTimeout         = "SHC_TIMEOUT"
	EnvProxy           = "SHC_PROXY"
	EnvInsecure        = "SHC_INSECURE"
	EnvNoColor         = "SHC_NO_COLOR"
	EnvLogLevel        = "SHC_LOG_LEVEL"
	EnvFollowRedirects = "SHC_FOLLOW_REDIRECTS"
)

// ApplyEnvironment overrides settings from SHC_* variables. Malformed
// values are ignored.
func (c *Config) ApplyEnvironment() *Config {
	result := *c

	if v, ok := lookupEnv(EnvTimeout); ok {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			result.Timeout = ms
		}
	}
	if v, ok := lookupEnv(EnvProxy); ok {
		result.Proxy = v
	}
	if v, ok := lookupEnv(EnvInsecure); ok {
		result.ValidateSSL = BoolPtr(!parseBool(v))
	}
	if v, ok := lookupEnv(EnvNoColor); ok {
		result.NoColor = BoolPtr(parseBool(v))
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		result.LogLevel = v
	}
	if v, ok := lookupEnv(EnvFollowRedirects); ok {
		result.FollowRedirects = BoolPtr(parseBool(v))
	}

	return &result
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func parseBool(v string) bool {
	return v == "true" || v == "1" || v == "yes"
}
