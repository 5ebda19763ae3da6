// Package config handles configuration loading for simple-http-client.
//
// It provides functionality for:
//   - Loading .simple-http-client.json or .simple-http-client.yaml files
//   - Validating config files against a JSON schema
//   - Default configuration values
//   - SHC_* environment variable overrides
package config
