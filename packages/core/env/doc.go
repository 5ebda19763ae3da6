// Package env loads dotenv files for simple-http-client.
//
// Variables from a dotenv file are exported to the process environment
// before configuration is resolved, so SHC_* overrides can live in a file.
package env
