// Package logger provides structured diagnostics for simple-http-client
// using the Zap logging library.
//
// Log output goes to stderr so that the response printed on stdout stays
// byte-exact. Loggers can carry key-value fields through a context, which
// is how each run is tagged with its run id.
package logger
