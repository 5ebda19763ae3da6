// Package output writes simple-http-client results.
//
//   - Printer: response lines to stdout, mirrored to an optional CRLF log file
//   - Console: usage errors, help text and fatal errors
package output
