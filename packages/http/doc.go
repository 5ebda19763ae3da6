// Package http executes a single HTTP request for simple-http-client.
//
// It wraps the standard library's http package with:
//   - Configurable timeout, redirect, TLS and proxy settings
//   - Capture of the raw response header block, so headers are reported
//     in the order the server sent them
//   - Charset extraction from Content-Type and body decoding
//   - Debug-level request/response logging
package http
