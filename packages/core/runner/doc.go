// Package runner executes one simple-http-client invocation.
//
// A run reads the optional request body, opens the optional log file,
// sends the request and prints the status line, the headers in server
// order, a blank line and, for a 200 response only, the decoded body.
package runner
