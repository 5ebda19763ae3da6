// Package args parses simple-http-client invocation arguments.
//
// Only the -name=value form is recognised; anything else is ignored.
package args
