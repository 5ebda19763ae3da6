// Package cmd implements the simple-http-client CLI using Cobra.
//
// The root command takes -name=value arguments, sends one HTTP request and
// prints the response. Cobra's own flag parsing is disabled on the root so
// that single-dash long flags reach the argument parser untouched.
//
// Available subcommands:
//   - version: Show version information
//   - completion: Generate shell completion scripts
package cmd
