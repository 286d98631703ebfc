// Package cli implements the tokensale command line: every command runs one
// session flow against the configured backend and prints the resulting state.
package cli
