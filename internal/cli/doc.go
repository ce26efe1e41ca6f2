// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates comet's single-letter switches and positional input files into
// the application's configuration.
package cli
