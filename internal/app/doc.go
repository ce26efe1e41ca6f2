// Package app contains the driver logic of comet. It turns a parsed
// command line into either a template parameter file or a search run,
// decoupled from the process entrypoint in cmd/comet.
package app
