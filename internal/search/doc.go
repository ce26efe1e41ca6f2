// Package search is the search manager the driver talks to. It holds the
// parameter set and input files, plans the work of a search run and
// dispatches it to an Engine on a pool of workers, each owning a scratch
// buffer set while it runs a job.
package search
