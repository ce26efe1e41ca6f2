package search

import "errors"

var (
	ErrNoInput           = errors.New("no input files specified so nothing to do")
	ErrBaseNameMultiple  = errors.New("the -N option is valid only with one input file")
	ErrNoDatabase        = errors.New("no search database specified")
	ErrDatabaseNotFound  = errors.New("search database not found")
	ErrInvalidBatchRange = errors.New("invalid scan range")
	ErrScratchSize       = errors.New("fragment bin array too large")
)
