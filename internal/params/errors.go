package params

import "errors"

// Fatal configuration errors returned by Load and WriteTemplateFile. Per-field
// problems are logged and never surface as errors.
var (
	ErrOpen                = errors.New("cannot open parameter file")
	ErrIncompatibleVersion = errors.New("incompatible parameter file version")
	ErrOutdated            = errors.New("outdated parameter file")
	ErrMissingEnzyme       = errors.New("enzyme is missing definition in parameter file")
	ErrWriteTemplate       = errors.New("cannot write parameter file")
	ErrUnknownParam        = errors.New("unknown parameter")
)
