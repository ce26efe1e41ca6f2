// Package params holds the typed search-parameter set and reads and writes
// the flat "key = value" parameter file format.
//
// Every value is stored twice: as the normalized text that would be written
// back to a file, and as a cty.Value. Callers decode the typed form into any
// compatible Go type with Get, which applies cty conversions first, so an int
// parameter can be read as an int, a float64 or a string.
//
// A parameter file is accepted only when it carries a "# comet_version" line
// naming a compatible release. Key/value parsing stops at the
// [COMET_ENZYME_INFO] header; the fixed-column enzyme table that follows is
// read to the end of the file.
package params
