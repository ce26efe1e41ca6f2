// Package input resolves positional command-line arguments into input files
// and the part of each file to analyze.
package input

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vk/cometgo/internal/params"
)

// ErrNotFound is returned when the file named by an argument does not exist.
var ErrNotFound = errors.New("input file not found")

// Analysis is the portion of a file that is searched.
type Analysis int

const (
	EntireFile Analysis = iota
	SpecificScan
	SpecificScanRange
)

func (a Analysis) String() string {
	switch a {
	case EntireFile:
		return "entire_file"
	case SpecificScan:
		return "specific_scan"
	case SpecificScanRange:
		return "specific_scan_range"
	}
	return fmt.Sprintf("analysis(%d)", int(a))
}

// File is one input file and the scans selected from it.
type File struct {
	Name      string
	Analysis  Analysis
	FirstScan int
	LastScan  int
}

// Parse reads "<file>[:<scans>]" where scans is "a-b", "a+n" or "a". Without a
// scan specifier the scan_range parameter decides: "0 0" means the entire
// file, anything else selects that range. exists reports whether a path is
// present; nil uses os.Stat.
func Parse(arg string, scanRange params.IntRange, exists func(string) bool) (*File, error) {
	if exists == nil {
		exists = fileExists
	}

	i := nameEnd(arg)
	f := &File{Name: arg[:i]}
	if !exists(f.Name) {
		return f, fmt.Errorf("%w: %q", ErrNotFound, f.Name)
	}

	scan := firstToken(arg[i:], ":")
	if scan == "" {
		if scanRange.Start == 0 && scanRange.End == 0 {
			f.Analysis = EntireFile
			return f, nil
		}
		f.Analysis = SpecificScanRange
		f.FirstScan = scanRange.Start
		f.LastScan = scanRange.End
		return f, nil
	}

	switch {
	case strings.Contains(scan, "-"):
		f.Analysis = SpecificScanRange
		toks := tokens(scan, "-")
		if len(toks) > 0 {
			f.FirstScan = atoi(toks[0])
		}
		if len(toks) > 1 {
			f.LastScan = atoi(toks[1])
		}
	case strings.Contains(scan, "+"):
		f.Analysis = SpecificScanRange
		toks := tokens(scan, "+")
		if len(toks) > 0 {
			f.FirstScan = atoi(toks[0])
		}
		if len(toks) > 1 {
			f.LastScan = f.FirstScan + atoi(toks[1])
		}
	default:
		f.Analysis = SpecificScan
		f.FirstScan = atoi(scan)
		f.LastScan = f.FirstScan
	}
	return f, nil
}

// nameEnd returns the index of the first ':' that is followed by a character
// other than '\' or '/', so drive letters stay part of the file name. A
// trailing ':' is kept in the name.
func nameEnd(arg string) int {
	for i := 0; i < len(arg); i++ {
		if arg[i] != ':' || i+1 >= len(arg) {
			continue
		}
		if next := arg[i+1]; next != '\\' && next != '/' {
			return i
		}
	}
	return len(arg)
}

// tokens splits s on any of the characters in seps and drops empty pieces.
func tokens(s, seps string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
}

func firstToken(s, seps string) string {
	if toks := tokens(s, seps); len(toks) > 0 {
		return toks[0]
	}
	return ""
}

// atoi reads a leading integer and yields 0 when there is none.
func atoi(s string) int {
	n, err := params.ScanInt(s)
	if err != nil {
		return 0
	}
	return n
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
