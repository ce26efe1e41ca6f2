package search

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/cometgo/internal/input"
)

// JobKind tells an Engine which operation a Job asks for.
type JobKind int

const (
	SearchJob JobKind = iota
	IndexJob
)

// Output is one result file written for a job.
type Output struct {
	Format string
	Path   string
	Decoy  bool
}

// Job is one unit of work: a batch of scans of an input file, or the
// creation of a peptide index.
type Job struct {
	Kind      JobKind
	Input     input.File
	Database  string
	IndexPath string

	FirstScan int
	LastScan  int
	// BatchSize is spectrum_batch_size. Scan range files are split by it;
	// whole files pass it to the engine, which reads in batches itself.
	BatchSize int
	Batch     int
	Batches   int

	Outputs []Output
}

// ID is a short label for logs.
func (j Job) ID() string {
	if j.Kind == IndexJob {
		return "index:" + filepath.Base(j.IndexPath)
	}
	name := filepath.Base(j.Input.Name)
	if j.Input.Analysis == input.EntireFile {
		return name
	}
	return fmt.Sprintf("%s:%d-%d", name, j.FirstScan, j.LastScan)
}

// outputSettings are the parameters that decide which result files exist.
type outputSettings struct {
	PepXML, SQT, Text, Pin, MzID int
	TextExtension                string
	Suffix                       string
	DecoySearch                  int
}

var outputFormats = []struct {
	format string
	ext    func(outputSettings) string
	on     func(outputSettings) bool
	decoy  bool
}{
	{"pepxml", func(outputSettings) string { return ".pep.xml" }, func(s outputSettings) bool { return s.PepXML != 0 }, true},
	{"sqt", func(outputSettings) string { return ".sqt" }, func(s outputSettings) bool { return s.SQT != 0 }, true},
	{"txt", func(s outputSettings) string { return "." + s.TextExtension }, func(s outputSettings) bool { return s.Text != 0 }, true},
	{"pin", func(outputSettings) string { return ".pin" }, func(s outputSettings) bool { return s.Pin != 0 }, false},
	{"mzid", func(outputSettings) string { return ".mzid" }, func(s outputSettings) bool { return s.MzID != 0 }, true},
}

// outputsFor lists the result files for base. With decoy_search 2 the
// decoy matches get their own ".decoy" files, except for the Percolator
// file which carries both.
func outputsFor(base string, s outputSettings) []Output {
	var out []Output
	for _, f := range outputFormats {
		if !f.on(s) {
			continue
		}
		ext := f.ext(s)
		out = append(out, Output{Format: f.format, Path: base + s.Suffix + ext})
		if f.decoy && s.DecoySearch == 2 {
			out = append(out, Output{Format: f.format, Path: base + s.Suffix + ".decoy" + ext, Decoy: true})
		}
	}
	return out
}

// baseNameFor is the output base name of an input file: the explicit -N
// name when given, otherwise the input path without its extension (and a
// trailing ".gz"), followed by ".<first>-<last>" for scan range searches.
func baseNameFor(f input.File, explicit string) string {
	if explicit != "" {
		return explicit
	}
	name := f.Name
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if f.Analysis == input.SpecificScanRange && f.LastScan > 0 {
		name = fmt.Sprintf("%s.%d-%d", name, f.FirstScan, f.LastScan)
	}
	return name
}

// batchCount is the number of batches of at most size scans covering
// [first, last]. A size of 0 or an open end (last 0) keeps a single batch.
func batchCount(first, last, size int) int {
	if size <= 0 || last <= 0 || last-first+1 <= size {
		return 1
	}
	return (last-first)/size + 1
}

// batch returns the i-th batch of a planned file job.
func (j Job) batch(i int) Job {
	if j.Batches <= 1 {
		return j
	}
	b := j
	b.Batch = i
	b.FirstScan = j.FirstScan + i*j.BatchSize
	b.LastScan = b.FirstScan + j.BatchSize - 1
	if b.LastScan > j.LastScan {
		b.LastScan = j.LastScan
	}
	return b
}

// each calls yield for every batch of j in scan order until yield returns
// false. Batches are built on demand.
func (j Job) each(yield func(Job) bool) {
	n := j.Batches
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if !yield(j.batch(i)) {
			return
		}
	}
}

// planFileJob plans one input file. Scan range files carry their whole
// range and the number of batches it splits into.
func planFileJob(f input.File, explicitBase, database string, batchSize int, s outputSettings) (Job, error) {
	job := Job{
		Kind:      SearchJob,
		Input:     f,
		Database:  database,
		BatchSize: batchSize,
		Batches:   1,
		Outputs:   outputsFor(baseNameFor(f, explicitBase), s),
	}
	if f.Analysis == input.EntireFile {
		return job, nil
	}

	if f.LastScan > 0 && f.LastScan < f.FirstScan {
		return job, fmt.Errorf("%w %d-%d for %s", ErrInvalidBatchRange, f.FirstScan, f.LastScan, f.Name)
	}
	job.FirstScan = f.FirstScan
	job.LastScan = f.LastScan
	job.Batches = batchCount(f.FirstScan, f.LastScan, batchSize)
	return job, nil
}
