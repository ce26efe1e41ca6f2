package search

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/vk/cometgo/internal/catalog"
	"github.com/vk/cometgo/internal/ctxlog"
	"github.com/vk/cometgo/internal/input"
	"github.com/vk/cometgo/internal/params"
)

// Manager owns the state of one search run.
type Manager struct {
	params   *params.Params
	engine   Engine
	inputs   []input.File
	baseName string

	// exists reports whether a path is present; tests replace it.
	exists func(string) bool
}

// NewManager returns a manager searching with p and dispatching to engine.
func NewManager(p *params.Params, engine Engine) *Manager {
	return &Manager{
		params: p,
		engine: engine,
		exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// Params exposes the parameter set for typed reads with params.Get.
func (m *Manager) Params() *params.Params {
	return m.params
}

// SetParam parses raw as the value of name.
func (m *Manager) SetParam(name, raw string) error {
	return m.params.Set(name, raw)
}

// GetParam returns the text form of name.
func (m *Manager) GetParam(name string) (string, bool) {
	e, ok := m.params.Lookup(name)
	return e.Raw, ok
}

// SetOutputFileBaseName overrides the output base name. It is only valid
// for a run with a single input file.
func (m *Manager) SetOutputFileBaseName(name string) {
	m.baseName = name
}

// AddInputFiles appends files to the run.
func (m *Manager) AddInputFiles(files ...*input.File) {
	for _, f := range files {
		if f != nil {
			m.inputs = append(m.inputs, *f)
		}
	}
}

// DoSearch validates the run, plans its jobs and executes them. It returns
// the first job error; the remaining jobs are cancelled.
func (m *Manager) DoSearch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Planning search.", "inputs", len(m.inputs))

	planned, err := m.Plan()
	if err != nil {
		return err
	}
	jobs := 0
	for _, j := range planned {
		jobs += j.Batches
	}

	threads, err := params.Get[int](m.params, "num_threads")
	if err != nil {
		return err
	}
	workers := WorkerCount(threads, runtime.NumCPU(), jobs)

	size, err := m.scratchSize()
	if err != nil {
		return err
	}

	logger.Info("Starting search.", "jobs", jobs, "workers", workers)
	if err := run(ctx, m.engine, planned, workers, size); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	logger.Info("Search finished.", "jobs", jobs)
	return nil
}

// Plan validates the run and returns one job per input file, or the index
// job. Scan range jobs are split into their batches while the search runs.
func (m *Manager) Plan() ([]Job, error) {
	createIndex, err := params.Get[int](m.params, "create_index")
	if err != nil {
		return nil, err
	}
	database, err := params.Get[string](m.params, "database_name")
	if err != nil {
		return nil, err
	}

	if createIndex != 0 {
		if err := m.checkDatabase(database); err != nil {
			return nil, err
		}
		return []Job{{Kind: IndexJob, Database: database, IndexPath: database + ".idx", Batches: 1}}, nil
	}

	if len(m.inputs) == 0 {
		return nil, ErrNoInput
	}
	if m.baseName != "" && len(m.inputs) > 1 {
		return nil, fmt.Errorf("%w (%d input files)", ErrBaseNameMultiple, len(m.inputs))
	}
	if err := m.checkDatabase(database); err != nil {
		return nil, err
	}

	settings, err := m.outputSettings()
	if err != nil {
		return nil, err
	}
	batchSize, err := params.Get[int](m.params, "spectrum_batch_size")
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(m.inputs))
	for _, f := range m.inputs {
		job, err := planFileJob(f, m.baseName, database, batchSize, settings)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (m *Manager) checkDatabase(database string) error {
	if database == "" {
		return ErrNoDatabase
	}
	if !m.exists(database) {
		return fmt.Errorf("%w: %q", ErrDatabaseNotFound, database)
	}
	return nil
}

func (m *Manager) outputSettings() (outputSettings, error) {
	var s outputSettings
	ints := []struct {
		name string
		dst  *int
	}{
		{"output_pepxmlfile", &s.PepXML},
		{"output_sqtfile", &s.SQT},
		{"output_txtfile", &s.Text},
		{"output_percolatorfile", &s.Pin},
		{"output_mzidentmlfile", &s.MzID},
		{"decoy_search", &s.DecoySearch},
	}
	for _, f := range ints {
		v, err := params.Get[int](m.params, f.name)
		if err != nil {
			return s, err
		}
		*f.dst = v
	}
	var err error
	if s.TextExtension, err = params.Get[string](m.params, "text_file_extension"); err != nil {
		return s, err
	}
	if s.Suffix, err = params.Get[string](m.params, "output_suffix"); err != nil {
		return s, err
	}
	return s, nil
}

// maxScratchBins bounds the length of each scratch array.
const maxScratchBins = math.MaxInt32

// scratchSize is the number of fragment bins covering the digest mass range.
func (m *Manager) scratchSize() (int, error) {
	massRange, err := params.Get[params.DoubleRange](m.params, "digest_mass_range")
	if err != nil {
		return 0, err
	}
	binTol, err := params.Get[float64](m.params, "fragment_bin_tol")
	if err != nil {
		return 0, err
	}
	if binTol <= 0 {
		return 0, fmt.Errorf("%w: fragment_bin_tol must be positive, got %g", ErrScratchSize, binTol)
	}
	bins := (massRange.End+100.0)/binTol + 1
	if math.IsNaN(bins) || math.IsInf(bins, 0) || bins < 1 || bins > maxScratchBins {
		return 0, fmt.Errorf("%w: digest_mass_range end %g with fragment_bin_tol %g needs %g bins (max %d)",
			ErrScratchSize, massRange.End, binTol, bins, maxScratchBins)
	}
	return int(bins), nil
}

// WorkerCount resolves num_threads: values below 1 count back from the
// number of CPUs, the result is capped at catalog.MaxThreads and at the
// number of jobs, and is never below 1.
func WorkerCount(numThreads, cpus, jobs int) int {
	n := numThreads
	if n <= 0 {
		n = cpus + numThreads
	}
	if n > catalog.MaxThreads {
		n = catalog.MaxThreads
	}
	if jobs > 0 && n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}
