package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cometgo/internal/input"
)

// batchRanges collects the scan ranges of every batch of j.
func batchRanges(j Job) [][2]int {
	var out [][2]int
	j.each(func(b Job) bool {
		out = append(out, [2]int{b.FirstScan, b.LastScan})
		return true
	})
	return out
}

func TestBatches(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name              string
		first, last, size int
		want              [][2]int
	}{
		{name: "no batching", first: 1, last: 100, size: 0, want: [][2]int{{1, 100}}},
		{name: "fits in one batch", first: 1, last: 100, size: 100, want: [][2]int{{1, 100}}},
		{name: "even split", first: 1, last: 30, size: 10, want: [][2]int{{1, 10}, {11, 20}, {21, 30}}},
		{name: "short last batch", first: 1000, last: 1500, size: 200, want: [][2]int{{1000, 1199}, {1200, 1399}, {1400, 1500}}},
		{name: "open end", first: 500, last: 0, size: 10, want: [][2]int{{500, 0}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := input.File{Name: "run.mzXML", Analysis: input.SpecificScanRange, FirstScan: tc.first, LastScan: tc.last}
			job, err := planFileJob(f, "", "db.fasta", tc.size, outputSettings{})
			require.NoError(t, err)

			assert.Equal(t, len(tc.want), job.Batches)
			if diff := cmp.Diff(tc.want, batchRanges(job)); diff != "" {
				t.Errorf("batch ranges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBatches_BuiltOnDemand(t *testing.T) {
	t.Parallel()

	f := input.File{Name: "run.mzXML", Analysis: input.SpecificScanRange, FirstScan: 1, LastScan: 2000000000}
	job, err := planFileJob(f, "", "db.fasta", 1, outputSettings{})
	require.NoError(t, err)
	require.Equal(t, 2000000000, job.Batches)

	var got [][2]int
	job.each(func(b Job) bool {
		got = append(got, [2]int{b.FirstScan, b.LastScan})
		return len(got) < 3
	})
	assert.Equal(t, [][2]int{{1, 1}, {2, 2}, {3, 3}}, got)

	last := job.batch(job.Batches - 1)
	assert.Equal(t, 2000000000, last.FirstScan)
	assert.Equal(t, 2000000000, last.LastScan)
}

func TestOutputsFor(t *testing.T) {
	t.Parallel()

	all := outputSettings{PepXML: 1, SQT: 1, Text: 1, Pin: 1, MzID: 1, TextExtension: "tsv"}

	t.Run("all formats", func(t *testing.T) {
		want := []Output{
			{Format: "pepxml", Path: "run.pep.xml"},
			{Format: "sqt", Path: "run.sqt"},
			{Format: "txt", Path: "run.tsv"},
			{Format: "pin", Path: "run.pin"},
			{Format: "mzid", Path: "run.mzid"},
		}
		if diff := cmp.Diff(want, outputsFor("run", all)); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("separate decoys with suffix", func(t *testing.T) {
		s := outputSettings{PepXML: 1, Pin: 1, TextExtension: "txt", Suffix: "_v2", DecoySearch: 2}
		want := []Output{
			{Format: "pepxml", Path: "run_v2.pep.xml"},
			{Format: "pepxml", Path: "run_v2.decoy.pep.xml", Decoy: true},
			{Format: "pin", Path: "run_v2.pin"},
		}
		if diff := cmp.Diff(want, outputsFor("run", s)); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nothing enabled", func(t *testing.T) {
		assert.Empty(t, outputsFor("run", outputSettings{TextExtension: "txt"}))
	})
}

func TestBaseNameFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		file     input.File
		explicit string
		want     string
	}{
		{name: "strip extension", file: input.File{Name: "/data/run1.mzXML"}, want: "/data/run1"},
		{name: "strip gz", file: input.File{Name: "run1.mzML.gz"}, want: "run1"},
		{name: "explicit", file: input.File{Name: "run1.mzXML"}, explicit: "custom", want: "custom"},
		{
			name: "scan range",
			file: input.File{Name: "run1.mgf", Analysis: input.SpecificScanRange, FirstScan: 10, LastScan: 20},
			want: "run1.10-20",
		},
		{
			name: "single scan",
			file: input.File{Name: "run1.mgf", Analysis: input.SpecificScan, FirstScan: 10, LastScan: 10},
			want: "run1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, baseNameFor(tc.file, tc.explicit))
		})
	}
}

func TestWorkerCount(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name                      string
		threads, cpus, jobs, want int
	}{
		{name: "poll cpus", threads: 0, cpus: 8, jobs: 100, want: 8},
		{name: "explicit", threads: 3, cpus: 8, jobs: 100, want: 3},
		{name: "leave cores free", threads: -2, cpus: 8, jobs: 100, want: 6},
		{name: "never below one", threads: -20, cpus: 8, jobs: 100, want: 1},
		{name: "capped at max threads", threads: 500, cpus: 8, jobs: 1000, want: 128},
		{name: "capped at job count", threads: 16, cpus: 8, jobs: 2, want: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WorkerCount(tc.threads, tc.cpus, tc.jobs))
		})
	}
}
