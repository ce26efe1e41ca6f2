package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cometgo/internal/input"
	"github.com/vk/cometgo/internal/params"
	"github.com/vk/cometgo/internal/search"
	"github.com/vk/cometgo/internal/testutil"
)

// setupApp creates an App logging at debug level into a buffer.
func setupApp(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()
	cfg.LogLevel = "debug"
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	logs := &testutil.SafeBuffer{}
	a, err := NewApp(logs, config, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("COMET_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, logs
}

func TestRun_PrintParams(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	a, logs := setupApp(t, Config{PrintParams: true, WorkDir: dir})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, params.TemplateName))
	assert.Contains(t, logs.String(), "Created: comet.params.new")
}

func TestRun_TemplateDrivesSearch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	printer, _ := setupApp(t, Config{PrintParams: true, WorkDir: dir})
	require.NoError(t, printer.Run(context.Background()))

	db := testutil.WriteFile(t, dir, "db.fasta", ">p1\nPEPTIDEK\n")
	spectra := testutil.WriteFile(t, dir, "run.mzXML", "<mzXML/>")
	a, logs := setupApp(t, Config{
		ParamsFile: filepath.Join(dir, params.TemplateName),
		Inputs:     []string{spectra + ":100-200"},
		Overrides:  Overrides{Database: db},
		Warnings:   []string{"Missing text for parameter option -N<basename>.  Ignored."},
	})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	out := logs.String()
	assert.Contains(t, out, "Missing text for parameter option -N<basename>.")
	assert.Contains(t, out, "msg=Searching.")
	assert.Contains(t, out, "first_scan=100")
	assert.Contains(t, out, "last_scan=200")
	assert.Contains(t, out, "msg=\"Search finished.\"")
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	spectra := testutil.WriteFile(t, dir, "run.mzXML", "<mzXML/>")
	noVersion := testutil.WriteFile(t, dir, "old.params", "num_results = 5\n"+testutil.EnzymeTable)
	valid := testutil.WriteParamsFile(t, dir, "")

	testCases := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "missing params file",
			cfg:     Config{ParamsFile: filepath.Join(dir, "nope.params"), Inputs: []string{spectra}},
			wantErr: params.ErrOpen,
		},
		{
			name:    "missing version marker",
			cfg:     Config{ParamsFile: noVersion, Inputs: []string{spectra}},
			wantErr: params.ErrIncompatibleVersion,
		},
		{
			name:    "missing input file",
			cfg:     Config{ParamsFile: valid, Inputs: []string{filepath.Join(dir, "missing.mzXML")}},
			wantErr: input.ErrNotFound,
		},
		{
			name:    "no input files",
			cfg:     Config{ParamsFile: valid},
			wantErr: search.ErrNoInput,
		},
		{
			name:    "template into missing directory",
			cfg:     Config{PrintParams: true, WorkDir: filepath.Join(dir, "no", "such")},
			wantErr: params.ErrWriteTemplate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := setupApp(t, tc.cfg)

			err := a.Run(context.Background())

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
