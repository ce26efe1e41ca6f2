package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cometgo/internal/catalog"
	"github.com/vk/cometgo/internal/params"
	"github.com/vk/cometgo/internal/search"
	"github.com/vk/cometgo/internal/testutil"
)

func intPtr(n int) *int { return &n }

func loadManager(t *testing.T, body string) *search.Manager {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	ctx, _ := testutil.LogContext(t)
	p, err := params.Load(ctx, testutil.WriteParamsFile(t, t.TempDir(), body), cat)
	require.NoError(t, err)
	return search.NewManager(p, nil)
}

func TestOverridesApply_ScanRange(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		overrides Overrides
		want      params.IntRange
	}{
		{name: "none", want: params.IntRange{Start: 100, End: 900}},
		{name: "first only keeps end", overrides: Overrides{FirstScan: intPtr(200)}, want: params.IntRange{Start: 200, End: 900}},
		{name: "last only keeps start", overrides: Overrides{LastScan: intPtr(300)}, want: params.IntRange{Start: 100, End: 300}},
		{name: "both", overrides: Overrides{FirstScan: intPtr(1000), LastScan: intPtr(1500)}, want: params.IntRange{Start: 1000, End: 1500}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := loadManager(t, "scan_range = 100 900")

			require.NoError(t, tc.overrides.Apply(m))

			got, err := params.Get[params.IntRange](m.Params(), "scan_range")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			raw, ok := m.GetParam("scan_range")
			require.True(t, ok)
			assert.Equal(t, fmt.Sprintf("%d %d", tc.want.Start, tc.want.End), raw)
		})
	}
}

func TestOverridesApply_Other(t *testing.T) {
	t.Parallel()

	m := loadManager(t, "spectrum_batch_size = 10\ndatabase_name = /old.fasta")
	o := Overrides{Database: "/new db.fasta", BatchSize: intPtr(2500), CreateIndex: true}

	require.NoError(t, o.Apply(m))
	p := m.Params()

	db, err := params.Get[string](p, "database_name")
	require.NoError(t, err)
	assert.Equal(t, "/new db.fasta", db)

	batch, err := params.Get[int](p, "spectrum_batch_size")
	require.NoError(t, err)
	assert.Equal(t, 2500, batch)

	idx, err := params.Get[int](p, "create_index")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}
