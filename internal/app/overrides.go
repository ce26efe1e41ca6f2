package app

import (
	"fmt"
	"strconv"

	"github.com/vk/cometgo/internal/params"
	"github.com/vk/cometgo/internal/search"
)

// Apply writes the overrides into the manager's parameter set. -F and -L
// each replace one end of scan_range and keep the other end from the
// parameter file.
func (o Overrides) Apply(m *search.Manager) error {
	if o.Database != "" {
		if err := m.SetParam("database_name", o.Database); err != nil {
			return err
		}
	}

	if o.FirstScan != nil || o.LastScan != nil {
		r, err := params.Get[params.IntRange](m.Params(), "scan_range")
		if err != nil {
			return err
		}
		if o.FirstScan != nil {
			r.Start = *o.FirstScan
		}
		if o.LastScan != nil {
			r.End = *o.LastScan
		}
		if err := m.SetParam("scan_range", fmt.Sprintf("%d %d", r.Start, r.End)); err != nil {
			return err
		}
	}

	if o.BatchSize != nil {
		if err := m.SetParam("spectrum_batch_size", strconv.Itoa(*o.BatchSize)); err != nil {
			return err
		}
	}

	if o.CreateIndex {
		if err := m.SetParam("create_index", "1"); err != nil {
			return err
		}
	}
	return nil
}
