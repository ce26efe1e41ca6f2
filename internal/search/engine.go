package search

import (
	"context"

	"github.com/vk/cometgo/internal/ctxlog"
	"github.com/vk/cometgo/internal/scratch"
)

// Engine runs the work planned by a Manager. Batches of the same input file
// share their Outputs and may be handed to different workers at once.
type Engine interface {
	Search(ctx context.Context, job Job, buf *scratch.Buffers) error
	BuildIndex(ctx context.Context, job Job, buf *scratch.Buffers) error
}

// LogEngine reports every job it receives and does no scoring.
type LogEngine struct{}

func (LogEngine) Search(ctx context.Context, job Job, buf *scratch.Buffers) error {
	logger := ctxlog.FromContext(ctx)
	outputs := make([]string, 0, len(job.Outputs))
	for _, o := range job.Outputs {
		outputs = append(outputs, o.Path)
	}
	logger.Info("Searching.",
		"job", job.ID(),
		"input", job.Input.Name,
		"analysis", job.Input.Analysis.String(),
		"first_scan", job.FirstScan,
		"last_scan", job.LastScan,
		"batch_size", job.BatchSize,
		"database", job.Database,
		"outputs", outputs,
		"slot", buf.Slot(),
	)
	return ctx.Err()
}

func (LogEngine) BuildIndex(ctx context.Context, job Job, buf *scratch.Buffers) error {
	ctxlog.FromContext(ctx).Info("Creating peptide index.", "database", job.Database, "index", job.IndexPath, "slot", buf.Slot())
	return ctx.Err()
}
