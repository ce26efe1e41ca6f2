package search

import (
	"context"
	"fmt"

	"github.com/vk/cometgo/internal/ctxlog"
	"github.com/vk/cometgo/internal/scratch"
	"golang.org/x/sync/errgroup"
)

// run feeds the batches of jobs to workers goroutines. Each worker claims a
// scratch buffer set per batch. The first failure cancels the group.
func run(ctx context.Context, engine Engine, jobs []Job, workers, bufSize int) error {
	pool, err := scratch.NewPool(workers, bufSize)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	ready := make(chan Job)

	g.Go(func() error {
		defer close(ready)
		for _, j := range jobs {
			j.each(func(b Job) bool {
				select {
				case ready <- b:
					return true
				case <-ctx.Done():
					return false
				}
			})
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		workerID := i
		g.Go(func() error {
			return worker(ctx, engine, pool, ready, workerID)
		})
	}
	return g.Wait()
}

// worker is the processing loop of a single worker.
func worker(ctx context.Context, engine Engine, pool *scratch.Pool, ready <-chan Job, workerID int) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for job := range ready {
		jobLogger := logger.With("workerID", workerID, "job", job.ID())
		if ctx.Err() != nil {
			jobLogger.Debug("Skipping job, run cancelled.")
			return ctx.Err()
		}

		buf, err := pool.Acquire(ctx)
		if err != nil {
			return err
		}
		jobLogger.Debug("Worker picked up job.", "slot", buf.Slot())

		jobCtx := ctxlog.WithLogger(ctx, jobLogger)
		if job.Kind == IndexJob {
			err = engine.BuildIndex(jobCtx, job, buf)
		} else {
			err = engine.Search(jobCtx, job, buf)
		}
		pool.Release(buf)

		if err != nil {
			jobLogger.Error("Job failed.", "error", err)
			return fmt.Errorf("%s: %w", job.ID(), err)
		}
		jobLogger.Debug("Job succeeded.")
	}

	logger.Debug("Worker finished.", "workerID", workerID)
	return nil
}
