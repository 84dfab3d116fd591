package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/f1data/f1scrape/internal/model"
)

// Job pairs a run accumulator with the pipeline that fills it.
type Job struct {
	// Run is the accumulator the pipeline executes against.
	Run *model.ScrapeRun

	// Pipeline produces the run's dataset.
	Pipeline *Pipeline
}

// Batch executes several dataset pipelines concurrently.
//
// Design decision: We use a separate Batch rather than adding multi-dataset
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-dataset execution
// 2. The datasets are independent, so only their composition is concurrent
// 3. It provides cleaner separation of concerns
//
// Each pipeline stays strictly sequential inside; the batch only overlaps
// whole pipelines with each other.
type Batch struct {
	// concurrency is the maximum number of pipelines running at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithBatchLogger sets a custom logger for batch execution.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrently running pipelines.
// Default is 2, one per dataset.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatch creates a new Batch.
func NewBatch(opts ...BatchOption) *Batch {
	b := &Batch{
		concurrency: 2,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Execute runs every job's pipeline concurrently and waits for all of them.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// A failed job does not cancel the others; its error is collected and the
// combined errors are returned once every job has finished. Cancellation of
// the parent context is the only thing that stops the batch early.
func (b *Batch) Execute(ctx context.Context, jobs ...Job) error {
	b.logger.Info("starting batch",
		"jobs", len(jobs),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	// One slot per job, so each goroutine writes its own index and the
	// collected errors keep job order.
	errs := make([]error, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			b.logger.Info("starting pipeline",
				"dataset", job.Run.Dataset,
			)

			if err := job.Pipeline.Execute(ctx, job.Run); err != nil {
				b.logger.Warn("pipeline failed",
					"dataset", job.Run.Dataset,
					"error", err,
				)
				// Don't return the error to errgroup. The other dataset is
				// independent and should keep running.
				errs[i] = fmt.Errorf("%s: %w", job.Run.Dataset, err)
				return nil
			}

			b.logger.Info("pipeline completed",
				"dataset", job.Run.Dataset,
				"records", job.Run.RecordCount(),
			)

			return nil
		})
	}

	// Only cancellation errors come back from the group itself.
	if err := g.Wait(); err != nil {
		return err
	}

	b.logger.Info("batch complete",
		"jobs", len(jobs),
		"elapsed", time.Since(startTime),
	)

	return errors.Join(errs...)
}
