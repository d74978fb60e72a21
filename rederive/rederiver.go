package rederive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/storage"
)

// ProcessorType identifies re-derivation checkpoints.
const ProcessorType = "rederive"

// Config holds configuration for the re-derivation operation.
type Config struct {
	// BatchSize is the number of reports to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of reports)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for failed storage updates
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// DryRun counts the reports that would change without writing them
	DryRun bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Summary describes a finished run.
type Summary struct {
	Total       int     // Reports stored when the run started
	Scanned     int     // Reports processed by this run
	Rewritten   int     // Reports whose record changed
	ResumedFrom core.ID // Checkpointed ID the run resumed after, 0 if none
	Elapsed     time.Duration
}

// Rederiver re-derives the feature records of every stored report.
type Rederiver struct {
	repo        storage.ReportRepository
	checkpoints storage.CheckpointRepository
	config      *Config
	progress    io.Writer
	logger      *slog.Logger
	processor   *BatchProcessor
	iterator    *ReportIterator
}

// Option configures a Rederiver.
type Option func(*Rederiver)

// WithCheckpoints enables resuming interrupted runs. Progress is saved after
// every batch and cleared once a run completes.
func WithCheckpoints(checkpoints storage.CheckpointRepository) Option {
	return func(r *Rederiver) {
		r.checkpoints = checkpoints
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Rederiver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRederiver creates a new rederiver.
// progress: where to write progress output (typically os.Stderr, io.Discard if nil)
func NewRederiver(repo storage.ReportRepository, config *Config, progress io.Writer, opts ...Option) (*Rederiver, error) {
	if repo == nil {
		return nil, ErrReportRepositoryRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	r := &Rederiver{
		repo:     repo,
		config:   config,
		progress: progress,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.processor = NewBatchProcessor(repo, config.MaxRetries, config.RetryDelay, config.DryRun, r.logger)
	r.iterator = NewReportIterator(repo, config.BatchSize)
	return r, nil
}

// Run executes the re-derivation. When checkpoints are enabled and a previous
// run was interrupted, reports up to the checkpointed ID are skipped.
func (r *Rederiver) Run(ctx context.Context) (*Summary, error) {
	total, err := r.repo.CountReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	summary := &Summary{Total: total}
	if total == 0 {
		fmt.Fprintf(r.progress, "No reports found in database (0 reports)\n")
		return summary, nil
	}

	done := 0
	if r.checkpoints != nil {
		cp, err := r.checkpoints.LoadCheckpoint(ctx, ProcessorType)
		if err != nil {
			return nil, fmt.Errorf("failed to load checkpoint: %w", err)
		}
		if cp != nil {
			summary.ResumedFrom = cp.LastID
			done, err = r.countThrough(ctx, cp.LastID)
			if err != nil {
				return nil, err
			}
			r.logger.Info("resuming re-derivation", "after", cp.LastID, "done", done)
		}
	}

	fmt.Fprintf(r.progress, "Starting re-derivation of %d reports (batch size: %d)\n",
		total-done, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start(done)

	err = r.iterator.ForEach(ctx, summary.ResumedFrom, func(reports []*core.Report) error {
		rewritten, err := r.processor.Process(ctx, reports)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		summary.Scanned += len(reports)
		tracker.Add(len(reports), rewritten)

		if r.checkpoints != nil && !r.config.DryRun {
			last := reports[len(reports)-1].Id
			if err := r.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{ProcessorType: ProcessorType, LastID: last}); err != nil {
				return fmt.Errorf("failed to save checkpoint: %w", err)
			}
		}
		return nil
	})
	summary.Rewritten = tracker.Rewritten()
	summary.Elapsed = tracker.Elapsed()
	if err != nil {
		return summary, err
	}

	tracker.Finish()

	if r.checkpoints != nil && !r.config.DryRun {
		if err := r.checkpoints.DeleteCheckpoint(ctx, ProcessorType); err != nil {
			return summary, fmt.Errorf("failed to clear checkpoint: %w", err)
		}
	}

	fmt.Fprintf(r.progress, "Re-derivation complete. Processed %d reports in %v, %d rewritten\n",
		summary.Scanned, summary.Elapsed.Round(time.Millisecond), summary.Rewritten)
	r.logger.Info("re-derivation complete", "scanned", summary.Scanned, "rewritten", summary.Rewritten,
		"dryRun", r.config.DryRun)

	return summary, nil
}

// countThrough counts the reports with an ID up to and including last.
func (r *Rederiver) countThrough(ctx context.Context, last core.ID) (int, error) {
	n := 0
	err := r.iterator.ForEach(ctx, 0, func(reports []*core.Report) error {
		for _, report := range reports {
			if report.Id > last {
				return errStop
			}
			n++
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return 0, fmt.Errorf("failed to count processed reports: %w", err)
	}
	return n, nil
}
