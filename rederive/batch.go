package rederive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/extract"
	"github.com/poiesic/lostfound/storage"
)

// Derive rebuilds the encoded feature record of report from its raw text,
// replaying its recorded clarification if it has one.
func Derive(report *core.Report) (string, error) {
	fr := extract.Extract(report.SubmissionText())
	if report.ClarifyKey != "" {
		if err := extract.ApplyClarification(fr, core.FieldKey(report.ClarifyKey), report.ClarifyAnswer); err != nil {
			return "", err
		}
	}
	return storage.EncodeFeatureRecord(fr), nil
}

// BatchProcessor re-derives the feature records of batches of reports.
type BatchProcessor struct {
	repo           storage.ReportRepository
	maxRetries     int
	retryBaseDelay time.Duration
	dryRun         bool
	logger         *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts for storage updates
// retryBaseDelay: base delay for exponential backoff
// dryRun: count changed reports without writing them back
func NewBatchProcessor(repo storage.ReportRepository, maxRetries int, retryBaseDelay time.Duration, dryRun bool, logger *slog.Logger) *BatchProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchProcessor{
		repo:           repo,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		dryRun:         dryRun,
		logger:         logger,
	}
}

// Process re-derives every report in the batch and writes back those whose
// record changed. It returns the number of changed reports.
// A report whose recorded clarification names an unknown field keeps the
// record rebuilt from its text alone.
func (bp *BatchProcessor) Process(ctx context.Context, reports []*core.Report) (int, error) {
	changed := make([]*core.Report, 0, len(reports))
	for _, report := range reports {
		encoded, err := Derive(report)
		if errors.Is(err, core.ErrUnknownField) {
			bp.logger.Warn("ignoring unknown clarification field", "id", report.Id, "field", report.ClarifyKey)
			report.ClarifyKey, report.ClarifyAnswer = "", ""
			encoded, err = Derive(report)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to derive report %d: %w", report.Id, err)
		}

		if encoded != report.Features {
			report.Features = encoded
			changed = append(changed, report)
		}
	}

	if len(changed) == 0 || bp.dryRun {
		return len(changed), nil
	}

	err := RetryWithBackoff(ctx, func() error {
		_, err := bp.repo.UpdateReports(ctx, changed...)
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrKindImmutable) {
			return Permanent(err)
		}
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return 0, fmt.Errorf("failed to update reports: %w", err)
	}

	return len(changed), nil
}
