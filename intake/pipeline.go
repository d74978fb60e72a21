package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/extract"
	"github.com/poiesic/lostfound/match"
	"github.com/poiesic/lostfound/storage"
)

// Pipeline orchestrates report submission and clarification.
type Pipeline struct {
	reportRepository storage.ReportRepository
	ranker           *match.Ranker
	decode           match.Decoder
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithDecoder sets how stored feature records are decoded when answering.
// Default is storage.DecodeFeatureRecordOrEmpty.
func WithDecoder(decode match.Decoder) Option {
	return func(p *Pipeline) error {
		if decode != nil {
			p.decode = decode
		}
		return nil
	}
}

// NewPipeline creates a new intake pipeline. The ranker is used for
// duplicate detection and is not released by the pipeline.
func NewPipeline(reportRepository storage.ReportRepository, ranker *match.Ranker, opts ...Option) (*Pipeline, error) {
	if reportRepository == nil {
		return nil, ErrReportRepositoryRequired
	}
	if ranker == nil {
		return nil, ErrRankerRequired
	}

	p := &Pipeline{
		reportRepository: reportRepository,
		ranker:           ranker,
		decode:           storage.DecodeFeatureRecordOrEmpty,
		logger:           slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Submission holds the user supplied fields of a new report.
type Submission struct {
	Kind         string // "lost" or "found", case-insensitive
	Title        string
	Description  string
	LocationText string
	EventTime    string // Optional ISO-8601 timestamp
}

// Submit validates and stores a new report. The stored report carries its
// encoded feature record and, when a recent report of the same kind is close
// enough, the id of the report it probably duplicates.
func (p *Pipeline) Submit(ctx context.Context, sub Submission) (*core.Report, error) {
	kind, err := core.ParseKind(sub.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidReport, err)
	}

	report := &core.Report{
		Kind:         kind,
		Title:        strings.TrimSpace(sub.Title),
		Description:  strings.TrimSpace(sub.Description),
		LocationText: strings.TrimSpace(sub.LocationText),
		EventTime:    strings.TrimSpace(sub.EventTime),
	}
	if err := core.ValidateReport(report); err != nil {
		return nil, err
	}

	report.Features = storage.EncodeFeatureRecord(extract.Extract(report.SubmissionText()))

	if limit := p.ranker.Config().DuplicateScanLimit; limit > 0 {
		recent, err := p.reportRepository.GetRecentReports(ctx, kind, limit)
		if err != nil {
			p.logger.Error("error loading recent reports", "kind", kind, "err", err)
			return nil, err
		}
		if dup, ok := p.ranker.FindDuplicate(report, recent); ok {
			report.DuplicateOf = dup.Of
		}
	}

	added, err := p.reportRepository.AddReports(ctx, report)
	if err != nil {
		p.logger.Error("error storing report", "kind", kind, "err", err)
		return nil, err
	}

	p.logger.Debug("report submitted", "id", added[0].Id, "kind", kind, "duplicateOf", added[0].DuplicateOf)
	return added[0], nil
}

// Answer merges the answer to a clarifying question into the stored feature
// record of report id and records the clarified field.
func (p *Pipeline) Answer(ctx context.Context, id core.ID, key string, answer string) (*core.Report, error) {
	field, err := core.ParseFieldKey(key)
	if err != nil {
		return nil, err
	}

	report, err := p.reportRepository.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	fr := p.decode(report.Features)
	if err := extract.ApplyClarification(fr, field, answer); err != nil {
		return nil, err
	}

	report.Features = storage.EncodeFeatureRecord(fr)
	report.ClarifyKey = string(field)
	report.ClarifyAnswer = strings.TrimSpace(answer)

	updated, err := p.reportRepository.UpdateReports(ctx, report)
	if err != nil {
		p.logger.Error("error storing clarification", "id", id, "err", err)
		return nil, err
	}

	p.logger.Debug("clarification applied", "id", id, "field", field)
	return updated[0], nil
}
