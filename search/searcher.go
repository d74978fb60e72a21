package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/lostfound/clarify"
	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/match"
	"github.com/poiesic/lostfound/privacy"
	"github.com/poiesic/lostfound/storage"
)

// Searcher finds and explains matches between lost and found reports.
type Searcher struct {
	reportRepository storage.ReportRepository
	ranker           *match.Ranker
	decode           match.Decoder
	logger           *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithDecoder sets how stored feature records are decoded for question selection.
// Default is storage.DecodeFeatureRecordOrEmpty.
func WithDecoder(decode match.Decoder) Option {
	return func(s *Searcher) error {
		if decode != nil {
			s.decode = decode
		}
		return nil
	}
}

// NewSearcher creates a new searcher. The ranker is not released by the searcher.
func NewSearcher(reportRepository storage.ReportRepository, ranker *match.Ranker, opts ...Option) (*Searcher, error) {
	if reportRepository == nil {
		return nil, ErrReportRepositoryRequired
	}
	if ranker == nil {
		return nil, ErrRankerRequired
	}

	s := &Searcher{
		reportRepository: reportRepository,
		ranker:           ranker,
		decode:           storage.DecodeFeatureRecordOrEmpty,
		logger:           slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Matches is the outcome of matching one report.
type Matches struct {
	Report *core.Report

	// Results are the best matches, highest score first.
	Results []core.MatchResult

	// Candidates holds the matched reports, aligned with Results.
	Candidates []*core.Report

	// Ambiguous is set when the ranking warrants a clarifying question.
	Ambiguous bool

	// Question is the clarifying question to show, if any. It is never set for
	// a report that already had a question answered.
	Question *core.ClarifyingQuestion
}

// FindMatches ranks the opposite-kind reports against report id.
func (s *Searcher) FindMatches(ctx context.Context, id core.ID) (*Matches, error) {
	return s.FindMatchesWithMonitor(ctx, id, nil)
}

// FindMatchesWithMonitor ranks the opposite-kind reports against report id.
// The monitor receives callbacks at each stage of the process.
func (s *Searcher) FindMatchesWithMonitor(ctx context.Context, id core.ID, monitor MatchMonitor) (*Matches, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	report, err := s.reportRepository.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	monitor.Start(report)

	// 1. Load every opposite-kind report, newest first
	candidates, err := s.reportRepository.GetRecentReports(ctx, report.Kind.Opposite(), 0)
	if err != nil {
		s.logger.Error("error loading candidates", "id", id, "kind", report.Kind.Opposite(), "err", err)
		return nil, err
	}
	monitor.AfterCandidateLoad(candidates)

	// 2. Shortlist, score and rank
	cfg := s.ranker.Config()
	results := s.ranker.Rank(report, candidates, cfg.TopK)
	monitor.AfterRanking(results)

	byID := make(map[core.ID]*core.Report, len(candidates))
	for _, c := range candidates {
		byID[c.Id] = c
	}
	matched := make([]*core.Report, len(results))
	for i, res := range results {
		matched[i] = byID[res.OtherId]
	}

	m := &Matches{
		Report:     report,
		Results:    results,
		Candidates: matched,
		Ambiguous:  clarify.ShouldAsk(results, cfg),
	}

	// 3. Pick a clarifying question when the ranking is ambiguous
	if m.Ambiguous && report.ClarifyKey == "" {
		pool := matched[:min(len(matched), cfg.QuestionPoolSize)]
		records := make([]*core.FeatureRecord, len(pool))
		for i, c := range pool {
			records[i] = s.decode(c.Features)
		}
		if q, ok := clarify.ChooseQuestion(s.decode(report.Features), records, cfg.QuestionPoolSize); ok {
			m.Question = &q
			monitor.QuestionChosen(q)
		}
	}

	s.logger.Debug("matched report", "id", id, "candidates", len(candidates), "results", len(results),
		"ambiguous", m.Ambiguous, "question", m.Question != nil)
	monitor.Finish(m)

	return m, nil
}

// View is a report prepared for display. Free text has contact details masked.
type View struct {
	Id            core.ID
	Kind          core.Kind
	Title         string
	Description   string
	LocationText  string
	EventTime     string
	DuplicateOf   core.ID
	ClarifyKey    string
	ClarifyAnswer string
}

// MaskedView loads report id and masks emails, phone numbers and long digit
// runs in its free text.
func (s *Searcher) MaskedView(ctx context.Context, id core.ID) (*View, error) {
	report, err := s.reportRepository.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewView(report), nil
}

// NewView masks report for display.
func NewView(report *core.Report) *View {
	return &View{
		Id:            report.Id,
		Kind:          report.Kind,
		Title:         privacy.MaskSensitive(report.Title),
		Description:   privacy.MaskSensitive(report.Description),
		LocationText:  privacy.MaskSensitive(report.LocationText),
		EventTime:     report.EventTime,
		DuplicateOf:   report.DuplicateOf,
		ClarifyKey:    report.ClarifyKey,
		ClarifyAnswer: privacy.MaskSensitive(report.ClarifyAnswer),
	}
}
