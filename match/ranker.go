package match

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/retrieval"
)

// Ranker orders candidates by match score.
// Scoring is fanned out over a worker pool; the resulting order does not
// depend on which worker finishes first.
type Ranker struct {
	scorer    *Scorer
	retriever retrieval.Retriever
	config    *Config
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithRetriever sets the shortlisting strategy.
// Default is retrieval.Prefix.
func WithRetriever(retriever retrieval.Retriever) Option {
	return func(r *Ranker) error {
		if retriever != nil {
			r.retriever = retriever
		}
		return nil
	}
}

// WithConfig sets the thresholds used by the ranker.
// Default is DefaultConfig().
func WithConfig(cfg *Config) Option {
	return func(r *Ranker) error {
		if cfg == nil {
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		r.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a Ranker around scorer.
// Release must be called when the ranker is no longer needed.
func NewRanker(scorer *Scorer, opts ...Option) (*Ranker, error) {
	if scorer == nil {
		return nil, ErrScorerRequired
	}

	r := &Ranker{
		scorer:    scorer,
		retriever: retrieval.Prefix{},
		config:    DefaultConfig(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(r.config.Workers)
	if err != nil {
		return nil, err
	}
	r.pool = pool
	return r, nil
}

// Config returns the thresholds in use.
func (r *Ranker) Config() *Config {
	return r.config
}

// Scorer returns the scorer in use.
func (r *Ranker) Scorer() *Scorer {
	return r.scorer
}

// Rank shortlists candidates, scores the shortlist against current and returns
// the k best results by descending score. Equal scores keep shortlist order.
func (r *Ranker) Rank(current *core.Report, candidates []*core.Report, k int) []core.MatchResult {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	shortlist := r.retriever.Shortlist(current, candidates, r.config.ShortlistSize)
	results := r.scoreAll(current, shortlist)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// Duplicate is the outcome of a duplicate scan.
type Duplicate struct {
	Of    core.ID
	Score float64
}

// FindDuplicate compares a new submission against recent reports of the same
// kind, most recent first, and returns the best scoring one when its score
// reaches the duplicate threshold. At most DuplicateScanLimit reports are
// considered. The earliest report wins a tie.
func (r *Ranker) FindDuplicate(current *core.Report, recent []*core.Report) (Duplicate, bool) {
	scan := make([]*core.Report, 0, min(len(recent), r.config.DuplicateScanLimit))
	for _, report := range recent {
		if len(scan) == r.config.DuplicateScanLimit {
			break
		}
		if report.Kind != current.Kind || (current.Id != 0 && report.Id == current.Id) {
			continue
		}
		scan = append(scan, report)
	}
	if len(scan) == 0 {
		return Duplicate{}, false
	}

	results := r.scoreAll(current, scan)
	best := results[0]
	for _, res := range results[1:] {
		if res.Score > best.Score {
			best = res
		}
	}

	if best.Score < r.config.DuplicateThreshold {
		return Duplicate{}, false
	}
	r.logger.Info("duplicate flagged", "kind", current.Kind, "of", best.OtherId, "score", best.Score)
	return Duplicate{Of: best.OtherId, Score: best.Score}, true
}

// scoreAll scores every candidate. Results are addressed by candidate index.
func (r *Ranker) scoreAll(current *core.Report, candidates []*core.Report) []core.MatchResult {
	cur := r.scorer.decode(current.Features)
	results := make([]core.MatchResult, len(candidates))

	var wg sync.WaitGroup
	for i, candidate := range candidates {
		score := func() {
			results[i] = r.scorer.Score(current, candidate, cur, r.scorer.decode(candidate.Features))
		}
		wg.Add(1)
		if err := r.pool.Submit(func() {
			defer wg.Done()
			score()
		}); err != nil {
			r.logger.Debug("scoring inline", "err", err)
			score()
			wg.Done()
		}
	}
	wg.Wait()
	return results
}

// Release releases the worker pool.
// The ranker should not be used after calling Release.
func (r *Ranker) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
