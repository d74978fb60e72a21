package retrieval

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/lostfound/core"
)

// Retriever selects the candidates worth scoring in full.
type Retriever interface {
	// Shortlist returns at most topN of candidates. It never fails.
	Shortlist(current *core.Report, candidates []*core.Report, topN int) []*core.Report
}

// SimilarityBackend scores documents against a query text.
type SimilarityBackend interface {
	// Similarities returns one score per document, higher meaning closer.
	Similarities(query string, docs []string) ([]float64, error)
}

// Prefix is the Retriever used when no similarity backend is available.
// It returns the first topN candidates unchanged.
type Prefix struct{}

var _ Retriever = Prefix{}

// Shortlist implements Retriever.
func (Prefix) Shortlist(current *core.Report, candidates []*core.Report, topN int) []*core.Report {
	if topN <= 0 || len(candidates) == 0 {
		return nil
	}
	n := min(topN, len(candidates))
	out := make([]*core.Report, n)
	copy(out, candidates[:n])
	return out
}

// Ranked shortlists by backend similarity.
type Ranked struct {
	backend SimilarityBackend
	logger  *slog.Logger
}

var _ Retriever = (*Ranked)(nil)

// Option configures a Ranked retriever.
type Option func(*Ranked)

// WithLogger sets the logger used to report backend failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranked) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns a Ranked retriever over backend, or Prefix when backend is nil.
func New(backend SimilarityBackend, opts ...Option) Retriever {
	if backend == nil {
		return Prefix{}
	}
	r := &Ranked{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Shortlist implements Retriever. Candidates are ordered by descending
// similarity to current; equal scores keep their input order.
func (r *Ranked) Shortlist(current *core.Report, candidates []*core.Report, topN int) []*core.Report {
	if topN <= 0 || len(candidates) == 0 {
		return nil
	}

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = c.SearchText()
	}

	scores, err := r.backend.Similarities(current.SearchText(), docs)
	if err == nil && len(scores) != len(docs) {
		err = fmt.Errorf("%w: got %d, want %d", ErrScoreCount, len(scores), len(docs))
	}
	if err != nil {
		r.logger.Warn("similarity backend unavailable, keeping candidate order",
			"error", err, "candidates", len(candidates))
		return Prefix{}.Shortlist(current, candidates, topN)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	n := min(topN, len(candidates))
	out := make([]*core.Report, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[order[i]]
	}
	return out
}
