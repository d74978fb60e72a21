package match

import "errors"

var (
	// ErrScorerRequired is returned when a Ranker is created without a Scorer.
	ErrScorerRequired = errors.New("scorer required")

	// ErrInvalidConfig is returned when a Config holds out-of-range values.
	ErrInvalidConfig = errors.New("invalid match config")
)
