// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package match

import (
	"fmt"
	"runtime"
)

// Default values for the empirically chosen thresholds.
const (
	DefaultDuplicateThreshold = 0.85
	DefaultAskTopScore        = 0.55
	DefaultAskGap             = 0.08
	DefaultShortlistSize      = 200
	DefaultDuplicateScanLimit = 200
	DefaultTopK               = 5
	DefaultQuestionPoolSize   = 5
)

// Config holds the tunable constants of matching and disambiguation.
type Config struct {
	// DuplicateThreshold is the minimum same-kind score that flags a submission
	// as a duplicate.
	// Default: 0.85
	DuplicateThreshold float64

	// AskTopScore is the top match score below which a clarifying question is asked.
	// Default: 0.55
	AskTopScore float64

	// AskGap is the gap between the two best scores below which a clarifying
	// question is asked.
	// Default: 0.08
	AskGap float64

	// ShortlistSize bounds how many candidates are scored in full.
	// Default: 200
	ShortlistSize int

	// DuplicateScanLimit bounds how many recent same-kind reports are compared
	// against a new submission.
	// Default: 200
	DuplicateScanLimit int

	// TopK is the number of matches shown for a report.
	// Default: 5
	TopK int

	// QuestionPoolSize is how many of the top matches are inspected when
	// choosing a clarifying question.
	// Default: 5
	QuestionPoolSize int

	// Workers is the size of the scoring worker pool.
	// Default: runtime.NumCPU() / 2, with a minimum of 1
	Workers int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDuplicateThreshold sets the duplicate detection threshold.
func WithDuplicateThreshold(threshold float64) ConfigOption {
	return func(c *Config) {
		c.DuplicateThreshold = threshold
	}
}

// WithAskTopScore sets the top score below which a question is asked.
func WithAskTopScore(score float64) ConfigOption {
	return func(c *Config) {
		c.AskTopScore = score
	}
}

// WithAskGap sets the top-two gap below which a question is asked.
func WithAskGap(gap float64) ConfigOption {
	return func(c *Config) {
		c.AskGap = gap
	}
}

// WithShortlistSize sets the retrieval shortlist bound.
func WithShortlistSize(size int) ConfigOption {
	return func(c *Config) {
		c.ShortlistSize = size
	}
}

// WithDuplicateScanLimit sets how many recent same-kind reports are scanned.
func WithDuplicateScanLimit(limit int) ConfigOption {
	return func(c *Config) {
		c.DuplicateScanLimit = limit
	}
}

// WithTopK sets the number of matches returned for a report.
func WithTopK(k int) ConfigOption {
	return func(c *Config) {
		c.TopK = k
	}
}

// WithQuestionPoolSize sets how many top matches feed question selection.
func WithQuestionPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.QuestionPoolSize = size
	}
}

// WithWorkers sets the scoring worker pool size.
func WithWorkers(workers int) ConfigOption {
	return func(c *Config) {
		c.Workers = workers
	}
}

// DefaultConfig returns a Config holding the default thresholds.
func DefaultConfig() *Config {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	return &Config{
		DuplicateThreshold: DefaultDuplicateThreshold,
		AskTopScore:        DefaultAskTopScore,
		AskGap:             DefaultAskGap,
		ShortlistSize:      DefaultShortlistSize,
		DuplicateScanLimit: DefaultDuplicateScanLimit,
		TopK:               DefaultTopK,
		QuestionPoolSize:   DefaultQuestionPoolSize,
		Workers:            workers,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//		WithDuplicateThreshold(0.9),
//		WithTopK(10),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that every value is in range.
func (c *Config) Validate() error {
	if c.DuplicateThreshold < MinScore || c.DuplicateThreshold > MaxScore {
		return fmt.Errorf("%w: duplicate threshold %v outside [%v, %v]", ErrInvalidConfig, c.DuplicateThreshold, MinScore, MaxScore)
	}
	if c.AskGap < 0 {
		return fmt.Errorf("%w: negative ask gap %v", ErrInvalidConfig, c.AskGap)
	}
	if c.ShortlistSize < 1 {
		return fmt.Errorf("%w: shortlist size must be positive, got %d", ErrInvalidConfig, c.ShortlistSize)
	}
	if c.DuplicateScanLimit < 0 {
		return fmt.Errorf("%w: negative duplicate scan limit %d", ErrInvalidConfig, c.DuplicateScanLimit)
	}
	if c.TopK < 1 {
		return fmt.Errorf("%w: top k must be positive, got %d", ErrInvalidConfig, c.TopK)
	}
	if c.QuestionPoolSize < 1 {
		return fmt.Errorf("%w: question pool size must be positive, got %d", ErrInvalidConfig, c.QuestionPoolSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}
