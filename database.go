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
package lostfound

import (
	"io"
	"log/slog"

	"github.com/poiesic/lostfound/intake"
	"github.com/poiesic/lostfound/match"
	"github.com/poiesic/lostfound/rederive"
	"github.com/poiesic/lostfound/retrieval"
	"github.com/poiesic/lostfound/search"
	"github.com/poiesic/lostfound/storage"
	"github.com/poiesic/lostfound/storage/badger"
)

// Database wires storage, feature decoding and matching together.
type Database struct {
	backend        *badger.Backend
	reportRepo     storage.ReportRepository
	checkpointRepo storage.CheckpointRepository
	features       *storage.FeatureCache
	ranker         *match.Ranker
	logger         *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	matchConfig *match.Config
	similarity  retrieval.SimilarityBackend
	inMemory    bool
	logger      *slog.Logger
}

// WithMatchConfig sets the matching thresholds.
// Default is match.DefaultConfig().
func WithMatchConfig(cfg *match.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.matchConfig = cfg
		}
	}
}

// WithSimilarityBackend sets the backend used to shortlist candidates.
// Default is retrieval.TFIDF. A nil backend shortlists the newest candidates.
func WithSimilarityBackend(backend retrieval.SimilarityBackend) DatabaseOption {
	return func(o *databaseOptions) {
		o.similarity = backend
	}
}

// WithInMemory keeps all data in memory. The file path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger handed to every component.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		matchConfig: match.DefaultConfig(),
		similarity:  retrieval.TFIDF{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if err := options.matchConfig.Validate(); err != nil {
		return nil, err
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	// Create report repository
	reportRepo, err := badger.NewReportRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create checkpoint repository
	checkpointRepo := badger.NewCheckpointRepository(backend)

	// Decoded feature records are shared by every component
	features := storage.NewFeatureCache(storage.WithCacheLogger(options.logger))

	ranker, err := match.NewRanker(match.NewScorer(features.Decode),
		match.WithConfig(options.matchConfig),
		match.WithRetriever(retrieval.New(options.similarity, retrieval.WithLogger(options.logger))),
		match.WithLogger(options.logger),
	)
	if err != nil {
		reportRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:        backend,
		reportRepo:     reportRepo,
		checkpointRepo: checkpointRepo,
		features:       features,
		ranker:         ranker,
		logger:         options.logger,
	}, nil
}

func (db *Database) Close() error {
	// Stop scoring workers first
	db.ranker.Release()
	db.features.Flush()

	// Close repositories
	if err := db.reportRepo.Close(); err != nil {
		db.logger.Error("error closing report repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ReportRepository() storage.ReportRepository {
	return db.reportRepo
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

// MatchConfig returns the thresholds in use.
func (db *Database) MatchConfig() *match.Config {
	return db.ranker.Config()
}

// Ranker returns the shared ranker. It is released by Close.
func (db *Database) Ranker() *match.Ranker {
	return db.ranker
}

func (db *Database) NewIntakePipeline(opts ...intake.Option) (*intake.Pipeline, error) {
	opts = append([]intake.Option{intake.WithDecoder(db.features.Decode), intake.WithLogger(db.logger)}, opts...)
	return intake.NewPipeline(db.reportRepo, db.ranker, opts...)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithDecoder(db.features.Decode), search.WithLogger(db.logger)}, opts...)
	return search.NewSearcher(db.reportRepo, db.ranker, opts...)
}

// NewRederiver creates a rederiver that checkpoints its progress.
func (db *Database) NewRederiver(config *rederive.Config, progress io.Writer) (*rederive.Rederiver, error) {
	return rederive.NewRederiver(db.reportRepo, config, progress,
		rederive.WithCheckpoints(db.checkpointRepo),
		rederive.WithLogger(db.logger),
	)
}
