package storage

import (
	"context"

	"github.com/poiesic/lostfound/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ReportRepository provides operations for managing lost and found reports.
type ReportRepository interface {
	Repository
	// AddReports adds one or more reports to storage.
	// Always generates new IDs from sequence.
	// Sets CreatedAt if not already set.
	// Returns the reports with generated IDs and timestamps populated.
	AddReports(ctx context.Context, reports ...*core.Report) ([]*core.Report, error)

	// UpdateReports replaces stored reports.
	// Returns ErrNotFound if any report doesn't exist and ErrKindImmutable if
	// an update would change a report's kind. CreatedAt is kept from the stored copy.
	UpdateReports(ctx context.Context, reports ...*core.Report) ([]*core.Report, error)

	// DeleteReports removes reports by their IDs, along with their index entries.
	// Returns ErrNotFound if any report doesn't exist.
	DeleteReports(ctx context.Context, ids ...core.ID) error

	// GetReport retrieves a single report by ID.
	// Returns ErrNotFound if the report doesn't exist.
	GetReport(ctx context.Context, id core.ID) (*core.Report, error)

	// GetReports retrieves multiple reports by their IDs.
	// Returns only the reports that exist (no error for missing reports).
	GetReports(ctx context.Context, ids ...core.ID) ([]*core.Report, error)

	// GetRecentReports retrieves the most recent reports of one kind, newest first.
	// A limit <= 0 returns every report of that kind.
	GetRecentReports(ctx context.Context, kind core.Kind, limit int) ([]*core.Report, error)

	// ListReports retrieves up to limit reports with IDs greater than after,
	// in ascending ID order. Pass 0 to start from the beginning.
	ListReports(ctx context.Context, after core.ID, limit int) ([]*core.Report, error)

	// CountReports returns the number of stored reports.
	CountReports(ctx context.Context) (int, error)
}

// CheckpointRepository persists batch processor progress.
type CheckpointRepository interface {
	// SaveCheckpoint stores a checkpoint, replacing any previous one for the
	// same processor type. UpdatedAt is set automatically.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)

	// DeleteCheckpoint removes the checkpoint for a processor type, if any.
	DeleteCheckpoint(ctx context.Context, processorType string) error
}
