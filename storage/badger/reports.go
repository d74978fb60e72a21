package badger

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/storage"
)

// ReportRepository implements storage.ReportRepository for BadgerDB.
type ReportRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(backend *Backend) (*ReportRepository, error) {
	idSeq, err := backend.GetSequence(reportIDSeq)
	if err != nil {
		return nil, err
	}

	return &ReportRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ReportRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ReportRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddReports adds one or more reports to storage.
func (r *ReportRepository) AddReports(ctx context.Context, reports ...*core.Report) ([]*core.Report, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, report := range reports {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			report.Id = core.ID(nextID)

			if report.CreatedAt.IsZero() {
				report.CreatedAt = time.Now()
			}
			// Stored with microsecond precision
			report.CreatedAt = report.CreatedAt.UTC().Truncate(time.Microsecond)

			if err := tx.Set(makeReportKey(report.Id), storage.MarshalReport(report)); err != nil {
				return err
			}
			if err := tx.Set(makeReportKindKey(report), storage.MarshalID(report.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return reports, err
}

// UpdateReports replaces stored reports. Kind and CreatedAt never change.
func (r *ReportRepository) UpdateReports(ctx context.Context, reports ...*core.Report) ([]*core.Report, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, report := range reports {
			key := makeReportKey(report.Id)

			old, err := r.readReport(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: report %d", storage.ErrNotFound, report.Id)
			}
			if old.Kind != report.Kind {
				return fmt.Errorf("%w: report %d is %s", storage.ErrKindImmutable, report.Id, old.Kind)
			}

			// The kind index is keyed on creation time
			report.CreatedAt = old.CreatedAt

			if err := tx.Set(key, storage.MarshalReport(report)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return reports, err
}

// DeleteReports removes reports by their IDs.
func (r *ReportRepository) DeleteReports(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeReportKey(id)

			report, err := r.readReport(tx, key)
			if err != nil {
				return err
			}
			if report == nil {
				return fmt.Errorf("%w: report %d", storage.ErrNotFound, id)
			}

			if err := tx.Delete(makeReportKindKey(report)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetReport retrieves a single report by ID.
func (r *ReportRepository) GetReport(ctx context.Context, id core.ID) (*core.Report, error) {
	var result *core.Report
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readReport(tx, makeReportKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: report %d", storage.ErrNotFound, id)
		}
		return nil
	}, false)
	return result, err
}

// GetReports retrieves multiple reports by their IDs.
func (r *ReportRepository) GetReports(ctx context.Context, ids ...core.ID) ([]*core.Report, error) {
	var result []*core.Report
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			report, err := r.readReport(tx, makeReportKey(id))
			if err != nil {
				return err
			}
			if report != nil {
				result = append(result, report)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetRecentReports retrieves the most recent reports of one kind, newest first.
func (r *ReportRepository) GetRecentReports(ctx context.Context, kind core.Kind, limit int) ([]*core.Report, error) {
	var results []*core.Report
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent reports first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := makeKindPrefix(kind)
		for iter.Seek(makeKindSeekKey(kind)); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}

			// Read the ID from the index
			var reportID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				reportID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full report
			report, err := r.readReport(tx, makeReportKey(reportID))
			if err != nil {
				return err
			}
			if report != nil {
				results = append(results, report)
			}
		}
		return nil
	}, false)

	return results, err
}

// ListReports retrieves up to limit reports with IDs greater than after, in ascending ID order.
func (r *ReportRepository) ListReports(ctx context.Context, after core.ID, limit int) ([]*core.Report, error) {
	if after == ^core.ID(0) {
		return nil, nil
	}

	var results []*core.Report
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(reportPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeReportKey(after + 1)); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}

			var report *core.Report
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				report, err = storage.UnmarshalReport(val)
				return err
			}); err != nil {
				return err
			}
			results = append(results, report)
		}
		return nil
	}, false)

	return results, err
}

// CountReports returns the number of stored reports.
func (r *ReportRepository) CountReports(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(reportPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readReport reads a report from the transaction.
// Returns nil, nil if the key doesn't exist.
func (r *ReportRepository) readReport(tx *badger.Txn, key []byte) (*core.Report, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var report *core.Report
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		report, unmarshalErr = storage.UnmarshalReport(val)
		return unmarshalErr
	})
	return report, err
}
