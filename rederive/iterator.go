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
package rederive

import (
	"context"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/storage"
)

const (
	// DefaultBatchSize is the default number of reports to fetch in each batch
	DefaultBatchSize = 100
)

// ReportIterator pages over stored reports in ascending ID order.
type ReportIterator struct {
	repo      storage.ReportRepository
	batchSize int
}

// NewReportIterator creates a new report iterator.
// batchSize: number of reports to fetch in each batch (DefaultBatchSize if <= 0)
func NewReportIterator(repo storage.ReportRepository, batchSize int) *ReportIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ReportIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of reports with an ID greater than after.
// Pass 0 to start from the first report. Only one batch is held in memory at
// a time. Iteration stops on the first error from fn, and context
// cancellation is checked between batches.
func (it *ReportIterator) ForEach(ctx context.Context, after core.ID, fn func([]*core.Report) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := it.repo.ListReports(ctx, after, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}

		if len(batch) < it.batchSize {
			return nil
		}
		after = batch[len(batch)-1].Id
	}
}
