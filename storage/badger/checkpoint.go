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

package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/storage"
)

// CheckpointRepository stores one resumable position per batch processor.
type CheckpointRepository struct {
	backend *Backend
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

func NewCheckpointRepository(backend *Backend) *CheckpointRepository {
	return &CheckpointRepository{backend: backend}
}

// SaveCheckpoint replaces the checkpoint of checkpoint.ProcessorType and
// stamps UpdatedAt on the caller's value.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error {
	if checkpoint == nil || checkpoint.ProcessorType == "" {
		return fmt.Errorf("%w: processor type is required", storage.ErrInvalidCheckpoint)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	checkpoint.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	value := storage.MarshalCheckpoint(checkpoint)

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeCheckpointKey(checkpoint.ProcessorType), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadCheckpoint returns nil, nil when processorType has no checkpoint.
func (r *CheckpointRepository) LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var checkpoint *core.Checkpoint
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(processorType))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			cp, err := storage.UnmarshalCheckpoint(val)
			checkpoint = cp
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return checkpoint, nil
}

// DeleteCheckpoint forgets the position of processorType. Deleting a missing
// checkpoint is not an error.
func (r *CheckpointRepository) DeleteCheckpoint(ctx context.Context, processorType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeCheckpointKey(processorType)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
