package rederive

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/storage"
	"github.com/poiesic/lostfound/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (storage.ReportRepository, *badger.Backend) {
	repo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	return repo, backend
}

func addReports(t *testing.T, repo storage.ReportRepository, n int) []*core.Report {
	reports := make([]*core.Report, n)
	for i := range reports {
		reports[i] = &core.Report{Kind: core.KindLost, Title: fmt.Sprintf("black wallet %d", i)}
	}
	added, err := repo.AddReports(context.Background(), reports...)
	require.NoError(t, err)
	return added
}

func TestReportIterator_BatchSizes(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	added := addReports(t, repo, 10)

	tests := []struct {
		batchSize int
		want      []int
	}{
		{3, []int{3, 3, 3, 1}},
		{5, []int{5, 5}},
		{10, []int{10}},
		{20, []int{10}},
		{0, []int{10}}, // default batch size
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("batch %d", tt.batchSize), func(t *testing.T) {
			var sizes []int
			var ids []core.ID
			err := NewReportIterator(repo, tt.batchSize).ForEach(ctx, 0, func(reports []*core.Report) error {
				sizes = append(sizes, len(reports))
				for _, r := range reports {
					ids = append(ids, r.Id)
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, sizes)
			require.Len(t, ids, 10)
			for i, r := range added {
				assert.Equal(t, r.Id, ids[i], "reports should come in ID order")
			}
		})
	}
}

func TestReportIterator_After(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	added := addReports(t, repo, 6)

	count := 0
	err := NewReportIterator(repo, 2).ForEach(ctx, added[3].Id, func(reports []*core.Report) error {
		for _, r := range reports {
			assert.Greater(t, r.Id, added[3].Id)
		}
		count += len(reports)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestReportIterator_Empty(t *testing.T) {
	repo, _ := setupTestDB(t)

	called := false
	err := NewReportIterator(repo, 10).ForEach(context.Background(), 0, func([]*core.Report) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called, "should not call fn for empty database")
}

func TestReportIterator_StopsOnError(t *testing.T) {
	repo, _ := setupTestDB(t)
	addReports(t, repo, 10)

	boom := errors.New("boom")
	calls := 0
	err := NewReportIterator(repo, 3).ForEach(context.Background(), 0, func([]*core.Report) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestReportIterator_ContextCanceled(t *testing.T) {
	repo, _ := setupTestDB(t)
	addReports(t, repo, 10)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := NewReportIterator(repo, 3).ForEach(ctx, 0, func([]*core.Report) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
