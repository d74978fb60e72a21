package rederive

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/extract"
	"github.com/poiesic/lostfound/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	report := &core.Report{Kind: core.KindLost, Title: "phone", Description: "blue case", LocationText: "gate 2"}

	encoded, err := Derive(report)
	require.NoError(t, err)
	assert.Equal(t, storage.EncodeFeatureRecord(extract.Extract(report.SubmissionText())), encoded)

	again, err := Derive(report)
	require.NoError(t, err)
	assert.Equal(t, encoded, again, "derivation should be deterministic")
}

func TestDerive_ReplaysClarification(t *testing.T) {
	report := &core.Report{Kind: core.KindLost, Title: "phone", ClarifyKey: "brand", ClarifyAnswer: "Xiaomi"}

	encoded, err := Derive(report)
	require.NoError(t, err)

	fr, err := storage.DecodeFeatureRecord(encoded)
	require.NoError(t, err)
	assert.Equal(t, "xiaomi", fr.Brand)
	assert.Equal(t, "phone", fr.ItemType)
}

func TestDerive_UnknownClarification(t *testing.T) {
	_, err := Derive(&core.Report{Title: "phone", ClarifyKey: "size", ClarifyAnswer: "big"})
	assert.ErrorIs(t, err, core.ErrUnknownField)
}

func TestBatchProcessor_Process(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	fresh := &core.Report{Kind: core.KindFound, Title: "red umbrella"}
	fresh.Features, _ = Derive(fresh)

	added, err := repo.AddReports(ctx,
		&core.Report{Kind: core.KindLost, Title: "black wallet", Features: "stale"},
		fresh,
		&core.Report{Kind: core.KindLost, Title: "keys", ClarifyKey: "colors", ClarifyAnswer: "silver"},
	)
	require.NoError(t, err)

	bp := NewBatchProcessor(repo, 3, time.Millisecond, false, nil)
	rewritten, err := bp.Process(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, 2, rewritten)

	storedWallet, err := repo.GetReport(ctx, added[0].Id)
	require.NoError(t, err)
	wallet, err := storage.DecodeFeatureRecord(storedWallet.Features)
	require.NoError(t, err)
	assert.Equal(t, "wallet", wallet.ItemType)

	storedKeys, err := repo.GetReport(ctx, added[2].Id)
	require.NoError(t, err)
	keys, err := storage.DecodeFeatureRecord(storedKeys.Features)
	require.NoError(t, err)
	assert.Contains(t, keys.Colors, "silver")

	// A second pass finds nothing to do
	reports, err := repo.ListReports(ctx, 0, 0)
	require.NoError(t, err)
	rewritten, err = bp.Process(ctx, reports)
	require.NoError(t, err)
	assert.Zero(t, rewritten)
}

func TestBatchProcessor_DryRun(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	added, err := repo.AddReports(ctx, &core.Report{Kind: core.KindLost, Title: "black wallet", Features: "stale"})
	require.NoError(t, err)

	rewritten, err := NewBatchProcessor(repo, 1, time.Millisecond, true, nil).Process(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, 1, rewritten)

	stored, err := repo.GetReport(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "stale", stored.Features)
}

func TestBatchProcessor_UnknownClarificationIsDropped(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	added, err := repo.AddReports(ctx, &core.Report{Kind: core.KindLost, Title: "keys", ClarifyKey: "size", ClarifyAnswer: "big"})
	require.NoError(t, err)

	rewritten, err := NewBatchProcessor(repo, 1, time.Millisecond, false, nil).Process(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, 1, rewritten)

	stored, err := repo.GetReport(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Empty(t, stored.ClarifyKey)
	want, _ := Derive(&core.Report{Title: "keys"})
	assert.Equal(t, want, stored.Features)
}

func TestBatchProcessor_MissingReportIsNotRetried(t *testing.T) {
	repo, _ := setupTestDB(t)

	ghost := &core.Report{Id: 999, Kind: core.KindLost, Title: "ghost"}
	start := time.Now()
	_, err := NewBatchProcessor(repo, 5, time.Second, false, nil).Process(context.Background(), []*core.Report{ghost})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Less(t, time.Since(start), time.Second, "permanent errors should not back off")
}
