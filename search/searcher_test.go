package search

import (
	"context"
	"testing"

	"github.com/poiesic/lostfound/core"
	"github.com/poiesic/lostfound/extract"
	"github.com/poiesic/lostfound/match"
	"github.com/poiesic/lostfound/storage"
	"github.com/poiesic/lostfound/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMonitor records the stages it observed.
type recordingMonitor struct {
	stages     []string
	candidates int
	question   core.ClarifyingQuestion
}

func (m *recordingMonitor) Start(_ *core.Report) { m.stages = append(m.stages, "start") }
func (m *recordingMonitor) AfterCandidateLoad(c []*core.Report) {
	m.candidates = len(c)
	m.stages = append(m.stages, "candidates")
}
func (m *recordingMonitor) AfterRanking(_ []core.MatchResult) { m.stages = append(m.stages, "ranking") }
func (m *recordingMonitor) QuestionChosen(q core.ClarifyingQuestion) {
	m.question = q
	m.stages = append(m.stages, "question")
}
func (m *recordingMonitor) Finish(_ *Matches) { m.stages = append(m.stages, "finish") }

func setupTestSearcher(t *testing.T) (*Searcher, storage.ReportRepository) {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)

	ranker, err := match.NewRanker(match.NewScorer(nil))
	require.NoError(t, err)

	t.Cleanup(func() {
		ranker.Release()
		repo.Close()
		backend.Close()
	})

	s, err := NewSearcher(repo, ranker)
	require.NoError(t, err)
	return s, repo
}

func addReport(t *testing.T, repo storage.ReportRepository, kind core.Kind, title, description, location string) *core.Report {
	t.Helper()
	r := &core.Report{Kind: kind, Title: title, Description: description, LocationText: location}
	r.Features = storage.EncodeFeatureRecord(extract.Extract(r.SubmissionText()))
	added, err := repo.AddReports(context.Background(), r)
	require.NoError(t, err)
	return added[0]
}

func TestNewSearcher(t *testing.T) {
	ranker, err := match.NewRanker(match.NewScorer(nil))
	require.NoError(t, err)
	defer ranker.Release()

	_, err = NewSearcher(nil, ranker)
	assert.ErrorIs(t, err, ErrReportRepositoryRequired)

	repo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	_, err = NewSearcher(repo, nil)
	assert.ErrorIs(t, err, ErrRankerRequired)
}

func TestFindMatches_ClearWinner(t *testing.T) {
	s, repo := setupTestSearcher(t)
	ctx := context.Background()

	lost := addReport(t, repo, core.KindLost, "black leather wallet", "brown stitching, student id", "central library")
	addReport(t, repo, core.KindFound, "red umbrella", "", "bus stop")
	wallet := addReport(t, repo, core.KindFound, "black leather wallet", "brown stitching, student id", "central library")
	addReport(t, repo, core.KindLost, "black leather wallet", "", "central library")

	m, err := s.FindMatches(ctx, lost.Id)
	require.NoError(t, err)

	require.Len(t, m.Results, 2)
	require.Len(t, m.Candidates, 2)
	assert.Equal(t, wallet.Id, m.Results[0].OtherId)
	assert.Equal(t, wallet.Id, m.Candidates[0].Id)
	for _, c := range m.Candidates {
		assert.Equal(t, core.KindFound, c.Kind)
	}
	assert.False(t, m.Ambiguous)
	assert.Nil(t, m.Question)
}

func TestFindMatches_AsksWhenAmbiguous(t *testing.T) {
	s, repo := setupTestSearcher(t)
	ctx := context.Background()

	found := addReport(t, repo, core.KindFound, "phone", "black", "gate 2")
	addReport(t, repo, core.KindLost, "apple phone", "black", "gate 2")
	addReport(t, repo, core.KindLost, "apple phone", "black", "gate 2")
	addReport(t, repo, core.KindLost, "samsung phone", "black", "gate 2")

	monitor := &recordingMonitor{}
	m, err := s.FindMatchesWithMonitor(ctx, found.Id, monitor)
	require.NoError(t, err)

	assert.Len(t, m.Results, 3)
	assert.True(t, m.Ambiguous)
	require.NotNil(t, m.Question)
	assert.Equal(t, core.FieldBrand, m.Question.FieldKey)
	assert.Equal(t, []string{"start", "candidates", "ranking", "question", "finish"}, monitor.stages)
	assert.Equal(t, 3, monitor.candidates)
	assert.Equal(t, core.FieldBrand, monitor.question.FieldKey)
}

func TestFindMatches_NeverAsksTwice(t *testing.T) {
	s, repo := setupTestSearcher(t)
	ctx := context.Background()

	found := addReport(t, repo, core.KindFound, "phone", "black", "gate 2")
	addReport(t, repo, core.KindLost, "apple phone", "black", "gate 2")
	addReport(t, repo, core.KindLost, "samsung phone", "black", "gate 2")

	found.ClarifyKey = string(core.FieldColors)
	_, err := repo.UpdateReports(ctx, found)
	require.NoError(t, err)

	m, err := s.FindMatches(ctx, found.Id)
	require.NoError(t, err)
	assert.True(t, m.Ambiguous)
	assert.Nil(t, m.Question)
}

func TestFindMatches_NoCandidates(t *testing.T) {
	s, repo := setupTestSearcher(t)

	lost := addReport(t, repo, core.KindLost, "keys", "", "")
	m, err := s.FindMatches(context.Background(), lost.Id)
	require.NoError(t, err)

	assert.Empty(t, m.Results)
	assert.True(t, m.Ambiguous)
	assert.Nil(t, m.Question)
}

func TestFindMatches_NotFound(t *testing.T) {
	s, _ := setupTestSearcher(t)
	_, err := s.FindMatches(context.Background(), 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMaskedView(t *testing.T) {
	s, repo := setupTestSearcher(t)
	ctx := context.Background()

	r := addReport(t, repo, core.KindFound, "phone found", "call john.doe@example.com or 01712345678", "gate 2")

	view, err := s.MaskedView(ctx, r.Id)
	require.NoError(t, err)
	assert.Equal(t, r.Id, view.Id)
	assert.Equal(t, "phone found", view.Title)
	assert.Equal(t, "call j******e@example.com or *********78", view.Description)
	assert.NotContains(t, view.Description, "01712345678")

	_, err = s.MaskedView(ctx, 12345)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
