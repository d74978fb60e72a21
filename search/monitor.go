package search

import (
	"github.com/poiesic/lostfound/core"
)

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate steps and results.
type MatchMonitor interface {
	Start(report *core.Report)
	AfterCandidateLoad(candidates []*core.Report)
	AfterRanking(results []core.MatchResult)
	QuestionChosen(question core.ClarifyingQuestion)
	Finish(matches *Matches)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Report)                      {}
func (n *noopMonitor) AfterCandidateLoad(_ []*core.Report)       {}
func (n *noopMonitor) AfterRanking(_ []core.MatchResult)         {}
func (n *noopMonitor) QuestionChosen(_ core.ClarifyingQuestion) {}
func (n *noopMonitor) Finish(_ *Matches)                         {}
