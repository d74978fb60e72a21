// Package match scores lost reports against found reports.
//
// A Scorer compares two reports through their feature records and produces a
// core.MatchResult: a clamped weighted score plus the reasons that fired. A
// Ranker shortlists candidates through a retrieval.Retriever, scores the
// shortlist concurrently on a worker pool and orders the results
// deterministically. The same Ranker flags same-kind submissions that probably
// re-describe an existing report.
//
// Every threshold used here lives in Config so that callers can override the
// empirically chosen defaults.
package match
