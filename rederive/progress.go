package rederive

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker tracks and reports progress of a re-derivation run.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	current        int
	rewritten      int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// total: total number of reports to process
// reportInterval: report progress every N reports
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress from done already processed reports.
func (p *ProgressTracker) Start(done int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = min(done, p.total)
	p.rewritten = 0
	p.lastReported = p.current
}

// Add records a processed batch of scanned reports, rewritten of which changed.
func (p *ProgressTracker) Add(scanned, rewritten int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = min(p.current+scanned, p.total)
	p.rewritten += rewritten

	// Report if we've crossed a report interval
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Rewritten returns how many reports changed since Start.
func (p *ProgressTracker) Rewritten() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rewritten
}

// Finish marks the run as complete and prints final progress.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = p.total
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rRe-derived %d/%d (%.1f%%), %d rewritten, %.1f reports/s",
		p.current, p.total, percentage, p.rewritten, rate(p.current, time.Since(p.startTime)))
}

func rate(n int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(n) / elapsed.Seconds()
}
