package operations

import (
	"sync"
	"time"
)

// Progress is a snapshot of a ProgressTracker
type Progress struct {
	Stage      string
	Current    int
	Total      int
	Percentage float64
	ETA        time.Duration
}

// ProgressTracker counts processed rows of a stage. It is safe for use by
// concurrent shards.
type ProgressTracker struct {
	stage     string
	total     int
	current   int
	decile    int
	startTime time.Time
	mu        sync.Mutex
}

// NewProgressTracker creates a new progress tracker
func NewProgressTracker(stage string, total int) *ProgressTracker {
	return &ProgressTracker{
		stage:     stage,
		total:     total,
		startTime: time.Now(),
	}
}

// Add records n more processed rows. The flag reports whether the total
// crossed into a new 10% step with this call.
func (p *ProgressTracker) Add(n int) (Progress, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = min(p.current+n, p.total)
	snap := p.snapshot()

	crossed := false
	if p.total > 0 {
		if d := p.current * 10 / p.total; d > p.decile {
			p.decile = d
			crossed = true
		}
	}
	return snap, crossed
}

// Snapshot returns the current progress
func (p *ProgressTracker) Snapshot() Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

func (p *ProgressTracker) snapshot() Progress {
	snap := Progress{Stage: p.stage, Current: p.current, Total: p.total}
	if p.total > 0 {
		snap.Percentage = float64(p.current) / float64(p.total) * 100
	}
	if p.current > 0 && p.current < p.total {
		elapsed := time.Since(p.startTime)
		snap.ETA = time.Duration(float64(elapsed) / float64(p.current) * float64(p.total-p.current))
	}
	return snap
}

// IsComplete returns true once every row was counted
func (p *ProgressTracker) IsComplete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current >= p.total
}
