package wizard

import (
	"math"
	"sync"

	"github.com/lamim/prdforge/internal/api"
)

// Progress tracks the completion percentage of one running operation.
// Values are clamped to [0, 100] and never move backwards.
type Progress struct {
	mu      sync.Mutex
	current int
	report  func(int)
}

// newProgress starts an operation at 0 and reports it
func newProgress(report func(int)) *Progress {
	p := &Progress{report: report}
	if report != nil {
		report(0)
	}
	return p
}

// Set moves progress to a fixed checkpoint
func (p *Progress) Set(value int) {
	value = min(max(value, 0), 100)

	p.mu.Lock()
	if value <= p.current {
		p.mu.Unlock()
		return
	}
	p.current = value
	p.mu.Unlock()

	if p.report != nil {
		p.report(value)
	}
}

// Span maps a streaming estimate in [0, 95] onto [lo, lo+(hi-lo)*p/100], floored
func (p *Progress) Span(lo, hi int) api.ProgressFunc {
	return func(percent float64) {
		p.Set(int(math.Floor(float64(lo) + float64(hi-lo)*percent/100)))
	}
}

// value returns the last checkpoint
func (p *Progress) value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
