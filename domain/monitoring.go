package domain

import (
	"sync"
	"time"
)

// ScraperHealth is a sample of the scraper process taken by the health monitor,
// along with the batch counters at that moment.
type ScraperHealth struct {
	PID        PID
	Status     PidStatus
	CPU        float64
	RAM        uint64
	Goroutines int
	SampledAt  time.Time
}

// BatchProgress is shared between the batch workers and the reporter.
type BatchProgress struct {
	mu        sync.RWMutex
	total     int
	succeeded int
	failed    int
	skipped   int
	current   string
	health    ScraperHealth
}

func NewBatchProgress(total int) *BatchProgress {
	return &BatchProgress{total: total}
}

func (p *BatchProgress) Start(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = id
}

func (p *BatchProgress) Record(outcome Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch outcome.Status {
	case OutcomeSuccess:
		p.succeeded++
	case OutcomeFailed:
		p.failed++
	case OutcomeSkipped:
		p.skipped++
	}
}

func (p *BatchProgress) UpdateHealth(h ScraperHealth) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health = h
}

type ProgressSnapshot struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Current   string
	Health    ScraperHealth
}

func (s ProgressSnapshot) Done() int {
	return s.Succeeded + s.Failed + s.Skipped
}

func (p *BatchProgress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ProgressSnapshot{
		Total:     p.total,
		Succeeded: p.succeeded,
		Failed:    p.failed,
		Skipped:   p.skipped,
		Current:   p.current,
		Health:    p.health,
	}
}
