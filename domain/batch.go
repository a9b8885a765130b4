package domain

import (
	"time"

	"github.com/google/uuid"
)

type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailed  OutcomeStatus = "failed"
	OutcomeSkipped OutcomeStatus = "skipped"
)

// Outcome is the result of scraping a single horse during a batch.
type Outcome struct {
	HorseID  string        `json:"horse_id"`
	Name     string        `json:"name,omitempty"`
	Status   OutcomeStatus `json:"status"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration"`
}

// BatchReport is persisted in the run journal once a batch is over.
type BatchReport struct {
	RunID      uuid.UUID `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Success    []Outcome `json:"success"`
	Failed     []Outcome `json:"failed"`
	Skipped    []Outcome `json:"skipped"`
}

func NewBatchReport(runID uuid.UUID, startedAt time.Time) BatchReport {
	return BatchReport{RunID: runID, StartedAt: startedAt}
}

func (r *BatchReport) Add(o Outcome) {
	switch o.Status {
	case OutcomeSuccess:
		r.Success = append(r.Success, o)
	case OutcomeFailed:
		r.Failed = append(r.Failed, o)
	case OutcomeSkipped:
		r.Skipped = append(r.Skipped, o)
	}
}

func (r BatchReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// StoreStats counts what happened to a list of races handed to the store.
type StoreStats struct {
	Total   int
	Success int
	Skipped int
	Failed  int
	Errors  []string
}
