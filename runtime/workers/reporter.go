package workers

import (
	"context"
	"fmt"
	"io"
	"time"

	"stallion/contract"
	"stallion/domain"
)

var _ contract.Worker = (*ReporterWorker)(nil)

// ReporterWorker prints the batch progress on every tick and once more when stopped.
type ReporterWorker struct {
	progress *domain.BatchProgress
	interval time.Duration
	out      io.Writer
}

func NewReporterWorker(progress *domain.BatchProgress, interval time.Duration, out io.Writer) *ReporterWorker {
	return &ReporterWorker{progress: progress, interval: interval, out: out}
}

// Run starts the reporting loop until context cancellation
func (w *ReporterWorker) Run(ctx context.Context) error {
	startTime := time.Now()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.printStats(startTime)
			fmt.Fprintln(w.out)
			return nil
		case <-ticker.C:
			w.printStats(startTime)
		}
	}
}

func (w *ReporterWorker) printStats(startTime time.Time) {
	stats := w.progress.Snapshot()
	duration := time.Since(startTime).Round(time.Second).String()

	fmt.Fprintf(w.out, "\r[%s] %d/%d | ok: %d | failed: %d | skipped: %d | RSS: %dMB | CPU: %.1f%% | current: %s",
		duration,
		stats.Done(),
		stats.Total,
		stats.Succeeded,
		stats.Failed,
		stats.Skipped,
		stats.Health.RAM>>20,
		stats.Health.CPU,
		stats.Current,
	)
}
