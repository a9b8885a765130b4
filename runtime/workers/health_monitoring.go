package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"

	"stallion/contract"
	"stallion/domain"
)

var _ contract.Worker = (*HealthMonitoringWorker)(nil)

// HealthMonitoringWorker samples the scraper process on every tick and hands the sample to the batch progress.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	progress       *domain.BatchProgress
	metricInterval time.Duration
	pid            domain.PID
}

func NewHealthMonitoringWorker(log *slog.Logger, progress *domain.BatchProgress, metricInterval time.Duration) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		progress:       progress,
		metricInterval: metricInterval,
		pid:            domain.PID(os.Getpid()),
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(w.pid))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			health, err := w.sample(p)
			if err != nil {
				w.log.Debug("Unable to sample scraper process", "pid", w.pid, "error", err)
				continue
			}
			w.progress.UpdateHealth(health)
			w.log.Debug("Scraper health",
				"status", health.Status,
				"cpu", health.CPU,
				"rss_mb", health.RAM>>20,
				"goroutines", health.Goroutines)
		}
	}
}

func (w *HealthMonitoringWorker) sample(p *process.Process) (domain.ScraperHealth, error) {
	status, err := p.Status()
	if err != nil {
		return domain.ScraperHealth{}, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return domain.ScraperHealth{}, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return domain.ScraperHealth{}, err
	}
	return domain.ScraperHealth{
		PID:        w.pid,
		Status:     domain.ToStatus(status),
		CPU:        cpu,
		RAM:        mem.RSS,
		Goroutines: runtime.NumGoroutine(),
		SampledAt:  time.Now().UTC(),
	}, nil
}
