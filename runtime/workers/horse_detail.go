package workers

import (
	"context"
	"log/slog"
	"time"

	"stallion/contract"
	"stallion/domain"
	"stallion/errors"
)

var _ contract.Worker = (*HorseDetailWorker)(nil)

// HorseDetailWorker scrapes the horses it receives until the jobs channel is closed.
// outcomes must be able to hold one outcome per job, sends never wait on the reader.
type HorseDetailWorker struct {
	log      *slog.Logger
	scraper  contract.IHorseScraper
	jobs     <-chan domain.HorseSummary
	outcomes chan<- domain.Outcome
	progress *domain.BatchProgress
}

func NewHorseDetailWorker(
	log *slog.Logger,
	scraper contract.IHorseScraper,
	jobs <-chan domain.HorseSummary,
	outcomes chan<- domain.Outcome,
	progress *domain.BatchProgress,
) *HorseDetailWorker {
	return &HorseDetailWorker{
		log:      log,
		scraper:  scraper,
		jobs:     jobs,
		outcomes: outcomes,
		progress: progress,
	}
}

func (w *HorseDetailWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping horse detail worker")
			return ctx.Err()
		case horse, ok := <-w.jobs:
			if !ok {
				w.log.Debug("Jobs channel is closed")
				return nil
			}
			w.handle(ctx, horse)
		}
	}
}

// handle always publishes an outcome, a panicking scraper is reported as failed before the panic
// reaches the supervisor.
func (w *HorseDetailWorker) handle(ctx context.Context, horse domain.HorseSummary) {
	w.progress.Start(horse.ID)
	start := time.Now()
	outcome := domain.Outcome{
		HorseID: horse.ID,
		Name:    horse.NameJa,
		Status:  domain.OutcomeFailed,
		Reason:  errors.ErrWorkerPanic.Error(),
	}
	defer func() {
		outcome.Duration = time.Since(start)
		w.progress.Record(outcome)
		w.outcomes <- outcome
	}()

	scraped, err := w.scraper.Scrape(ctx, horse.ID)
	if err != nil {
		w.log.Warn("Horse scraping failed", "horse_id", horse.ID, "error", err)
		outcome.Reason = err.Error()
		return
	}
	if outcome.Name == "" {
		outcome.Name = scraped.DisplayName()
	}
	outcome.Status = domain.OutcomeSuccess
	outcome.Reason = ""
	w.log.Info("Horse scraped", "horse_id", horse.ID, "name", outcome.Name)
}
