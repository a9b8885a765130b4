package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"stallion/contract"
	"stallion/domain"
	"stallion/errors"
	"stallion/repositories"
	"stallion/runtime/workers"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	reasonAlreadyStored = "already stored"
	reasonClaimed       = "claimed by another run"
)

// BatchOptions configures one run of BatchService.
type BatchOptions struct {
	List         ListQuery
	SkipExisting bool
	Workers      int
	// OutputDir receives a JSON copy of the report. Empty disables the file.
	OutputDir       string
	RestartInterval time.Duration
	MetricInterval  time.Duration
	ReportInterval  time.Duration
}

// BatchService collects G1 winners and scrapes their detail pages with a pool of supervised workers.
type BatchService struct {
	log     *slog.Logger
	list    *HorseListService
	scraper contract.IHorseScraper
	horses  repositories.IHorseRepository
	claims  repositories.IClaimRepository
	journal repositories.IRunJournalRepository
	out     io.Writer
	now     func() time.Time
}

func NewBatchService(
	log *slog.Logger,
	list *HorseListService,
	scraper contract.IHorseScraper,
	horses repositories.IHorseRepository,
	claims repositories.IClaimRepository,
	journal repositories.IRunJournalRepository,
	out io.Writer,
) *BatchService {
	return &BatchService{
		log:     log,
		list:    list,
		scraper: scraper,
		horses:  horses,
		claims:  claims,
		journal: journal,
		out:     out,
		now:     time.Now,
	}
}

// Run lists the horses, drops the stored and claimed ones, scrapes the rest and records the report.
func (s *BatchService) Run(ctx context.Context, opts BatchOptions) (domain.BatchReport, error) {
	runID := uuid.New()
	report := domain.NewBatchReport(runID, s.now().UTC())
	log := s.log.With("run_id", runID)

	horses, err := s.list.G1Horses(ctx, opts.List)
	if err != nil {
		return report, fmt.Errorf("horse list: %w", err)
	}
	report.Total = len(horses)
	log.Info("Batch started", "horses", len(horses), "workers", opts.Workers)

	pending := horses
	if opts.SkipExisting {
		pending = s.dropExisting(ctx, log, horses, &report)
	}
	pending = s.claim(ctx, log, runID, pending, &report)

	if len(pending) > 0 {
		s.scrape(ctx, log, runID, pending, opts, &report)
	}

	report.FinishedAt = s.now().UTC()
	log.Info("Batch finished",
		"success", len(report.Success),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
		"duration", report.Duration())
	return report, s.record(report, opts.OutputDir)
}

// dropExisting keeps the horses not stored yet. A failing lookup keeps every horse.
func (s *BatchService) dropExisting(ctx context.Context, log *slog.Logger, horses []domain.HorseSummary, report *domain.BatchReport) []domain.HorseSummary {
	existing, err := s.horses.ExistingIDs(ctx)
	if err != nil {
		log.Warn("Existing horse lookup failed, every horse will be scraped", "error", err)
		return horses
	}
	var pending []domain.HorseSummary
	for _, horse := range horses {
		if _, ok := existing[horse.ID]; ok {
			report.Add(skipped(horse, reasonAlreadyStored))
			continue
		}
		pending = append(pending, horse)
	}
	if n := len(horses) - len(pending); n > 0 {
		log.Info("Stored horses skipped", "count", n)
	}
	return pending
}

func (s *BatchService) claim(ctx context.Context, log *slog.Logger, runID uuid.UUID, horses []domain.HorseSummary, report *domain.BatchReport) []domain.HorseSummary {
	if s.claims == nil {
		return horses
	}
	var claimed []domain.HorseSummary
	for _, horse := range horses {
		err := s.claims.Claim(ctx, runID, horse.ID)
		switch {
		case err == nil:
			claimed = append(claimed, horse)
		case errors.Is(err, errors.ErrAlreadyClaimed):
			log.Debug("Horse claimed by another run", "horse_id", horse.ID)
			report.Add(skipped(horse, reasonClaimed))
		default:
			report.Add(domain.Outcome{HorseID: horse.ID, Name: horse.NameJa, Status: domain.OutcomeFailed, Reason: err.Error()})
		}
	}
	return claimed
}

// scrape feeds the horses to the worker pool and collects one outcome per horse.
func (s *BatchService) scrape(ctx context.Context, log *slog.Logger, runID uuid.UUID, horses []domain.HorseSummary, opts BatchOptions, report *domain.BatchReport) {
	jobs := make(chan domain.HorseSummary)
	outcomes := make(chan domain.Outcome, len(horses))
	progress := domain.NewBatchProgress(len(horses))

	supervisor := workers.NewSupervisor(log, opts.RestartInterval)
	for range max(1, opts.Workers) {
		supervisor.Add(workers.NewHorseDetailWorker(log, s.scraper, jobs, outcomes, progress))
	}
	if opts.MetricInterval > 0 {
		supervisor.Add(workers.NewHealthMonitoringWorker(log, progress, opts.MetricInterval))
	}
	if opts.ReportInterval > 0 && s.out != nil {
		supervisor.Add(workers.NewReporterWorker(progress, opts.ReportInterval, s.out))
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		supervisor.Run(runCtx)
		close(done)
	}()
	go func() {
		defer close(jobs)
		for _, horse := range horses {
			select {
			case jobs <- horse:
			case <-runCtx.Done():
				return
			}
		}
	}()

	received := make(map[string]struct{}, len(horses))
collect:
	for n := 0; n < len(horses); n++ {
		select {
		case outcome := <-outcomes:
			received[outcome.HorseID] = struct{}{}
			report.Add(outcome)
			s.release(ctx, log, runID, outcome.HorseID)
		case <-ctx.Done():
			log.Warn("Batch interrupted", "error", ctx.Err())
			break collect
		}
	}
	cancel()
	<-done

	for _, horse := range horses {
		if _, ok := received[horse.ID]; !ok {
			report.Add(domain.Outcome{HorseID: horse.ID, Name: horse.NameJa, Status: domain.OutcomeFailed, Reason: context.Canceled.Error()})
			s.release(context.WithoutCancel(ctx), log, runID, horse.ID)
		}
	}
}

func (s *BatchService) release(ctx context.Context, log *slog.Logger, runID uuid.UUID, id string) {
	if s.claims == nil {
		return
	}
	if err := s.claims.Release(ctx, runID, id); err != nil {
		log.Warn("Unable to release claim", "horse_id", id, "error", err)
	}
}

// record saves the report to the journal and, when dir is set, to a timestamped JSON file.
func (s *BatchService) record(report domain.BatchReport, dir string) error {
	var errs []error
	if s.journal != nil {
		if err := s.journal.Save(report); err != nil {
			errs = append(errs, fmt.Errorf("run journal: %w", err))
		}
	}
	if dir != "" {
		path, err := writeReport(dir, report)
		if err != nil {
			errs = append(errs, fmt.Errorf("report file: %w", err))
		} else {
			s.log.Info("Batch report written", "path", path)
		}
	}
	return errors.Join(errs...)
}

func writeReport(dir string, report domain.BatchReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	bytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("batch_scraping_results_%s.json", report.StartedAt.Local().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, bytes, 0o644)
}

func skipped(horse domain.HorseSummary, reason string) domain.Outcome {
	return domain.Outcome{HorseID: horse.ID, Name: horse.NameJa, Status: domain.OutcomeSkipped, Reason: reason}
}
