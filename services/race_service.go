package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"stallion/domain"
	"stallion/errors"
	"stallion/extractor"
	"stallion/parser"
	"stallion/repositories"
	"stallion/scraping"
)

const (
	raceListPath     = "/"
	defaultRaceLimit = 100
	g1YearLimit      = 200
	// Errors beyond this count are only counted, not logged one by one.
	loggedErrors = 5
)

// JRA racecourse codes, from Sapporo (01) to Kokura (10).
var jraVenues = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10"}

func racePath(id string) string { return "/race/" + id + "/" }

type RaceService struct {
	log       *slog.Logger
	source    IDocumentSource
	extractor *extractor.Extractor
	races     repositories.IRaceRepository
	now       func() time.Time
}

func NewRaceService(log *slog.Logger, source IDocumentSource, extractor *extractor.Extractor, races repositories.IRaceRepository) *RaceService {
	return &RaceService{log: log, source: source, extractor: extractor, races: races, now: time.Now}
}

// withDefaults fills what the search form needs: central tracks and venues, G1 and G2, last year to this year.
func (s *RaceService) withDefaults(c domain.RaceConditions) domain.RaceConditions {
	if c.EndYear == 0 {
		c.EndYear = s.now().Year()
	}
	if c.StartYear == 0 {
		c.StartYear = c.EndYear - 1
	}
	if len(c.Grades) == 0 {
		c.Grades = []string{"1", "2"}
	}
	if len(c.Tracks) == 0 {
		c.Tracks = []string{"1"}
	}
	if len(c.Venues) == 0 {
		c.Venues = jraVenues
	}
	if c.Limit <= 0 {
		c.Limit = defaultRaceLimit
	}
	return c
}

func raceListQuery(c domain.RaceConditions) scraping.Query {
	return scraping.Query{}.
		Add("pid", "race_list").
		Add("word", c.Word).
		Add("start_year", strconv.Itoa(c.StartYear)).
		Add("start_mon", "none").
		Add("end_year", strconv.Itoa(c.EndYear)).
		Add("end_mon", "none").
		Add("list", strconv.Itoa(c.Limit)).
		Add("sort", "date").
		Add("track[]", c.Tracks...).
		Add("jyo[]", c.Venues...).
		Add("grade[]", c.Grades...)
}

// List searches races matching the conditions, latest first.
func (s *RaceService) List(ctx context.Context, conditions domain.RaceConditions) ([]domain.RaceSummary, error) {
	c := s.withDefaults(conditions)
	s.log.Info("Fetching race list", "start_year", c.StartYear, "end_year", c.EndYear, "grades", c.Grades)
	doc, err := s.source.Document(ctx, raceListPath, raceListQuery(c))
	if err != nil {
		return nil, fmt.Errorf("race list: %w", err)
	}
	races := s.extractor.RaceList(doc)
	s.log.Info("Race list read", "count", len(races))
	return races, nil
}

// Detail scrapes a race page. Validation problems of the scraped values are logged, not returned.
func (s *RaceService) Detail(ctx context.Context, raceID string) (domain.RaceDetail, error) {
	if parser.RaceID(racePath(raceID)) != raceID {
		return domain.RaceDetail{}, fmt.Errorf("%w: got %q", errors.ErrInvalidRaceID, raceID)
	}
	doc, err := s.source.Document(ctx, racePath(raceID), nil)
	if err != nil {
		return domain.RaceDetail{}, fmt.Errorf("race page %s: %w", raceID, err)
	}
	detail, err := s.extractor.RaceDetail(doc, raceID)
	if err != nil {
		return domain.RaceDetail{}, fmt.Errorf("race %s: %w", raceID, err)
	}
	if problems := domain.ValidateRaceDetail(detail); len(problems) > 0 {
		s.log.Warn("Race failed validation", "race_id", raceID, "problems", problems)
	}
	s.log.Info("Race extracted", "race_id", raceID, "name", detail.Race.RaceName, "horses", len(detail.Results))
	return detail, nil
}

// ScrapeAndStore scrapes and saves every race of the list. One failing race never stops the others.
func (s *RaceService) ScrapeAndStore(ctx context.Context, races []domain.RaceSummary, skipExisting bool) domain.StoreStats {
	stats := domain.StoreStats{Total: len(races)}
	fail := func(msg string) {
		stats.Failed++
		stats.Errors = append(stats.Errors, msg)
	}

	for i, summary := range races {
		if ctx.Err() != nil {
			fail(fmt.Sprintf("cancelled before %s: %v", summary.RaceID, ctx.Err()))
			continue
		}
		if summary.RaceID == "" {
			fail(fmt.Sprintf("missing race id for %q", summary.RaceName))
			continue
		}
		if skipExisting {
			exists, err := s.races.Exists(ctx, summary.RaceID)
			if err != nil {
				fail(fmt.Sprintf("existence check failed: %s: %v", summary.RaceID, err))
				continue
			}
			if exists {
				s.log.Debug("Race already stored, skipping", "race_id", summary.RaceID)
				stats.Skipped++
				continue
			}
		}
		detail, err := s.Detail(ctx, summary.RaceID)
		if err != nil {
			fail(fmt.Sprintf("detail scraping failed: %s: %v", summary.RaceID, err))
			continue
		}
		if err := s.races.SaveRace(ctx, detail); err != nil {
			fail(fmt.Sprintf("database insert failed: %s: %v", summary.RaceID, err))
			continue
		}
		stats.Success++
		s.log.Info("Race stored", "race_id", summary.RaceID, "progress", fmt.Sprintf("%d/%d", i+1, len(races)))
	}

	s.log.Info("Race scraping summary", "total", stats.Total, "success", stats.Success,
		"skipped", stats.Skipped, "failed", stats.Failed)
	for _, msg := range stats.Errors[:min(len(stats.Errors), loggedErrors)] {
		s.log.Warn("Race scraping error", "error", msg)
	}
	return stats
}

// G1ByYear stores every G1 race run in year.
func (s *RaceService) G1ByYear(ctx context.Context, year int) (domain.StoreStats, error) {
	races, err := s.List(ctx, domain.RaceConditions{StartYear: year, EndYear: year, Grades: []string{"1"}, Limit: g1YearLimit})
	if err != nil {
		return domain.StoreStats{}, err
	}
	if len(races) == 0 {
		s.log.Warn("No G1 race found", "year", year)
		return domain.StoreStats{}, nil
	}
	return s.ScrapeAndStore(ctx, races, true), nil
}

// Recent stores the G1 and G2 races run during the last days, today included.
func (s *RaceService) Recent(ctx context.Context, days int) (domain.StoreStats, error) {
	end := s.now()
	start := end.AddDate(0, 0, -days)
	races, err := s.List(ctx, domain.RaceConditions{
		StartYear: start.Year(),
		EndYear:   end.Year(),
		Grades:    []string{"1", "2"},
		Limit:     defaultRaceLimit,
	})
	if err != nil {
		return domain.StoreStats{}, err
	}
	recent := FilterByDate(races, start, end)
	s.log.Info("Recent races selected", "days", days, "count", len(recent))
	return s.ScrapeAndStore(ctx, recent, true), nil
}

// FilterByDate keeps the races run between the calendar days of start and end included.
func FilterByDate(races []domain.RaceSummary, start, end time.Time) []domain.RaceSummary {
	first, last := day(start), day(end)
	var kept []domain.RaceSummary
	for _, race := range races {
		if race.RaceDate.IsZero() {
			continue
		}
		d := day(race.RaceDate)
		if !d.Before(first) && !d.After(last) {
			kept = append(kept, race)
		}
	}
	return kept
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
