package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"stallion/domain"
	"stallion/extractor"
	"stallion/scraping"
)

const (
	horseListPath    = "/horse/list.html"
	horseListPerPage = 100
	// Grade filter of the horse search matching G1 winners.
	g1WinnerGrade = "4"

	DefaultMinBirthYear = 2015
)

// ListQuery selects a window of the G1 winner list, youngest horses first.
// Max <= 0 reads until the birth year cutoff or the end of the list.
type ListQuery struct {
	Offset       int
	Max          int
	MinBirthYear int
}

type HorseListService struct {
	log       *slog.Logger
	source    IDocumentSource
	extractor *extractor.Extractor
}

func NewHorseListService(log *slog.Logger, source IDocumentSource, extractor *extractor.Extractor) *HorseListService {
	return &HorseListService{log: log, source: source, extractor: extractor}
}

func g1WinnersQuery(page int) scraping.Query {
	return scraping.Query{}.
		Add("grade[]", g1WinnerGrade).
		Add("sort", "age-desc").
		Add("limit", strconv.Itoa(horseListPerPage)).
		Add("page", strconv.Itoa(page))
}

// G1Horses walks the list pages from q.Offset. The list is sorted by birth year, so the first horse
// born before q.MinBirthYear ends the walk. A horse shifted onto the next page while the list was
// being read is only returned once.
func (s *HorseListService) G1Horses(ctx context.Context, q ListQuery) ([]domain.HorseSummary, error) {
	page := q.Offset/horseListPerPage + 1
	position := q.Offset % horseListPerPage

	var horses []domain.HorseSummary
	seen := make(map[string]struct{})
	for q.Max <= 0 || len(horses) < q.Max {
		doc, err := s.source.Document(ctx, horseListPath, g1WinnersQuery(page))
		if err != nil {
			return horses, fmt.Errorf("horse list page %d: %w", page, err)
		}
		rows := s.extractor.HorseList(doc)
		if len(rows) == 0 {
			s.log.Debug("Horse list exhausted", "page", page)
			break
		}
		for _, horse := range rows[min(position, len(rows)):] {
			if horse.BirthYear < q.MinBirthYear {
				s.log.Info("Birth year cutoff reached", "horse_id", horse.ID, "birth_year", horse.BirthYear)
				return horses, nil
			}
			if _, dup := seen[horse.ID]; dup {
				s.log.Debug("Horse listed twice", "horse_id", horse.ID, "page", page)
				continue
			}
			seen[horse.ID] = struct{}{}
			horses = append(horses, horse)
			if q.Max > 0 && len(horses) >= q.Max {
				break
			}
		}
		s.log.Debug("Horse list page read", "page", page, "collected", len(horses))
		page++
		position = 0
	}
	return horses, nil
}
