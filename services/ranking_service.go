package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"stallion/domain"
	"stallion/extractor"
	"stallion/repositories"
	"stallion/scraping"
)

const rankingPerPage = 100

func rankingPath(kind domain.RankingKind) string { return "/" + string(kind) + "/list.html" }

func rankingQuery(page int) scraping.Query {
	return scraping.Query{}.
		Add("type", "").
		Add("word", "").
		Add("match", "p").
		Add("range", "all").
		Add("state", "all").
		Add("sort", "rank-asc").
		Add("limit", strconv.Itoa(rankingPerPage)).
		Add("page", strconv.Itoa(page))
}

type RankingService struct {
	log       *slog.Logger
	source    IDocumentSource
	extractor *extractor.Extractor
	rankings  repositories.IRankingRepository
}

func NewRankingService(log *slog.Logger, source IDocumentSource, extractor *extractor.Extractor, rankings repositories.IRankingRepository) *RankingService {
	return &RankingService{log: log, source: source, extractor: extractor, rankings: rankings}
}

// Scrape reads the ranking list of kind page after page until limit entries are collected,
// an empty page is met or a page comes back short. limit <= 0 reads the whole list.
func (s *RankingService) Scrape(ctx context.Context, kind domain.RankingKind, limit int) (domain.Rankings, error) {
	if _, err := domain.ParseRankingKind(string(kind)); err != nil {
		return domain.Rankings{}, fmt.Errorf("%w: %q", err, kind)
	}
	all := domain.Rankings{Kind: kind}
	for page := 1; limit <= 0 || all.Len() < limit; page++ {
		doc, err := s.source.Document(ctx, rankingPath(kind), rankingQuery(page))
		if err != nil {
			return all, fmt.Errorf("%s ranking page %d: %w", kind, page, err)
		}
		rankings, err := s.extractor.Rankings(kind, doc)
		if err != nil {
			return all, err
		}
		n := rankings.Len()
		if n == 0 {
			s.log.Debug("Ranking list exhausted", "kind", kind, "page", page)
			break
		}
		room := n
		if limit > 0 {
			room = limit - all.Len()
		}
		all.Jockeys = append(all.Jockeys, rankings.Jockeys[:min(room, len(rankings.Jockeys))]...)
		all.Trainers = append(all.Trainers, rankings.Trainers[:min(room, len(rankings.Trainers))]...)
		all.Owners = append(all.Owners, rankings.Owners[:min(room, len(rankings.Owners))]...)
		all.Breeders = append(all.Breeders, rankings.Breeders[:min(room, len(rankings.Breeders))]...)
		s.log.Info("Ranking page read", "kind", kind, "page", page, "entries", n, "collected", all.Len())
		if n < rankingPerPage {
			break
		}
	}
	return all, nil
}

// ScrapeAndStore scrapes the ranking list of kind and upserts it.
func (s *RankingService) ScrapeAndStore(ctx context.Context, kind domain.RankingKind, limit int) (domain.Rankings, error) {
	rankings, err := s.Scrape(ctx, kind, limit)
	if err != nil {
		return rankings, err
	}
	if rankings.Len() == 0 {
		return rankings, nil
	}
	if err := repositories.SaveRankings(ctx, s.rankings, rankings); err != nil {
		return rankings, fmt.Errorf("save %s rankings: %w", kind, err)
	}
	s.log.Info("Rankings stored", "kind", kind, "count", rankings.Len())
	return rankings, nil
}
