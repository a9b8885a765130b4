package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/supabase-community/postgrest-go"
	supabasego "github.com/supabase-community/supabase-go"

	"stallion/domain"
	"stallion/errors"
	"stallion/supabase"
)

const resultBatchSize = 50

type SupabaseRaceRepository struct {
	client *supabasego.Client
	log    *slog.Logger
}

func NewSupabaseRaceRepository(client *supabasego.Client, log *slog.Logger) SupabaseRaceRepository {
	return SupabaseRaceRepository{client: client, log: log}
}

func (r SupabaseRaceRepository) Exists(ctx context.Context, raceID string) (bool, error) {
	var rows []raceRow
	if err := supabase.Fetch(ctx, r.client.From(tableRaces).Select("race_id", "", false).Eq("race_id", raceID).Limit(1, ""), &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// SaveRace upserts the race first, then its results by chunks. PostgREST offers no transaction across
// requests, the failed chunks are reported together.
func (r SupabaseRaceRepository) SaveRace(ctx context.Context, detail domain.RaceDetail) error {
	if err := supabase.Exec(ctx, r.client.From(tableRaces).Upsert([]raceRow{fromRace(detail.Race)}, "race_id", "minimal", "")); err != nil {
		return fmt.Errorf("save race %s: %w", detail.Race.RaceID, err)
	}
	rows := lo.Map(detail.Results, func(result domain.RaceResult, _ int) raceResultRow {
		return fromRaceResult(result)
	})
	var errs []error
	saved := 0
	for _, chunk := range lo.Chunk(rows, resultBatchSize) {
		if err := supabase.Exec(ctx, r.client.From(tableRaceResults).Upsert(chunk, "race_id,horse_id", "minimal", "")); err != nil {
			errs = append(errs, err)
			continue
		}
		saved += len(chunk)
	}
	r.log.Debug("Race saved", "race_id", detail.Race.RaceID, "results", saved, "failed", len(rows)-saved)
	if len(errs) > 0 {
		return fmt.Errorf("save results of %s: %w", detail.Race.RaceID, errors.Join(errs...))
	}
	return nil
}

func (r SupabaseRaceRepository) Results(ctx context.Context, raceID string) ([]domain.RaceResult, error) {
	var rows []raceResultRow
	q := r.client.From(tableRaceResults).Select("*", "", false).Eq("race_id", raceID).
		Order("finish_position", &postgrest.OrderOpts{Ascending: true}).
		Order("horse_number", &postgrest.OrderOpts{Ascending: true})
	if err := supabase.Fetch(ctx, q, &rows); err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row raceResultRow, _ int) domain.RaceResult { return row.toRaceResult() }), nil
}

func (r SupabaseRaceRepository) History(ctx context.Context, horseID string) ([]domain.RaceHistory, error) {
	var rows []historyRow
	if err := supabase.Fetch(ctx, r.client.From(tableRaceResults).Select("*,races!inner(*)", "", false).Eq("horse_id", horseID), &rows); err != nil {
		return nil, err
	}
	history := lo.Map(rows, func(row historyRow, _ int) domain.RaceHistory {
		return domain.RaceHistory{Race: row.Race.toRace(), Result: row.toRaceResult()}
	})
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Race.RaceDate.After(history[j].Race.RaceDate)
	})
	return history, nil
}

func (r SupabaseRaceRepository) DateRange(ctx context.Context, start, end time.Time, grade string) ([]domain.Race, error) {
	q := supabase.Between(r.client.From(tableRaces).Select("*", "", false),
		"race_date", start.Format(dateLayout), end.Format(dateLayout))
	if grade != "" {
		q = q.Eq("grade", grade)
	}
	var rows []raceRow
	if err := supabase.Fetch(ctx, q.Order("race_date", &postgrest.OrderOpts{}).Order("race_id", &postgrest.OrderOpts{}), &rows); err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row raceRow, _ int) domain.Race { return row.toRace() }), nil
}

func (r SupabaseRaceRepository) Latest(ctx context.Context, limit int) ([]domain.Race, error) {
	q := r.client.From(tableRaces).Select("*", "", false).
		Order("race_date", &postgrest.OrderOpts{}).
		Order("race_id", &postgrest.OrderOpts{})
	if limit > 0 {
		q = q.Limit(limit, "")
	}
	var rows []raceRow
	if err := supabase.Fetch(ctx, q, &rows); err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row raceRow, _ int) domain.Race { return row.toRace() }), nil
}

// Delete removes the results before the race they reference.
func (r SupabaseRaceRepository) Delete(ctx context.Context, raceID string) error {
	if err := supabase.Exec(ctx, r.client.From(tableRaceResults).Delete("minimal", "").Eq("race_id", raceID)); err != nil {
		return err
	}
	return supabase.Exec(ctx, r.client.From(tableRaces).Delete("minimal", "").Eq("race_id", raceID))
}

func (r SupabaseRaceRepository) Stats(ctx context.Context) (domain.RaceStats, error) {
	stats := domain.RaceStats{ByGrade: map[string]int{}, ByTrack: map[string]int{}}
	var err error
	if stats.TotalRaces, err = supabase.Count(ctx, r.client, tableRaces, "race_id"); err != nil {
		return stats, err
	}
	if stats.TotalResults, err = supabase.Count(ctx, r.client, tableRaceResults, "race_id"); err != nil {
		return stats, err
	}
	for offset := 0; ; offset += pageSize {
		var rows []raceRow
		q := r.client.From(tableRaces).Select("race_id,race_date,grade,track_name", "", false).
			Order("race_date", &postgrest.OrderOpts{}).
			Order("race_id", &postgrest.OrderOpts{Ascending: true}).
			Range(offset, offset+pageSize-1, "")
		if err := supabase.Fetch(ctx, q, &rows); err != nil {
			return stats, err
		}
		if offset == 0 && len(rows) > 0 {
			stats.LatestRaceDate = parseDate(rows[0].RaceDate)
		}
		for _, row := range rows {
			stats.ByGrade[lo.Ternary(row.Grade == "", "none", row.Grade)]++
			stats.ByTrack[row.TrackName]++
		}
		if len(rows) < pageSize {
			return stats, nil
		}
	}
}

type SupabaseRankingRepository struct {
	client *supabasego.Client
	log    *slog.Logger
}

func NewSupabaseRankingRepository(client *supabasego.Client, log *slog.Logger) SupabaseRankingRepository {
	return SupabaseRankingRepository{client: client, log: log}
}

func (r SupabaseRankingRepository) SaveJockeys(ctx context.Context, jockeys []domain.Jockey) error {
	return upsertChunks(ctx, r.client, tableJockeys, "jockey_id", fromJockeys(jockeys))
}

func (r SupabaseRankingRepository) SaveTrainers(ctx context.Context, trainers []domain.Trainer) error {
	return upsertChunks(ctx, r.client, tableTrainers, "trainer_id", fromTrainers(trainers))
}

func (r SupabaseRankingRepository) SaveOwners(ctx context.Context, owners []domain.Owner) error {
	return upsertChunks(ctx, r.client, tableOwners, "owner_id", fromOwners(owners))
}

func (r SupabaseRankingRepository) SaveBreeders(ctx context.Context, breeders []domain.Breeder) error {
	return upsertChunks(ctx, r.client, tableBreeders, "breeder_id", fromBreeders(breeders))
}

func upsertChunks[T any](ctx context.Context, client *supabasego.Client, table, key string, rows []T) error {
	for _, chunk := range lo.Chunk(rows, 100) {
		if err := supabase.Exec(ctx, client.From(table).Upsert(chunk, key, "minimal", "")); err != nil {
			return fmt.Errorf("upsert %s: %w", table, err)
		}
	}
	return nil
}
