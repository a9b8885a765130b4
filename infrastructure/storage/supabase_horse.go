package storage

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/supabase-community/postgrest-go"
	supabasego "github.com/supabase-community/supabase-go"

	"stallion/domain"
	"stallion/errors"
	"stallion/supabase"
)

const pageSize = 1000

// SupabaseHorseRepository writes with the service role handle and reads with the public one,
// the horses table being readable by anyone.
type SupabaseHorseRepository struct {
	writer *supabasego.Client
	reader *supabasego.Client
	log    *slog.Logger
}

func NewSupabaseHorseRepository(clients supabase.Clients, log *slog.Logger) SupabaseHorseRepository {
	return SupabaseHorseRepository{writer: clients.Service, reader: clients.Public, log: log}
}

func (r SupabaseHorseRepository) SaveHorse(ctx context.Context, horse domain.Horse) error {
	if err := supabase.Exec(ctx, r.writer.From(tableHorses).Upsert([]horseRow{fromHorse(horse)}, "id", "minimal", "")); err != nil {
		return fmt.Errorf("save horse %s: %w", horse.ID, err)
	}
	r.log.Debug("Horse saved", "id", horse.ID, "name", horse.DisplayName())
	return nil
}

func (r SupabaseHorseRepository) SaveSummaries(ctx context.Context, summaries []domain.HorseSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	rows := make([]horseRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, horseRow{ID: s.ID, NameJa: s.NameJa})
	}
	return supabase.Exec(ctx, r.writer.From(tableHorses).Upsert(rows, "id", "minimal", ""))
}

func (r SupabaseHorseRepository) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	for offset := 0; ; offset += pageSize {
		var rows []horseRow
		q := r.reader.From(tableHorses).Select("id", "", false).
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			Range(offset, offset+pageSize-1, "")
		if err := supabase.Fetch(ctx, q, &rows); err != nil {
			return nil, fmt.Errorf("list horse ids: %w", err)
		}
		for _, row := range rows {
			ids[row.ID] = struct{}{}
		}
		if len(rows) < pageSize {
			return ids, nil
		}
	}
}

func (r SupabaseHorseRepository) Exists(ctx context.Context, id string) (bool, error) {
	var rows []horseRow
	if err := supabase.Fetch(ctx, r.reader.From(tableHorses).Select("id", "", false).Eq("id", id).Limit(1, ""), &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Horse reads a stored horse back, profile included.
func (r SupabaseHorseRepository) Horse(ctx context.Context, id string) (domain.Horse, bool, error) {
	var rows []horseRow
	if err := supabase.Fetch(ctx, r.reader.From(tableHorses).Select("*", "", false).Eq("id", id).Limit(1, ""), &rows); err != nil {
		return domain.Horse{}, false, err
	}
	if len(rows) == 0 {
		return domain.Horse{}, false, nil
	}
	return rows[0].toHorse(), true, nil
}

// SupabaseRelationRepository writes relations through PostgREST. The query builder offers neither an
// ignore-duplicates insert nor an atomic jsonb append, so concurrent writers of the same mating must be
// serialised by the caller.
type SupabaseRelationRepository struct {
	client *supabasego.Client
	log    *slog.Logger
}

func NewSupabaseRelationRepository(client *supabasego.Client, log *slog.Logger) SupabaseRelationRepository {
	return SupabaseRelationRepository{client: client, log: log}
}

func (r SupabaseRelationRepository) SaveRelations(ctx context.Context, relations []domain.Relation) (int, error) {
	inserted := 0
	for _, relation := range relations {
		var existing []relationRow
		q := r.client.From(tableRelations).Select("id", "", false).
			Eq("horse_a_id", relation.HorseAID).
			Eq("horse_b_id", relation.HorseBID).
			Eq("relation_type", string(relation.Type)).
			Limit(1, "")
		if err := supabase.Fetch(ctx, q, &existing); err != nil {
			return inserted, err
		}
		if len(existing) > 0 {
			continue
		}
		if err := supabase.Exec(ctx, r.client.From(tableRelations).Insert(fromRelation(relation), false, "", "minimal", "")); err != nil {
			return inserted, fmt.Errorf("insert %s %s->%s: %w", relation.Type, relation.HorseAID, relation.HorseBID, err)
		}
		inserted++
	}
	r.log.Debug("Relations saved", "inserted", inserted, "total", len(relations))
	return inserted, nil
}

func (r SupabaseRelationRepository) FindMating(ctx context.Context, sireID, damID string) (domain.Relation, bool, error) {
	var rows []relationRow
	q := r.client.From(tableRelations).Select("*", "", false).
		Eq("relation_type", string(domain.RelationMating)).
		Or(fmt.Sprintf("and(horse_a_id.eq.%s,horse_b_id.eq.%s),and(horse_a_id.eq.%s,horse_b_id.eq.%s)",
			sireID, damID, damID, sireID), "").
		Order("id", &postgrest.OrderOpts{Ascending: true}).
		Limit(1, "")
	if err := supabase.Fetch(ctx, q, &rows); err != nil {
		return domain.Relation{}, false, err
	}
	if len(rows) == 0 {
		return domain.Relation{}, false, nil
	}
	return rows[0].toRelation(), true, nil
}

// AddChild reads the children of the mating back and patches them when childID is missing.
func (r SupabaseRelationRepository) AddChild(ctx context.Context, relationID int64, childID string) error {
	id := strconv.FormatInt(relationID, 10)
	var rows []relationRow
	if err := supabase.Fetch(ctx, r.client.From(tableRelations).Select("id,children_ids", "", false).Eq("id", id), &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("mating %d: %w", relationID, errors.ErrRelationNotFound)
	}
	children := rows[0].ChildrenIDs
	if slices.Contains(children, childID) {
		return nil
	}
	patch := map[string]any{"children_ids": append(children, childID)}
	return supabase.Exec(ctx, r.client.From(tableRelations).Update(patch, "minimal", "").Eq("id", id))
}
