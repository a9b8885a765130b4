package storage

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/samber/lo"

	"stallion/domain"
	"stallion/errors"
)

const dialectPostgres = "postgres"

var pg = goqu.Dialect(dialectPostgres)

// PostgresStore serves every repository straight from a PostgreSQL database, bypassing PostgREST.
type PostgresStore struct {
	db  DBAdapter
	log *slog.Logger
}

type PostgresHorseRepository struct{ *PostgresStore }
type PostgresRelationRepository struct{ *PostgresStore }
type PostgresRaceRepository struct{ *PostgresStore }
type PostgresRankingRepository struct{ *PostgresStore }

func (s *PostgresStore) Horses() PostgresHorseRepository       { return PostgresHorseRepository{s} }
func (s *PostgresStore) Relations() PostgresRelationRepository { return PostgresRelationRepository{s} }
func (s *PostgresStore) Races() PostgresRaceRepository         { return PostgresRaceRepository{s} }
func (s *PostgresStore) Rankings() PostgresRankingRepository   { return PostgresRankingRepository{s} }

func NewPostgresStore(db DBAdapter, log *slog.Logger) (*PostgresStore, error) {
	if db == nil {
		return nil, errors.ErrNilDatabase
	}
	return &PostgresStore{db: db, log: log}, nil
}

// Migrate creates the missing tables.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, Schema)
	return err
}

func (s PostgresHorseRepository) SaveHorse(ctx context.Context, horse domain.Horse) error {
	if err := upsert(ctx, s.db, tableHorses, []string{"id"}, []horseRow{fromHorse(horse)}); err != nil {
		return errors.Join(fmt.Errorf("save horse %s", horse.ID), err)
	}
	return nil
}

func (s PostgresHorseRepository) SaveSummaries(ctx context.Context, summaries []domain.HorseSummary) error {
	rows := lo.Map(summaries, func(h domain.HorseSummary, _ int) horseRow {
		return horseRow{ID: h.ID, NameJa: h.NameJa}
	})
	return upsert(ctx, s.db, tableHorses, []string{"id"}, rows)
}

func (s PostgresHorseRepository) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	query, _, err := pg.From(tableHorses).Select("id").ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (s PostgresHorseRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, s.db, pg.From(tableHorses).Where(goqu.C("id").Eq(id)))
}

// SaveRelations relies on the unique pair index: a relation already stored, or inserted meanwhile by
// another writer, is skipped by the database.
func (s PostgresRelationRepository) SaveRelations(ctx context.Context, relations []domain.Relation) (int, error) {
	inserted := 0
	err := s.db.InTx(ctx, func(tx DBAdapter) error {
		for _, relation := range relations {
			rec, err := record(fromRelation(relation))
			if err != nil {
				return err
			}
			query, _, err := pg.Insert(tableRelations).Rows(rec).OnConflict(goqu.DoNothing()).ToSQL()
			if err != nil {
				return err
			}
			res, err := tx.Exec(ctx, query)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	return inserted, err
}

func (s PostgresRelationRepository) FindMating(ctx context.Context, sireID, damID string) (domain.Relation, bool, error) {
	ds := pg.From(tableRelations).
		Where(
			goqu.C("relation_type").Eq(string(domain.RelationMating)),
			goqu.Or(
				goqu.Ex{"horse_a_id": sireID, "horse_b_id": damID},
				goqu.Ex{"horse_a_id": damID, "horse_b_id": sireID},
			),
		).
		Order(goqu.C("id").Asc()).
		Limit(1)
	rows, err := queryJSON[relationRow](ctx, s.db, ds)
	if err != nil || len(rows) == 0 {
		return domain.Relation{}, false, err
	}
	return rows[0].toRelation(), true, nil
}

// AddChild appends childID to the children of a mating in a single statement, so concurrent siblings
// never overwrite each other.
func (s PostgresRelationRepository) AddChild(ctx context.Context, relationID int64, childID string) error {
	query, _, err := pg.Update(tableRelations).
		Set(goqu.Record{"children_ids": goqu.L("COALESCE(children_ids, '[]'::jsonb) || jsonb_build_array(?::text)", childID)}).
		Where(
			goqu.C("id").Eq(relationID),
			goqu.L("NOT COALESCE(children_ids, '[]'::jsonb) @> jsonb_build_array(?::text)", childID),
		).
		ToSQL()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, query)
	return err
}

func (s PostgresRankingRepository) SaveJockeys(ctx context.Context, jockeys []domain.Jockey) error {
	return upsert(ctx, s.db, tableJockeys, []string{"jockey_id"}, fromJockeys(jockeys))
}

func (s PostgresRankingRepository) SaveTrainers(ctx context.Context, trainers []domain.Trainer) error {
	return upsert(ctx, s.db, tableTrainers, []string{"trainer_id"}, fromTrainers(trainers))
}

func (s PostgresRankingRepository) SaveOwners(ctx context.Context, owners []domain.Owner) error {
	return upsert(ctx, s.db, tableOwners, []string{"owner_id"}, fromOwners(owners))
}

func (s PostgresRankingRepository) SaveBreeders(ctx context.Context, breeders []domain.Breeder) error {
	return upsert(ctx, s.db, tableBreeders, []string{"breeder_id"}, fromBreeders(breeders))
}

func (s PostgresRaceRepository) Exists(ctx context.Context, raceID string) (bool, error) {
	return exists(ctx, s.db, pg.From(tableRaces).Where(goqu.C("race_id").Eq(raceID)))
}

// SaveRace stores the race, a minimal row for every runner and the results in one transaction.
func (s PostgresRaceRepository) SaveRace(ctx context.Context, detail domain.RaceDetail) error {
	err := s.db.InTx(ctx, func(tx DBAdapter) error {
		if err := upsert(ctx, tx, tableRaces, []string{"race_id"}, []raceRow{fromRace(detail.Race)}); err != nil {
			return err
		}
		runners := lo.UniqBy(lo.Map(detail.Results, func(r domain.RaceResult, _ int) horseRow {
			return horseRow{ID: r.HorseID, NameJa: r.HorseName}
		}), func(h horseRow) string { return h.ID })
		if err := insertMissing(ctx, tx, tableHorses, runners); err != nil {
			return err
		}
		results := lo.Map(detail.Results, func(r domain.RaceResult, _ int) raceResultRow { return fromRaceResult(r) })
		return upsert(ctx, tx, tableRaceResults, []string{"race_id", "horse_id"}, results)
	})
	if err != nil {
		return errors.Join(fmt.Errorf("save race %s", detail.Race.RaceID), err)
	}
	s.log.Debug("Race saved", "race_id", detail.Race.RaceID, "results", len(detail.Results))
	return nil
}

func (s PostgresRaceRepository) Results(ctx context.Context, raceID string) ([]domain.RaceResult, error) {
	rows, err := queryJSON[raceResultRow](ctx, s.db,
		pg.From(tableRaceResults).Where(goqu.C("race_id").Eq(raceID)),
		goqu.I("t.finish_position").Asc().NullsLast(), goqu.I("t.horse_number").Asc())
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row raceResultRow, _ int) domain.RaceResult { return row.toRaceResult() }), nil
}

func (s PostgresRaceRepository) History(ctx context.Context, horseID string) ([]domain.RaceHistory, error) {
	ds := pg.From(goqu.T(tableRaceResults).As("rr")).
		InnerJoin(goqu.T(tableRaces).As("r"), goqu.On(goqu.I("r.race_id").Eq(goqu.I("rr.race_id")))).
		Select(goqu.L("rr.*"), goqu.L("row_to_json(r)").As("races")).
		Where(goqu.I("rr.horse_id").Eq(horseID))
	rows, err := queryJSON[historyRow](ctx, s.db, ds)
	if err != nil {
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

func (s PostgresRaceRepository) DateRange(ctx context.Context, start, end time.Time, grade string) ([]domain.Race, error) {
	ds := pg.From(tableRaces).Where(
		goqu.C("race_date").Gte(start.Format(dateLayout)),
		goqu.C("race_date").Lte(end.Format(dateLayout)),
	)
	if grade != "" {
		ds = ds.Where(goqu.C("grade").Eq(grade))
	}
	return s.races(ctx, ds)
}

func (s PostgresRaceRepository) Latest(ctx context.Context, limit int) ([]domain.Race, error) {
	ds := pg.From(tableRaces).Order(goqu.C("race_date").Desc(), goqu.C("race_id").Desc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	return s.races(ctx, ds)
}

func (s PostgresRaceRepository) races(ctx context.Context, ds *goqu.SelectDataset) ([]domain.Race, error) {
	rows, err := queryJSON[raceRow](ctx, s.db, ds, goqu.I("t.race_date").Desc(), goqu.I("t.race_id").Desc())
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row raceRow, _ int) domain.Race { return row.toRace() }), nil
}

func (s PostgresRaceRepository) Delete(ctx context.Context, raceID string) error {
	return s.db.InTx(ctx, func(tx DBAdapter) error {
		for _, table := range []string{tableRaceResults, tableRaces} {
			query, _, err := pg.Delete(table).Where(goqu.C("race_id").Eq(raceID)).ToSQL()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, query); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s PostgresRaceRepository) Stats(ctx context.Context) (domain.RaceStats, error) {
	stats := domain.RaceStats{ByGrade: map[string]int{}, ByTrack: map[string]int{}}
	var err error
	if stats.TotalRaces, err = count(ctx, s.db, tableRaces); err != nil {
		return stats, err
	}
	if stats.TotalResults, err = count(ctx, s.db, tableRaceResults); err != nil {
		return stats, err
	}
	if err := groupCount(ctx, s.db, "COALESCE(grade, 'none')", stats.ByGrade); err != nil {
		return stats, err
	}
	if err := groupCount(ctx, s.db, "COALESCE(track_name, '')", stats.ByTrack); err != nil {
		return stats, err
	}
	query, _, err := pg.From(tableRaces).Select(goqu.L("COALESCE(MAX(race_date)::text, '')")).ToSQL()
	if err != nil {
		return stats, err
	}
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	if rows.Next() {
		var latest string
		if err := rows.Scan(&latest); err != nil {
			return stats, err
		}
		stats.LatestRaceDate = parseDate(latest)
	}
	return stats, rows.Err()
}

// record turns a row into column values. Nested objects and arrays are written as jsonb.
func record(row any) (goqu.Record, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	rec := make(goqu.Record, len(values))
	for column, value := range values {
		switch value.(type) {
		case map[string]any, []any:
			nested, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			rec[column] = goqu.L("?::jsonb", string(nested))
		default:
			rec[column] = value
		}
	}
	return rec, nil
}

// records renders rows with a common column set, absent values becoming NULL.
func records[T any](rows []T) ([]any, []string, error) {
	recs := make([]goqu.Record, 0, len(rows))
	seen := map[string]struct{}{}
	var columns []string
	for _, row := range rows {
		rec, err := record(row)
		if err != nil {
			return nil, nil, err
		}
		for column := range rec {
			if _, ok := seen[column]; !ok {
				seen[column] = struct{}{}
				columns = append(columns, column)
			}
		}
		recs = append(recs, rec)
	}
	slices.Sort(columns)
	out := make([]any, 0, len(recs))
	for _, rec := range recs {
		for _, column := range columns {
			if _, ok := rec[column]; !ok {
				rec[column] = nil
			}
		}
		out = append(out, rec)
	}
	return out, columns, nil
}

// upsert inserts rows and, on a key conflict, only overwrites the columns holding a value.
func upsert[T any](ctx context.Context, db DBAdapter, table string, keys []string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	recs, columns, err := records(rows)
	if err != nil {
		return err
	}
	set := goqu.Record{}
	for _, column := range columns {
		if slices.Contains(keys, column) {
			continue
		}
		set[column] = goqu.L(fmt.Sprintf("COALESCE(EXCLUDED.%s, %s.%s)", column, table, column))
	}
	var conflict exp.ConflictExpression = goqu.DoNothing()
	if len(set) > 0 {
		conflict = goqu.DoUpdate(strings.Join(keys, ", "), set)
	}
	query, _, err := pg.Insert(table).Rows(recs...).OnConflict(conflict).ToSQL()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, query)
	return err
}

func insertMissing[T any](ctx context.Context, db DBAdapter, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	recs, _, err := records(rows)
	if err != nil {
		return err
	}
	query, _, err := pg.Insert(table).Rows(recs...).OnConflict(goqu.DoNothing()).ToSQL()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, query)
	return err
}

// queryJSON selects whole rows as json and decodes them, ordered by the outer expressions.
func queryJSON[T any](ctx context.Context, db DBAdapter, ds *goqu.SelectDataset, order ...exp.OrderedExpression) ([]T, error) {
	outer := pg.From(ds.As("t")).Select(goqu.L("row_to_json(t)::text"))
	if len(order) > 0 {
		outer = outer.Order(order...)
	}
	query, _, err := outer.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []T
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var row T
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func exists(ctx context.Context, db DBAdapter, ds *goqu.SelectDataset) (bool, error) {
	query, _, err := ds.Select(goqu.L("1")).Limit(1).ToSQL()
	if err != nil {
		return false, err
	}
	rows, err := db.Query(ctx, query)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	found := rows.Next()
	return found, rows.Err()
}

func count(ctx context.Context, db DBAdapter, table string) (int, error) {
	query, _, err := pg.From(table).Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return 0, err
	}
	rows, err := db.Query(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return int(n), rows.Err()
}

func groupCount(ctx context.Context, db DBAdapter, expression string, into map[string]int) error {
	query, _, err := pg.From(tableRaces).
		Select(goqu.L(expression).As("label"), goqu.COUNT(goqu.Star())).
		GroupBy(goqu.C("label")).
		ToSQL()
	if err != nil {
		return err
	}
	rows, err := db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var label string
		var n int64
		if err := rows.Scan(&label, &n); err != nil {
			return err
		}
		into[label] = int(n)
	}
	return rows.Err()
}
