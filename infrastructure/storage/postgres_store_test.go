package storage

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"stallion/domain"
	"stallion/errors"
)

// recordingDB captures rendered statements and replays canned rows for queries.
type recordingDB struct {
	execs   []string
	queries []string
	replies [][][]any
	// affected is consumed by Exec, one count per statement, 1 once exhausted
	affected []int64
	inTx     int
}

func (r *recordingDB) Query(_ context.Context, query string) (DBRows, error) {
	r.queries = append(r.queries, query)
	if len(r.replies) == 0 {
		return &sliceRows{}, nil
	}
	reply := r.replies[0]
	r.replies = r.replies[1:]
	return &sliceRows{rows: reply}, nil
}

func (r *recordingDB) Exec(_ context.Context, query string) (DBResult, error) {
	r.execs = append(r.execs, query)
	if len(r.affected) == 0 {
		return affected(1), nil
	}
	n := r.affected[0]
	r.affected = r.affected[1:]
	return affected(n), nil
}

func (r *recordingDB) InTx(_ context.Context, fn func(tx DBAdapter) error) error {
	r.inTx++
	return fn(r)
}

type affected int64

func (a affected) RowsAffected() (int64, error) { return int64(a), nil }

type sliceRows struct {
	rows [][]any
	pos  int
}

func (s *sliceRows) Next() bool {
	s.pos++
	return s.pos <= len(s.rows)
}

func (s *sliceRows) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = s.rows[s.pos-1][i].(string)
		case *int64:
			*p = s.rows[s.pos-1][i].(int64)
		}
	}
	return nil
}

func (s *sliceRows) Err() error   { return nil }
func (s *sliceRows) Close() error { return nil }

func newStore(t *testing.T, db DBAdapter) *PostgresStore {
	t.Helper()
	store, err := NewPostgresStore(db, slog.Default())
	require.NoError(t, err)
	return store
}

func TestNewPostgresStore_Nil_Database(t *testing.T) {
	_, err := NewPostgresStore(nil, slog.Default())
	require.ErrorIs(t, err, errors.ErrNilDatabase)
}

func TestPostgresHorseRepository_SaveHorse_Upserts_Present_Columns(t *testing.T) {
	req := require.New(t)
	db := &recordingDB{}
	repo := newStore(t, db).Horses()

	err := repo.SaveHorse(context.Background(), domain.Horse{
		ID:      "2019105219",
		NameJa:  "イクイノックス",
		Profile: domain.Profile{Trainer: "木村哲也"},
	})
	req.NoError(err)
	req.Len(db.execs, 1)
	sql := db.execs[0]
	req.Contains(sql, `INSERT INTO "horses" ("id", "name_ja", "profile")`)
	req.Contains(sql, `'{"trainer":"木村哲也"}'::jsonb`)
	req.Contains(sql, `ON CONFLICT (id) DO UPDATE SET`)
	req.Contains(sql, `COALESCE(EXCLUDED.name_ja, horses.name_ja)`)
	req.NotContains(sql, "EXCLUDED.id")
}

func TestPostgresHorseRepository_ExistingIDs(t *testing.T) {
	req := require.New(t)
	db := &recordingDB{replies: [][][]any{{{"2019105219"}, {"2020103475"}}}}

	ids, err := newStore(t, db).Horses().ExistingIDs(context.Background())
	req.NoError(err)
	req.Len(ids, 2)
	req.Contains(ids, "2020103475")
	req.Equal(`SELECT "id" FROM "horses"`, db.queries[0])
}

func TestPostgresRelationRepository_Inserts_Only_Missing(t *testing.T) {
	req := require.New(t)
	// The first relation already exists, the database skips it.
	db := &recordingDB{affected: []int64{0, 1}}
	repo := newStore(t, db).Relations()

	inserted, err := repo.SaveRelations(context.Background(), []domain.Relation{
		{HorseAID: "2012104511", HorseBID: "2019105219", Type: domain.RelationSireOf},
		{HorseAID: "2012104511", HorseBID: "2011103960", Type: domain.RelationMating, ChildrenIDs: []string{"2019105219"}},
	})
	req.NoError(err)
	req.Equal(1, inserted)
	req.Equal(1, db.inTx)
	req.Empty(db.queries)
	req.Len(db.execs, 2)
	for _, sql := range db.execs {
		req.Contains(sql, "ON CONFLICT DO NOTHING")
	}
	req.Contains(db.execs[1], `'["2019105219"]'::jsonb`)
}

func TestPostgresRelationRepository_AddChild_Appends_In_One_Statement(t *testing.T) {
	req := require.New(t)
	db := &recordingDB{}

	req.NoError(newStore(t, db).Relations().AddChild(context.Background(), 7, "2019105219"))
	req.Empty(db.queries)
	req.Len(db.execs, 1)
	sql := db.execs[0]
	req.Contains(sql, `UPDATE "horse_relations" SET "children_ids"=COALESCE(children_ids, '[]'::jsonb) || jsonb_build_array('2019105219'::text)`)
	req.Contains(sql, `("id" = 7)`)
	req.Contains(sql, `NOT COALESCE(children_ids, '[]'::jsonb) @> jsonb_build_array('2019105219'::text)`)
}

func TestPostgresRelationRepository_FindMating_Both_Directions(t *testing.T) {
	req := require.New(t)
	db := &recordingDB{replies: [][][]any{{{`{"id":3,"horse_a_id":"dam","horse_b_id":"sire","relation_type":"mating","children_ids":["x"]}`}}}}

	mating, found, err := newStore(t, db).Relations().FindMating(context.Background(), "sire", "dam")
	req.NoError(err)
	req.True(found)
	req.Equal(int64(3), mating.ID)
	req.True(mating.Pairs("sire", "dam"))
	req.Contains(db.queries[0], `("horse_a_id" = 'sire')`)
	req.Contains(db.queries[0], `("horse_a_id" = 'dam')`)
	req.Contains(db.queries[0], "row_to_json(t)::text")
}

func TestPostgresRaceRepository_SaveRace_In_One_Transaction(t *testing.T) {
	req := require.New(t)
	db := &recordingDB{}
	repo := newStore(t, db).Races()

	err := repo.SaveRace(context.Background(), domain.RaceDetail{
		Race: domain.Race{RaceID: "202505021211", RaceDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), RaceName: "日本ダービー", Distance: 2400},
		Results: []domain.RaceResult{
			{RaceID: "202505021211", HorseID: "2022105081", HorseName: "クロワデュノール", FinishPosition: lo.ToPtr(1), Odds: lo.ToPtr(2.1)},
			{RaceID: "202505021211", HorseID: "2022104631", HorseName: "マスカレードボール"},
		},
	})
	req.NoError(err)
	req.Equal(1, db.inTx)
	req.Len(db.execs, 3)
	req.True(strings.HasPrefix(db.execs[0], `INSERT INTO "races"`))
	req.Contains(db.execs[0], "'2025-06-01'")
	req.Contains(db.execs[1], `INSERT INTO "horses"`)
	req.Contains(db.execs[1], "ON CONFLICT DO NOTHING")
	req.Contains(db.execs[2], `ON CONFLICT (race_id, horse_id) DO UPDATE SET`)
	// The second runner has no odds, the column is still listed and left to NULL.
	req.Contains(db.execs[2], "NULL")
}

func TestPostgresRaceRepository_Stats(t *testing.T) {
	req := require.New(t)
	db := &recordingDB{replies: [][][]any{
		{{int64(12)}},
		{{int64(180)}},
		{{"G1", int64(10)}, {"none", int64(2)}},
		{{"東京", int64(12)}},
		{{"2025-06-01"}},
	}}

	stats, err := newStore(t, db).Races().Stats(context.Background())
	req.NoError(err)
	req.Equal(12, stats.TotalRaces)
	req.Equal(180, stats.TotalResults)
	req.Equal(map[string]int{"G1": 10, "none": 2}, stats.ByGrade)
	req.Equal(map[string]int{"東京": 12}, stats.ByTrack)
	req.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *stats.LatestRaceDate)
}

func TestPostgresRaceRepository_DateRange_With_Grade(t *testing.T) {
	req := require.New(t)
	db := &recordingDB{replies: [][][]any{{{`{"race_id":"202505021211","race_date":"2025-06-01","race_name":"日本ダービー","grade":"G1","distance":2400}`}}}}

	races, err := newStore(t, db).Races().DateRange(context.Background(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "G1")
	req.NoError(err)
	req.Len(races, 1)
	req.Equal("日本ダービー", races[0].RaceName)
	req.Contains(db.queries[0], `("grade" = 'G1')`)
	req.Contains(db.queries[0], `ORDER BY "t"."race_date" DESC`)
}
