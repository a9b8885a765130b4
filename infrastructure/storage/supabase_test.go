package storage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stallion/domain"
	"stallion/errors"
	"stallion/supabase"
)

type call struct {
	method string
	path   string
	query  string
	key    string
	body   string
}

type fakePostgrest struct {
	mu      sync.Mutex
	calls   []call
	replies map[string]string
}

func newFakePostgrest(t *testing.T, replies map[string]string) (*fakePostgrest, supabase.Clients) {
	t.Helper()
	fake := &fakePostgrest{replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		fake.mu.Lock()
		fake.calls = append(fake.calls, call{
			method: r.Method,
			path:   strings.TrimPrefix(r.URL.Path, "/rest/v1/"),
			query:  r.URL.RawQuery,
			key:    r.Header.Get("apikey"),
			body:   string(raw),
		})
		fake.mu.Unlock()
		switch r.Method {
		case http.MethodHead:
			w.Header().Set("Content-Range", "0-0/42")
			return
		case http.MethodGet:
		default:
			w.WriteHeader(http.StatusCreated)
			return
		}
		reply, ok := fake.replies[r.Method+" "+strings.TrimPrefix(r.URL.Path, "/rest/v1/")]
		if !ok {
			reply = "[]"
		}
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	clients, err := supabase.NewClients(supabase.Credentials{
		URL:            srv.URL,
		AnonKey:        "anon-key",
		ServiceRoleKey: "service-key",
	}, slog.Default())
	require.NoError(t, err)
	return fake, clients
}

func (f *fakePostgrest) writes() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.method != http.MethodGet && c.method != http.MethodHead {
			out = append(out, c)
		}
	}
	return out
}

func TestSupabaseHorseRepository_Writes_With_Service_Key(t *testing.T) {
	req := require.New(t)
	fake, clients := newFakePostgrest(t, map[string]string{
		"GET horses": `[{"id":"2019105219"}]`,
	})
	repo := NewSupabaseHorseRepository(clients, slog.Default())
	ctx := context.Background()

	req.NoError(repo.SaveHorse(ctx, domain.Horse{ID: "2019105219", NameJa: "イクイノックス"}))
	found, err := repo.Exists(ctx, "2019105219")
	req.NoError(err)
	req.True(found)

	req.Len(fake.calls, 2)
	req.Equal(http.MethodPost, fake.calls[0].method)
	req.Equal("service-key", fake.calls[0].key)
	req.Contains(fake.calls[0].query, "on_conflict=id")
	req.JSONEq(`[{"id":"2019105219","name_ja":"イクイノックス"}]`, fake.calls[0].body)
	req.Equal("anon-key", fake.calls[1].key)
}

func TestSupabaseRelationRepository_Skips_Existing(t *testing.T) {
	req := require.New(t)
	fake, clients := newFakePostgrest(t, nil)
	repo := NewSupabaseRelationRepository(clients.Service, slog.Default())

	inserted, err := repo.SaveRelations(context.Background(), []domain.Relation{
		{HorseAID: "2012104511", HorseBID: "2019105219", Type: domain.RelationSireOf},
	})
	req.NoError(err)
	req.Equal(1, inserted)
	writes := fake.writes()
	req.Len(writes, 1)
	req.Equal("horse_relations", writes[0].path)
	req.JSONEq(`{"horse_a_id":"2012104511","horse_b_id":"2019105219","relation_type":"sire_of"}`, writes[0].body)
}

func TestSupabaseRelationRepository_FindMating_Decodes_Children(t *testing.T) {
	req := require.New(t)
	fake, clients := newFakePostgrest(t, map[string]string{
		"GET horse_relations": `[{"id":7,"horse_a_id":"dam","horse_b_id":"sire","relation_type":"mating","children_ids":["a"]}]`,
	})
	repo := NewSupabaseRelationRepository(clients.Service, slog.Default())

	mating, found, err := repo.FindMating(context.Background(), "sire", "dam")
	req.NoError(err)
	req.True(found)
	req.Equal(int64(7), mating.ID)
	req.Equal([]string{"a"}, mating.ChildrenIDs)
	// Both directions in a single request
	req.Len(fake.calls, 1)
	req.Contains(fake.calls[0].query, "relation_type=eq.mating")
	req.Contains(fake.calls[0].query, "or=")
}

func TestSupabaseRelationRepository_AddChild(t *testing.T) {
	req := require.New(t)
	fake, clients := newFakePostgrest(t, map[string]string{
		"GET horse_relations": `[{"id":7,"children_ids":["a"]}]`,
	})
	repo := NewSupabaseRelationRepository(clients.Service, slog.Default())
	ctx := context.Background()

	req.NoError(repo.AddChild(ctx, 7, "b"))
	writes := fake.writes()
	req.Len(writes, 1)
	req.Equal(http.MethodPatch, writes[0].method)
	req.Contains(writes[0].query, "id=eq.7")
	req.JSONEq(`{"children_ids":["a","b"]}`, writes[0].body)

	// Already a child: nothing is written
	req.NoError(repo.AddChild(ctx, 7, "a"))
	req.Len(fake.writes(), 1)
}

func TestSupabaseRelationRepository_AddChild_Unknown_Mating(t *testing.T) {
	req := require.New(t)
	_, clients := newFakePostgrest(t, nil)
	repo := NewSupabaseRelationRepository(clients.Service, slog.Default())

	err := repo.AddChild(context.Background(), 7, "b")
	req.ErrorIs(err, errors.ErrRelationNotFound)
}

func TestSupabaseRaceRepository_Saves_Results_By_Chunks(t *testing.T) {
	req := require.New(t)
	fake, clients := newFakePostgrest(t, nil)
	repo := NewSupabaseRaceRepository(clients.Service, slog.Default())

	detail := domain.RaceDetail{Race: domain.Race{RaceID: "202505021211", RaceDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), RaceName: "日本ダービー", Distance: 2400}}
	for i := 0; i < 60; i++ {
		detail.Results = append(detail.Results, domain.RaceResult{RaceID: "202505021211", HorseID: strings.Repeat("1", 10) + string(rune('a'+i%26))})
	}
	req.NoError(repo.SaveRace(context.Background(), detail))

	writes := fake.writes()
	req.Len(writes, 3)
	req.Equal("races", writes[0].path)
	req.Contains(writes[0].body, `"race_date":"2025-06-01"`)
	req.Equal("race_results", writes[1].path)
	req.Contains(writes[1].query, "on_conflict=race_id%2Chorse_id")
}

func TestSupabaseRaceRepository_Stats(t *testing.T) {
	req := require.New(t)
	_, clients := newFakePostgrest(t, map[string]string{
		"GET races": `[{"race_id":"202505021211","race_date":"2025-06-01","grade":"G1","track_name":"東京"},
			{"race_id":"202505021011","race_date":"2025-05-25","grade":"G1","track_name":"東京"},
			{"race_id":"202509030811","race_date":"2025-05-04","track_name":"京都"}]`,
	})
	repo := NewSupabaseRaceRepository(clients.Service, slog.Default())

	stats, err := repo.Stats(context.Background())
	req.NoError(err)
	req.Equal(42, stats.TotalRaces)
	req.Equal(42, stats.TotalResults)
	req.Equal(map[string]int{"G1": 2, "none": 1}, stats.ByGrade)
	req.Equal(map[string]int{"東京": 2, "京都": 1}, stats.ByTrack)
	req.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *stats.LatestRaceDate)
}

func TestSupabaseRankingRepository_Upserts_On_Id(t *testing.T) {
	req := require.New(t)
	fake, clients := newFakePostgrest(t, nil)
	repo := NewSupabaseRankingRepository(clients.Service, slog.Default())

	req.NoError(repo.SaveJockeys(context.Background(), []domain.Jockey{{JockeyID: "05339", NameJa: "ルメール"}}))
	writes := fake.writes()
	req.Len(writes, 1)
	req.Equal("jockeys", writes[0].path)
	req.Contains(writes[0].query, "on_conflict=jockey_id")
}

func TestSupabaseRaceRepository_DateRange_Keeps_Both_Bounds(t *testing.T) {
	req := require.New(t)
	fake, clients := newFakePostgrest(t, map[string]string{
		"GET races": `[{"race_id":"202505021211","race_date":"2025-06-01","race_name":"日本ダービー","grade":"G1"}]`,
	})
	repo := NewSupabaseRaceRepository(clients.Public, slog.Default())

	races, err := repo.DateRange(context.Background(),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), "G1")
	req.NoError(err)
	req.Len(races, 1)
	req.Contains(fake.calls[0].query, "race_date.gte.2025-05-01")
	req.Contains(fake.calls[0].query, "race_date.lte.2025-06-30")
	req.Contains(fake.calls[0].query, "grade=eq.G1")
}
