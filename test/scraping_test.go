package test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stallion/domain"
	"stallion/extractor"
	"stallion/mocks"
	"stallion/parser"
	"stallion/repositories"
	"stallion/scraping"
	"stallion/services"
)

const (
	equinox = "2019105219"
	liberty = "2020103656"
	kitasan = "2012104511"
	chateau = "2011103960"
	kingHal = "1985100834"
)

// netkeiba serves the handful of pages a batch of two horses walks through. The detail page of
// liberty is missing, so one horse fails.
func netkeiba(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	pages := map[string]string{
		"/horse/list.html": `<html><body><table class="nk_tb_common race_table_01">` +
			listRow(liberty, "リバティアイランド", 2020) + listRow(equinox, "イクイノックス", 2019) +
			`</table></body></html>`,
		"/horse/" + equinox + "/": `<html><body><div class="horse_title"><h1>イクイノックス</h1>` +
			`<p class="txt_01">現役　牡4　青鹿毛</p></div><p class="eng_name"><a>Equinox</a></p>` +
			`<table class="db_prof_table"><tr><th>母父</th><td><a href="/horse/` + kingHal + `/">King Halo</a></td></tr></table>` +
			`</body></html>`,
		"/horse/ped/" + equinox + "/": pedigree(kitasan, chateau, kingHal),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func listRow(id, name string, year int) string {
	return fmt.Sprintf(`<tr><td><input type="checkbox" name="i-horse_%[1]s" value="%[1]s"></td>`+
		`<td><a href="/horse/%[1]s/">%[2]s</a></td><td>牡</td><td><a href="/horse/list.html?year=%[3]d">%[3]d</a></td></tr>`,
		id, name, year)
}

func pedigree(sire, dam, bms string) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><table class="blood_table_detail">`)
	for row := 0; row < 32; row++ {
		switch row {
		case 0:
			fmt.Fprintf(&sb, `<tr><td rowspan="16"><a href="/horse/%s/">キタサンブラック</a></td></tr>`, sire)
		case 16:
			fmt.Fprintf(&sb, `<tr><td rowspan="16"><a href="/horse/%s/">シャトーブランシュ</a></td>`+
				`<td rowspan="8"><a href="/horse/%s/">King Halo</a></td></tr>`, dam, bms)
		default:
			sb.WriteString("<tr></tr>")
		}
	}
	sb.WriteString("</table></body></html>")
	return sb.String()
}

func Test_Batch_Scenario(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// 1. Local stores: badger for pages, claims and runs, an in memory bluge index
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	defer db.Close()
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	req.NoError(err)
	defer writer.Close()
	index := repositories.NewHorseIndex(writer, log)
	journal := repositories.NewRunJournalRepository(db, log)

	// 2. Fetcher against the fake site, pages cached in badger
	var hits atomic.Int32
	srv := netkeiba(t, &hits)
	cfg := scraping.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Interval = 0
	fetcher := scraping.NewFetcher(cfg, log, scraping.WithCache(repositories.NewPageCacheRepository(db, log, time.Hour)))
	keywords, err := parser.NewKeywords()
	req.NoError(err)
	ex := extractor.New(keywords, log)

	// 3. Remote storage is mocked
	ctrl := gomock.NewController(t)
	horses := mocks.NewMockIHorseRepository(ctrl)
	relations := mocks.NewMockIRelationRepository(ctrl)
	horses.EXPECT().ExistingIDs(gomock.Any()).Return(map[string]struct{}{}, nil)
	var stored domain.Horse
	horses.EXPECT().SaveHorse(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h domain.Horse) error {
		stored = h
		return nil
	})
	relations.EXPECT().SaveRelations(gomock.Any(), gomock.Len(3)).Return(3, nil)
	relations.EXPECT().FindMating(gomock.Any(), kitasan, chateau).Return(domain.Relation{}, false, nil)
	relations.EXPECT().SaveRelations(gomock.Any(), gomock.Len(1)).Return(1, nil)

	horseService := services.NewHorseService(log, fetcher, ex, horses, relations, index)
	list := services.NewHorseListService(log, fetcher, ex)
	batch := services.NewBatchService(log, list, horseService, horses,
		repositories.NewClaimRepository(db, log, time.Minute), journal, nil)

	report, err := batch.Run(ctx, services.BatchOptions{
		List:           services.ListQuery{Max: 2, MinBirthYear: services.DefaultMinBirthYear},
		SkipExisting:   true,
		Workers:        2,
		MetricInterval: 10 * time.Millisecond,
	})
	req.NoError(err)
	req.Equal(2, report.Total)
	req.Len(report.Success, 1)
	req.Equal(equinox, report.Success[0].HorseID)
	req.Len(report.Failed, 1)
	req.Equal(liberty, report.Failed[0].HorseID)

	req.Equal(equinox, stored.ID)
	req.Equal(domain.SexStallion, stored.Sex)
	req.Equal(kitasan, stored.SireID)
	req.Equal(chateau, stored.DamID)
	req.Equal(kingHal, stored.MaternalGrandsireID)

	// 4. The run is journaled and the horse with its ancestors is searchable
	runs, err := journal.Latest(1)
	req.NoError(err)
	req.Len(runs, 1)
	req.Equal(report.RunID, runs[0].RunID)

	found, err := index.Search(ctx, "ノックス", 5)
	req.NoError(err)
	req.Len(found, 1)
	req.Equal("Equinox", found[0].NameEn)
	found, err = index.Search(ctx, "halo", 5)
	req.NoError(err)
	req.Len(found, 1)
	req.True(found[0].Ancestor)

	// 5. A second read of the list comes from the page cache
	before := hits.Load()
	_, err = list.G1Horses(ctx, services.ListQuery{Max: 2, MinBirthYear: services.DefaultMinBirthYear})
	req.NoError(err)
	req.Equal(before, hits.Load())
}
