package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"stallion/domain"
	"stallion/errors"
)

func TestPrintRankings(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	rankings := domain.Rankings{
		Kind: domain.RankingJockey,
		Jockeys: []domain.Jockey{
			{JockeyID: "05339", NameJa: "ルメール", Performance: domain.Performance{TotalRaces: 500, Wins: 100, WinRate: 20}},
			{JockeyID: "01170", NameJa: "北村友一"},
		},
	}

	printRankings(&out, rankings)

	req.Contains(out.String(), "jockey ranking, 2 entries")
	req.Contains(out.String(), "05339")
	req.Contains(out.String(), "20.00")
	req.Contains(out.String(), "北村友一")
}

func TestPrintStoreStats(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer

	printStoreStats(&out, domain.StoreStats{Total: 3, Success: 1, Skipped: 1, Failed: 1, Errors: []string{"detail scraping failed: 202505021211"}})

	req.Contains(out.String(), "total 3")
	req.Contains(out.String(), "stored 1")
	req.Contains(out.String(), "detail scraping failed: 202505021211")
}

func TestRun_Config_Error_Exit_Code(t *testing.T) {
	req := require.New(t)
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "")
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")

	root := newRootCommand(&bytes.Buffer{})
	root.SetArgs([]string{"check", "--env-file", t.TempDir() + "/missing.env"})
	err := root.Execute()

	var cfgErr *configError
	req.True(errors.As(err, &cfgErr))
	req.ErrorIs(err, errors.ErrMissingCredential)
}
