package extractor

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stallion/parser"
	"stallion/scraping"
)

func newExtractor(t *testing.T) *Extractor {
	t.Helper()
	keywords, err := parser.NewKeywords()
	require.NoError(t, err)
	e := New(keywords, slog.Default())
	e.now = func() time.Time { return time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC) }
	return e
}

func parse(t *testing.T, page string) *scraping.Node {
	t.Helper()
	doc, err := scraping.ParseDocument([]byte(page))
	require.NoError(t, err)
	return doc
}
