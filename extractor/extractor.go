// Package extractor turns netkeiba pages into domain values.
// Malformed markup never panics: missing cells give zero values and missing blocks give errors.
package extractor

import (
	"log/slog"
	"time"

	"stallion/parser"
	"stallion/scraping"
)

type Extractor struct {
	keywords *parser.Keywords
	log      *slog.Logger
	now      func() time.Time
}

func New(keywords *parser.Keywords, log *slog.Logger) *Extractor {
	return &Extractor{keywords: keywords, log: log, now: time.Now}
}

// firstLink returns the first anchor below n whose href yields an id through extract.
func firstLink(n *scraping.Node, extract func(string) string) (*scraping.Node, string) {
	for _, a := range n.FindAll("a") {
		if id := extract(a.Attr("href")); id != "" {
			return a, id
		}
	}
	return nil, ""
}

// cells gives bounds-checked access to the td of a row.
type cells []*scraping.Node

func (c cells) node(i int) *scraping.Node {
	if i < 0 || i >= len(c) {
		return nil
	}
	return c[i]
}

func (c cells) text(i int) string {
	return c.node(i).Text()
}

func (c cells) stripped(i int) string {
	return c.node(i).StrippedText()
}

// link returns the first anchor of cell i, its text and href.
func (c cells) link(i int) (text, href string, ok bool) {
	a := c.node(i).Find("a")
	if a == nil {
		return "", "", false
	}
	return a.Text(), a.Attr("href"), true
}
