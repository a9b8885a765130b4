//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=../mocks/mock_source.go -package=mocks
package services

import (
	"context"

	"stallion/scraping"
)

// IDocumentSource fetches and parses a page of the site. *scraping.Fetcher is the production source.
type IDocumentSource interface {
	Document(ctx context.Context, path string, query scraping.Query) (*scraping.Node, error)
}
