//go:generate go run go.uber.org/mock/mockgen -source=horse_index.go -destination=../mocks/mock_horse_index.go -package=mocks
package repositories

import (
	"context"
	"log/slog"
	"strings"

	"github.com/blugelabs/bluge"

	"stallion/domain"
	"stallion/parser"
)

const (
	fieldNameJa = "name_ja"
	fieldNameEn = "name_en"
	fieldNames  = "names"
	fieldKind   = "kind"

	kindHorse    = "horse"
	kindAncestor = "ancestor"
)

type IHorseIndex interface {
	// Index makes a scraped horse and the ancestors named on its profile searchable.
	Index(horse domain.Horse) error
	Search(ctx context.Context, term string, limit int) ([]IndexedHorse, error)
}

type IndexedHorse struct {
	ID     string
	NameJa string
	NameEn string
	// Ancestor is true when the horse was only seen in a pedigree, never scraped itself.
	Ancestor bool
}

type HorseIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewHorseIndex(writer *bluge.Writer, log *slog.Logger) HorseIndex {
	return HorseIndex{writer: writer, log: log}
}

func (h HorseIndex) Index(horse domain.Horse) error {
	batch := bluge.NewBatch()
	batch.Update(bluge.Identifier(horse.ID), horseDocument(horse.ID, horse.NameJa, horse.NameEn, kindHorse))
	for _, link := range []*domain.HorseLink{horse.Profile.Sire, horse.Profile.Dam, horse.Profile.MaternalGrandsire} {
		if link == nil || link.ID == "" || link.ID == horse.ID {
			continue
		}
		ja, en := parser.SplitName(link.Name)
		batch.Update(bluge.Identifier(link.ID), horseDocument(link.ID, ja, en, kindAncestor))
	}
	if err := h.writer.Batch(batch); err != nil {
		return err
	}
	h.log.Debug("Horse indexed", "id", horse.ID)
	return nil
}

func horseDocument(id, nameJa, nameEn, kind string) *bluge.Document {
	doc := bluge.NewDocument(id).
		AddField(bluge.NewKeywordField(fieldKind, kind).StoreValue()).
		AddField(bluge.NewKeywordField(fieldNames, strings.ToLower(nameJa+" "+nameEn)))
	if nameJa != "" {
		doc.AddField(bluge.NewKeywordField(fieldNameJa, nameJa).StoreValue())
	}
	if nameEn != "" {
		doc.AddField(bluge.NewTextField(fieldNameEn, nameEn).StoreValue())
	}
	return doc
}

// Search matches term anywhere inside japanese or english names, and word by word against english names.
func (h HorseIndex) Search(ctx context.Context, term string, limit int) ([]IndexedHorse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	reader, err := h.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			h.log.Warn("Unable to close index reader", "error", err)
		}
	}()

	query := bluge.NewBooleanQuery().
		AddShould(bluge.NewWildcardQuery("*" + strings.ToLower(term) + "*").SetField(fieldNames)).
		AddShould(bluge.NewMatchQuery(term).SetField(fieldNameEn))
	matches, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var horses []IndexedHorse
	match, err := matches.Next()
	for err == nil && match != nil {
		var horse IndexedHorse
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				horse.ID = string(value)
			case fieldNameJa:
				horse.NameJa = string(value)
			case fieldNameEn:
				horse.NameEn = string(value)
			case fieldKind:
				horse.Ancestor = string(value) == kindAncestor
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		horses = append(horses, horse)
		match, err = matches.Next()
	}
	if err != nil {
		return nil, err
	}
	return horses, nil
}
