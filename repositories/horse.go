//go:generate go run go.uber.org/mock/mockgen -source=horse.go -destination=../mocks/mock_horse_repository.go -package=mocks
package repositories

import (
	"context"

	"stallion/domain"
)

// IHorseRepository stores horses in the horses table. Every write is an upsert on the horse id.
type IHorseRepository interface {
	SaveHorse(ctx context.Context, horse domain.Horse) error
	// SaveSummaries stores the id and japanese name of list rows, leaving other columns untouched.
	SaveSummaries(ctx context.Context, summaries []domain.HorseSummary) error
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// IRelationRepository stores the horse_relations table.
type IRelationRepository interface {
	// SaveRelations inserts every relation not already stored with the same horses and type
	// and returns how many were inserted.
	SaveRelations(ctx context.Context, relations []domain.Relation) (int, error)
	// FindMating looks for the mating of sire and dam, whatever the direction it was stored in.
	FindMating(ctx context.Context, sireID, damID string) (domain.Relation, bool, error)
	// AddChild appends childID to the children of a stored mating unless it is already one of them.
	AddChild(ctx context.Context, relationID int64, childID string) error
}
