//go:generate go run go.uber.org/mock/mockgen -source=ranking.go -destination=../mocks/mock_ranking_repository.go -package=mocks
package repositories

import (
	"context"

	"stallion/domain"
	"stallion/errors"
)

// IRankingRepository upserts ranking rows on their netkeiba id.
type IRankingRepository interface {
	SaveJockeys(ctx context.Context, jockeys []domain.Jockey) error
	SaveTrainers(ctx context.Context, trainers []domain.Trainer) error
	SaveOwners(ctx context.Context, owners []domain.Owner) error
	SaveBreeders(ctx context.Context, breeders []domain.Breeder) error
}

// SaveRankings dispatches rankings to the method matching their kind.
func SaveRankings(ctx context.Context, repo IRankingRepository, rankings domain.Rankings) error {
	switch rankings.Kind {
	case domain.RankingJockey:
		return repo.SaveJockeys(ctx, rankings.Jockeys)
	case domain.RankingTrainer:
		return repo.SaveTrainers(ctx, rankings.Trainers)
	case domain.RankingOwner:
		return repo.SaveOwners(ctx, rankings.Owners)
	case domain.RankingBreeder:
		return repo.SaveBreeders(ctx, rankings.Breeders)
	default:
		return errors.ErrUnknownRankingKind
	}
}
