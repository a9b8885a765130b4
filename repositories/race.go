//go:generate go run go.uber.org/mock/mockgen -source=race.go -destination=../mocks/mock_race_repository.go -package=mocks
package repositories

import (
	"context"
	"time"

	"stallion/domain"
)

type IRaceRepository interface {
	Exists(ctx context.Context, raceID string) (bool, error)
	// SaveRace upserts the race and its results, in a single transaction when the backend allows it.
	SaveRace(ctx context.Context, detail domain.RaceDetail) error
	// Results are ordered by finish position.
	Results(ctx context.Context, raceID string) ([]domain.RaceResult, error)
	// History lists the races run by a horse, latest first.
	History(ctx context.Context, horseID string) ([]domain.RaceHistory, error)
	// DateRange lists races between start and end included, latest first. An empty grade means any grade.
	DateRange(ctx context.Context, start, end time.Time, grade string) ([]domain.Race, error)
	// Latest lists the most recent races.
	Latest(ctx context.Context, limit int) ([]domain.Race, error)
	Delete(ctx context.Context, raceID string) error
	Stats(ctx context.Context) (domain.RaceStats, error)
}
