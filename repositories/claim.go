//go:generate go run go.uber.org/mock/mockgen -source=claim.go -destination=../mocks/mock_claim_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"stallion/errors"
)

// IClaimRepository prevents two batch runs from scraping the same horse at the same time.
// A claim expires on its own after the configured ttl.
type IClaimRepository interface {
	// Claim returns errors.ErrAlreadyClaimed when another run holds id. Claiming twice from the same run succeeds.
	Claim(ctx context.Context, runID uuid.UUID, id string) error
	Release(ctx context.Context, runID uuid.UUID, id string) error
}

// ClaimRepository holds claims in the local badger store, which is enough when every run shares one host.
type ClaimRepository struct {
	db  *badger.DB
	log *slog.Logger
	ttl time.Duration
}

func NewClaimRepository(db *badger.DB, log *slog.Logger, ttl time.Duration) ClaimRepository {
	return ClaimRepository{db: db, log: log, ttl: ttl}
}

func claimKey(id string) []byte {
	return []byte(fmt.Sprintf("claim:%s", id))
}

func (r ClaimRepository) Claim(_ context.Context, runID uuid.UUID, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		owner, err := claimOwner(txn, id)
		if err != nil {
			return err
		}
		if owner != "" && owner != runID.String() {
			return fmt.Errorf("%w: %s held by %s", errors.ErrAlreadyClaimed, id, owner)
		}
		entry := badger.NewEntry(claimKey(id), []byte(runID.String()))
		if r.ttl > 0 {
			entry = entry.WithTTL(r.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Release only drops a claim held by runID.
func (r ClaimRepository) Release(_ context.Context, runID uuid.UUID, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		owner, err := claimOwner(txn, id)
		if err != nil {
			return err
		}
		if owner != runID.String() {
			r.log.Debug("Claim not held by this run", "id", id, "owner", owner)
			return nil
		}
		return txn.Delete(claimKey(id))
	})
}

func claimOwner(txn *badger.Txn, id string) (string, error) {
	item, err := txn.Get(claimKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var owner string
	err = item.Value(func(v []byte) error {
		owner = string(v)
		return nil
	})
	return owner, err
}
