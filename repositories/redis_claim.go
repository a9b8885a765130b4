package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"stallion/errors"
)

// RedisClaimRepository shares claims between runs started on different hosts.
type RedisClaimRepository struct {
	rdb    *redis.Client
	log    *slog.Logger
	prefix string
	ttl    time.Duration
}

type RedisClaimOption func(*RedisClaimRepository)

func WithClaimPrefix(prefix string) RedisClaimOption {
	return func(r *RedisClaimRepository) { r.prefix = strings.Trim(prefix, ":") }
}

func NewRedisClaimRepository(rdb *redis.Client, log *slog.Logger, ttl time.Duration, opts ...RedisClaimOption) *RedisClaimRepository {
	r := &RedisClaimRepository{rdb: rdb, log: log, prefix: "stallion:claim", ttl: ttl}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisClaimRepository) key(id string) string {
	return r.prefix + ":" + id
}

func (r *RedisClaimRepository) Claim(ctx context.Context, runID uuid.UUID, id string) error {
	ok, err := r.rdb.SetNX(ctx, r.key(id), runID.String(), r.ttl).Result()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	owner, err := r.rdb.Get(ctx, r.key(id)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// expired in between, try once more
		return r.Claim(ctx, runID, id)
	case err != nil:
		return err
	case owner == runID.String():
		return r.rdb.Expire(ctx, r.key(id), r.ttl).Err()
	default:
		return fmt.Errorf("%w: %s held by %s", errors.ErrAlreadyClaimed, id, owner)
	}
}

func (r *RedisClaimRepository) Release(ctx context.Context, runID uuid.UUID, id string) error {
	owner, err := r.rdb.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner != runID.String() {
		r.log.Debug("Claim not held by this run", "id", id, "owner", owner)
		return nil
	}
	return r.rdb.Del(ctx, r.key(id)).Err()
}
