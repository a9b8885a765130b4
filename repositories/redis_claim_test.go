package repositories

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"stallion/errors"
)

func TestRedisClaimRepository(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	req := require.New(t)
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer func() { _ = rdb.Close() }()
	req.NoError(rdb.Ping(ctx).Err())

	repo := NewRedisClaimRepository(rdb, slog.Default(), time.Minute, WithClaimPrefix("stallion:test:"+uuid.NewString()))
	first, second := uuid.New(), uuid.New()

	req.NoError(repo.Claim(ctx, first, "2019105219"))
	req.NoError(repo.Claim(ctx, first, "2019105219"))
	req.ErrorIs(repo.Claim(ctx, second, "2019105219"), errors.ErrAlreadyClaimed)

	req.NoError(repo.Release(ctx, second, "2019105219"))
	req.ErrorIs(repo.Claim(ctx, second, "2019105219"), errors.ErrAlreadyClaimed)
	req.NoError(repo.Release(ctx, first, "2019105219"))
	req.NoError(repo.Claim(ctx, second, "2019105219"))
	req.NoError(repo.Release(ctx, second, "2019105219"))
}
