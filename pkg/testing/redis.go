package testing

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// GetRedisClientAndCtx connects to the redis named by REDIS_HOST and
// REDIS_PASS (localhost, no password by default) and flushes the given
// key patterns when the test ends.
func GetRedisClientAndCtx(t *testing.T, cleanupPatterns ...string) (context.Context, *redis.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	t.Logf("using redis host: [%s]", redisHost)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(redisHost, "6379"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0, // use default DB
	})

	pingRes, err := rdb.Ping(ctx).Result()
	require.NoError(t, err)
	t.Logf("redis ping res: %s", pingRes)

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		for _, pattern := range cleanupPatterns {
			keys, err := rdb.Keys(cleanupCtx, pattern).Result()
			if err != nil {
				t.Logf("redis cleanup, keys [%s]: %s", pattern, err)
				continue
			}
			if len(keys) > 0 {
				rdb.Del(cleanupCtx, keys...)
			}
		}
		_ = rdb.Close()
	})

	return ctx, rdb
}
