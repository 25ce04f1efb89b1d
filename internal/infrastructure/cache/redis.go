package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	pingTimeout  = 5 * time.Second
	retryBackoff = 500 * time.Millisecond
)

// OpenRedis connects and pings, retrying up to attempts times while the
// server comes up. The client backs the idempotency store and the loan
// event stream.
func OpenRedis(ctx context.Context, addr string, db, attempts int, log *zap.Logger) (*redis.Client, error) {
	if attempts < 1 {
		attempts = 1
	}
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	var err error
	backoff := retryBackoff
	for i := 1; i <= attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = r.Ping(pctx).Err()
		cancel()
		if err == nil {
			log.Info("redis: connected", zap.String("addr", addr), zap.Int("db", db))
			return r, nil
		}
		if i == attempts {
			break
		}
		log.Warn("redis: ping failed, retrying", zap.Int("attempt", i), zap.Duration("backoff", backoff), zap.Error(err))
		select {
		case <-ctx.Done():
			_ = r.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	_ = r.Close()
	return nil, fmt.Errorf("redis %s unreachable after %d attempt(s): %w", addr, attempts, err)
}
