package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

func buildKey(method, path, actor, idemKey string) string {
	return "idemp:" + strings.ToLower(method) + ":" + path + ":" + actor + ":" + idemKey
}

// UUIDs, 32-hex ids and most client-generated tokens fit this.
var reIdemKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]{7,127}$`)

func validKey(k string) bool { return reIdemKey.MatchString(k) }

// store keeps one JSON idempEntry per key.
type store struct {
	rdb     *redis.Client
	lockTTL time.Duration
}

// reserve writes the in-progress entry unless the key already exists.
func (s store) reserve(ctx context.Context, key string, e idempEntry) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, s.lockTTL).Result()
}

func (s store) load(ctx context.Context, key string) (idempEntry, error) {
	var e idempEntry
	v, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return e, fmt.Errorf("decode idempotency entry: %w", err)
	}
	return e, nil
}

// complete replaces the lock with the final response for ttl.
func (s store) complete(ctx context.Context, key string, e idempEntry, ttl time.Duration) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

func (s store) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
