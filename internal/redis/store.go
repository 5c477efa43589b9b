package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lockreap/lockreapd/internal/core"
)

// Store implements core.Store over a single go-redis command interface,
// which may be a pooled client or a dedicated connection.
type Store struct {
	rdb goredis.Cmdable
}

// NewStore wraps a go-redis command interface.
func NewStore(rdb goredis.Cmdable) *Store {
	return &Store{rdb: rdb}
}

// SortedSetReverseRange returns all zset members, highest score first.
func (s *Store) SortedSetReverseRange(ctx context.Context, key string) ([]string, error) {
	return s.rdb.ZRevRange(ctx, key, 0, -1).Result()
}

// SortedSetCard returns ZCARD for key.
func (s *Store) SortedSetCard(ctx context.Context, key string) (int64, error) {
	return s.rdb.ZCard(ctx, key).Result()
}

// SortedSetScore returns a member's score, mapping a missing member to
// (0, false, nil).
func (s *Store) SortedSetScore(ctx context.Context, key, member string) (float64, bool, error) {
	score, err := s.rdb.ZScore(ctx, key, member).Result()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

// SortedSetScan runs ZSCAN to completion and returns matching members.
// ZSCAN replies interleave members with scores; scores are dropped here.
func (s *Store) SortedSetScan(ctx context.Context, key, pattern string, count int64) ([]string, error) {
	var members []string
	var cursor uint64
	for {
		pairs, next, err := s.rdb.ZScan(ctx, key, cursor, pattern, count).Result()
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(pairs); i += 2 {
			members = append(members, pairs[i])
		}
		cursor = next
		if cursor == 0 {
			return members, nil
		}
	}
}

// SetScanEach runs SSCAN to completion and returns all members.
func (s *Store) SetScanEach(ctx context.Context, key string) ([]string, error) {
	var members []string
	var cursor uint64
	for {
		batch, next, err := s.rdb.SScan(ctx, key, cursor, "*", 100).Result()
		if err != nil {
			return nil, err
		}
		members = append(members, batch...)
		cursor = next
		if cursor == 0 {
			return members, nil
		}
	}
}

// ListLength returns LLEN for key.
func (s *Store) ListLength(ctx context.Context, key string) (int64, error) {
	return s.rdb.LLen(ctx, key).Result()
}

// ListRange returns the inclusive [start, stop] window of a list.
func (s *Store) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.rdb.LRange(ctx, key, start, stop).Result()
}

// RunScript executes a registered Lua script via EVALSHA, falling back to
// EVAL when the script is not yet cached server-side.
func (s *Store) RunScript(ctx context.Context, name string, keys []string, args ...any) (int64, error) {
	script, ok := scripts[name]
	if !ok {
		return 0, fmt.Errorf("unknown script %q", name)
	}
	return script.Run(ctx, s.rdb, keys, args...).Int64()
}

// Delete removes plain keys.
func (s *Store) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.rdb.Del(ctx, keys...).Result()
}

// SortedSetRemove removes members from a zset.
func (s *Store) SortedSetRemove(ctx context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	return s.rdb.ZRem(ctx, key, args...).Result()
}

// DeleteLockBatch removes one chunk of digests from the registry together
// with their per-digest metadata keys, pipelined into a single round trip.
// The returned count is how many digests were present in the registry, so
// re-deleting an absent digest is a no-op.
func (s *Store) DeleteLockBatch(ctx context.Context, keys core.Keys, digests []string) (int64, error) {
	if len(digests) == 0 {
		return 0, nil
	}
	var removed *goredis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		members := make([]any, len(digests))
		metaKeys := make([]string, 0, len(digests)*(len(core.LockKeySuffixes)+1))
		for i, digest := range digests {
			members[i] = digest
			metaKeys = append(metaKeys, core.LockKeys(digest)...)
		}
		removed = pipe.ZRem(ctx, keys.Digests, members...)
		pipe.Del(ctx, metaKeys...)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed.Val(), nil
}

// Get fetches a plain key, mapping a missing key to ("", nil).
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", nil
	}
	return val, err
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
