package core

import "context"

// ScriptReapOrphans names the server-side atomic reaper procedure.
const ScriptReapOrphans = "reap_orphans"

// Store is the subset of Redis operations the reaper consumes. Implemented
// over a real connection by internal/redis; tests substitute an in-memory
// fake.
type Store interface {
	// SortedSetReverseRange returns every member of a zset, highest score
	// first.
	SortedSetReverseRange(ctx context.Context, key string) ([]string, error)

	// SortedSetCard returns the number of members in a zset.
	SortedSetCard(ctx context.Context, key string) (int64, error)

	// SortedSetScore returns a member's score and whether it is present.
	SortedSetScore(ctx context.Context, key, member string) (float64, bool, error)

	// SortedSetScan runs a full ZSCAN cursor loop over a zset with a glob
	// pattern, returning the matching members. Entries added or removed
	// while the cursor is open may be missed; callers accept that.
	SortedSetScan(ctx context.Context, key, pattern string, count int64) ([]string, error)

	// SetScanEach runs a full SSCAN cursor loop over a set, returning all
	// members.
	SetScanEach(ctx context.Context, key string) ([]string, error)

	// ListLength returns the current length of a list.
	ListLength(ctx context.Context, key string) (int64, error)

	// ListRange returns the inclusive [start, stop] window of a list.
	ListRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// RunScript executes a named server-side procedure atomically and
	// returns its integer reply.
	RunScript(ctx context.Context, name string, keys []string, args ...any) (int64, error)

	// Delete removes plain keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) (int64, error)

	// SortedSetRemove removes members from a zset, returning how many were
	// actually present.
	SortedSetRemove(ctx context.Context, key string, members ...string) (int64, error)

	// DeleteLockBatch removes one chunk of digests from the registry zset
	// together with their metadata keys, in a single pipeline. Returns the
	// number of digests that were present in the registry.
	DeleteLockBatch(ctx context.Context, keys Keys, digests []string) (int64, error)

	// Get fetches a plain key's value. Returns ("", nil) when absent.
	Get(ctx context.Context, key string) (string, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error
}

// ConnProvider hands out a Store bound to a dedicated connection for the
// duration of fn. The connection is released on every exit path.
type ConnProvider interface {
	WithStore(ctx context.Context, fn func(Store) error) error
}
