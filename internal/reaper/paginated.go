package reaper

import (
	"context"

	"github.com/lockreap/lockreapd/internal/core"
)

// scanCount is the ZSCAN COUNT hint used for set-membership probes.
const scanCount = 1000

// reapPaginated computes the orphan set client-side and deletes it in
// pipelined chunks. Trades the atomic strategy's guarantees for store
// availability: a digest may transition between the liveness check and the
// delete. That window is accepted; a freshly re-acquired lock with the same
// digest simply re-registers on the next acquisition.
func reapPaginated(ctx context.Context, store core.Store, cfg Config) (int64, error) {
	orphans, err := findOrphans(ctx, store, cfg)
	if err != nil {
		return 0, err
	}
	return DeleteBatch(ctx, store, cfg.Keys, orphans)
}

// findOrphans walks the registry newest-first and keeps every digest with
// no live job, stopping once the batch size is reached. The walk is over
// however many registry entries it takes to find that many orphans, not
// over a fixed prefix.
func findOrphans(ctx context.Context, store core.Store, cfg Config) ([]string, error) {
	digests, err := store.SortedSetReverseRange(ctx, cfg.Keys.Digests)
	if err != nil {
		return nil, err
	}

	var orphans []string
	for _, digest := range digests {
		live, err := belongsToJob(ctx, store, cfg.Keys, digest)
		if err != nil {
			return nil, err
		}
		if live {
			continue
		}
		orphans = append(orphans, digest)
		if len(orphans) >= cfg.BatchSize {
			break
		}
	}
	return orphans, nil
}

// belongsToJob reports whether any live job still references digest,
// checking the cheapest sources first and short-circuiting on the first
// match: scheduled set, then retry set, then every known queue.
func belongsToJob(ctx context.Context, store core.Store, keys core.Keys, digest string) (bool, error) {
	if found, err := inSortedSet(ctx, store, keys.Schedule, digest); found || err != nil {
		return found, err
	}
	if found, err := inSortedSet(ctx, store, keys.Retry, digest); found || err != nil {
		return found, err
	}
	return enqueued(ctx, store, keys, digest)
}

// inSortedSet probes a zset for any entry whose serialized payload contains
// digest, via a glob-pattern ZSCAN. The payloads are treated as opaque text;
// a digest that happens to be a substring of an unrelated entry counts as a
// match, and the cursor may miss entries mutated mid-scan. Both are accepted
// here in exchange for never deserializing the payloads.
func inSortedSet(ctx context.Context, store core.Store, key, digest string) (bool, error) {
	members, err := store.SortedSetScan(ctx, key, "*"+digest+"*", scanCount)
	if err != nil {
		return false, err
	}
	return len(members) > 0, nil
}

// enqueued reports whether digest occurs in any known queue, returning on
// the first queue that matches.
func enqueued(ctx context.Context, store core.Store, keys core.Keys, digest string) (bool, error) {
	queues, err := store.SetScanEach(ctx, keys.Queues)
	if err != nil {
		return false, err
	}
	for _, queue := range queues {
		found, err := scanQueue(ctx, store, core.QueueKey(queue), digest, queuePageSize)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}
