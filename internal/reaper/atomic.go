package reaper

import (
	"context"

	"github.com/lockreap/lockreapd/internal/core"
)

// reapAtomic executes the whole pass as one server-side procedure. The
// liveness checks and deletions are indivisible: no job can transition
// between live and dead mid-pass, and no partial deletion is observable.
func reapAtomic(ctx context.Context, store core.Store, cfg Config) (int64, error) {
	keys := []string{
		cfg.Keys.Digests,
		cfg.Keys.Schedule,
		cfg.Keys.Retry,
		cfg.Keys.Queues,
	}
	return store.RunScript(ctx, core.ScriptReapOrphans, keys, cfg.BatchSize, core.QueuePrefix)
}
