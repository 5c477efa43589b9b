package reaper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lockreap/lockreapd/internal/core"
	"github.com/lockreap/lockreapd/internal/metrics"
)

// Strategy selects how one reaper pass is executed.
type Strategy string

const (
	// StrategyAtomic runs the whole check-and-delete pass as one
	// server-side Lua call. Fast, but blocks the store for the duration;
	// intended for small-to-moderate registries.
	StrategyAtomic Strategy = "atomic"

	// StrategyPaginated computes the orphan set client-side with windowed
	// reads that tolerate concurrent queue draining, then deletes it in
	// pipelined chunks. Never issues a single long-blocking store call.
	StrategyPaginated Strategy = "paginated"
)

// DefaultBatchSize bounds how many orphans one pass reclaims when the
// configuration does not say otherwise.
const DefaultBatchSize = 1000

// ErrUnknownStrategy is returned when the configured strategy is not one of
// the two known variants. The pass reaps nothing; a scheduler driving the
// orchestrator should log it and keep running.
var ErrUnknownStrategy = errors.New("unknown reaper strategy")

// Config is the per-orchestrator reaper configuration, read once at
// construction and never from ambient process state.
type Config struct {
	Strategy  Strategy
	BatchSize int
	Keys      core.Keys
}

// Orchestrator runs reaper passes, dispatching to the configured strategy.
type Orchestrator struct {
	provider core.ConnProvider
	cfg      Config
}

// New creates an Orchestrator. A non-positive batch size falls back to
// DefaultBatchSize; zero Keys fall back to the standard layout.
func New(provider core.ConnProvider, cfg Config) *Orchestrator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Keys == (core.Keys{}) {
		cfg.Keys = core.DefaultKeys()
	}
	return &Orchestrator{provider: provider, cfg: cfg}
}

// Config returns the orchestrator's effective configuration.
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// Reap runs one pass on a dedicated connection acquired for its duration
// and returns the number of locks reclaimed.
func (o *Orchestrator) Reap(ctx context.Context) (int64, error) {
	var reaped int64
	err := o.provider.WithStore(ctx, func(s core.Store) error {
		var rerr error
		reaped, rerr = o.ReapWith(ctx, s)
		return rerr
	})
	return reaped, err
}

// ReapWith runs one pass on a caller-supplied store.
func (o *Orchestrator) ReapWith(ctx context.Context, store core.Store) (int64, error) {
	start := time.Now()

	var reaped int64
	var err error
	switch o.cfg.Strategy {
	case StrategyAtomic:
		reaped, err = reapAtomic(ctx, store, o.cfg)
	case StrategyPaginated:
		reaped, err = reapPaginated(ctx, store, o.cfg)
	default:
		slog.Error("unknown reaper strategy, nothing reaped",
			"strategy", string(o.cfg.Strategy),
			"known", []string{string(StrategyAtomic), string(StrategyPaginated)},
		)
		metrics.ObservePass(string(o.cfg.Strategy), "config_error", 0, time.Since(start))
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, o.cfg.Strategy)
	}

	if err != nil {
		metrics.ObservePass(string(o.cfg.Strategy), "error", reaped, time.Since(start))
		return reaped, err
	}

	if size, serr := store.SortedSetCard(ctx, o.cfg.Keys.Digests); serr == nil {
		metrics.SetRegistrySize(size)
	}
	metrics.ObservePass(string(o.cfg.Strategy), "ok", reaped, time.Since(start))
	return reaped, nil
}
