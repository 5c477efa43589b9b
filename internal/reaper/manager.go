package reaper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule is the pass schedule used when none is configured.
const DefaultSchedule = "@every 30s"

// Manager runs reaper passes on a cron schedule. Passes never overlap: a
// tick that fires while the previous pass is still running is dropped.
type Manager struct {
	orch     *Orchestrator
	schedule string
	cron     *cron.Cron
	running  atomic.Bool
	stopOnce sync.Once
}

// NewManager creates a Manager. The schedule accepts standard cron
// expressions and @every descriptors; empty means DefaultSchedule.
func NewManager(orch *Orchestrator, schedule string) *Manager {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Manager{orch: orch, schedule: schedule}
}

// Start begins scheduling passes in a background goroutine.
func (m *Manager) Start() error {
	m.cron = cron.New()
	if _, err := m.cron.AddFunc(m.schedule, m.pass); err != nil {
		return fmt.Errorf("invalid reaper schedule %q: %w", m.schedule, err)
	}
	m.cron.Start()
	slog.Info("reaper manager started",
		"schedule", m.schedule,
		"strategy", string(m.orch.Config().Strategy),
		"batch_size", m.orch.Config().BatchSize,
	)
	return nil
}

// Stop halts scheduling and waits for an in-flight pass to finish. Safe to
// call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		if m.cron == nil {
			return
		}
		<-m.cron.Stop().Done()
		slog.Info("reaper manager stopped")
	})
}

func (m *Manager) pass() {
	if !m.running.CompareAndSwap(false, true) {
		slog.Warn("previous reaper pass still running, skipping tick")
		return
	}
	defer m.running.Store(false)

	log := slog.With("pass_id", uuid.NewString())
	start := time.Now()

	reaped, err := m.orch.Reap(context.Background())
	if err != nil {
		if !errors.Is(err, ErrUnknownStrategy) {
			log.Error("reaper pass failed", "error", err)
		}
		return
	}
	if reaped > 0 {
		log.Info("reaped orphaned locks",
			"count", reaped,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
