package reaper

import "testing"

func TestManagerStop_Idempotent(t *testing.T) {
	orch := New(&fakeProvider{store: newFakeStore()}, Config{Strategy: StrategyPaginated})
	m := NewManager(orch, "@every 1h")
	if err := m.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	m.Stop()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Stop should be idempotent, panicked on second call: %v", r)
		}
	}()

	m.Stop()
}

func TestManagerStop_WithoutStart(t *testing.T) {
	m := NewManager(New(&fakeProvider{store: newFakeStore()}, Config{}), "")

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Stop before Start panicked: %v", r)
		}
	}()

	m.Stop()
}

func TestManagerStart_InvalidSchedule(t *testing.T) {
	m := NewManager(New(&fakeProvider{store: newFakeStore()}, Config{}), "not a schedule")
	if err := m.Start(); err == nil {
		t.Error("Start() with invalid schedule should error")
	}
}

func TestNewManager_DefaultSchedule(t *testing.T) {
	m := NewManager(New(&fakeProvider{store: newFakeStore()}, Config{}), "")
	if m.schedule != DefaultSchedule {
		t.Errorf("schedule = %q, want %q", m.schedule, DefaultSchedule)
	}
}
