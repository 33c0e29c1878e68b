package marshal

import (
	"runtime"

	"go.uber.org/zap"
)

// Config controls scope creation and collection pacing.
type Config struct {
	// Free releases one foreign-owned allocation. Required.
	Free func(uintptr)

	// Interval paces forced collection: a pass runs once the count of
	// completed scopes exceeds it. Zero forces a pass at roughly every
	// scope exit. Nil disables forced collection entirely.
	Interval *int

	// Reclaim runs one collection pass. Defaults to runtime.GC.
	Reclaim func()
}

// Manager creates call scopes and paces forced collection across them.
// Not safe for concurrent use.
type Manager struct {
	free      func(uintptr)
	interval  *int
	reclaim   func()
	completed int
}

// NewManager builds a Manager from cfg. The interval value is copied so
// later mutation of the caller's variable does not change pacing.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		free:    cfg.Free,
		reclaim: cfg.Reclaim,
	}
	if cfg.Interval != nil {
		n := *cfg.Interval
		m.interval = &n
	}
	if m.reclaim == nil {
		m.reclaim = runtime.GC
	}
	return m
}

// With runs body inside a fresh scope. At exit, whether body returns or
// panics, every unconsumed owned result is freed and the pacing counter
// advances. Errors from body pass through unchanged.
func (m *Manager) With(body func(*Scope) error) error {
	s := newScope(m.free)
	defer func() {
		s.release()
		m.pace()
	}()
	return body(s)
}

func (m *Manager) pace() {
	if m.interval != nil && m.completed > *m.interval {
		Logger().Debug("forcing collection pass",
			zap.Int("completed_scopes", m.completed),
			zap.Int("interval", *m.interval))
		m.reclaim()
		m.completed = 0
	}
	m.completed++
}
