package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int64
	start time.Time
}

// Memory keeps counters in process memory. Admit is safe for concurrent use
// and increments exactly once per call, so a burst of Quota+k concurrent
// attempts admits exactly Quota.
type Memory struct {
	cfg Config
	now func() time.Time

	mu        sync.Mutex
	windows   map[string]*window
	lastPrune time.Time
}

var _ Limiter = (*Memory)(nil)

type MemoryOption func(*Memory)

// WithClock overrides the time source. Tests use it to step past a window.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

func NewMemory(cfg Config, opts ...MemoryOption) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Memory{
		cfg:     cfg,
		now:     time.Now,
		windows: make(map[string]*window),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastPrune = m.now()
	return m, nil
}

func (m *Memory) Admit(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.maybePrune(now)

	w, ok := m.windows[key]
	if !ok || !now.Before(w.start.Add(m.cfg.Window)) {
		w = &window{start: now}
		m.windows[key] = w
	}
	w.count++

	return decide(m.cfg, w.count, w.start.Add(m.cfg.Window)), nil
}

// Len reports how many keys currently hold a counter.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// maybePrune drops closed windows at most once per window length. Caller
// holds mu.
func (m *Memory) maybePrune(now time.Time) {
	if now.Sub(m.lastPrune) < m.cfg.Window {
		return
	}
	m.lastPrune = now
	for k, w := range m.windows {
		if !now.Before(w.start.Add(m.cfg.Window)) {
			delete(m.windows, k)
		}
	}
}
