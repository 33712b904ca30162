// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used by tests and for running the bot without touching disk.
//
// Characteristics:
//   - Holds a private copy of the last saved GameConfig.
//   - Concurrency-safe via RWMutex (concurrent loads allowed, saves exclusive).
//   - State is lost when the process restarts.
//   - FailSaves makes every Save return a *PersistenceError.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrSaveDisabled is wrapped by saves rejected through FailSaves.
var ErrSaveDisabled = errors.New("saves disabled")

// Memory is an in-process Store.
type Memory struct {
	mu    sync.RWMutex // guards cfg, fail and saves
	cfg   *GameConfig
	fail  bool
	saves int
}

// NewMemoryStore constructs an empty Memory store.
func NewMemoryStore() *Memory {
	return &Memory{}
}

// Load returns a copy of the last saved document, or Default().
func (m *Memory) Load(ctx context.Context) (*GameConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cfg == nil {
		return Default(), nil
	}
	return m.cfg.Clone(), nil
}

// Save stores a copy of cfg.
func (m *Memory) Save(ctx context.Context, cfg *GameConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return &PersistenceError{Op: "save", Err: ErrSaveDisabled}
	}
	m.cfg = cfg.Clone()
	m.saves++
	return nil
}

// FailSaves toggles simulated write failures.
func (m *Memory) FailSaves(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// Saves reports how many saves succeeded.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
