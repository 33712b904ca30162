// internal/store/store.go
//
// The persisted game document and the Store interface around it.
//
// GameConfig is the single durable document shared by all three games:
// channel bindings, the counting game's last number and the scoreboard.
// Every mutation is written in full; there are no partial updates.
//
// Implementations:
//   - FileStore:   JSON file on disk (the default, compatible with config.json).
//   - SQLiteStore: the same JSON document in a single-row SQLite table.
//   - memory:      in-process only, for tests and dry runs.

package store

import (
	"context"
	"fmt"

	"github.com/robalobadob/chainbot/internal/game"
)

// GameConfig is the persisted bot state.
type GameConfig struct {
	ListeningChannelID *int64          `json:"listening_channel_id"`
	CountingChannelID  *int64          `json:"counting_channel_id"`
	LastNumber         *int64          `json:"last_number"`
	RatingChannelID    *int64          `json:"rating_channel_id"`
	Points             game.Scoreboard `json:"points"`
}

// Default returns the document used when nothing has been saved yet.
func Default() *GameConfig { return &GameConfig{} }

// Clone returns a deep copy, so a failed save cannot leak into live state.
func (c *GameConfig) Clone() *GameConfig {
	return &GameConfig{
		ListeningChannelID: cloneID(c.ListeningChannelID),
		CountingChannelID:  cloneID(c.CountingChannelID),
		LastNumber:         cloneID(c.LastNumber),
		RatingChannelID:    cloneID(c.RatingChannelID),
		Points:             c.Points.Clone(),
	}
}

func cloneID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Store loads and saves the whole GameConfig.
type Store interface {
	// Load returns the saved document, or Default() if none exists yet.
	// A document that exists but cannot be decoded yields *ParseError.
	Load(ctx context.Context) (*GameConfig, error)

	// Save durably replaces the document. Failures are *PersistenceError.
	Save(ctx context.Context, cfg *GameConfig) error
}

// ParseError reports a stored document that cannot be decoded.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("store: malformed game document in %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PersistenceError reports a failed durable write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
