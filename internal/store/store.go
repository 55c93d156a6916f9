// Package store persists player snapshots. Two backends: Postgres save
// slots for server deployments and a home-directory JSON file for
// local play.
package store

import (
	"context"

	"aurora/internal/game"
)

// Store saves and loads one player snapshot per slot.
type Store interface {
	// Save writes the snapshot, replacing any previous one.
	Save(ctx context.Context, snap game.Snapshot) error
	// Load reads the snapshot. ok is false when no save exists yet.
	Load(ctx context.Context) (snap game.Snapshot, ok bool, err error)
	// Close releases backend resources.
	Close()
}
