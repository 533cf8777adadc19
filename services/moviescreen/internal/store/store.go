// Package store persists the last published movie list so a restarted
// service can answer before its first refresh completes.
//
// Backend: Postgres when DATABASE_URL is set, otherwise in-memory.
package store

import (
	"context"

	"github.com/example/moviescreen/services/moviescreen/internal/catalog"
)

// SnapshotStore is satisfied by every backend in this package.
type SnapshotStore interface {
	catalog.SnapshotStore
	Close()
}

// NewSnapshotStore opens the best available backend.
func NewSnapshotStore(ctx context.Context, databaseURL string) (SnapshotStore, error) {
	if databaseURL == "" {
		return NewMemorySnapshotStore(), nil
	}
	return OpenPostgresSnapshotStore(ctx, databaseURL)
}
