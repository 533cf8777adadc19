package store

import (
	"context"
	"slices"
	"sync"

	"github.com/example/moviescreen/services/moviescreen/internal/catalog"
)

// MemorySnapshotStore keeps the snapshot for the life of the process only.
type MemorySnapshotStore struct {
	mu     sync.RWMutex
	movies []catalog.Movie
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (s *MemorySnapshotStore) Save(_ context.Context, movies []catalog.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = slices.Clone(movies)
	return nil
}

func (s *MemorySnapshotStore) Load(_ context.Context) ([]catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.movies), nil
}

func (s *MemorySnapshotStore) Close() {}
