// Package handlers is the HTTP boundary between presentation clients and
// the catalog aggregator.
package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/example/moviescreen/services/moviescreen/internal/catalog"
)

// Catalog is the aggregator surface the handlers depend on.
type Catalog interface {
	Snapshot() catalog.State
	Search(query string) []catalog.Movie
	Top(n int) []catalog.Movie
	FindRaw(raw string) (catalog.Movie, bool)
	Refresh(ctx context.Context) catalog.Result
}

// Tracker receives viewer-behaviour events. Implementations must not block.
type Tracker interface {
	MovieViewed(movieID int)
	SearchPerformed(query string, hits int)
}

type nopTracker struct{}

func (nopTracker) MovieViewed(int)             {}
func (nopTracker) SearchPerformed(string, int) {}

func trackerOrNop(t Tracker) Tracker {
	if t == nil {
		return nopTracker{}
	}
	return t
}

func parseInt(v string, def, min, max int) int {
	if strings.TrimSpace(v) == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	if i < min {
		return min
	}
	if i > max {
		return max
	}
	return i
}
