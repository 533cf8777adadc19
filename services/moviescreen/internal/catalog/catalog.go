// Package catalog owns the display-ready movie list. The Aggregator fetches
// the popular page, enriches every entry with runtime and genres, and
// publishes the result wholesale to its observers.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/example/moviescreen/services/moviescreen/internal/tmdb"
)

// Movie is a summary after enrichment.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Year        string  `json:"year"`
	Rating      float64 `json:"rating"`
	PosterPath  string  `json:"poster_path"`
	PosterURL   string  `json:"poster_url"`
	Duration    string  `json:"duration"`
	Genre       string  `json:"genre"`
}

// State is what presentation layers observe.
type State struct {
	Movies      []Movie   `json:"movies"`
	Loading     bool      `json:"loading"`
	Version     uint64    `json:"version"`
	RefreshedAt time.Time `json:"refreshed_at,omitzero"`
	LastError   string    `json:"last_error,omitempty"`
}

// Mode selects how per-movie enrichment failures are handled.
type Mode string

const (
	// ModeAbort enriches sequentially; the first failure aborts the refresh.
	ModeAbort Mode = "abort"
	// ModeFallback enriches on a bounded worker pool and substitutes
	// placeholder values for movies whose details could not be fetched.
	ModeFallback Mode = "fallback"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAbort:
		return ModeAbort, nil
	case ModeFallback:
		return ModeFallback, nil
	default:
		return "", errors.New("enrich mode must be abort or fallback")
	}
}

// Result is the outcome of one Refresh.
type Result struct {
	OK       bool
	Count    int
	Degraded int
	Version  uint64
	Err      error
}

// SnapshotStore persists the last published list across restarts.
type SnapshotStore interface {
	Save(ctx context.Context, movies []Movie) error
	Load(ctx context.Context) ([]Movie, error)
}

// Notifier is told about every successful publish.
type Notifier interface {
	Refreshed(ctx context.Context, st State, degraded int) error
}

func toMovie(s tmdb.MovieSummary, d *tmdb.MovieDetails, imageBase string) Movie {
	return Movie{
		ID:          s.ID,
		Title:       s.Title,
		ReleaseDate: s.ReleaseDate,
		Year:        tmdb.Year(s.ReleaseDate),
		Rating:      s.Rating,
		PosterPath:  s.PosterPath,
		PosterURL:   tmdb.PosterURL(imageBase, s.PosterPath),
		Duration:    d.Duration(),
		Genre:       d.GenreLabel(),
	}
}
