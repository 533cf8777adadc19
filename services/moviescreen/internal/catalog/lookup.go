package catalog

import (
	"strconv"
	"strings"
)

// Find returns the published movie with the given id.
func (a *Aggregator) Find(id int) (Movie, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, m := range a.state.Movies {
		if m.ID == id {
			return m, true
		}
	}
	return Movie{}, false
}

// FindRaw parses an id taken from a route or deep link. Empty or
// non-numeric input is reported as not found rather than as an error.
func (a *Aggregator) FindRaw(raw string) (Movie, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return Movie{}, false
	}
	return a.Find(id)
}

// Search filters by case-insensitive title substring. An empty query matches everything.
func (a *Aggregator) Search(query string) []Movie {
	movies := a.Movies()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return movies
	}
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), q) {
			out = append(out, m)
		}
	}
	return out
}

// Top returns at most n movies in published order.
func (a *Aggregator) Top(n int) []Movie {
	movies := a.Movies()
	if n < 0 {
		n = 0
	}
	return movies[:min(n, len(movies))]
}
