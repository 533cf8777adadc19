package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/moviescreen/internal/platform/api"
	"github.com/example/moviescreen/internal/platform/httpserver"
	"github.com/example/moviescreen/services/moviescreen/internal/catalog"
)

type moviesResponse struct {
	Movies  []catalog.Movie `json:"movies"`
	Total   int             `json:"total"`
	Loading bool            `json:"loading"`
	Version uint64          `json:"version"`
}

type stateResponse struct {
	Loading     bool       `json:"loading"`
	Count       int        `json:"count"`
	Version     uint64     `json:"version"`
	RefreshedAt *time.Time `json:"refreshed_at,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
}

// ListMovies handles GET /v1/movies?q=&limit=
func ListMovies(c Catalog, tracker Tracker) http.HandlerFunc {
	tracker = trackerOrNop(tracker)
	return func(w http.ResponseWriter, r *http.Request) {
		st := c.Snapshot()
		q := strings.TrimSpace(r.URL.Query().Get("q"))

		movies := c.Search(q)
		total := len(movies)
		if limit := parseInt(r.URL.Query().Get("limit"), 0, 0, 100); limit > 0 && limit < len(movies) {
			movies = movies[:limit]
		}
		if q != "" {
			tracker.SearchPerformed(q, total)
		}

		api.WriteJSON(w, http.StatusOK, moviesResponse{Movies: movies, Total: total, Loading: st.Loading, Version: st.Version})
	}
}

// TopMovies handles GET /v1/movies/top?n=3
func TopMovies(c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := parseInt(r.URL.Query().Get("n"), 3, 1, 20)
		st := c.Snapshot()
		movies := c.Top(n)
		api.WriteJSON(w, http.StatusOK, moviesResponse{Movies: movies, Total: len(movies), Loading: st.Loading, Version: st.Version})
	}
}

// GetMovie handles GET /v1/movies/{movie_id}. Unknown and malformed ids are both 404.
func GetMovie(c Catalog, tracker Tracker) http.HandlerFunc {
	tracker = trackerOrNop(tracker)
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		m, ok := c.FindRaw(chi.URLParam(r, "movie_id"))
		if !ok {
			api.NotFound(w, "NOT_FOUND", "Movie not found", rid)
			return
		}
		tracker.MovieViewed(m.ID)
		api.WriteJSON(w, http.StatusOK, m)
	}
}

// GetState handles GET /v1/state
func GetState(c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		st := c.Snapshot()
		resp := stateResponse{Loading: st.Loading, Count: len(st.Movies), Version: st.Version, LastError: st.LastError}
		if !st.RefreshedAt.IsZero() {
			at := st.RefreshedAt
			resp.RefreshedAt = &at
		}
		api.WriteJSON(w, http.StatusOK, resp)
	}
}
