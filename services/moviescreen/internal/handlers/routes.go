package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the catalog endpoints. adminGuard wraps the refresh route;
// nil leaves it open.
func Routes(r chi.Router, c Catalog, tracker Tracker, adminGuard func(http.Handler) http.Handler) {
	r.Get("/v1/state", GetState(c))
	r.Get("/v1/movies", ListMovies(c, tracker))
	r.Get("/v1/movies/top", TopMovies(c))
	r.Get("/v1/movies/{movie_id}", GetMovie(c, tracker))

	r.Group(func(r chi.Router) {
		if adminGuard != nil {
			r.Use(adminGuard)
		}
		r.Post("/v1/admin/refresh", Refresh(c))
	})
}
