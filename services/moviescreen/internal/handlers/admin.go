package handlers

import (
	"net/http"

	"github.com/example/moviescreen/internal/platform/api"
	"github.com/example/moviescreen/internal/platform/httpserver"
)

type refreshResponse struct {
	OK       bool   `json:"ok"`
	Count    int    `json:"count"`
	Degraded int    `json:"degraded"`
	Version  uint64 `json:"version"`
}

// Refresh handles POST /v1/admin/refresh. A failed refresh answers 502 and
// leaves the published list as it was.
func Refresh(c Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		res := c.Refresh(r.Context())
		if !res.OK {
			msg := "refresh failed"
			if res.Err != nil {
				msg = res.Err.Error()
			}
			api.BadGateway(w, "REFRESH_FAILED", msg, rid, nil)
			return
		}
		api.WriteJSON(w, http.StatusOK, refreshResponse{OK: true, Count: res.Count, Degraded: res.Degraded, Version: res.Version})
	}
}
