package tmdb

import "context"

// Provider is the port for fetching movie data from the catalog service.
type Provider interface {
	ListPopular(ctx context.Context) ([]MovieSummary, error)
	GetDetails(ctx context.Context, id int) (*MovieDetails, error)
}

var _ Provider = (*Client)(nil)
