package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/moviescreen/services/moviescreen/internal/ratelimit"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultTimeout      = 10 * time.Second
	userAgent           = "moviescreen/1.0"
)

var (
	// ErrStatus wraps every non-200 upstream answer.
	ErrStatus = errors.New("tmdb: unexpected status")
	// ErrDecode wraps JSON decoding failures.
	ErrDecode = errors.New("tmdb: decode error")
)

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Limiter    *ratelimit.Limiter
}

// Options configures New. Zero values take defaults.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Limiter *ratelimit.Limiter
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(opts.BaseURL, "/"),
		APIKey:     opts.APIKey,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
		Limiter:    opts.Limiter,
	}
}

// MovieSummary is one entry of the popular list.
// Duration and Genre are not sent by /movie/popular; they are filled during enrichment.
type MovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Rating      float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
	Duration    string  `json:"duration"`
	Genre       string  `json:"genre"`
}

type PopularResponse struct {
	Results []MovieSummary `json:"results"`
}

type Genre struct {
	Name *string `json:"name"`
}

// MovieDetails carries the fields merged into a summary. Both may be absent upstream.
type MovieDetails struct {
	Runtime *int    `json:"runtime"`
	Genres  []Genre `json:"genres"`
}

// ListPopular returns the default page of /movie/popular.
func (c *Client) ListPopular(ctx context.Context) ([]MovieSummary, error) {
	var out PopularResponse
	if err := c.get(ctx, "/movie/popular", 4<<20, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []MovieSummary{}
	}
	return out.Results, nil
}

// GetDetails returns runtime and genres for one movie.
func (c *Client) GetDetails(ctx context.Context, id int) (*MovieDetails, error) {
	if id <= 0 {
		return nil, fmt.Errorf("tmdb: movie id must be positive, got %d", id)
	}
	var out MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), 2<<20, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, limit int64, dst any) error {
	if err := c.Limiter.Wait(ctx); err != nil {
		return err
	}

	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return fmt.Errorf("tmdb: read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s status %d body=%q", ErrStatus, path, resp.StatusCode, snippet(b))
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: GET %s: %v body=%q", ErrDecode, path, err, snippet(b))
	}
	return nil
}

func snippet(b []byte) string {
	return string(b[:min(len(b), 200)])
}
