package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/moviescreen/services/moviescreen/internal/tmdb"
)

const defaultWorkers = 4

type Options struct {
	ImageBaseURL string
	Mode         Mode
	Workers      int
	Store        SnapshotStore
	Notifier     Notifier
	Logger       *zap.Logger
	Now          func() time.Time
}

type Aggregator struct {
	provider tmdb.Provider
	opts     Options
	log      *zap.Logger

	// refreshMu serializes Refresh; mu guards state and subs.
	refreshMu sync.Mutex
	mu        sync.RWMutex
	state     State
	subs      map[int]chan State
	nextSub   int
}

func New(provider tmdb.Provider, opts Options) *Aggregator {
	if opts.Mode == "" {
		opts.Mode = ModeAbort
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = tmdb.DefaultImageBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Aggregator{
		provider: provider,
		opts:     opts,
		log:      opts.Logger,
		state:    State{Movies: []Movie{}},
		subs:     make(map[int]chan State),
	}
}

// Warm seeds the state from the snapshot store. It is a no-op once a
// refresh has published.
func (a *Aggregator) Warm(ctx context.Context) error {
	if a.opts.Store == nil {
		return nil
	}
	movies, err := a.opts.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if len(movies) == 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Version > 0 {
		return nil
	}
	a.state.Movies = movies
	a.broadcastLocked()
	a.log.Info("catalog warmed from snapshot", zap.Int("count", len(movies)))
	return nil
}

// Refresh fetches, enriches and publishes the popular list. The previous
// list stays published unless the whole cycle succeeds. Loading is reset on
// every return path.
func (a *Aggregator) Refresh(ctx context.Context) Result {
	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	a.setLoading(true)
	defer a.setLoading(false)

	started := a.opts.Now()
	movies, degraded, err := a.fetch(ctx)
	if err != nil {
		a.recordFailure(err)
		a.log.Warn("catalog refresh failed", zap.String("mode", string(a.opts.Mode)), zap.Error(err))
		return Result{Err: err}
	}

	st := a.publish(movies)
	a.log.Info("catalog refreshed",
		zap.Int("count", len(movies)),
		zap.Int("degraded", degraded),
		zap.Uint64("version", st.Version),
		zap.Duration("took", a.opts.Now().Sub(started)),
	)
	a.afterPublish(ctx, st, degraded)
	return Result{OK: true, Count: len(movies), Degraded: degraded, Version: st.Version}
}

func (a *Aggregator) fetch(ctx context.Context) ([]Movie, int, error) {
	summaries, err := a.provider.ListPopular(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list popular: %w", err)
	}
	if a.opts.Mode == ModeFallback {
		return a.enrichConcurrent(ctx, summaries)
	}
	movies, err := a.enrichSequential(ctx, summaries)
	return movies, 0, err
}

func (a *Aggregator) enrichSequential(ctx context.Context, summaries []tmdb.MovieSummary) ([]Movie, error) {
	out := make([]Movie, 0, len(summaries))
	for _, s := range summaries {
		d, err := a.provider.GetDetails(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("details for movie %d: %w", s.ID, err)
		}
		out = append(out, toMovie(s, d, a.opts.ImageBaseURL))
	}
	return out, nil
}

func (a *Aggregator) enrichConcurrent(ctx context.Context, summaries []tmdb.MovieSummary) ([]Movie, int, error) {
	out := make([]Movie, len(summaries))
	var degraded atomic.Int64

	var g errgroup.Group
	g.SetLimit(a.opts.Workers)
	for i, s := range summaries {
		g.Go(func() error {
			d, err := a.provider.GetDetails(ctx, s.ID)
			if err != nil {
				degraded.Add(1)
				a.log.Warn("movie details unavailable, using placeholders", zap.Int("movie_id", s.ID), zap.Error(err))
				d = nil
			}
			out[i] = toMovie(s, d, a.opts.ImageBaseURL)
			return nil
		})
	}
	_ = g.Wait()

	// Cancellation aborts even in fallback mode.
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("enrich: %w", err)
	}
	return out, int(degraded.Load()), nil
}

func (a *Aggregator) afterPublish(ctx context.Context, st State, degraded int) {
	if a.opts.Store != nil {
		if err := a.opts.Store.Save(ctx, st.Movies); err != nil {
			a.log.Warn("snapshot save failed", zap.Error(err))
		}
	}
	if a.opts.Notifier != nil {
		if err := a.opts.Notifier.Refreshed(ctx, st, degraded); err != nil {
			a.log.Warn("refresh notification failed", zap.Uint64("version", st.Version), zap.Error(err))
		}
	}
}
