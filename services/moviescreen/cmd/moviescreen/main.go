package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/moviescreen/internal/platform/analytics"
	"github.com/example/moviescreen/internal/platform/auth"
	"github.com/example/moviescreen/internal/platform/config"
	"github.com/example/moviescreen/internal/platform/httpserver"
	"github.com/example/moviescreen/internal/platform/logging"
	"github.com/example/moviescreen/internal/platform/natsconn"
	"github.com/example/moviescreen/internal/platform/run"
	mscfg "github.com/example/moviescreen/services/moviescreen/internal/config"
	"github.com/example/moviescreen/services/moviescreen/internal/catalog"
	"github.com/example/moviescreen/services/moviescreen/internal/events"
	"github.com/example/moviescreen/services/moviescreen/internal/handlers"
	"github.com/example/moviescreen/services/moviescreen/internal/ratelimit"
	"github.com/example/moviescreen/services/moviescreen/internal/store"
	"github.com/example/moviescreen/services/moviescreen/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.NewWithService(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	msc, err := mscfg.Load()
	if err != nil {
		log.Error("load moviescreen config", zap.Error(err))
		run.Exit(1)
	}

	ctx := context.Background()

	limiter := ratelimit.NewRPS(msc.TMDBRPS)
	defer limiter.Stop()
	client := tmdb.New(tmdb.Options{
		BaseURL: msc.TMDBBaseURL,
		APIKey:  msc.TMDBAPIKey,
		Timeout: msc.TMDBTimeout,
		Limiter: limiter,
	})

	snapshots, err := store.NewSnapshotStore(ctx, msc.DatabaseURL)
	if err != nil {
		log.Error("open snapshot store", zap.Error(err))
		run.Exit(1)
	}
	defer snapshots.Close()

	var js nats.JetStreamContext
	if msc.NATSURL != "" {
		nc, err := natsconn.Connect(natsconn.Options{URL: msc.NATSURL, Name: cfg.ServiceName})
		if err != nil {
			log.Error("nats connect", zap.Error(err))
			run.Exit(1)
		}
		defer nc.Close()
		if js, err = nc.JetStream(); err != nil {
			log.Error("jetstream", zap.Error(err))
			run.Exit(1)
		}
	}
	notifier, err := events.New(js, log)
	if err != nil {
		log.Error("init refresh publisher", zap.Error(err))
		run.Exit(1)
	}
	tracker := analytics.New(js, log)

	agg := catalog.New(client, catalog.Options{
		ImageBaseURL: msc.ImageBaseURL,
		Mode:         msc.EnrichMode,
		Workers:      msc.EnrichWorkers,
		Store:        snapshots,
		Notifier:     notifier,
		Logger:       log.Named("catalog"),
	})
	if err := agg.Warm(ctx); err != nil {
		log.Warn("snapshot warm-up failed", zap.Error(err))
	}

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{ReadyFunc: func() error {
		if st := agg.Snapshot(); st.Version == 0 && len(st.Movies) == 0 {
			return errors.New("catalog not loaded")
		}
		return nil
	}})

	var guard func(http.Handler) http.Handler
	if msc.JWTSecret != "" {
		guard = auth.AdminOnly(auth.JWTVerifier{Secret: []byte(msc.JWTSecret)})
	} else {
		log.Warn("JWT_SECRET not set, /v1/admin/refresh is unauthenticated")
	}
	handlers.Routes(r, agg, tracker, guard)

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go refreshLoop(ctx, log, agg, msc.RefreshInterval)
		return srv.Start()
	}, srv.Shutdown)

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

// refreshLoop runs an initial refresh, then one every interval. interval 0
// disables the periodic part.
func refreshLoop(ctx context.Context, log *zap.Logger, agg *catalog.Aggregator, interval time.Duration) {
	if res := agg.Refresh(ctx); !res.OK {
		log.Warn("initial refresh failed", zap.Error(res.Err))
	}
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			agg.Refresh(ctx)
		}
	}
}
