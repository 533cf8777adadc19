package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/moviescreen/services/moviescreen/internal/catalog"
	"github.com/example/moviescreen/services/moviescreen/internal/tmdb"
)

type Config struct {
	TMDBBaseURL     string
	TMDBAPIKey      string
	ImageBaseURL    string
	TMDBTimeout     time.Duration
	TMDBRPS         int
	EnrichMode      catalog.Mode
	EnrichWorkers   int
	RefreshInterval time.Duration
	NATSURL         string
	DatabaseURL     string
	JWTSecret       string
}

func Load() (Config, error) {
	key := strings.TrimSpace(os.Getenv("TMDB_API_KEY"))
	if key == "" {
		return Config{}, errors.New("TMDB_API_KEY is required")
	}
	mode, err := catalog.ParseMode(strings.ToLower(strings.TrimSpace(os.Getenv("ENRICH_MODE"))))
	if err != nil {
		return Config{}, fmt.Errorf("ENRICH_MODE: %w", err)
	}

	cfg := Config{
		TMDBBaseURL:  envString("TMDB_BASE_URL", tmdb.DefaultBaseURL),
		TMDBAPIKey:   key,
		ImageBaseURL: envString("TMDB_IMAGE_BASE_URL", tmdb.DefaultImageBaseURL),
		EnrichMode:   mode,
		NATSURL:      strings.TrimSpace(os.Getenv("NATS_URL")),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}
	if cfg.TMDBTimeout, err = envDuration("TMDB_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RefreshInterval, err = envDuration("REFRESH_INTERVAL", 0); err != nil {
		return Config{}, err
	}
	if cfg.TMDBRPS, err = envInt("TMDB_RPS", 0); err != nil {
		return Config{}, err
	}
	if cfg.EnrichWorkers, err = envInt("ENRICH_WORKERS", 4); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration, got %q", key, v)
	}
	return d, nil
}
