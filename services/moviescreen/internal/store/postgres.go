package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/moviescreen/internal/platform/db"
	"github.com/example/moviescreen/services/moviescreen/internal/catalog"
	"github.com/example/moviescreen/services/moviescreen/internal/tmdb"
)

const schema = `CREATE TABLE IF NOT EXISTS movie_snapshots (
	position     INT PRIMARY KEY,
	movie_id     INT NOT NULL,
	title        TEXT NOT NULL,
	release_date TEXT NOT NULL,
	rating       DOUBLE PRECISION NOT NULL,
	poster_path  TEXT NOT NULL,
	poster_url   TEXT NOT NULL,
	duration     TEXT NOT NULL,
	genre        TEXT NOT NULL,
	saved_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var snapshotColumns = []string{
	"position", "movie_id", "title", "release_date", "rating",
	"poster_path", "poster_url", "duration", "genre",
}

// PostgresSnapshotStore stores one row per movie, ordered by position.
type PostgresSnapshotStore struct {
	pool *pgxpool.Pool
}

// OpenPostgresSnapshotStore connects and creates the table if needed.
func OpenPostgresSnapshotStore(ctx context.Context, dsn string) (*PostgresSnapshotStore, error) {
	pool, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	s := NewPostgresSnapshotStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func NewPostgresSnapshotStore(pool *pgxpool.Pool) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{pool: pool}
}

func (s *PostgresSnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create movie_snapshots: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot in one transaction.
func (s *PostgresSnapshotStore) Save(ctx context.Context, movies []catalog.Movie) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM movie_snapshots`); err != nil {
		return err
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"movie_snapshots"}, snapshotColumns,
		pgx.CopyFromSlice(len(movies), func(i int) ([]any, error) {
			m := movies[i]
			return []any{i, m.ID, m.Title, m.ReleaseDate, m.Rating, m.PosterPath, m.PosterURL, m.Duration, m.Genre}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy snapshot rows: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresSnapshotStore) Load(ctx context.Context) ([]catalog.Movie, error) {
	const q = `SELECT movie_id, title, release_date, rating, poster_path, poster_url, duration, genre
	           FROM movie_snapshots ORDER BY position`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Movie
	for rows.Next() {
		var m catalog.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.ReleaseDate, &m.Rating, &m.PosterPath, &m.PosterURL, &m.Duration, &m.Genre); err != nil {
			return nil, err
		}
		m.Year = tmdb.Year(m.ReleaseDate)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PostgresSnapshotStore) Close() {
	s.pool.Close()
}
