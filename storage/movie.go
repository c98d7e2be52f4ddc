package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"tcheplay/model"
)

const movieColumns = `id, video_id, title, channel_title, thumbnail_url, duration_seconds, published_at, embeddable, approved, ingested_at`

type PostgresMovieRepository struct {
	postgres *Postgres
}

func NewPostgresMovieRepository(postgres *Postgres) *PostgresMovieRepository {
	return &PostgresMovieRepository{postgres: postgres}
}

// FindByVideoIDs loads the existing records for the given video IDs in one
// query, keyed by video ID. IDs without a record are simply absent.
func (r *PostgresMovieRepository) FindByVideoIDs(ctx context.Context, ids []string) (map[string]*model.Movie, error) {
	if len(ids) == 0 {
		return map[string]*model.Movie{}, nil
	}

	rows, err := r.postgres.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movie WHERE video_id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query movies by video id: %w", err)
	}

	movies, err := scanMovies(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string]*model.Movie, len(movies))
	for _, movie := range movies {
		result[movie.VideoID] = movie
	}

	return result, nil
}

// SaveAll upserts all movies in a single transaction. The unique constraint
// on video_id makes overlapping ingest runs last-writer-wins instead of
// producing duplicate rows.
func (r *PostgresMovieRepository) SaveAll(ctx context.Context, movies []*model.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	tx, err := r.postgres.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, movie := range movies {
		_, err := tx.ExecContext(ctx, `
INSERT INTO movie (`+movieColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (video_id) DO UPDATE SET
title = EXCLUDED.title,
channel_title = EXCLUDED.channel_title,
thumbnail_url = EXCLUDED.thumbnail_url,
duration_seconds = EXCLUDED.duration_seconds,
published_at = EXCLUDED.published_at,
embeddable = EXCLUDED.embeddable,
approved = EXCLUDED.approved,
ingested_at = EXCLUDED.ingested_at`,
			movie.ID,
			movie.VideoID,
			movie.Title,
			movie.ChannelTitle,
			movie.ThumbnailURL,
			int64(movie.Duration/time.Second),
			movie.PublishedAt,
			movie.Embeddable,
			movie.Approved,
			movie.IngestedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert movie %s: %w", movie.VideoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit movies: %w", err)
	}

	return nil
}

func (r *PostgresMovieRepository) FindAll(ctx context.Context, page, pageSize int) ([]*model.Movie, int, error) {
	return r.findPage(ctx, `approved`, nil, page, pageSize)
}

func (r *PostgresMovieRepository) FindRecent(ctx context.Context, days, page, pageSize int) ([]*model.Movie, int, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	return r.findPage(ctx, `approved AND published_at >= $1`, []any{since}, page, pageSize)
}

func (r *PostgresMovieRepository) FindByTitle(ctx context.Context, q string, page, pageSize int) ([]*model.Movie, int, error) {
	if q == "" {
		return r.FindAll(ctx, page, pageSize)
	}

	return r.findPage(ctx, `approved AND title ILIKE $1`, []any{"%" + q + "%"}, page, pageSize)
}

func (r *PostgresMovieRepository) FindByYear(ctx context.Context, year, page, pageSize int) ([]*model.Movie, int, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	return r.findPage(ctx, `approved AND published_at >= $1 AND published_at < $2`, []any{start, end}, page, pageSize)
}

func (r *PostgresMovieRepository) findPage(ctx context.Context, where string, args []any, page, pageSize int) ([]*model.Movie, int, error) {
	var total int
	if err := r.postgres.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movie WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM movie WHERE %s ORDER BY published_at DESC LIMIT $%d OFFSET $%d`,
		movieColumns, where, len(args)+1, len(args)+2)
	rows, err := r.postgres.db.QueryContext(ctx, query, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query movies: %w", err)
	}

	movies, err := scanMovies(rows)
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func scanMovies(rows *sql.Rows) ([]*model.Movie, error) {
	defer rows.Close()

	var movies []*model.Movie
	for rows.Next() {
		var movie model.Movie
		var durationSeconds int64
		if err := rows.Scan(
			&movie.ID,
			&movie.VideoID,
			&movie.Title,
			&movie.ChannelTitle,
			&movie.ThumbnailURL,
			&durationSeconds,
			&movie.PublishedAt,
			&movie.Embeddable,
			&movie.Approved,
			&movie.IngestedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movie.Duration = time.Duration(durationSeconds) * time.Second
		movies = append(movies, &movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return movies, nil
}
