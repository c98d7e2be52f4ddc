package storage

var pgMigration = []string{
	`CREATE TABLE movie (
id uuid PRIMARY KEY,
video_id VARCHAR(50) NOT NULL UNIQUE,
title VARCHAR(300) NOT NULL,
channel_title VARCHAR(200) NOT NULL,
thumbnail_url VARCHAR(500) NOT NULL,
duration_seconds BIGINT NOT NULL,
published_at TIMESTAMPTZ NOT NULL,
embeddable BOOLEAN NOT NULL,
approved BOOLEAN NOT NULL DEFAULT TRUE,
ingested_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX movie_approved_published_at ON movie (approved, published_at)`,
}
