package ingest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcheplay/model"
	"tcheplay/youtube"
)

func TestMerge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	video := youtube.Video{
		ID:           "vid123",
		Title:        "  Filme Dublado  ",
		ChannelTitle: " Canal ",
		PublishedAt:  "2024-03-10T08:00:00Z",
		Duration:     "PT1H40M",
		Embeddable:   true,
	}

	t.Run("creates a new record", func(t *testing.T) {
		movie := merge(nil, video, now)

		require.NotNil(t, movie)
		assert.NotEqual(t, uuid.Nil, movie.ID)
		assert.Equal(t, "vid123", movie.VideoID)
		assert.Equal(t, "Filme Dublado", movie.Title)
		assert.Equal(t, "Canal", movie.ChannelTitle)
		assert.Equal(t, "https://i.ytimg.com/vi/vid123/hqdefault.jpg", movie.ThumbnailURL)
		assert.Equal(t, time.Hour+40*time.Minute, movie.Duration)
		assert.Equal(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), movie.PublishedAt)
		assert.True(t, movie.Embeddable)
		assert.True(t, movie.Approved)
		assert.Equal(t, now, movie.IngestedAt)
	})

	t.Run("updates an existing record in place", func(t *testing.T) {
		existing := &model.Movie{
			ID:         uuid.New(),
			VideoID:    "vid123",
			Title:      "Old Title",
			Approved:   false,
			IngestedAt: now.Add(-24 * time.Hour),
		}

		movie := merge(existing, video, now)

		assert.Same(t, existing, movie)
		assert.Equal(t, existing.ID, movie.ID)
		assert.Equal(t, "Filme Dublado", movie.Title)
		assert.True(t, movie.Approved, "re-ingest re-approves the record")
		assert.Equal(t, now, movie.IngestedAt)
	})

	t.Run("ingest time increases across reingests", func(t *testing.T) {
		first := merge(nil, video, now)
		later := now.Add(time.Hour)
		second := merge(first, video, later)

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.IngestedAt.After(now))
	})

	t.Run("missing publish time falls back to ingest time", func(t *testing.T) {
		v := video
		v.PublishedAt = ""
		movie := merge(nil, v, now)

		assert.Equal(t, now, movie.PublishedAt)
	})
}
