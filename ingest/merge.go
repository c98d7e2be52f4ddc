package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tcheplay/model"
	"tcheplay/youtube"
)

// merge builds the movie to persist for one eligible video. With an existing
// record its mutable fields are overwritten in place (the ID survives);
// without one a fresh record is created. Either way the video is re-approved
// and stamped with the current ingest time.
func merge(existing *model.Movie, v youtube.Video, now time.Time) *model.Movie {
	movie := existing
	if movie == nil {
		movie = &model.Movie{
			ID:      uuid.New(),
			VideoID: v.ID,
		}
	}

	movie.Title = strings.TrimSpace(v.Title)
	movie.ChannelTitle = strings.TrimSpace(v.ChannelTitle)
	movie.ThumbnailURL = model.ThumbnailURL(v.ID)
	movie.Duration = ParseISODuration(v.Duration)
	movie.PublishedAt = publishedAt(v.PublishedAt, now)
	movie.Embeddable = true
	movie.Approved = true
	movie.IngestedAt = now

	return movie
}

// publishedAt parses the platform publish time, falling back to the ingest
// time when the platform omits it.
func publishedAt(raw string, fallback time.Time) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fallback
	}

	return t.UTC()
}
