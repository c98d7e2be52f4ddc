package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Movie is a catalog entry for a dubbed feature-length video. VideoID is the
// YouTube identifier and is unique across the catalog; re-ingesting a known
// VideoID updates the existing row.
type Movie struct {
	ID           uuid.UUID
	VideoID      string
	Title        string
	ChannelTitle string
	ThumbnailURL string
	Duration     time.Duration
	PublishedAt  time.Time
	Embeddable   bool
	Approved     bool
	IngestedAt   time.Time
}

// ThumbnailURL derives the thumbnail location from the video identifier.
// No API call needed, the URL scheme is stable.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}
