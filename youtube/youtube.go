package youtube

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/youtube/v3"
)

const searchPageSize = 50

// SearchResult is one candidate from a paged movie search.
type SearchResult struct {
	VideoID      string
	Title        string
	Description  string
	ChannelTitle string
	PublishedAt  string
}

// Video is the full metadata record for a single video. PublishedAt is the
// RFC 3339 string as returned by the API, Duration the ISO 8601 form
// (e.g. PT1H45M). Both may be empty.
type Video struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
	PublishedAt  string
	Duration     string
	Embeddable   bool
}

type Client struct {
	service *youtube.Service
}

func NewClient(service *youtube.Service) *Client {
	return &Client{service: service}
}

// SearchMovies fetches one page of long-form movie results for the term,
// returning the candidates plus the continuation token for the next page.
// An empty token means the result stream is exhausted.
func (c *Client) SearchMovies(ctx context.Context, term, region, pageToken string) ([]SearchResult, string, error) {
	call := c.service.Search.
		List([]string{"snippet"}).
		Q(term).
		Type("video").
		VideoType("movie").
		VideoDuration("long").
		RegionCode(region).
		RelevanceLanguage("pt").
		MaxResults(searchPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("search movies: %w", err)
	}

	results := make([]SearchResult, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		result := SearchResult{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			result.Title = item.Snippet.Title
			result.Description = item.Snippet.Description
			result.ChannelTitle = item.Snippet.ChannelTitle
			result.PublishedAt = item.Snippet.PublishedAt
		}
		results = append(results, result)
	}

	return results, response.NextPageToken, nil
}

// VideoDetails fetches full metadata for up to 50 video IDs in one call.
// An empty ID list short-circuits without hitting the API.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	response, err := c.service.Videos.
		List([]string{"snippet", "contentDetails", "status"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("video details: %w", err)
	}

	videos := make([]Video, 0, len(response.Items))
	for _, item := range response.Items {
		video := Video{ID: item.Id}
		if item.Snippet != nil {
			video.Title = item.Snippet.Title
			video.Description = item.Snippet.Description
			video.ChannelTitle = item.Snippet.ChannelTitle
			video.PublishedAt = item.Snippet.PublishedAt
		}
		if item.ContentDetails != nil {
			video.Duration = item.ContentDetails.Duration
		}
		if item.Status != nil {
			video.Embeddable = item.Status.Embeddable
		}
		videos = append(videos, video)
	}

	return videos, nil
}
