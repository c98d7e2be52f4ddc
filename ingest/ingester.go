package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"tcheplay/model"
	"tcheplay/youtube"
)

const (
	metadataChunkSize   = 50
	maxConcurrentChunks = 4
)

type SearchClient interface {
	SearchMovies(ctx context.Context, term, region, pageToken string) ([]youtube.SearchResult, string, error)
}

type MetadataClient interface {
	VideoDetails(ctx context.Context, ids []string) ([]youtube.Video, error)
}

type MovieRepository interface {
	FindByVideoIDs(ctx context.Context, ids []string) (map[string]*model.Movie, error)
	SaveAll(ctx context.Context, movies []*model.Movie) error
}

// Ingester drives one catalog ingestion run: search the platform for dubbed
// movies, fetch full metadata, filter, and upsert what passes.
type Ingester struct {
	search       SearchClient
	metadata     MetadataClient
	movieRepo    MovieRepository
	defaultTerms []string
	logger       *slog.Logger
}

func NewIngester(search SearchClient, metadata MetadataClient, movieRepo MovieRepository, defaultTerms []string, logger *slog.Logger) *Ingester {
	return &Ingester{
		search:       search,
		metadata:     metadata,
		movieRepo:    movieRepo,
		defaultTerms: defaultTerms,
		logger:       logger,
	}
}

// Ingest runs the pipeline for the given query and returns the number of
// created-or-updated records. A blank query falls back to the configured
// default search terms. All writes land in a single commit at the end, so an
// error anywhere leaves the catalog untouched.
func (i *Ingester) Ingest(ctx context.Context, q, region string, maxResults int) (int, error) {
	terms := i.defaultTerms
	if strings.TrimSpace(q) != "" {
		terms = []string{q}
	}

	ids, err := i.collectIDs(ctx, terms, region, maxResults)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		i.logger.Info("ingest: no search results", slog.String("q", q), slog.String("region", region))
		return 0, nil
	}

	videos, err := i.fetchDetails(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(videos) == 0 {
		i.logger.Info("ingest: no metadata returned", slog.String("q", q), slog.String("region", region))
		return 0, nil
	}

	eligible := make([]youtube.Video, 0, len(videos))
	for _, v := range videos {
		if v.ID == "" {
			continue
		}
		if IsEligible(v) {
			eligible = append(eligible, v)
		}
	}
	if len(eligible) == 0 {
		i.logger.Info("ingest: no videos passed eligibility", slog.String("q", q))
		return 0, nil
	}

	videoIDs := make([]string, 0, len(eligible))
	for _, v := range eligible {
		videoIDs = append(videoIDs, v.ID)
	}
	existing, err := i.movieRepo.FindByVideoIDs(ctx, videoIDs)
	if err != nil {
		return 0, fmt.Errorf("find existing movies: %w", err)
	}

	now := time.Now().UTC()
	movies := make([]*model.Movie, 0, len(eligible))
	for _, v := range eligible {
		movies = append(movies, merge(existing[v.ID], v, now))
	}

	if err := i.movieRepo.SaveAll(ctx, movies); err != nil {
		return 0, fmt.Errorf("save movies: %w", err)
	}

	i.logger.Info("ingest: finished",
		slog.Int("upserts", len(movies)),
		slog.String("q", q),
		slog.String("region", region))

	return len(movies), nil
}

// collectIDs pages through search results per term, accumulating unique video
// IDs (case-insensitive, first-seen order) until maxResults is reached or the
// platform runs out of pages.
func (i *Ingester) collectIDs(ctx context.Context, terms []string, region string, maxResults int) ([]string, error) {
	seen := make(map[string]bool)
	ids := make([]string, 0, maxResults)

	for _, term := range terms {
		pageToken := ""
		for len(ids) < maxResults {
			results, nextToken, err := i.search.SearchMovies(ctx, term, region, pageToken)
			if err != nil {
				return nil, fmt.Errorf("search %q: %w", term, err)
			}

			for _, result := range results {
				if strings.TrimSpace(result.VideoID) == "" {
					continue
				}
				key := strings.ToLower(result.VideoID)
				if seen[key] {
					continue
				}
				seen[key] = true
				ids = append(ids, result.VideoID)
				if len(ids) >= maxResults {
					break
				}
			}

			if nextToken == "" {
				break
			}
			pageToken = nextToken
		}
		if len(ids) >= maxResults {
			break
		}
	}

	return ids, nil
}

// fetchDetails retrieves metadata in chunks of up to 50 IDs, with a bounded
// number of chunk fetches in flight. All chunks resolve before anything is
// returned; the first chunk error fails the whole fetch.
func (i *Ingester) fetchDetails(ctx context.Context, ids []string) ([]youtube.Video, error) {
	videos := make([]youtube.Video, 0, len(ids))
	var errs []error
	var mu sync.Mutex

	fetchPool := pool.New().WithMaxGoroutines(maxConcurrentChunks)
	for _, chunk := range chunkIDs(ids, metadataChunkSize) {
		chunk := chunk // per-iteration copy: required under go < 1.22 loop semantics
		fetchPool.Go(func() {
			batch, err := i.metadata.VideoDetails(ctx, chunk)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			videos = append(videos, batch...)
		})
	}
	fetchPool.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}

	return videos, nil
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}

	return chunks
}
