package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"tcheplay/model"
	"tcheplay/storage"
)

const (
	defaultPageSize   = 24
	maxPageSize       = 100
	defaultRecentDays = 30
	defaultRegion     = "BR"
	defaultMaxResults = 50
	maxResultsCap     = 1000
)

type Ingester interface {
	Ingest(ctx context.Context, q, region string, maxResults int) (int, error)
}

type MovieAPI struct {
	movieRepo storage.MovieRepository
	ingester  Ingester
	logger    *slog.Logger
}

func NewMovieAPI(movieRepo storage.MovieRepository, ingester Ingester, logger *slog.Logger) *MovieAPI {
	return &MovieAPI{
		movieRepo: movieRepo,
		ingester:  ingester,
		logger:    logger,
	}
}

func (m *MovieAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	head, tail := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && head == "":
		m.Search(w, r)
	case r.Method == http.MethodGet && head == "all":
		m.List(w, r)
	case r.Method == http.MethodGet && head == "recent":
		m.Recent(w, r)
	case r.Method == http.MethodGet && head == "by-year":
		year, _ := ShiftPath(tail)
		m.ByYear(w, r, year)
	case r.Method == http.MethodPost && head == "ingest":
		m.Ingest(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the movie api", r.Method, head))
	}
}

func (m *MovieAPI) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	movies, total, err := m.movieRepo.FindAll(r.Context(), page, pageSize)
	if err != nil {
		m.returnErr(w, http.StatusInternalServerError, "could not list movies", err)
		return
	}

	JSON(w, http.StatusOK, newPagedResponse(movies, page, pageSize, total))
}

func (m *MovieAPI) Recent(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = defaultRecentDays
	}

	movies, total, err := m.movieRepo.FindRecent(r.Context(), days, page, pageSize)
	if err != nil {
		m.returnErr(w, http.StatusInternalServerError, "could not list recent movies", err)
		return
	}

	JSON(w, http.StatusOK, newPagedResponse(movies, page, pageSize, total))
}

func (m *MovieAPI) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	q := r.URL.Query().Get("q")

	movies, total, err := m.movieRepo.FindByTitle(r.Context(), q, page, pageSize)
	if err != nil {
		m.returnErr(w, http.StatusInternalServerError, "could not search movies", err)
		return
	}

	JSON(w, http.StatusOK, newPagedResponse(movies, page, pageSize, total))
}

func (m *MovieAPI) ByYear(w http.ResponseWriter, r *http.Request, yearPath string) {
	page, pageSize := pageParams(r)

	year, err := strconv.Atoi(yearPath)
	currentYear := time.Now().UTC().Year()
	if err != nil || year < 1900 || year > currentYear+1 {
		year = currentYear
	}

	movies, total, err := m.movieRepo.FindByYear(r.Context(), year, page, pageSize)
	if err != nil {
		m.returnErr(w, http.StatusInternalServerError, "could not list movies by year", err)
		return
	}

	JSON(w, http.StatusOK, newPagedResponse(movies, page, pageSize, total))
}

func (m *MovieAPI) Ingest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	region := r.URL.Query().Get("region")
	if region == "" {
		region = defaultRegion
	}
	maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	upserts, err := m.ingester.Ingest(r.Context(), q, region, maxResults)
	if err != nil {
		m.returnErr(w, http.StatusBadGateway, "ingest failed", err)
		return
	}

	JSON(w, http.StatusOK, struct {
		Upserts int `json:"upserts"`
	}{Upserts: upserts})
}

func (m *MovieAPI) returnErr(w http.ResponseWriter, status int, message string, err error, details ...any) {
	m.logger.Error(message, slog.String("err", err.Error()), slog.String("details", fmt.Sprintf("%+v", details)))
	Error(w, status, message, err, details...)
}

type movieListItem struct {
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	ChannelTitle    string    `json:"channelTitle"`
	ThumbnailURL    string    `json:"thumbnailUrl"`
	DurationSeconds int64     `json:"durationSeconds"`
	PublishedAt     time.Time `json:"publishedAt"`
}

type pagedResponse struct {
	Items    []movieListItem `json:"items"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Total    int             `json:"total"`
}

func newPagedResponse(movies []*model.Movie, page, pageSize, total int) pagedResponse {
	items := make([]movieListItem, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieListItem{
			VideoID:         movie.VideoID,
			Title:           movie.Title,
			ChannelTitle:    movie.ChannelTitle,
			ThumbnailURL:    movie.ThumbnailURL,
			DurationSeconds: int64(movie.Duration / time.Second),
			PublishedAt:     movie.PublishedAt,
		})
	}

	return pagedResponse{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
}

// pageParams normalizes pagination query parameters. Out-of-range values fall
// back to defaults instead of erroring.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	return page, pageSize
}
