package storage

import (
	"context"

	"tcheplay/model"
)

// MovieRepository is the persistence boundary for catalog records. The read
// queries only ever return approved movies, newest publish date first, and
// report the unpaged total alongside the page.
type MovieRepository interface {
	FindByVideoIDs(ctx context.Context, ids []string) (map[string]*model.Movie, error)
	SaveAll(ctx context.Context, movies []*model.Movie) error

	FindAll(ctx context.Context, page, pageSize int) ([]*model.Movie, int, error)
	FindRecent(ctx context.Context, days, page, pageSize int) ([]*model.Movie, int, error)
	FindByTitle(ctx context.Context, q string, page, pageSize int) ([]*model.Movie, int, error)
	FindByYear(ctx context.Context, year, page, pageSize int) ([]*model.Movie, int, error)
}
