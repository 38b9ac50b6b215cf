package service

import (
	"context"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
)

// CatalogGateway is the read-only movie catalog surface the movie service
// needs. Satisfied by the catalog gateway.
type CatalogGateway interface {
	FetchPopular(ctx context.Context, limit, page string) (model.Paginated[model.MovieSummary], error)
	FetchByName(ctx context.Context, query, limit, page string) (model.Paginated[model.MovieSummary], error)
	FetchDetails(ctx context.Context, movieID string) (*model.MovieDetails, error)
}

// MovieService exposes the public catalog operations. No ownership applies:
// the catalog is world-readable.
type MovieService struct {
	catalog CatalogGateway
}

// MovieServiceConfig holds configuration for the movie service.
type MovieServiceConfig struct {
	Catalog CatalogGateway
}

// NewMovieService creates a new movie service.
func NewMovieService(cfg MovieServiceConfig) *MovieService {
	return &MovieService{catalog: cfg.Catalog}
}

// Popular returns one page of the most popular movies.
func (s *MovieService) Popular(ctx context.Context, limit, page string) (model.Paginated[model.MovieSummary], error) {
	return s.catalog.FetchPopular(ctx, limit, page)
}

// Search returns one page of popular movies whose title contains name.
func (s *MovieService) Search(ctx context.Context, name, limit, page string) (model.Paginated[model.MovieSummary], error) {
	return s.catalog.FetchByName(ctx, name, limit, page)
}

// Details returns the full catalog record of one movie.
func (s *MovieService) Details(ctx context.Context, movieID string) (*model.MovieDetails, error) {
	return s.catalog.FetchDetails(ctx, movieID)
}
