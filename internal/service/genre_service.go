package service

import (
	"context"
	"fmt"

	"movie-database-service/internal/models"
	"movie-database-service/internal/search"
)

// GenreService handles the genre catalogue.
type GenreService struct {
	genres GenreStore
	titles TitleStore
}

// NewGenreService creates a new GenreService.
func NewGenreService(genres GenreStore, titles TitleStore) *GenreService {
	return &GenreService{genres: genres, titles: titles}
}

// List returns every genre.
func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.genres.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	if rows == nil {
		rows = make([]models.Genre, 0)
	}
	return rows, nil
}

// Get returns one genre.
func (s *GenreService) Get(ctx context.Context, id int) (*models.Genre, error) {
	return s.genres.Get(ctx, id)
}

// Titles returns one page of a genre's titles, best rated first. A page
// past the end is empty.
func (s *GenreService) Titles(ctx context.Context, id, page, pageSize int) ([]models.TitlePreview, error) {
	if _, err := s.genres.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.titles.Search(ctx, search.GenreTitlesPlan(id, page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to load genre titles: %w", err)
	}
	return models.Previews(rows), nil
}
