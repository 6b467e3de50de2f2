package service

import (
	"context"
	"fmt"
	"strings"

	"movie-database-service/internal/models"
	"movie-database-service/internal/search"
)

// TitleService handles business logic for titles.
type TitleService struct {
	titles   TitleStore
	ratings  RatingStore
	featured *FeaturedSelector
}

// NewTitleService creates a new TitleService.
func NewTitleService(titles TitleStore, ratings RatingStore, featured *FeaturedSelector) *TitleService {
	return &TitleService{
		titles:   titles,
		ratings:  ratings,
		featured: featured,
	}
}

// Search returns one page of title previews matching the criteria.
func (s *TitleService) Search(ctx context.Context, c search.TitleCriteria) ([]models.TitlePreview, error) {
	plan, err := c.Plan()
	if err != nil {
		return nil, err
	}
	rows, err := s.titles.Search(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to search titles: %w", err)
	}
	return models.Previews(rows), nil
}

// Top returns the best rated titles of one media type. Unrated titles are
// never included.
func (s *TitleService) Top(ctx context.Context, mediaType string, page, pageSize int) ([]models.TitlePreview, error) {
	if strings.TrimSpace(mediaType) == "" {
		return nil, fmt.Errorf("%w: media type is required", ErrValidation)
	}
	return s.Search(ctx, search.TitleCriteria{
		MediaType:     mediaType,
		RequireRating: true,
		SortBy:        "rating",
		Page:          page,
		PageSize:      pageSize,
	})
}

// Get returns the full title with its genres.
func (s *TitleService) Get(ctx context.Context, id string) (*models.TitleFull, error) {
	title, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.full(ctx, title)
}

// Featured returns today's featured title.
func (s *TitleService) Featured(ctx context.Context) (*models.TitleFull, error) {
	title, err := s.featured.Pick(ctx)
	if err != nil {
		return nil, err
	}
	return s.full(ctx, title)
}

// Similar returns titles sharing genres with the given one.
func (s *TitleService) Similar(ctx context.Context, id string) ([]models.SimilarTitle, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.titles.Similar(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find similar titles: %w", err)
	}
	if rows == nil {
		rows = make([]models.SimilarTitle, 0)
	}
	return rows, nil
}

// Contributors returns the individuals credited on a title in billing order.
func (s *TitleService) Contributors(ctx context.Context, id string) ([]models.Contributor, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.titles.Contributors(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load contributors: %w", err)
	}
	if rows == nil {
		rows = make([]models.Contributor, 0)
	}
	return rows, nil
}

// Ratings returns every user rating of a title.
func (s *TitleService) Ratings(ctx context.Context, id string) ([]models.Rating, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.ratings.ByTitle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	if rows == nil {
		rows = make([]models.Rating, 0)
	}
	return rows, nil
}

// Episodes returns the episodes of a series ordered by season, then episode.
func (s *TitleService) Episodes(ctx context.Context, id string) ([]models.Episode, error) {
	series, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.titles.Episodes(ctx, series.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load episodes: %w", err)
	}
	if rows == nil {
		rows = make([]models.Episode, 0)
	}
	return rows, nil
}

func (s *TitleService) load(ctx context.Context, id string) (*models.Title, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: title id is required", ErrValidation)
	}
	title, err := s.titles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return title, nil
}

func (s *TitleService) full(ctx context.Context, title *models.Title) (*models.TitleFull, error) {
	genres, err := s.titles.Genres(ctx, title.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	full := title.ToFull(genres)
	return &full, nil
}
