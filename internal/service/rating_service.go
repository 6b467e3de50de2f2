package service

import (
	"context"
	"fmt"
	"strings"

	"movie-database-service/internal/models"
)

const (
	MinScore = 1
	MaxScore = 10
)

// RatingService handles a user's ratings.
type RatingService struct {
	ratings RatingStore
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratings RatingStore) *RatingService {
	return &RatingService{ratings: ratings}
}

// Rate creates or replaces the user's rating of a title. An empty review
// is stored as no review.
func (s *RatingService) Rate(ctx context.Context, userID int, titleID string, score int, review string) error {
	titleID = strings.TrimSpace(titleID)
	if titleID == "" {
		return fmt.Errorf("%w: title id is required", ErrValidation)
	}
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, MinScore, MaxScore)
	}

	var text *string
	if r := strings.TrimSpace(review); r != "" {
		text = &r
	}

	if err := s.ratings.Rate(ctx, userID, titleID, score, text); err != nil {
		return fmt.Errorf("failed to rate title: %w", err)
	}
	return nil
}

// Delete removes the user's rating of a title.
func (s *RatingService) Delete(ctx context.Context, userID int, titleID string) error {
	titleID = strings.TrimSpace(titleID)
	if titleID == "" {
		return fmt.Errorf("%w: title id is required", ErrValidation)
	}
	if err := s.ratings.Delete(ctx, userID, titleID); err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	return nil
}

// ByUser returns every rating the user has made.
func (s *RatingService) ByUser(ctx context.Context, userID int) ([]models.Rating, error) {
	rows, err := s.ratings.ByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	if rows == nil {
		rows = make([]models.Rating, 0)
	}
	return rows, nil
}
