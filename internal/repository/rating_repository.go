package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"movie-database-service/internal/models"
	"movie-database-service/internal/service"
)

var _ service.RatingStore = (*RatingRepository)(nil)

// RatingRepository handles database operations for ratings.
type RatingRepository struct {
	db *sqlx.DB
}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Rate upserts through mdb.rate, which also refreshes the title's average.
func (r *RatingRepository) Rate(ctx context.Context, userID int, titleID string, score int, review *string) error {
	_, err := r.db.ExecContext(ctx, `SELECT mdb.rate($1, $2, $3, $4)`, userID, titleID, score, review)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && strings.Contains(pqErr.Message, "Movie does not exist") {
			return service.ErrTitleNotFound
		}
		return fmt.Errorf("rate failed: %w", err)
	}
	return nil
}

// Delete removes one rating.
func (r *RatingRepository) Delete(ctx context.Context, userID int, titleID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM mdb.rating WHERE uconst = $1 AND tconst = $2`, userID, titleID)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return service.ErrRatingNotFound
	}
	return nil
}

// ByUser returns a user's ratings, newest first. Rows without a time sort
// last and report the query time.
func (r *RatingRepository) ByUser(ctx context.Context, userID int) ([]models.Rating, error) {
	rows := make([]models.Rating, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT r.uconst, r.tconst, r.rating, r.review_text, COALESCE(r.time, NOW()) AS time
		FROM mdb.rating r
		WHERE r.uconst = $1
		ORDER BY r.time DESC NULLS LAST, r.tconst
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	return rows, nil
}

// ByTitle returns a title's ratings, newest first.
func (r *RatingRepository) ByTitle(ctx context.Context, titleID string) ([]models.Rating, error) {
	rows := make([]models.Rating, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT r.uconst, r.tconst, r.rating, r.review_text, COALESCE(r.time, NOW()) AS time
		FROM mdb.rating r
		WHERE r.tconst = $1
		ORDER BY r.time DESC NULLS LAST, r.uconst
	`, titleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	return rows, nil
}
