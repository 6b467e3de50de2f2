package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"movie-database-service/internal/models"
	"movie-database-service/internal/service"
)

var _ service.GenreStore = (*GenreRepository)(nil)

// GenreRepository reads mdb.genre.
type GenreRepository struct {
	db *sqlx.DB
}

// NewGenreRepository creates a new GenreRepository.
func NewGenreRepository(db *sqlx.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// All returns every genre ordered by name.
func (r *GenreRepository) All(ctx context.Context) ([]models.Genre, error) {
	genres := make([]models.Genre, 0)
	err := r.db.SelectContext(ctx, &genres,
		`SELECT gconst, gname FROM mdb.genre ORDER BY gname, gconst`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	return genres, nil
}

// Get returns a genre by gconst.
func (r *GenreRepository) Get(ctx context.Context, id int) (*models.Genre, error) {
	var g models.Genre
	err := r.db.GetContext(ctx, &g, `SELECT gconst, gname FROM mdb.genre WHERE gconst = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return &g, nil
}
