package service

import (
	"context"
	"errors"

	"movie-database-service/internal/models"
	"movie-database-service/internal/search"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrTitleNotFound      = errors.New("title not found")
	ErrIndividualNotFound = errors.New("individual not found")
	ErrGenreNotFound      = errors.New("genre not found")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrNoFeaturedTitle    = errors.New("no title is eligible to be featured")
)

// EligibleTitles is the read surface the featured selector needs.
type EligibleTitles interface {
	Count(ctx context.Context, filters []search.Filter) (int, error)
	Search(ctx context.Context, plan search.Plan) ([]models.Title, error)
}

// TitleStore reads titles and their related rows. Get returns
// ErrTitleNotFound when no title has the given id.
type TitleStore interface {
	EligibleTitles
	Get(ctx context.Context, id string) (*models.Title, error)
	Genres(ctx context.Context, id string) ([]models.Genre, error)
	Similar(ctx context.Context, id string) ([]models.SimilarTitle, error)
	Contributors(ctx context.Context, id string) ([]models.Contributor, error)
	ByIndividual(ctx context.Context, individualID string) ([]models.Title, error)
	Episodes(ctx context.Context, seriesID string) ([]models.Episode, error)
}

// GenreStore reads the genre catalogue. Get returns ErrGenreNotFound when no
// genre has the given id.
type GenreStore interface {
	All(ctx context.Context) ([]models.Genre, error)
	Get(ctx context.Context, id int) (*models.Genre, error)
}

// IndividualStore reads individuals. Get returns ErrIndividualNotFound when
// no individual has the given id.
type IndividualStore interface {
	Search(ctx context.Context, plan search.Plan) ([]models.Individual, error)
	Get(ctx context.Context, id string) (*models.Individual, error)
	MostPopular(ctx context.Context, limit, offset int) ([]models.Individual, error)
	CoActors(ctx context.Context, name string) ([]models.CoActor, error)
	PopularActors(ctx context.Context, id string) ([]models.Individual, error)
	FindByName(ctx context.Context, name string) ([]models.NameMatch, error)
}

// RatingStore reads and writes ratings. Rate upserts on (user, title) and
// returns ErrTitleNotFound for an unknown title. Delete returns
// ErrRatingNotFound when nothing was removed.
type RatingStore interface {
	Rate(ctx context.Context, userID int, titleID string, score int, review *string) error
	Delete(ctx context.Context, userID int, titleID string) error
	ByUser(ctx context.Context, userID int) ([]models.Rating, error)
	ByTitle(ctx context.Context, titleID string) ([]models.Rating, error)
}
