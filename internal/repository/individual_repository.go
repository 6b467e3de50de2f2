package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"movie-database-service/internal/models"
	"movie-database-service/internal/search"
	"movie-database-service/internal/service"
)

const individualProjection = `v.iconst, COALESCE(v.name, '') AS name, v.birth_year,
	v.death_year, v.name_rating, v.total_votes`

// individualSource reads the external aggregate view, which carries each
// individual's total votes across contributed titles.
var individualSource = source{
	from: "mdb.individual_votes_view v",
	columns: map[search.Field]string{
		search.FieldID:         "v.iconst",
		search.FieldName:       "v.name",
		search.FieldBirthYear:  "v.birth_year",
		search.FieldRating:     "v.name_rating",
		search.FieldTotalVotes: "v.total_votes",
	},
}

var _ service.IndividualStore = (*IndividualRepository)(nil)

// IndividualRepository handles database operations for individuals.
type IndividualRepository struct {
	db *sqlx.DB
}

// NewIndividualRepository creates a new IndividualRepository.
func NewIndividualRepository(db *sqlx.DB) *IndividualRepository {
	return &IndividualRepository{db: db}
}

// Search runs a compiled plan against the votes view.
func (r *IndividualRepository) Search(ctx context.Context, p search.Plan) ([]models.Individual, error) {
	query, args, err := individualSource.selectQuery(individualProjection, p)
	if err != nil {
		return nil, fmt.Errorf("failed to build individual query: %w", err)
	}

	var rows []models.Individual
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("individual query failed: %w", err)
	}
	return rows, nil
}

// Get returns an individual by iconst.
func (r *IndividualRepository) Get(ctx context.Context, id string) (*models.Individual, error) {
	var ind models.Individual
	err := r.db.GetContext(ctx, &ind, `
		SELECT iconst, COALESCE(name, '') AS name, birth_year, death_year, name_rating
		FROM mdb.individual
		WHERE iconst = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrIndividualNotFound
		}
		return nil, fmt.Errorf("failed to get individual: %w", err)
	}
	return &ind, nil
}

// MostPopular ranks movie actors by the summed votes of their movies. The
// ranking is capped at the top 1000 actors.
func (r *IndividualRepository) MostPopular(ctx context.Context, limit, offset int) ([]models.Individual, error) {
	var rows []models.Individual
	err := r.db.SelectContext(ctx, &rows, `
		WITH popular_actors AS (
			SELECT c.iconst, SUM(t.numvotes) AS total_votes
			FROM mdb.contributor c
			INNER JOIN mdb.title t USING (tconst)
			WHERE c.contribution IN ('actor', 'actress')
				AND t.media_type = 'movie'
				AND t.numvotes > 0
			GROUP BY c.iconst
			ORDER BY total_votes DESC, c.iconst
			LIMIT 1000
		)
		SELECT pa.iconst, COALESCE(i.name, '') AS name, i.birth_year, i.death_year,
			i.name_rating, pa.total_votes
		FROM popular_actors pa
		INNER JOIN mdb.individual i USING (iconst)
		ORDER BY pa.total_votes DESC, pa.iconst
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular individuals: %w", err)
	}
	return rows, nil
}

// CoActors calls mdb.find_co_actors.
func (r *IndividualRepository) CoActors(ctx context.Context, name string) ([]models.CoActor, error) {
	rows := make([]models.CoActor, 0)
	err := r.db.SelectContext(ctx, &rows,
		`SELECT iconst, primaryname, co_count FROM mdb.find_co_actors($1)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query co-actors: %w", err)
	}
	return rows, nil
}

// PopularActors calls mdb.popular_actor with a title or individual id.
func (r *IndividualRepository) PopularActors(ctx context.Context, id string) ([]models.Individual, error) {
	var rows []models.Individual
	err := r.db.SelectContext(ctx, &rows, `
		SELECT iconst, COALESCE(name, '') AS name, birth_year, death_year, name_rating
		FROM mdb.popular_actor($1)
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular actors: %w", err)
	}
	return rows, nil
}

// FindByName calls mdb.find_name.
func (r *IndividualRepository) FindByName(ctx context.Context, name string) ([]models.NameMatch, error) {
	rows := make([]models.NameMatch, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT iconst, name, contribution, title_name,
			COALESCE(detail, '') AS detail, COALESCE(genre, '') AS genre
		FROM mdb.find_name($1)
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search names: %w", err)
	}
	return rows, nil
}
