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

const titleProjection = `t.tconst, COALESCE(t.title_name, '') AS title_name,
	COALESCE(t.media_type, '') AS media_type, t.avg_rating, t.numvotes,
	t.release_date, COALESCE(t.is_adult, false) AS is_adult, t.start_year,
	t.end_year, t.runtime, COALESCE(t.poster, '') AS poster,
	COALESCE(t.plot, '') AS plot`

var titleSource = source{
	from: "mdb.title t",
	columns: map[search.Field]string{
		search.FieldID:        "t.tconst",
		search.FieldName:      "t.title_name",
		search.FieldMediaType: "t.media_type",
		search.FieldYear:      "t.start_year",
		search.FieldRating:    "t.avg_rating",
		search.FieldNumVotes:  "t.numvotes",
		search.FieldAdult:     "t.is_adult",
		search.FieldPlot:      "t.plot",
	},
	exists: map[search.Field]string{
		search.FieldGenre: `EXISTS (SELECT 1 FROM mdb.title_genre tg
			INNER JOIN mdb.genre g ON g.gconst = tg.gconst
			WHERE tg.tconst = t.tconst AND g.gname = %s)`,
		search.FieldGenreID: `EXISTS (SELECT 1 FROM mdb.title_genre tg
			WHERE tg.tconst = t.tconst AND tg.gconst = %s)`,
	},
}

var _ service.TitleStore = (*TitleRepository)(nil)

// TitleRepository handles database operations for titles.
type TitleRepository struct {
	db *sqlx.DB
}

// NewTitleRepository creates a new TitleRepository.
func NewTitleRepository(db *sqlx.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

// Search runs a compiled plan against mdb.title.
func (r *TitleRepository) Search(ctx context.Context, p search.Plan) ([]models.Title, error) {
	query, args, err := titleSource.selectQuery(titleProjection, p)
	if err != nil {
		return nil, fmt.Errorf("failed to build title query: %w", err)
	}

	var titles []models.Title
	if err := r.db.SelectContext(ctx, &titles, query, args...); err != nil {
		return nil, fmt.Errorf("title query failed: %w", err)
	}
	return titles, nil
}

// Count returns how many titles satisfy every filter.
func (r *TitleRepository) Count(ctx context.Context, filters []search.Filter) (int, error) {
	query, args, err := titleSource.countQuery(filters)
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return n, nil
}

// Get returns a title by tconst.
func (r *TitleRepository) Get(ctx context.Context, id string) (*models.Title, error) {
	var title models.Title
	err := r.db.GetContext(ctx, &title,
		"SELECT "+titleProjection+" FROM mdb.title t WHERE t.tconst = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrTitleNotFound
		}
		return nil, fmt.Errorf("failed to get title: %w", err)
	}
	return &title, nil
}

// Genres returns the genres of a title ordered by name.
func (r *TitleRepository) Genres(ctx context.Context, id string) ([]models.Genre, error) {
	genres := make([]models.Genre, 0)
	err := r.db.SelectContext(ctx, &genres, `
		SELECT g.gconst, g.gname FROM mdb.genre g
		INNER JOIN mdb.title_genre tg ON tg.gconst = g.gconst
		WHERE tg.tconst = $1
		ORDER BY g.gname
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	return genres, nil
}

// Similar calls mdb.similar_movies, which ranks titles by genre overlap.
func (r *TitleRepository) Similar(ctx context.Context, id string) ([]models.SimilarTitle, error) {
	rows := make([]models.SimilarTitle, 0)
	err := r.db.SelectContext(ctx, &rows,
		`SELECT tconst, title_name, overlap_genres FROM mdb.similar_movies($1)`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar titles: %w", err)
	}
	return rows, nil
}

// Contributors returns the individuals credited on a title in billing order.
func (r *TitleRepository) Contributors(ctx context.Context, id string) ([]models.Contributor, error) {
	rows := make([]models.Contributor, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT c.iconst, COALESCE(i.name, '') AS name,
			COALESCE(c.contribution, '') AS contribution,
			COALESCE(c.priority, 0) AS priority,
			COALESCE(c.detail, '') AS detail
		FROM mdb.contributor c
		INNER JOIN mdb.individual i ON i.iconst = c.iconst
		WHERE c.tconst = $1
		ORDER BY c.priority NULLS LAST, c.iconst
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributors: %w", err)
	}
	return rows, nil
}

// ByIndividual returns the titles an individual contributed to, most voted
// first.
func (r *TitleRepository) ByIndividual(ctx context.Context, individualID string) ([]models.Title, error) {
	var titles []models.Title
	err := r.db.SelectContext(ctx, &titles, `
		SELECT `+titleProjection+`
		FROM mdb.title t
		WHERE EXISTS (SELECT 1 FROM mdb.contributor c WHERE c.tconst = t.tconst AND c.iconst = $1)
		ORDER BY t.numvotes DESC NULLS LAST, t.tconst
	`, individualID)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles for individual: %w", err)
	}
	return titles, nil
}

// Episodes returns the episodes of a series by season, then episode number.
func (r *TitleRepository) Episodes(ctx context.Context, seriesID string) ([]models.Episode, error) {
	rows := make([]models.Episode, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT e.tconst, e.parenttconst, e.snum, e.epnum
		FROM mdb.episode e
		WHERE e.parenttconst = $1
		ORDER BY e.snum NULLS LAST, e.epnum NULLS LAST, e.tconst
	`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	return rows, nil
}
