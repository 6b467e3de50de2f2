package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-database-service/internal/search"
)

func floatp(v float64) *float64 { return &v }
func intp(v int) *int           { return &v }
func boolp(v bool) *bool        { return &v }

func TestTitleSelectQuery(t *testing.T) {
	plan, err := search.TitleCriteria{MinRating: floatp(8.0), Genre: "Drama", Page: 2, PageSize: 10}.Plan()
	require.NoError(t, err)

	query, args, err := titleSource.selectQuery("t.tconst", plan)
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT t.tconst FROM mdb.title t WHERE 1=1 AND EXISTS")
	assert.Contains(t, query, "g.gname = $1)")
	assert.Contains(t, query, "AND t.avg_rating >= $2")
	assert.Contains(t, query, "ORDER BY t.numvotes DESC NULLS LAST, t.tconst ASC NULLS LAST LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{"Drama", 8.0, 10, 10}, args)
}

func TestTitleWhereEveryFilter(t *testing.T) {
	plan, err := search.TitleCriteria{
		Name:          "war",
		MediaType:     "movie",
		MinYear:       intp(1990),
		MaxYear:       intp(2000),
		IsAdult:       boolp(false),
		RequireRating: true,
	}.Plan()
	require.NoError(t, err)

	where, args, err := titleSource.where(plan.Filters, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"1=1 AND t.title_name ILIKE $1 AND t.media_type = $2 AND t.start_year >= $3"+
			" AND t.start_year <= $4 AND t.avg_rating IS NOT NULL AND t.is_adult = $5",
		where)
	assert.Equal(t, []any{"%war%", "movie", 1990, 2000, false}, args)
}

func TestGenreTitlesQuery(t *testing.T) {
	query, args, err := titleSource.selectQuery("t.tconst", search.GenreTitlesPlan(5, 3, 10))
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE 1=1 AND EXISTS (SELECT 1 FROM mdb.title_genre tg")
	assert.Contains(t, query, "tg.gconst = $1)")
	assert.Contains(t, query,
		"ORDER BY t.avg_rating DESC NULLS LAST, t.numvotes DESC NULLS LAST, t.tconst ASC NULLS LAST LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{5, 10, 20}, args)
}

func TestFeaturedCountQuery(t *testing.T) {
	query, args, err := titleSource.countQuery(search.FeaturedFilters())
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COUNT(*) FROM mdb.title t WHERE 1=1 AND t.avg_rating >= $1 AND t.is_adult = $2 AND COALESCE(t.plot, '') <> ''",
		query)
	assert.Equal(t, []any{7.0, false}, args)

	query, args, err = titleSource.selectQuery("t.tconst", search.FeaturedPlan(4))
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY t.tconst ASC NULLS LAST LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{7.0, false, 1, 4}, args)
}

func TestLikePatternIsEscaped(t *testing.T) {
	_, args, err := individualSource.where([]search.Filter{
		{Field: search.FieldName, Op: search.OpContains, Value: `50%_off\`},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{`%50\%\_off\\%`}, args)
}

func TestIndividualQuery(t *testing.T) {
	plan, err := search.IndividualCriteria{MinBirthYear: intp(1930), SortBy: "rating"}.Plan()
	require.NoError(t, err)

	query, args, err := individualSource.selectQuery("v.iconst", plan)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT v.iconst FROM mdb.individual_votes_view v WHERE 1=1 AND v.birth_year >= $1"+
			" ORDER BY v.name_rating DESC NULLS LAST, v.iconst ASC NULLS LAST LIMIT $2 OFFSET $3",
		query)
	assert.Equal(t, []any{1930, 20, 0}, args)
}

func TestUnsupportedFields(t *testing.T) {
	_, _, err := individualSource.where([]search.Filter{{Field: search.FieldGenre, Op: search.OpEq, Value: "Drama"}}, nil)
	assert.Error(t, err)

	_, err = individualSource.orderBy([]search.Order{{Field: search.FieldNumVotes}})
	assert.Error(t, err)

	_, _, err = titleSource.where([]search.Filter{{Field: search.FieldGenre, Op: search.OpGte, Value: "Drama"}}, nil)
	assert.Error(t, err)
}
