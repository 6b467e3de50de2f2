package search

import (
	"fmt"
	"strings"
)

// FeaturedMinRating is the minimum average rating a featured title needs.
const FeaturedMinRating = 7.0

// TitleCriteria are the optional title list parameters. Nil pointers and
// empty strings mean "no filter on that dimension".
type TitleCriteria struct {
	Name      string
	Genre     string
	GenreID   *int
	MediaType string
	MinYear   *int
	MaxYear   *int
	MinRating *float64
	IsAdult   *bool

	// RequireRating drops unrated titles even when MinRating is nil.
	RequireRating bool

	SortBy         string
	SortDescending *bool
	Page           int
	PageSize       int
}

// IndividualCriteria are the optional individual list parameters.
type IndividualCriteria struct {
	Name         string
	MinBirthYear *int
	MaxBirthYear *int

	SortBy         string
	SortDescending *bool
	Page           int
	PageSize       int
}

// Plan normalises the criteria. Sort keys are year, title (or name), rating
// and numvotes; the default is numvotes descending.
func (c TitleCriteria) Plan() (Plan, error) {
	var filters []Filter
	if name := strings.TrimSpace(c.Name); name != "" {
		filters = append(filters, Filter{Field: FieldName, Op: OpContains, Value: name})
	}
	if genre := strings.TrimSpace(c.Genre); genre != "" {
		filters = append(filters, Filter{Field: FieldGenre, Op: OpEq, Value: genre})
	}
	if c.GenreID != nil {
		filters = append(filters, Filter{Field: FieldGenreID, Op: OpEq, Value: *c.GenreID})
	}
	if mt := strings.TrimSpace(c.MediaType); mt != "" {
		filters = append(filters, Filter{Field: FieldMediaType, Op: OpEq, Value: mt})
	}
	if c.MinYear != nil {
		filters = append(filters, Filter{Field: FieldYear, Op: OpGte, Value: *c.MinYear})
	}
	if c.MaxYear != nil {
		filters = append(filters, Filter{Field: FieldYear, Op: OpLte, Value: *c.MaxYear})
	}
	if c.MinRating != nil {
		filters = append(filters, Filter{Field: FieldRating, Op: OpGte, Value: *c.MinRating})
	} else if c.RequireRating {
		filters = append(filters, Filter{Field: FieldRating, Op: OpPresent})
	}
	if c.IsAdult != nil {
		filters = append(filters, Filter{Field: FieldAdult, Op: OpEq, Value: *c.IsAdult})
	}

	var primary Order
	switch strings.ToLower(strings.TrimSpace(c.SortBy)) {
	case "", "numvotes", "votes":
		primary = Order{Field: FieldNumVotes, Desc: true}
	case "rating":
		primary = Order{Field: FieldRating, Desc: true}
	case "year":
		primary = Order{Field: FieldYear, Desc: true}
	case "title", "name":
		primary = Order{Field: FieldName}
	default:
		return Plan{}, fmt.Errorf("%w: unknown sort key %q", ErrInvalidCriteria, c.SortBy)
	}
	if c.SortDescending != nil {
		primary.Desc = *c.SortDescending
	}

	limit, offset := Window(c.Page, c.PageSize)
	return Plan{
		Filters: filters,
		Order:   withTieBreak(primary),
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// Plan normalises the criteria. Sort keys are name, birthyear and rating;
// the default is total votes descending.
func (c IndividualCriteria) Plan() (Plan, error) {
	var filters []Filter
	if name := strings.TrimSpace(c.Name); name != "" {
		filters = append(filters, Filter{Field: FieldName, Op: OpContains, Value: name})
	}
	if c.MinBirthYear != nil {
		filters = append(filters, Filter{Field: FieldBirthYear, Op: OpGte, Value: *c.MinBirthYear})
	}
	if c.MaxBirthYear != nil {
		filters = append(filters, Filter{Field: FieldBirthYear, Op: OpLte, Value: *c.MaxBirthYear})
	}

	var primary Order
	switch strings.ToLower(strings.TrimSpace(c.SortBy)) {
	case "", "numvotes", "votes", "totalvotes":
		primary = Order{Field: FieldTotalVotes, Desc: true}
	case "name":
		primary = Order{Field: FieldName}
	case "birthyear":
		primary = Order{Field: FieldBirthYear}
	case "rating":
		primary = Order{Field: FieldRating, Desc: true}
	default:
		return Plan{}, fmt.Errorf("%w: unknown sort key %q", ErrInvalidCriteria, c.SortBy)
	}
	if c.SortDescending != nil {
		primary.Desc = *c.SortDescending
	}

	limit, offset := Window(c.Page, c.PageSize)
	return Plan{
		Filters: filters,
		Order:   withTieBreak(primary),
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// FeaturedFilters are the fixed eligibility predicates for the daily
// featured title: rated at least FeaturedMinRating, not adult, with a plot.
func FeaturedFilters() []Filter {
	return []Filter{
		{Field: FieldRating, Op: OpGte, Value: FeaturedMinRating},
		{Field: FieldAdult, Op: OpEq, Value: false},
		{Field: FieldPlot, Op: OpNotEmpty},
	}
}

// FeaturedPlan selects the eligible title at position index when eligible
// titles are ordered by identifier.
func FeaturedPlan(index int) Plan {
	return Plan{
		Filters: FeaturedFilters(),
		Order:   []Order{{Field: FieldID}},
		Limit:   1,
		Offset:  index,
	}
}

// GenreTitlesPlan lists the titles of one genre, best rated first, then most
// voted.
func GenreTitlesPlan(genreID, page, pageSize int) Plan {
	limit, offset := Window(page, pageSize)
	return Plan{
		Filters: []Filter{{Field: FieldGenreID, Op: OpEq, Value: genreID}},
		Order: []Order{
			{Field: FieldRating, Desc: true},
			{Field: FieldNumVotes, Desc: true},
			{Field: FieldID},
		},
		Limit:  limit,
		Offset: offset,
	}
}
