// Package search turns optional list criteria into a storage-neutral query
// plan: conjunctive filters, a total order and a page window.
package search

import (
	"errors"
	"math"
)

// ErrInvalidCriteria is returned when criteria cannot be turned into a plan.
var ErrInvalidCriteria = errors.New("invalid search criteria")

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Field names a sortable or filterable attribute of a record.
type Field string

const (
	FieldID         Field = "id"
	FieldName       Field = "name"
	FieldMediaType  Field = "mediaType"
	FieldYear       Field = "year"
	FieldRating     Field = "rating"
	FieldNumVotes   Field = "numVotes"
	FieldAdult      Field = "adult"
	FieldPlot       Field = "plot"
	FieldGenre      Field = "genre"
	FieldGenreID    Field = "genreId"
	FieldBirthYear  Field = "birthYear"
	FieldTotalVotes Field = "totalVotes"
)

// Op is a filter comparison.
type Op string

const (
	// OpContains is a case-insensitive substring match.
	OpContains Op = "contains"
	OpEq       Op = "eq"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	// OpPresent requires a non-null value.
	OpPresent Op = "present"
	// OpNotEmpty requires a non-null, non-empty string.
	OpNotEmpty Op = "notEmpty"
)

// Filter is a single predicate. Value is unused for OpPresent and OpNotEmpty.
type Filter struct {
	Field Field
	Op    Op
	Value any
}

// Order is one sort key.
type Order struct {
	Field Field
	Desc  bool
}

// Plan is the normalised form of a list request. Filters are ANDed and their
// order carries no meaning. Order always ends with FieldID ascending so that
// every page boundary is deterministic.
type Plan struct {
	Filters []Filter
	Order   []Order
	Limit   int
	Offset  int
}

// Window clamps page and page size and returns limit and offset. A zero
// page size means "not given" and falls back to DefaultPageSize. Offsets
// that would overflow saturate at math.MaxInt, which is past any result.
func Window(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = DefaultPage
	}
	switch {
	case pageSize == 0:
		pageSize = DefaultPageSize
	case pageSize < 1:
		pageSize = 1
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	if page-1 > math.MaxInt/pageSize {
		return pageSize, math.MaxInt
	}
	return pageSize, (page - 1) * pageSize
}

func withTieBreak(primary Order) []Order {
	if primary.Field == FieldID {
		return []Order{primary}
	}
	return []Order{primary, {Field: FieldID}}
}
