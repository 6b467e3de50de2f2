package repository

import (
	"fmt"
	"strings"

	"movie-database-service/internal/search"
)

// source maps plan fields onto one table or view. Fields listed in exists
// compile to a correlated subquery with a single %s for the bound value.
type source struct {
	from    string
	columns map[search.Field]string
	exists  map[search.Field]string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// where builds the WHERE clause body. Placeholders continue from len(args).
func (s source) where(filters []search.Filter, args []any) (string, []any, error) {
	conditions := []string{"1=1"}

	for _, f := range filters {
		if tmpl, ok := s.exists[f.Field]; ok {
			if f.Op != search.OpEq {
				return "", nil, fmt.Errorf("unsupported op %q for %s", f.Op, f.Field)
			}
			args = append(args, f.Value)
			conditions = append(conditions, fmt.Sprintf(tmpl, fmt.Sprintf("$%d", len(args))))
			continue
		}

		col, ok := s.columns[f.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsupported filter field %q", f.Field)
		}

		switch f.Op {
		case search.OpPresent:
			conditions = append(conditions, col+" IS NOT NULL")
		case search.OpNotEmpty:
			conditions = append(conditions, fmt.Sprintf("COALESCE(%s, '') <> ''", col))
		case search.OpContains:
			v, ok := f.Value.(string)
			if !ok {
				return "", nil, fmt.Errorf("contains filter on %s needs a string", f.Field)
			}
			args = append(args, "%"+likeEscaper.Replace(v)+"%")
			conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
		case search.OpEq, search.OpGte, search.OpLte:
			args = append(args, f.Value)
			conditions = append(conditions, fmt.Sprintf("%s %s $%d", col, comparator(f.Op), len(args)))
		default:
			return "", nil, fmt.Errorf("unsupported filter op %q", f.Op)
		}
	}

	return strings.Join(conditions, " AND "), args, nil
}

func comparator(op search.Op) string {
	switch op {
	case search.OpGte:
		return ">="
	case search.OpLte:
		return "<="
	}
	return "="
}

func (s source) orderBy(orders []search.Order) (string, error) {
	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		col, ok := s.columns[o.Field]
		if !ok {
			return "", fmt.Errorf("unsupported sort field %q", o.Field)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("%s %s NULLS LAST", col, dir))
	}
	return strings.Join(parts, ", "), nil
}

// selectQuery compiles a full plan into one parameterised statement.
func (s source) selectQuery(projection string, p search.Plan) (string, []any, error) {
	where, args, err := s.where(p.Filters, nil)
	if err != nil {
		return "", nil, err
	}
	order, err := s.orderBy(p.Order)
	if err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", projection, s.from, where)
	if order != "" {
		query += " ORDER BY " + order
	}
	args = append(args, p.Limit, p.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return query, args, nil
}

func (s source) countQuery(filters []search.Filter) (string, []any, error) {
	where, args, err := s.where(filters, nil)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", s.from, where), args, nil
}
