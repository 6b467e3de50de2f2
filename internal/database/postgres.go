package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"movie-database-service/internal/config"
)

// Relations and functions the repositories depend on. The schema itself is
// managed outside this service.
var (
	requiredRelations = []string{
		"mdb.title",
		"mdb.genre",
		"mdb.title_genre",
		"mdb.episode",
		"mdb.individual",
		"mdb.contributor",
		"mdb.individual_votes_view",
		"mdb.user_info",
		"mdb.rating",
	}
	requiredFunctions = []string{
		"rate",
		"find_co_actors",
		"similar_movies",
		"popular_actor",
		"find_name",
	}
)

// NewPostgres connects to PostgreSQL and checks that the mdb schema is in
// place.
func NewPostgres(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(10, maxOpen))
	db.SetConnMaxLifetime(30 * time.Minute)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName, "max_open_conns", maxOpen)

	if err := verifySchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// verifySchema fails when any required relation or mdb function is missing.
func verifySchema(ctx context.Context, db *sqlx.DB) error {
	var missing []string
	err := db.SelectContext(ctx, &missing, `
		SELECT rel FROM unnest($1::text[]) AS rel
		WHERE to_regclass(rel) IS NULL
		ORDER BY rel
	`, pq.Array(requiredRelations))
	if err != nil {
		return fmt.Errorf("failed to check relations: %w", err)
	}

	var missingFuncs []string
	err = db.SelectContext(ctx, &missingFuncs, `
		SELECT fn FROM unnest($1::text[]) AS fn
		WHERE NOT EXISTS (
			SELECT 1 FROM pg_proc p
			INNER JOIN pg_namespace n ON n.oid = p.pronamespace
			WHERE n.nspname = 'mdb' AND p.proname = fn
		)
		ORDER BY fn
	`, pq.Array(requiredFunctions))
	if err != nil {
		return fmt.Errorf("failed to check functions: %w", err)
	}
	for _, fn := range missingFuncs {
		missing = append(missing, "mdb."+fn+"()")
	}

	if len(missing) > 0 {
		return fmt.Errorf("database schema incomplete, missing: %s", strings.Join(missing, ", "))
	}

	slog.Info("database schema verified")
	return nil
}
