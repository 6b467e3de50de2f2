package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"movie-database-service/internal/auth"
)

const uniqueViolation = "23505"

type userRow struct {
	ID           int       `db:"uconst"`
	Username     string    `db:"user_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"u_password"`
	Salt         string    `db:"salt"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"time"`
}

func (u userRow) credential() *auth.Credential {
	return &auth.Credential{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Salt:         u.Salt,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserStore = (*UserRepository)(nil)

// UserRepository stores credentials in mdb.user_info.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername returns the credential for a username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*auth.Credential, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `
		SELECT uconst, user_name, COALESCE(email, '') AS email, u_password, salt,
			COALESCE(role, 'User') AS role, COALESCE(time, NOW()) AS time
		FROM mdb.user_info
		WHERE user_name = $1
	`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return row.credential(), nil
}

// Create inserts a credential and returns its id. A unique violation on the
// username is reported as auth.ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, c *auth.Credential) (int, error) {
	var id int
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO mdb.user_info (user_name, email, u_password, salt, role, time)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING uconst
	`, c.Username, c.Email, c.PasswordHash, c.Salt, c.Role).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, auth.ErrDuplicateUser
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}
