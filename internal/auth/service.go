package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultRole is assigned to every newly registered credential.
const DefaultRole = "User"

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Credential is a stored user credential.
type Credential struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	Salt         string
	Role         string
	CreatedAt    time.Time
}

// Identity is the minimal public view of an authenticated user.
type Identity struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserStore persists credentials. GetByUsername returns ErrUserNotFound when
// no row matches; Create returns ErrDuplicateUser on a unique violation.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*Credential, error)
	Create(ctx context.Context, c *Credential) (int, error)
}

// Registration carries the sign-up input.
type Registration struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Service coordinates sign-up and login on top of the Hasher.
type Service struct {
	users  UserStore
	hasher *Hasher
}

// NewService creates a new Service.
func NewService(users UserStore, hasher *Hasher) *Service {
	return &Service{users: users, hasher: hasher}
}

// Register creates a credential with the default role.
func (s *Service) Register(ctx context.Context, r Registration) (*Identity, error) {
	username := strings.TrimSpace(r.Username)
	if username == "" {
		username = strings.TrimSpace(r.Name)
	}
	email := strings.TrimSpace(r.Email)

	switch {
	case username == "":
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	case email == "":
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	case strings.TrimSpace(r.Password) == "":
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrDuplicateUser
	case !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	digest, salt := s.hasher.Hash(r.Password)
	cred := &Credential{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		Salt:         salt,
		Role:         DefaultRole,
	}

	id, err := s.users.Create(ctx, cred)
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &Identity{UserID: id, Username: username, Role: cred.Role}, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	cred, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, cred.PasswordHash, cred.Salt) {
		return nil, ErrInvalidCredentials
	}

	return &Identity{UserID: cred.ID, Username: cred.Username, Role: cred.Role}, nil
}
