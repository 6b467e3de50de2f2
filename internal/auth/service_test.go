package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-database-service/internal/auth"
)

type memUsers struct {
	mu     sync.Mutex
	byName map[string]auth.Credential
	nextID int
	err    error
}

func newMemUsers() *memUsers {
	return &memUsers{byName: map[string]auth.Credential{}, nextID: 1}
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*auth.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.byName[username]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return &c, nil
}

func (m *memUsers) Create(_ context.Context, c *auth.Credential) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[c.Username]; ok {
		return 0, auth.ErrDuplicateUser
	}
	stored := *c
	stored.ID = m.nextID
	m.nextID++
	m.byName[c.Username] = stored
	return stored.ID, nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with default role", func(t *testing.T) {
		users := newMemUsers()
		svc := auth.NewService(users, auth.NewHasher())

		id, err := svc.Register(ctx, auth.Registration{Name: "John Doe", Username: "jdoe", Email: "j@x.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, 1, id.UserID)
		assert.Equal(t, "jdoe", id.Username)
		assert.Equal(t, auth.DefaultRole, id.Role)

		stored := users.byName["jdoe"]
		assert.NotEqual(t, "secret", stored.PasswordHash)
		assert.Len(t, stored.Salt, 16)
	})

	t.Run("falls back to name when username is blank", func(t *testing.T) {
		svc := auth.NewService(newMemUsers(), auth.NewHasher())

		id, err := svc.Register(ctx, auth.Registration{Name: "jane", Username: "  ", Email: "jane@x.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "jane", id.Username)
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		svc := auth.NewService(newMemUsers(), auth.NewHasher())

		cases := []auth.Registration{
			{Email: "a@b.c", Password: "pw"},
			{Username: "u", Password: "pw"},
			{Username: "u", Email: "a@b.c", Password: "   "},
		}
		for _, c := range cases {
			_, err := svc.Register(ctx, c)
			assert.ErrorIs(t, err, auth.ErrValidation)
		}
	})

	t.Run("duplicate username leaves first credential untouched", func(t *testing.T) {
		users := newMemUsers()
		svc := auth.NewService(users, auth.NewHasher())

		_, err := svc.Register(ctx, auth.Registration{Name: "jdoe", Username: "jdoe", Email: "j@x.com", Password: "secret"})
		require.NoError(t, err)
		before := users.byName["jdoe"]

		_, err = svc.Register(ctx, auth.Registration{Name: "other", Username: "jdoe", Email: "o@x.com", Password: "different"})
		assert.ErrorIs(t, err, auth.ErrDuplicateUser)
		assert.Equal(t, before, users.byName["jdoe"])

		_, err = svc.Authenticate(ctx, "jdoe", "secret")
		assert.NoError(t, err)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		users := newMemUsers()
		users.err = errors.New("connection refused")
		svc := auth.NewService(users, auth.NewHasher())

		_, err := svc.Register(ctx, auth.Registration{Username: "u", Email: "a@b.c", Password: "pw"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrDuplicateUser)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	svc := auth.NewService(users, auth.NewHasher())

	_, err := svc.Register(ctx, auth.Registration{Name: "jdoe", Username: "jdoe", Email: "j@x.com", Password: "secret"})
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "jdoe", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "secret")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Equal(t, "invalid username or password", err.Error())
	})

	t.Run("correct password", func(t *testing.T) {
		id, err := svc.Authenticate(ctx, "jdoe", "secret")
		require.NoError(t, err)
		assert.Equal(t, "jdoe", id.Username)
		assert.Equal(t, auth.DefaultRole, id.Role)
		assert.Equal(t, 1, id.UserID)
	})

	t.Run("blank input", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "secret")
		assert.ErrorIs(t, err, auth.ErrValidation)
		_, err = svc.Authenticate(ctx, "jdoe", "")
		assert.ErrorIs(t, err, auth.ErrValidation)
	})
}
