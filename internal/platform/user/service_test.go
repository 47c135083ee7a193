package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldguard-app/backend/pkg/logger"
)

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[uuid.UUID]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[uuid.UUID]*User),
	}
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyInUse
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	cp := *u
	r.byEmail[u.Email] = &cp
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeRepo) Exists(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, logger.NewDefault("test")), repo
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account with hashed password", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "Ana@Example.com", "secret-pass")

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", u.Email)
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.NotEmpty(t, u.PasswordHash)
		assert.NotEqual(t, "secret-pass", u.PasswordHash)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc, _ := newTestService()

		for _, email := range []string{"", "not-an-email", "a@b"} {
			_, err := svc.Register(ctx, email, "secret-pass")
			assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "ana@example.com", "short")

		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects duplicate email regardless of case", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "ana@example.com", "secret-pass")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "ANA@example.com", "other-pass-123")
		assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc, repo := newTestService()
		registered, err := svc.Register(ctx, "ana@example.com", "secret-pass")
		require.NoError(t, err)

		u, err := svc.Login(ctx, "ana@example.com", "secret-pass")

		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotNil(t, u.LastLoginAt)

		stored := repo.byID[u.ID]
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "ana@example.com", "secret-pass")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "ana@example.com", "wrong-pass-1")

		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown email masked as invalid password", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Login(ctx, "nobody@example.com", "whatever-pass")

		assert.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestUser_CheckPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("secret-pass"))

	assert.NoError(t, u.CheckPassword("secret-pass"))
	assert.ErrorIs(t, u.CheckPassword("nope-nope-nope"), ErrInvalidPassword)
}
