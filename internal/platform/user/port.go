package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for user accounts
type Repository interface {
	// Create inserts a new account. ErrEmailAlreadyInUse is returned when
	// the email is taken.
	Create(ctx context.Context, u *User) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves an account by normalized email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update persists mutable account fields
	Update(ctx context.Context, u *User) error

	// Exists reports whether an account with the email exists
	Exists(ctx context.Context, email string) (bool, error)
}
