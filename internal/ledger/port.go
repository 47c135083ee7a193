package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence interface for transactions and profiles.
//
// Two backings implement it: a PostgreSQL repository (per-user rows, the
// standard deployment) and a Redis key-value store. Both namespace all data
// by user ID and return transactions newest first. A completed write must be
// visible to any subsequent read (read-your-writes).
type Store interface {
	// AddTransaction persists a new transaction
	AddTransaction(ctx context.Context, tx *Transaction) error

	// ListTransactions returns the user's transactions ordered by creation
	// time descending
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)

	// DeleteTransaction removes a transaction by ID. Deleting an absent ID
	// is not an error.
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error

	// GetProfile returns the user's stored profile fields. An absent
	// profile yields a zero-valued Profile, not an error.
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// SaveProfile stores the full profile document for the user
	SaveProfile(ctx context.Context, userID uuid.UUID, p *Profile) error
}
