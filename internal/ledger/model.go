// Package ledger holds the per-user transaction ledger: the transaction and
// profile models, the balance summary, the storage port its two backings
// implement, and the service that enforces the business rules.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/goldguard-app/backend/pkg/money"
)

// Kind classifies a transaction as money sent to a betting house or
// recovered from one. The enumeration is closed.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Label returns a human-readable label for the kind
func (k Kind) Label() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdrawal:
		return "Withdrawal"
	default:
		return "Unknown"
	}
}

// AllKinds returns every valid transaction kind
func AllKinds() []Kind {
	return []Kind{KindDeposit, KindWithdrawal}
}

// Transaction is a single deposit or withdrawal at a betting house.
// Transactions are immutable after creation; the only mutation is deletion.
type Transaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	HouseName string
	Kind      Kind
	Amount    money.Amount
	CreatedAt time.Time
}

// Validate checks the invariants of a transaction record
func (t *Transaction) Validate() error {
	if t.HouseName == "" {
		return ErrMissingHouseName
	}
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if !t.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}
