package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goldguard-app/backend/pkg/money"
)

// Service enforces the ledger business rules over a Store backing.
// All input validation happens here, before any persistence attempt.
type Service struct {
	store Store
}

// NewService creates a new ledger service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add validates and persists a new transaction for the user.
// The raw amount string is accepted as typed ("100.50" or "100,50") and must
// parse to a positive value.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, houseName string, kind Kind, rawAmount string) (*Transaction, error) {
	amount, err := money.Parse(rawAmount)
	if err != nil || !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	tx := &Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		HouseName: strings.TrimSpace(houseName),
		Kind:      kind,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.AddTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	return tx, nil
}

// List returns the user's transactions, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Transaction, error) {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// Statement returns the user's transactions together with the recomputed
// totals. The summary is always derived from the full list, never read from
// stored counters.
func (s *Service) Statement(ctx context.Context, userID uuid.UUID) ([]*Transaction, Summary, error) {
	txs, err := s.List(ctx, userID)
	if err != nil {
		return nil, Summary{}, err
	}
	return txs, Summarize(txs), nil
}

// Delete removes a transaction by ID. Deleting an ID that does not exist is
// a no-op, so retried deletes stay safe.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// GetProfile returns the user's profile with defaults filled in: the email
// comes from the identity and the name falls back to the email local part.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID, email string) (*Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	p.Email = email
	if p.Name == "" {
		p.Name = defaultName(email)
	}

	return p, nil
}

// UpdateProfile applies a partial update to the user's profile and returns
// the result. Only supplied fields change; validation failures leave the
// stored profile untouched.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, email string, update ProfileUpdate) (*Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if err := update.apply(p); err != nil {
		return nil, err
	}

	if err := s.store.SaveProfile(ctx, userID, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	p.Email = email
	if p.Name == "" {
		p.Name = defaultName(email)
	}

	return p, nil
}
