// Package redis holds the key-value ledger backing built on Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/goldguard-app/backend/internal/ledger"
	"github.com/goldguard-app/backend/pkg/money"
)

// Store implements ledger.Store on Redis. Each user's transactions live in
// one hash keyed by transaction ID, the profile in one JSON value; every key
// is namespaced by user ID so identities never share a ledger. Totals are
// never stored, only derived, so the backing cannot drift from the history.
type Store struct {
	client *redis.Client
}

// NewStore creates a Redis-backed ledger store
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// NewClient creates a Redis client and verifies connectivity
func NewClient(ctx context.Context, url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func transactionsKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:transactions", userID)
}

func profileKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:profile", userID)
}

// storedTransaction is the hash field encoding of a transaction
type storedTransaction struct {
	ID        uuid.UUID `json:"id"`
	HouseName string    `json:"house_name"`
	Kind      string    `json:"kind"`
	Centavos  int64     `json:"centavos"`
	CreatedAt time.Time `json:"created_at"`
}

// storedProfile is the JSON encoding of a profile
type storedProfile struct {
	Name        string `json:"name"`
	Age         *int   `json:"age,omitempty"`
	AvatarIndex *int   `json:"avatar_index,omitempty"`
}

// AddTransaction stores the transaction as a hash field under the user's key
func (s *Store) AddTransaction(ctx context.Context, tx *ledger.Transaction) error {
	data, err := json.Marshal(storedTransaction{
		ID:        tx.ID,
		HouseName: tx.HouseName,
		Kind:      string(tx.Kind),
		Centavos:  tx.Amount.Centavos(),
		CreatedAt: tx.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	if err := s.client.HSet(ctx, transactionsKey(tx.UserID), tx.ID.String(), data).Err(); err != nil {
		return fmt.Errorf("failed to store transaction: %w", err)
	}

	return nil
}

// ListTransactions reads the user's hash and returns its entries newest
// first. Hash fields carry no order, so the result is sorted here.
func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID) ([]*ledger.Transaction, error) {
	fields, err := s.client.HGetAll(ctx, transactionsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	txs := make([]*ledger.Transaction, 0, len(fields))
	for _, raw := range fields {
		var st storedTransaction
		if err := json.Unmarshal([]byte(raw), &st); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
		}
		txs = append(txs, &ledger.Transaction{
			ID:        st.ID,
			UserID:    userID,
			HouseName: st.HouseName,
			Kind:      ledger.Kind(st.Kind),
			Amount:    money.FromCentavos(st.Centavos),
			CreatedAt: st.CreatedAt,
		})
	}

	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].ID.String() < txs[j].ID.String()
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	return txs, nil
}

// DeleteTransaction removes the hash field. HDEL on an absent field is a
// no-op, which gives the idempotent delete the contract asks for.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.client.HDel(ctx, transactionsKey(userID), id.String()).Err(); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// GetProfile reads the user's profile value, or a zero profile when absent
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*ledger.Profile, error) {
	raw, err := s.client.Get(ctx, profileKey(userID)).Result()
	if err == redis.Nil {
		return &ledger.Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var sp storedProfile
	if err := json.Unmarshal([]byte(raw), &sp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &ledger.Profile{
		Name:        sp.Name,
		Age:         sp.Age,
		AvatarIndex: sp.AvatarIndex,
	}, nil
}

// SaveProfile stores the full profile value for the user
func (s *Store) SaveProfile(ctx context.Context, userID uuid.UUID, p *ledger.Profile) error {
	data, err := json.Marshal(storedProfile{
		Name:        p.Name,
		Age:         p.Age,
		AvatarIndex: p.AvatarIndex,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := s.client.Set(ctx, profileKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}

	return nil
}

// Ping checks connectivity, for readiness probes
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
