package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goldguard-app/backend/internal/ledger"
	"github.com/goldguard-app/backend/pkg/money"
)

// LedgerRepository implements ledger.Store on PostgreSQL. Transactions live
// in their own table keyed by user; profiles are one row per user, upserted
// on save.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// AddTransaction inserts a transaction
func (r *LedgerRepository) AddTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, house_name, kind, amount_centavos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		tx.HouseName,
		string(tx.Kind),
		tx.Amount.Centavos(),
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// ListTransactions returns the user's transactions newest first
func (r *LedgerRepository) ListTransactions(ctx context.Context, userID uuid.UUID) ([]*ledger.Transaction, error) {
	query := `
		SELECT id, user_id, house_name, kind, amount_centavos, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*ledger.Transaction, 0)
	for rows.Next() {
		var tx ledger.Transaction
		var kind string
		var centavos int64
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.HouseName, &kind, &centavos, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Kind = ledger.Kind(kind)
		tx.Amount = money.FromCentavos(centavos)
		txs = append(txs, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return txs, nil
}

// DeleteTransaction removes a transaction. An absent ID is not an error.
func (r *LedgerRepository) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE user_id = $1 AND id = $2`

	if _, err := r.pool.Exec(ctx, query, userID, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}

// GetProfile returns the user's stored profile, or a zero profile when no
// row exists yet.
func (r *LedgerRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*ledger.Profile, error) {
	query := `SELECT name, age, avatar_index FROM profiles WHERE user_id = $1`

	var p ledger.Profile
	var age, avatarIndex sql.NullInt32

	err := r.pool.QueryRow(ctx, query, userID).Scan(&p.Name, &age, &avatarIndex)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &ledger.Profile{}, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if age.Valid {
		v := int(age.Int32)
		p.Age = &v
	}
	if avatarIndex.Valid {
		v := int(avatarIndex.Int32)
		p.AvatarIndex = &v
	}

	return &p, nil
}

// SaveProfile upserts the profile row for the user
func (r *LedgerRepository) SaveProfile(ctx context.Context, userID uuid.UUID, p *ledger.Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, age, avatar_index, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name,
		    age = EXCLUDED.age,
		    avatar_index = EXCLUDED.avatar_index,
		    updated_at = EXCLUDED.updated_at
	`

	var age, avatarIndex sql.NullInt32
	if p.Age != nil {
		age = sql.NullInt32{Int32: int32(*p.Age), Valid: true}
	}
	if p.AvatarIndex != nil {
		avatarIndex = sql.NullInt32{Int32: int32(*p.AvatarIndex), Valid: true}
	}

	if _, err := r.pool.Exec(ctx, query, userID, p.Name, age, avatarIndex, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}
