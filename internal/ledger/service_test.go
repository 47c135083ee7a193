package ledger

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store used to test the service in isolation.
type fakeStore struct {
	mu       sync.Mutex
	txs      map[uuid.UUID][]*Transaction
	profiles map[uuid.UUID]*Profile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		txs:      make(map[uuid.UUID][]*Transaction),
		profiles: make(map[uuid.UUID]*Profile),
	}
}

func (f *fakeStore) AddTransaction(ctx context.Context, tx *Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *tx
	f.txs[tx.UserID] = append(f.txs[tx.UserID], &cp)
	return nil
}

func (f *fakeStore) ListTransactions(ctx context.Context, userID uuid.UUID) ([]*Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Transaction, len(f.txs[userID]))
	copy(out, f.txs[userID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStore) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.txs[userID][:0]
	for _, tx := range f.txs[userID] {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	f.txs[userID] = kept
	return nil
}

func (f *fakeStore) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return &Profile{}, nil
}

func (f *fakeStore) SaveProfile(ctx context.Context, userID uuid.UUID, p *Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.profiles[userID] = &cp
	return nil
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("valid transaction is persisted", func(t *testing.T) {
		store := newFakeStore()
		svc := NewService(store)

		tx, err := svc.Add(ctx, userID, "Bet365", KindDeposit, "100.50")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tx.ID)
		assert.Equal(t, "100.50", tx.Amount.String())
		assert.False(t, tx.CreatedAt.IsZero())

		txs, err := svc.List(ctx, userID)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, tx.ID, txs[0].ID)
	})

	t.Run("comma decimal accepted", func(t *testing.T) {
		svc := NewService(newFakeStore())

		tx, err := svc.Add(ctx, userID, "Betano", KindWithdrawal, "50,25")

		require.NoError(t, err)
		assert.Equal(t, "50.25", tx.Amount.String())
	})

	t.Run("house name trimmed", func(t *testing.T) {
		svc := NewService(newFakeStore())

		tx, err := svc.Add(ctx, userID, "  Bet365  ", KindDeposit, "10.00")

		require.NoError(t, err)
		assert.Equal(t, "Bet365", tx.HouseName)
	})

	t.Run("invalid input persists nothing", func(t *testing.T) {
		store := newFakeStore()
		svc := NewService(store)

		tests := []struct {
			name    string
			house   string
			kind    Kind
			amount  string
			wantErr error
		}{
			{"blank house", "   ", KindDeposit, "10.00", ErrMissingHouseName},
			{"unknown kind", "Bet365", Kind("bonus"), "10.00", ErrInvalidKind},
			{"zero amount", "Bet365", KindDeposit, "0", ErrNonPositiveAmount},
			{"negative amount", "Bet365", KindDeposit, "-5.00", ErrNonPositiveAmount},
			{"garbage amount", "Bet365", KindDeposit, "ten", ErrNonPositiveAmount},
			{"empty amount", "Bet365", KindDeposit, "", ErrNonPositiveAmount},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Add(ctx, userID, tt.house, tt.kind, tt.amount)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsValidation(err))
			})
		}

		txs, err := svc.List(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}

func TestService_Statement(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc := NewService(newFakeStore())

	_, err := svc.Add(ctx, userID, "Bet365", KindDeposit, "100.50")
	require.NoError(t, err)
	_, err = svc.Add(ctx, userID, "Bet365", KindWithdrawal, "50.00")
	require.NoError(t, err)

	txs, summary, err := svc.Statement(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, "100.50", summary.TotalDeposits.String())
	assert.Equal(t, "50.00", summary.TotalWithdrawals.String())
	assert.Equal(t, "-50.50", summary.Net.String())
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc := NewService(newFakeStore())

	tx, err := svc.Add(ctx, userID, "Bet365", KindDeposit, "100.00")
	require.NoError(t, err)
	_, err = svc.Add(ctx, userID, "Betano", KindWithdrawal, "40.00")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, tx.ID))

	txs, summary, err := svc.Statement(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
	assert.Equal(t, "0.00", summary.TotalDeposits.String())
	assert.Equal(t, "40.00", summary.Net.String())

	// Repeating the delete is a no-op.
	assert.NoError(t, svc.Delete(ctx, userID, tx.ID))
}

func TestService_Profile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc := NewService(newFakeStore())

	t.Run("defaults derived from email", func(t *testing.T) {
		p, err := svc.GetProfile(ctx, userID, "ana@example.com")

		require.NoError(t, err)
		assert.Equal(t, "ana", p.Name)
		assert.Equal(t, "ana@example.com", p.Email)
		assert.Nil(t, p.Age)
		assert.Equal(t, "dragon", p.Avatar())
	})

	t.Run("partial update", func(t *testing.T) {
		name := "Ana Paula"
		age := "27"
		p, err := svc.UpdateProfile(ctx, userID, "ana@example.com", ProfileUpdate{Name: &name, Age: &age})

		require.NoError(t, err)
		assert.Equal(t, "Ana Paula", p.Name)
		assert.Equal(t, 27, *p.Age)

		idx := 4
		p, err = svc.UpdateProfile(ctx, userID, "ana@example.com", ProfileUpdate{AvatarIndex: &idx})

		require.NoError(t, err)
		assert.Equal(t, "Ana Paula", p.Name)
		assert.Equal(t, "pigeon", p.Avatar())
	})

	t.Run("invalid update leaves stored profile untouched", func(t *testing.T) {
		bad := "   "
		_, err := svc.UpdateProfile(ctx, userID, "ana@example.com", ProfileUpdate{Name: &bad})

		assert.ErrorIs(t, err, ErrEmptyName)

		p, err := svc.GetProfile(ctx, userID, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Ana Paula", p.Name)
	})
}
