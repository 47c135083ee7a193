package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	id := Identity{ID: uuid.New(), Email: "ana@example.com"}

	token, err := svc.Generate(id)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id.ID, got.ID)
	assert.Equal(t, id.Email, got.Email)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := NewTokenService(testSecret, -time.Minute)

	token, err := svc.Generate(Identity{ID: uuid.New(), Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService(testSecret, time.Hour).Generate(Identity{ID: uuid.New(), Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = NewTokenService("another-secret-key-also-long-enough", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	for _, raw := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		_, err := svc.Validate(raw)
		assert.Error(t, err, "token %q", raw)
	}
}

func TestTokenService_Refresh(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	id := Identity{ID: uuid.New(), Email: "ana@example.com"}

	token, err := svc.Generate(id)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(token)
	require.NoError(t, err)

	got, err := svc.Validate(refreshed)
	require.NoError(t, err)
	assert.Equal(t, id.ID, got.ID)
}
