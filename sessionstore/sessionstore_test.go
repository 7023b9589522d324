// sessionstore/sessionstore_test.go

package sessionstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocalSessionStore_SetGetRemove covers the basic key lifecycle.
func TestLocalSessionStore_SetGetRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewLocalSessionStore()
	require.NoError(t, store.Initialize(ctx))
	assert.True(t, store.Ping(ctx))

	v, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, store.Set(ctx, KeyToken, "testtoken"))
	v, err = store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "testtoken", v)

	require.NoError(t, store.Remove(ctx, KeyToken))
	v, err = store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

// TestSessionBalance_Parsing verifies the numeric-string conversion rules.
func TestSessionBalance_Parsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stored  string
		want    float64
		wantErr bool
	}{
		{"missing key reads as zero", "", 0, false},
		{"integer string", "5000", 5000, false},
		{"fractional string", "4800.5", 4800.5, false},
		{"garbage string", "not-a-number", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewLocalSessionStore()
			if tt.stored != "" {
				require.NoError(t, store.Set(ctx, KeyBalance, tt.stored))
			}

			session := NewSession(store)
			got, err := session.Balance(ctx)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestSessionSetBalance_StoresNumericString verifies the on-store representation.
func TestSessionSetBalance_StoresNumericString(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewLocalSessionStore()
	session := NewSession(store)

	require.NoError(t, session.SetBalance(ctx, 4800))
	raw, err := store.Get(ctx, KeyBalance)
	require.NoError(t, err)
	assert.Equal(t, "4800", raw)

	require.NoError(t, session.SetBalance(ctx, 4800.5))
	raw, err = store.Get(ctx, KeyBalance)
	require.NoError(t, err)
	assert.Equal(t, "4800.5", raw)
}

// TestSessionPersistClear verifies the login and logout round trip.
func TestSessionPersistClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewLocalSessionStore()
	session := NewSession(store)

	require.NoError(t, session.Persist(ctx, "testtoken", "criodo", 5000))

	token, err := session.Token(ctx)
	require.NoError(t, err)
	username, err := session.Username(ctx)
	require.NoError(t, err)
	balance, err := session.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "testtoken", token)
	assert.Equal(t, "criodo", username)
	assert.Equal(t, float64(5000), balance)

	require.NoError(t, session.Clear(ctx))

	token, err = session.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", token)
	balance, err = session.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(0), balance)
}
