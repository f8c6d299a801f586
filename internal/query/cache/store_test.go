package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(t *testing.T) (*FileStore, *fakeClock) {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), DefaultTTL)
	require.NoError(t, err)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	store.now = clock.now
	return store, clock
}

func TestFileStore_SetGet(t *testing.T) {
	store, clock := newTestStore(t)
	data := json.RawMessage(`{"variants":[]}`)

	require.NoError(t, store.Set("abc", data))

	entry, err := store.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", entry.Key)
	assert.JSONEq(t, string(data), string(entry.Data))
	assert.True(t, clock.t.Add(DefaultTTL).Equal(entry.ExpiresAt))

	clock.t = clock.t.Add(10 * time.Minute)
	assert.Equal(t, 10*time.Minute, entry.Age(clock.t))
}

func TestFileStore_Expiry(t *testing.T) {
	store, clock := newTestStore(t)
	require.NoError(t, store.Set("k", json.RawMessage(`1`)))

	clock.t = clock.t.Add(DefaultTTL + time.Second)
	_, err := store.Get("k")
	require.ErrorIs(t, err, ErrExpired)

	_, err = store.Get("k")
	require.ErrorIs(t, err, ErrNotFound, "expired entries are removed on read")
}

func TestFileStore_Errors(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get("")
	require.ErrorIs(t, err, ErrEmptyKey)
	require.ErrorIs(t, store.Set("", nil), ErrEmptyKey)
	require.NoError(t, store.Delete("missing"))

	disabled := Disabled()
	assert.False(t, disabled.Enabled())
	_, err = disabled.Get("k")
	require.ErrorIs(t, err, ErrDisabled)
	require.ErrorIs(t, disabled.Set("k", nil), ErrDisabled)
	_, err = disabled.Count()
	require.ErrorIs(t, err, ErrDisabled)
}

func TestFileStore_PruneAndClear(t *testing.T) {
	store, clock := newTestStore(t)
	require.NoError(t, store.Set("old", json.RawMessage(`1`)))
	clock.t = clock.t.Add(30 * time.Minute)
	require.NoError(t, store.Set("new", json.RawMessage(`2`)))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o600))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	clock.t = clock.t.Add(45 * time.Minute)
	removed, err := store.Prune()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get("new")
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	count, err = store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.FileExists(t, filepath.Join(store.Dir(), "notes.txt"))
}

func TestFileStore_KeySanitizing(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("a/b:c", json.RawMessage(`true`)))
	assert.FileExists(t, filepath.Join(store.Dir(), "a_b_c.json"))

	_, err := store.Get("a/b:c")
	require.NoError(t, err)
}

func TestValidateTTL(t *testing.T) {
	tests := []struct {
		ttl     time.Duration
		wantErr bool
	}{
		{ttl: time.Minute},
		{ttl: DefaultTTL},
		{ttl: MaxTTL},
		{ttl: 59 * time.Second, wantErr: true},
		{ttl: MaxTTL + time.Second, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ttl.String(), func(t *testing.T) {
			err := ValidateTTL(tt.ttl)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTTL)
				return
			}
			require.NoError(t, err)
		})
	}

	_, err := NewFileStore(t.TempDir(), time.Second)
	require.ErrorIs(t, err, ErrInvalidTTL)
}
