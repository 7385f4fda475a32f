package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/airbear/internal/config"
	"github.com/aanand-mishra/airbear/internal/storage"
	"github.com/aanand-mishra/airbear/internal/storage/sqlite"
	"github.com/aanand-mishra/airbear/internal/types"
)

var _ storage.Storage = (*sqlite.SQLite)(nil)

func newStore(t *testing.T) *sqlite.SQLite {
	t.Helper()
	cfg := &config.Config{StoragePath: filepath.Join(t.TempDir(), "attempts.db")}
	store, err := sqlite.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListAttempts(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	attempts := []types.Attempt{
		{ID: "a1", Form: "login", Fields: map[string]any{"email": "[redacted]", "password": "[redacted]"}, CreatedAt: base},
		{ID: "a2", Form: "book-ride", Fields: map[string]any{"startLocation": "Train Station", "endLocation": "Beach Boardwalk"}, CreatedAt: base.Add(500 * time.Millisecond)},
		{ID: "a3", Form: "register", Fields: map[string]any{"name": "[redacted]", "acceptTerms": true}, CreatedAt: base.Add(time.Second)},
	}
	for _, a := range attempts {
		require.NoError(t, store.RecordAttempt(ctx, a))
	}

	all, err := store.ListAttempts(ctx, "", 0)
	require.NoError(t, err)
	want := []types.Attempt{attempts[2], attempts[1], attempts[0]}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("attempts mismatch (-want +got):\n%s", diff)
	}

	logins, err := store.ListAttempts(ctx, "login", 0)
	require.NoError(t, err)
	require.Len(t, logins, 1)
	assert.Equal(t, "a1", logins[0].ID)

	latest, err := store.ListAttempts(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "a3", latest[0].ID)
}

func TestListAttemptsEmpty(t *testing.T) {
	store := newStore(t)

	got, err := store.ListAttempts(context.Background(), "login", 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecordAttemptDuplicateID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	a := types.Attempt{ID: "dup", Form: "login", Fields: map[string]any{}, CreatedAt: time.Now()}

	require.NoError(t, store.RecordAttempt(ctx, a))
	assert.Error(t, store.RecordAttempt(ctx, a))
}
