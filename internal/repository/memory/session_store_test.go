package memory

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/models"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 8, 7, 9, 0, 0, 0, time.UTC)
	store := NewSessionStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.SaveSession(ctx, models.Session{ID: "s1", UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.SaveSession(ctx, models.Session{ID: "s2", UserID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.SaveSession(ctx, models.Session{ID: "s3", UserID: 2, ExpiresAt: now.Add(time.Hour)}))

	got, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.UserID)

	require.NoError(t, store.DeleteSession(ctx, "s1"))
	got, err = store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.DeleteUserSessions(ctx, 1))
	got, _ = store.GetSession(ctx, "s2")
	assert.Nil(t, got)
	got, _ = store.GetSession(ctx, "s3")
	assert.NotNil(t, got)
}

func TestSessionStoreHidesAndPrunesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 8, 7, 9, 0, 0, 0, time.UTC)
	store := NewSessionStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.SaveSession(ctx, models.Session{ID: "old", UserID: 1, ExpiresAt: now}))
	require.NoError(t, store.SaveSession(ctx, models.Session{ID: "live", UserID: 1, ExpiresAt: now.Add(time.Minute)}))

	got, err := store.GetSession(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Len(t, store.sessions, 1)
}

func TestRunPrunerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	p := PrunerFunc(func(context.Context) (int64, error) {
		if calls.Add(1) >= 2 {
			cancel()
		}
		return 1, nil
	})

	done := make(chan struct{})
	go func() {
		RunPruner(ctx, p, time.Millisecond, zap.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pruner did not stop")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}
