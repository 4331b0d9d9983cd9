package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/models"
)

func newRedisSessionStore(t *testing.T, now time.Time) (*RedisSessionStore, redismock.ClientMock) {
	client, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(client)
	store.now = func() time.Time { return now }
	t.Cleanup(func() { _ = client.Close() })
	return store, mock
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store, mock := newRedisSessionStore(t, now)
	session := models.Session{ID: "abc", UserID: 5, Role: models.RoleTeacher, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	payload, err := json.Marshal(session)
	require.NoError(t, err)

	mock.ExpectSet("edusync:session:abc", payload, time.Hour).SetVal("OK")
	mock.ExpectSAdd("edusync:user-sessions:5", "abc").SetVal(1)
	mock.ExpectExpire("edusync:user-sessions:5", time.Hour).SetVal(true)
	mock.ExpectGet("edusync:session:abc").SetVal(string(payload))
	mock.ExpectDel("edusync:session:abc").SetVal(1)
	mock.ExpectGet("edusync:session:abc").RedisNil()

	ctx := context.Background()
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.UserID)
	assert.Equal(t, models.RoleTeacher, got.Role)

	require.NoError(t, store.DeleteSession(ctx, "abc"))

	got, err = store.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStoreRejectsExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store, mock := newRedisSessionStore(t, now)

	for _, expires := range []time.Time{now.Add(-time.Minute), now} {
		err := store.SaveSession(context.Background(), models.Session{ID: "old", ExpiresAt: expires})
		assert.ErrorIs(t, err, ErrSessionExpired)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStoreDeleteUserSessions(t *testing.T) {
	store, mock := newRedisSessionStore(t, time.Now())

	mock.ExpectSMembers("edusync:user-sessions:9").SetVal([]string{"a", "b"})
	mock.ExpectDel("edusync:session:a", "edusync:session:b", "edusync:user-sessions:9").SetVal(3)

	require.NoError(t, store.DeleteUserSessions(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStoreFailureIsConnectivity(t *testing.T) {
	store, mock := newRedisSessionStore(t, time.Now())
	mock.ExpectGet("edusync:session:x").SetErr(errors.New("dial tcp: connection refused"))

	_, err := store.GetSession(context.Background(), "x")
	assert.ErrorIs(t, err, ErrConnectivity)
}

func TestCacheRepositoryMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	defer client.Close()
	repo := NewCacheRepository(client)

	mock.ExpectGet("reports:x").RedisNil()

	var dest map[string]int
	err := repo.Get(context.Background(), "reports:x", &dest)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryNilClient(t *testing.T) {
	repo := NewCacheRepository(nil)
	var dest map[string]int
	assert.Error(t, repo.Get(context.Background(), "k", &dest))
	assert.NoError(t, repo.Set(context.Background(), "k", 1, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "k*"))
}
