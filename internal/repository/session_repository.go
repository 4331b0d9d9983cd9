package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/edusync-api/internal/models"
)

const (
	sessionKeyPrefix     = "edusync:session:"
	userSessionKeyPrefix = "edusync:user-sessions:"
)

// ErrSessionExpired is returned when saving a session whose expiry has passed.
var ErrSessionExpired = errors.New("session already expired")

// RedisSessionStore keeps sessions as JSON values that expire with the session.
type RedisSessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisSessionStore constructs a Redis backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, now: time.Now}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

func userSessionsKey(userID int64) string { return fmt.Sprintf("%s%d", userSessionKeyPrefix, userID) }

// SaveSession stores the session and indexes it under its user.
func (r *RedisSessionStore) SaveSession(ctx context.Context, session models.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("save session %s: %w", session.ID, ErrSessionExpired)
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		return backendErr("save session", err)
	}
	indexKey := userSessionsKey(session.UserID)
	if err := r.client.SAdd(ctx, indexKey, session.ID).Err(); err != nil {
		return backendErr("index session", err)
	}
	if err := r.client.Expire(ctx, indexKey, ttl).Err(); err != nil {
		return backendErr("index session", err)
	}
	return nil
}

func (r *RedisSessionStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, backendErr("get session", err)
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	if session.Expired(r.now()) {
		return nil, nil
	}
	return &session, nil
}

func (r *RedisSessionStore) DeleteSession(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return backendErr("delete session", err)
	}
	return nil
}

// DeleteUserSessions revokes every session of a user.
func (r *RedisSessionStore) DeleteUserSessions(ctx context.Context, userID int64) error {
	indexKey := userSessionsKey(userID)
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return backendErr("list user sessions", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, indexKey)
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return backendErr("delete user sessions", err)
	}
	return nil
}

const sessionColumns = "id, user_id, role, created_at, expires_at"

// SaveSession stores the session in the sessions table.
func (s *DatabaseStorage) SaveSession(ctx context.Context, session models.Session) error {
	defer s.observe("save session", time.Now())
	const query = `INSERT INTO sessions (id, user_id, role, created_at, expires_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO UPDATE SET expires_at = EXCLUDED.expires_at`
	if _, err := s.db.ExecContext(ctx, query, session.ID, session.UserID, session.Role, session.CreatedAt, session.ExpiresAt); err != nil {
		return backendErr("save session", err)
	}
	return nil
}

func (s *DatabaseStorage) GetSession(ctx context.Context, id string) (*models.Session, error) {
	return getOne[models.Session](ctx, s, "get session", "SELECT "+sessionColumns+" FROM sessions WHERE id = $1 AND expires_at > $2", id, s.now())
}

func (s *DatabaseStorage) DeleteSession(ctx context.Context, id string) error {
	defer s.observe("delete session", time.Now())
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = $1", id); err != nil {
		return backendErr("delete session", err)
	}
	return nil
}

func (s *DatabaseStorage) DeleteUserSessions(ctx context.Context, userID int64) error {
	defer s.observe("delete user sessions", time.Now())
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = $1", userID); err != nil {
		return backendErr("delete user sessions", err)
	}
	return nil
}

// PruneSessions removes expired rows and reports how many were deleted.
func (s *DatabaseStorage) PruneSessions(ctx context.Context) (int64, error) {
	defer s.observe("prune sessions", time.Now())
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= $1", s.now())
	if err != nil {
		return 0, backendErr("prune sessions", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, backendErr("prune sessions", err)
	}
	return n, nil
}

var (
	_ SessionStore = (*RedisSessionStore)(nil)
	_ SessionStore = (*DatabaseStorage)(nil)
)
