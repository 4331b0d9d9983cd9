package memory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
)

// SessionStore keeps sessions in process memory. Expired entries are hidden
// from lookups immediately and removed by Prune.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	now      func() time.Time
}

// NewSessionStore returns an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]models.Session), now: time.Now}
}

var _ repository.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) SaveSession(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *SessionStore) GetSession(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok || session.Expired(s.now()) {
		return nil, nil
	}
	return &session, nil
}

func (s *SessionStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) DeleteUserSessions(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

// Prune drops expired sessions and returns how many were removed.
func (s *SessionStore) Prune(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var removed int64
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Pruner is implemented by session stores that need explicit expiry sweeps.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// RunPruner calls p.Prune every interval until ctx is done.
func RunPruner(ctx context.Context, p Pruner, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := p.Prune(ctx)
			if err != nil {
				logger.Warn("session prune failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Debug("pruned expired sessions", zap.Int64("removed", removed))
			}
		}
	}
}

// PrunerFunc adapts a function to Pruner.
type PrunerFunc func(ctx context.Context) (int64, error)

func (f PrunerFunc) Prune(ctx context.Context) (int64, error) { return f(ctx) }
