package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

// SessionConfig configures session issuance.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type sessionClaims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// SessionService issues signed session tokens backed by server-side records.
// A token is only valid while its record exists, so Destroy takes effect
// before the token expires.
type SessionService struct {
	store  repository.SessionStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(store repository.SessionStore, cfg SessionConfig) *SessionService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{store: store, secret: []byte(cfg.Secret), ttl: ttl, now: time.Now}
}

// Create stores a new session for user and returns its token.
func (s *SessionService) Create(ctx context.Context, user models.User) (string, *models.Session, error) {
	now := s.now().UTC()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	claims := sessionClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return "", nil, storageError(err, "failed to persist session")
	}
	return token, &session, nil
}

// Resolve verifies token and returns its live session record.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	session, err := s.store.GetSession(ctx, claims.ID)
	if err != nil {
		return nil, storageError(err, "failed to load session")
	}
	if session == nil || session.Expired(s.now()) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired or logged out")
	}
	return session, nil
}

// Destroy removes the session behind token. Destroying an unknown session
// is not an error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	return s.DestroyID(ctx, claims.ID)
}

// DestroyID removes a session by id.
func (s *SessionService) DestroyID(ctx context.Context, id string) error {
	if err := s.store.DeleteSession(ctx, id); err != nil {
		return storageError(err, "failed to delete session")
	}
	return nil
}

// DestroyUser removes every session of a user.
func (s *SessionService) DestroyUser(ctx context.Context, userID int64) error {
	if err := s.store.DeleteUserSessions(ctx, userID); err != nil {
		return storageError(err, "failed to delete user sessions")
	}
	return nil
}

func (s *SessionService) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	if claims.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	return claims, nil
}
