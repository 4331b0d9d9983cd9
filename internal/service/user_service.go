package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

// UserService handles user management workflows.
type UserService struct {
	store     repository.UserStore
	sessions  *SessionService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService. sessions may be nil.
func NewUserService(store repository.UserStore, sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: store, sessions: sessions, validator: newValidator(validate), logger: logger}
}

// List returns every user ordered by id.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	return listed(users, err, "users")
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	return found(user, err, "user")
}

// Update applies an admin edit. Passwords change through the auth flow only.
func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid user payload")
	}
	patch.Password = nil

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		patch.Email = &email
		existing, err := s.store.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, storageError(err, "failed to check email")
		}
		if existing != nil && existing.ID != id {
			return nil, appErrors.Clone(appErrors.ErrConflict, "user already exists with this email")
		}
	}

	user, err := s.store.UpdateUser(ctx, id, patch)
	return found(user, err, "user")
}

// Delete removes a user and closes their sessions. Linked profiles and
// records are left in place.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteUser(ctx, id)
	if err := removed(ok, err, "user"); err != nil {
		return err
	}
	if s.sessions != nil {
		if err := s.sessions.DestroyUser(ctx, id); err != nil {
			s.logger.Warn("failed to close sessions of deleted user", zap.Int64("user_id", id), zap.Error(err))
		}
	}
	return nil
}

type userGetter interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// userSummaries resolves users once per id for view composition. Missing
// users map to nil.
type userSummaries struct {
	store userGetter
	cache map[int64]*models.UserSummary
}

func newUserSummaries(store userGetter) *userSummaries {
	return &userSummaries{store: store, cache: make(map[int64]*models.UserSummary)}
}

func (u *userSummaries) get(ctx context.Context, id int64) (*models.UserSummary, error) {
	if summary, ok := u.cache[id]; ok {
		return summary, nil
	}
	user, err := u.store.GetUser(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to load user")
	}
	var summary *models.UserSummary
	if user != nil {
		sum := user.Summary()
		summary = &sum
	}
	u.cache[id] = summary
	return summary, nil
}
