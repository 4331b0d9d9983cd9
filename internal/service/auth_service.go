package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
	"github.com/noah-isme/edusync-api/pkg/password"
)

// dummyPassword is hashed once at startup so that unknown emails cost the
// same verification as known ones.
const dummyPassword = "edusync-timing-equaliser"

type authStore interface {
	repository.UserStore
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	CreateStudent(ctx context.Context, student models.Student) (*models.Student, error)
	CreateTeacher(ctx context.Context, teacher models.Teacher) (*models.Teacher, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	RequireApproval bool
}

// AuthService owns credentials, registration, approval and authorization.
type AuthService struct {
	store     authStore
	hasher    password.Hasher
	sessions  *SessionService
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	dummyHash string
	metrics   *MetricsService
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(store authStore, hasher password.Hasher, sessions *SessionService, validate *validator.Validate, logger *zap.Logger, config AuthConfig) (*AuthService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		store:     store,
		hasher:    hasher,
		sessions:  sessions,
		validator: newValidator(validate),
		logger:    logger,
		config:    config,
		dummyHash: dummy,
	}, nil
}

// UseMetrics records login outcomes on m.
func (s *AuthService) UseMetrics(m *MetricsService) {
	s.metrics = m
}

// Authenticate checks credentials first and account status second. Unknown
// emails and wrong passwords are indistinguishable.
func (s *AuthService) Authenticate(ctx context.Context, email, plain string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, storageError(err, "failed to fetch user")
	}

	stored := s.dummyHash
	if user != nil {
		stored = user.Password
	}
	ok, verr := s.hasher.Verify(stored, plain)
	if verr != nil {
		s.logger.Warn("stored password hash unreadable", zap.Error(verr))
	}
	if user == nil || !ok || verr != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	switch user.Status {
	case models.StatusApproved:
		return user, nil
	case models.StatusRejected:
		return nil, appErrors.Clone(appErrors.ErrAccountNotApproved, "account has been rejected")
	default:
		return nil, appErrors.Clone(appErrors.ErrAccountNotApproved, "account is pending approval")
	}
}

// Login authenticates a user and opens a session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid login payload")
	}

	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		s.metrics.RecordLogin(appErrors.FromError(err).Code)
		return nil, err
	}
	s.metrics.RecordLogin("success")

	token, session, err := s.sessions.Create(ctx, *user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, ExpiresAt: session.ExpiresAt, User: *user}, nil
}

// Logout ends the principal's session.
func (s *AuthService) Logout(ctx context.Context, principal *models.Principal) error {
	if principal == nil {
		return appErrors.ErrUnauthorized
	}
	return s.sessions.DestroyID(ctx, principal.SessionID)
}

// Principal resolves a session token into the current user. The user is
// reloaded so status changes apply to open sessions.
func (s *AuthService) Principal(ctx context.Context, token string) (*models.Principal, error) {
	session, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, storageError(err, "failed to load session user")
	}
	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session user no longer exists")
	}
	return &models.Principal{User: *user, SessionID: session.ID}, nil
}

// Register creates a student or teacher account together with its profile.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid registration payload")
	}

	status := models.StatusApproved
	if s.config.RequireApproval {
		status = models.StatusPending
	}

	user, err := s.createAccount(ctx, models.User{
		Email:        strings.TrimSpace(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.UserRole(req.Role),
		Status:       status,
		ProfileImage: req.ProfileImage,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	res := &models.RegisterResponse{User: *user, PendingApproval: status == models.StatusPending}
	switch user.Role {
	case models.RoleStudent:
		student, err := s.store.CreateStudent(ctx, models.Student{
			UserID:    user.ID,
			StudentID: req.StudentID,
			YearLevel: req.YearLevel,
			BranchID:  req.BranchID,
			SectionID: req.SectionID,
		})
		if err != nil {
			s.discardAccount(ctx, user.ID)
			return nil, storageError(err, "failed to create student profile")
		}
		res.Student = student
	case models.RoleTeacher:
		teacher, err := s.store.CreateTeacher(ctx, models.Teacher{
			UserID:         user.ID,
			TeacherID:      req.TeacherID,
			Specialization: req.Specialization,
		})
		if err != nil {
			s.discardAccount(ctx, user.ID)
			return nil, storageError(err, "failed to create teacher profile")
		}
		res.Teacher = teacher
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)), zap.String("status", string(status)))
	return res, nil
}

// CreateUser lets an admin create an account of any role. Accounts are
// approved unless the request says otherwise.
func (s *AuthService) CreateUser(ctx context.Context, actor *models.Principal, req models.CreateUserRequest) (*models.User, error) {
	if err := s.Authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user payload")
	}
	status := req.Status
	if status == "" {
		status = models.StatusApproved
	}
	return s.createAccount(ctx, models.User{
		Email:        strings.TrimSpace(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Status:       status,
		ProfileImage: req.ProfileImage,
	}, req.Password)
}

// createAccount checks the email is free, then inserts. The check and the
// insert are not atomic; two concurrent registrations may both pass.
func (s *AuthService) createAccount(ctx context.Context, user models.User, plain string) (*models.User, error) {
	existing, err := s.store.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, storageError(err, "failed to check email")
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "user already exists with this email")
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, hashError(err)
	}
	user.Password = hash

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, storageError(err, "failed to create user")
	}
	return created, nil
}

// discardAccount removes a user whose profile could not be stored, so the
// email can be registered again.
func (s *AuthService) discardAccount(ctx context.Context, userID int64) {
	if _, err := s.store.DeleteUser(ctx, userID); err != nil {
		s.logger.Error("failed to remove user without profile", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// ListPending returns accounts awaiting approval.
func (s *AuthService) ListPending(ctx context.Context, actor *models.Principal) ([]models.User, error) {
	if err := s.Authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.store.ListUsersByStatus(ctx, models.StatusPending)
	return listed(users, err, "pending users")
}

// Approve marks a user approved.
func (s *AuthService) Approve(ctx context.Context, actor *models.Principal, userID int64) (*models.User, error) {
	if err := s.Authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	user, err := s.store.ApproveUser(ctx, userID)
	if user, err = found(user, err, "user"); err != nil {
		return nil, err
	}
	s.logger.Info("user approved", zap.Int64("user_id", userID), zap.Int64("by", actor.User.ID))
	return user, nil
}

// Reject marks a user rejected and closes their sessions.
func (s *AuthService) Reject(ctx context.Context, actor *models.Principal, userID int64) (*models.User, error) {
	if err := s.Authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	user, err := s.store.RejectUser(ctx, userID)
	if user, err = found(user, err, "user"); err != nil {
		return nil, err
	}
	if err := s.sessions.DestroyUser(ctx, userID); err != nil {
		s.logger.Warn("failed to close sessions of rejected user", zap.Int64("user_id", userID), zap.Error(err))
	}
	s.logger.Info("user rejected", zap.Int64("user_id", userID), zap.Int64("by", actor.User.ID))
	return user, nil
}

// ChangePassword replaces the principal's password after checking the old one.
func (s *AuthService) ChangePassword(ctx context.Context, principal *models.Principal, req models.ChangePasswordRequest) error {
	if err := s.Authorize(principal); err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid password payload")
	}

	user, err := s.store.GetUser(ctx, principal.User.ID)
	if user, err = found(user, err, "user"); err != nil {
		return err
	}
	ok, err := s.hasher.Verify(user.Password, req.OldPassword)
	if err != nil || !ok {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "current password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return hashError(err)
	}
	updated, err := s.store.UpdateUser(ctx, user.ID, models.UserPatch{Password: &hash})
	_, err = found(updated, err, "user")
	return err
}

// Profile returns the principal with their student or teacher profile.
func (s *AuthService) Profile(ctx context.Context, principal *models.Principal) (*models.Profile, error) {
	if principal == nil {
		return nil, appErrors.ErrUnauthorized
	}
	user, err := s.store.GetUser(ctx, principal.User.ID)
	if user, err = found(user, err, "user"); err != nil {
		return nil, err
	}

	profile := &models.Profile{User: *user}
	switch user.Role {
	case models.RoleStudent:
		student, err := s.store.GetStudentByUserID(ctx, user.ID)
		if err != nil {
			return nil, storageError(err, "failed to load student profile")
		}
		profile.Student = student
	case models.RoleTeacher:
		teacher, err := s.store.GetTeacherByUserID(ctx, user.ID)
		if err != nil {
			return nil, storageError(err, "failed to load teacher profile")
		}
		profile.Teacher = teacher
	}
	return profile, nil
}

// Authorize admits an approved principal whose role is in allowed. An empty
// allowed list admits any approved principal.
func (s *AuthService) Authorize(principal *models.Principal, allowed ...models.UserRole) error {
	if principal == nil {
		return appErrors.ErrUnauthorized
	}
	if principal.User.Status != models.StatusApproved {
		return appErrors.Clone(appErrors.ErrForbidden, "account is not approved")
	}
	if len(allowed) > 0 && !principal.HasRole(allowed...) {
		return appErrors.Clone(appErrors.ErrForbidden, "insufficient role")
	}
	return nil
}

func hashError(err error) error {
	if errors.Is(err, password.ErrTooLong) {
		return appErrors.Clone(appErrors.ErrValidation, "password is too long")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
}
