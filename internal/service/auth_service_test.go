package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	"github.com/noah-isme/edusync-api/internal/repository/memory"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
	"github.com/noah-isme/edusync-api/pkg/password"
)

func newAuthFixture(t *testing.T, requireApproval bool) (*AuthService, *memory.Store, *plainHasher) {
	t.Helper()
	store := memory.New()
	hasher := &plainHasher{}
	sessions := NewSessionService(memory.NewSessionStore(), SessionConfig{Secret: "test-secret", TTL: time.Hour})
	svc, err := NewAuthService(store, hasher, sessions, validator.New(), zap.NewNop(), AuthConfig{RequireApproval: requireApproval})
	require.NoError(t, err)
	return svc, store, hasher
}

func createUser(t *testing.T, store *memory.Store, email string, role models.UserRole, status models.UserStatus) models.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), models.User{
		Email:     email,
		Password:  "plain$secret",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Status:    status,
	})
	require.NoError(t, err)
	return *u
}

func TestAuthServiceLoginApprovedUser(t *testing.T) {
	svc, store, _ := newAuthFixture(t, true)
	user := createUser(t, store, "ann@school.test", models.RoleStudent, models.StatusApproved)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "ann@school.test", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, user.ID, res.User.ID)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	principal, err := svc.Principal(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.User.ID)
}

func TestAuthServiceLoginRejectsUnapprovedAccounts(t *testing.T) {
	svc, store, _ := newAuthFixture(t, true)
	createUser(t, store, "pending@school.test", models.RoleStudent, models.StatusPending)
	createUser(t, store, "rejected@school.test", models.RoleStudent, models.StatusRejected)

	for _, email := range []string{"pending@school.test", "rejected@school.test"} {
		_, err := svc.Login(context.Background(), models.LoginRequest{Email: email, Password: "secret"})
		require.Error(t, err, email)
		assert.ErrorIs(t, err, appErrors.ErrAccountNotApproved, email)
	}
}

func TestAuthServiceLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, store, hasher := newAuthFixture(t, true)
	createUser(t, store, "ann@school.test", models.RoleStudent, models.StatusApproved)
	// pending accounts with a wrong password must still look like bad credentials
	createUser(t, store, "pending@school.test", models.RoleStudent, models.StatusPending)

	hasher.verifies.Store(0)
	_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{Email: "ann@school.test", Password: "nope"})
	assert.Equal(t, int32(1), hasher.verifies.Load())

	hasher.verifies.Store(0)
	_, unknownEmail := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@school.test", Password: "nope"})
	assert.Equal(t, int32(1), hasher.verifies.Load())

	_, pendingWrong := svc.Login(context.Background(), models.LoginRequest{Email: "pending@school.test", Password: "nope"})

	for _, err := range []error{wrongPassword, unknownEmail, pendingWrong} {
		appErr := appErrors.FromError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Message, appErr.Message)
	}
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t, true)
	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAuthServiceLoginBackendUnavailable(t *testing.T) {
	store := offlineStore{memory.New()}
	sessions := NewSessionService(memory.NewSessionStore(), SessionConfig{Secret: "s"})
	svc, err := NewAuthService(store, &plainHasher{}, sessions, nil, nil, AuthConfig{})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ann@school.test", Password: "secret"})
	assert.ErrorIs(t, err, appErrors.ErrServiceUnavailable)
}

func TestAuthServiceRegistrationApprovalFlow(t *testing.T) {
	svc, store, _ := newAuthFixture(t, true)
	admin := createUser(t, store, "admin@school.test", models.RoleAdmin, models.StatusApproved)
	ctx := context.Background()

	res, err := svc.Register(ctx, models.RegisterRequest{
		Email:     "new@school.test",
		Password:  "secret1",
		FirstName: "New",
		LastName:  "Student",
		Role:      "student",
		StudentID: "ST999",
		YearLevel: 1,
		BranchID:  1,
		SectionID: 1,
	})
	require.NoError(t, err)
	assert.True(t, res.PendingApproval)
	assert.Equal(t, models.StatusPending, res.User.Status)
	require.NotNil(t, res.Student)
	assert.Equal(t, res.User.ID, res.Student.UserID)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "new@school.test", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrAccountNotApproved)

	pending, err := svc.ListPending(ctx, principalFor(admin))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, res.User.ID, pending[0].ID)

	approved, err := svc.Approve(ctx, principalFor(admin), res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "new@school.test", Password: "secret1"})
	assert.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{
		Email: "new@school.test", Password: "secret1", FirstName: "A", LastName: "B", Role: "teacher", TeacherID: "T9",
	})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestAuthServiceRegisterWithoutApproval(t *testing.T) {
	svc, _, _ := newAuthFixture(t, false)
	res, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "t@school.test", Password: "secret1", FirstName: "T", LastName: "Teacher", Role: "teacher", TeacherID: "T1",
	})
	require.NoError(t, err)
	assert.False(t, res.PendingApproval)
	assert.Equal(t, models.StatusApproved, res.User.Status)
	require.NotNil(t, res.Teacher)
}

// profilelessStore accepts users but fails every profile insert.
type profilelessStore struct {
	*memory.Store
}

func (profilelessStore) CreateStudent(context.Context, models.Student) (*models.Student, error) {
	return nil, fmt.Errorf("create student: %w", repository.ErrConnectivity)
}

func (profilelessStore) CreateTeacher(context.Context, models.Teacher) (*models.Teacher, error) {
	return nil, fmt.Errorf("create teacher: %w", repository.ErrConnectivity)
}

func TestAuthServiceRegisterRemovesUserWithoutProfile(t *testing.T) {
	store := profilelessStore{memory.New()}
	sessions := NewSessionService(memory.NewSessionStore(), SessionConfig{Secret: "s"})
	svc, err := NewAuthService(store, &plainHasher{}, sessions, nil, nil, AuthConfig{})
	require.NoError(t, err)
	ctx := context.Background()

	req := models.RegisterRequest{
		Email: "t@school.test", Password: "secret1", FirstName: "T", LastName: "Teacher", Role: "teacher", TeacherID: "T1",
	}
	for attempt := 0; attempt < 2; attempt++ {
		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, appErrors.ErrServiceUnavailable)
	}

	left, err := store.GetUserByEmail(ctx, "t@school.test")
	require.NoError(t, err)
	assert.Nil(t, left)
}

func TestAuthServicePasswordLengthLimit(t *testing.T) {
	sessions := NewSessionService(memory.NewSessionStore(), SessionConfig{Secret: "s"})
	svc, err := NewAuthService(memory.New(), password.NewBcrypt(4), sessions, nil, nil, AuthConfig{})
	require.NoError(t, err)
	ctx := context.Background()

	register := func(plain string) error {
		_, err := svc.Register(ctx, models.RegisterRequest{
			Email: "long@school.test", Password: plain, FirstName: "L", LastName: "P", Role: "teacher", TeacherID: "T1",
		})
		return err
	}
	assert.ErrorIs(t, register(strings.Repeat("a", 73)), appErrors.ErrValidation)
	// 30 runes pass the length tag but take 90 bytes.
	assert.ErrorIs(t, register(strings.Repeat("€", 30)), appErrors.ErrValidation)
	assert.NoError(t, register(strings.Repeat("a", 72)))
}

func TestAuthServiceRegisterRejectsAdminRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t, false)
	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "x@school.test", Password: "secret1", FirstName: "X", LastName: "Y", Role: "admin",
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAuthServiceRejectClosesSessions(t *testing.T) {
	svc, store, _ := newAuthFixture(t, true)
	admin := createUser(t, store, "admin@school.test", models.RoleAdmin, models.StatusApproved)
	user := createUser(t, store, "ann@school.test", models.RoleStudent, models.StatusApproved)
	ctx := context.Background()

	res, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Reject(ctx, principalFor(admin), user.ID)
	require.NoError(t, err)

	_, err = svc.Principal(ctx, res.Token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthServiceAuthorize(t *testing.T) {
	svc, _, _ := newAuthFixture(t, true)
	student := principalFor(models.User{ID: 1, Role: models.RoleStudent, Status: models.StatusApproved})
	admin := principalFor(models.User{ID: 2, Role: models.RoleAdmin, Status: models.StatusApproved})
	pendingAdmin := principalFor(models.User{ID: 3, Role: models.RoleAdmin, Status: models.StatusPending})

	assert.ErrorIs(t, svc.Authorize(student, models.RoleAdmin, models.RoleTeacher), appErrors.ErrForbidden)
	assert.NoError(t, svc.Authorize(admin, models.RoleAdmin, models.RoleTeacher))
	assert.NoError(t, svc.Authorize(student))
	assert.ErrorIs(t, svc.Authorize(pendingAdmin, models.RoleAdmin), appErrors.ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(nil), appErrors.ErrUnauthorized)
}

func TestAuthServiceLogoutInvalidatesToken(t *testing.T) {
	svc, store, _ := newAuthFixture(t, true)
	createUser(t, store, "ann@school.test", models.RoleStudent, models.StatusApproved)
	ctx := context.Background()

	res, err := svc.Login(ctx, models.LoginRequest{Email: "ann@school.test", Password: "secret"})
	require.NoError(t, err)
	principal, err := svc.Principal(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, principal))

	_, err = svc.Principal(ctx, res.Token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthServiceChangePassword(t *testing.T) {
	svc, store, _ := newAuthFixture(t, true)
	user := createUser(t, store, "ann@school.test", models.RoleStudent, models.StatusApproved)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, principalFor(user), models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "changed1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, principalFor(user), models.ChangePasswordRequest{OldPassword: "secret", NewPassword: "changed1"}))

	_, err = svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "changed1"})
	assert.NoError(t, err)
}

func TestAuthServiceProfileIncludesStudent(t *testing.T) {
	svc, store, _ := newAuthFixture(t, true)
	user := createUser(t, store, "ann@school.test", models.RoleStudent, models.StatusApproved)
	_, err := store.CreateStudent(context.Background(), models.Student{UserID: user.ID, StudentID: "ST1", YearLevel: 1, BranchID: 1, SectionID: 1})
	require.NoError(t, err)

	profile, err := svc.Profile(context.Background(), principalFor(user))
	require.NoError(t, err)
	require.NotNil(t, profile.Student)
	assert.Equal(t, "ST1", profile.Student.StudentID)
	assert.Nil(t, profile.Teacher)
}
