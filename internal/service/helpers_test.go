package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	"github.com/noah-isme/edusync-api/internal/repository/memory"
)

// plainHasher is a fast reversible hasher that counts Verify calls.
type plainHasher struct {
	verifies atomic.Int32
}

func (h *plainHasher) Hash(plain string) (string, error) { return "plain$" + plain, nil }

func (h *plainHasher) Verify(stored, plain string) (bool, error) {
	h.verifies.Add(1)
	if !strings.HasPrefix(stored, "plain$") {
		return false, fmt.Errorf("malformed hash")
	}
	return stored == "plain$"+plain, nil
}

// offlineStore fails every user lookup as an unreachable backend would.
type offlineStore struct {
	*memory.Store
}

func (offlineStore) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, fmt.Errorf("get user: %w", repository.ErrConnectivity)
}

func (offlineStore) ListAttendanceByStudent(context.Context, int64) ([]models.Attendance, error) {
	return nil, fmt.Errorf("list attendance: %w", repository.ErrConnectivity)
}

func principalFor(u models.User) *models.Principal {
	return &models.Principal{User: u, SessionID: "test"}
}

// school is a small fixture: one class with two students taught one subject.
type school struct {
	store    *memory.Store
	admin    models.User
	teacher  models.User
	students []models.User
	profiles []models.Student
	class    models.Class
	sa       models.SubjectAssignment
}

func newSchool(t *testing.T) *school {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	s := &school{store: store}

	mkUser := func(email string, role models.UserRole) models.User {
		u, err := store.CreateUser(ctx, models.User{
			Email:     email,
			Password:  "plain$secret",
			FirstName: strings.Split(email, "@")[0],
			LastName:  "Test",
			Role:      role,
			Status:    models.StatusApproved,
		})
		require.NoError(t, err)
		return *u
	}

	s.admin = mkUser("admin@school.test", models.RoleAdmin)
	s.teacher = mkUser("teacher@school.test", models.RoleTeacher)

	branch, err := store.CreateBranch(ctx, models.Branch{Name: "CSE"})
	require.NoError(t, err)
	section, err := store.CreateSection(ctx, models.Section{Name: "A"})
	require.NoError(t, err)
	class, err := store.CreateClass(ctx, models.Class{YearLevel: 1, BranchID: branch.ID, SectionID: section.ID, Name: "CSE 1 A"})
	require.NoError(t, err)
	s.class = *class

	for i, email := range []string{"ann@school.test", "bob@school.test"} {
		u := mkUser(email, models.RoleStudent)
		st, err := store.CreateStudent(ctx, models.Student{
			UserID:    u.ID,
			StudentID: fmt.Sprintf("ST%03d", i+1),
			YearLevel: 1,
			BranchID:  branch.ID,
			SectionID: section.ID,
		})
		require.NoError(t, err)
		s.students = append(s.students, u)
		s.profiles = append(s.profiles, *st)
	}

	teacherProfile, err := store.CreateTeacher(ctx, models.Teacher{UserID: s.teacher.ID, TeacherID: "T1"})
	require.NoError(t, err)
	subject, err := store.CreateSubject(ctx, models.Subject{Name: "Maths", Code: "M1"})
	require.NoError(t, err)
	sa, err := store.CreateSubjectAssignment(ctx, models.SubjectAssignment{TeacherID: teacherProfile.ID, SubjectID: subject.ID, ClassID: class.ID})
	require.NoError(t, err)
	s.sa = *sa
	return s
}

func ptr[T any](v T) *T { return &v }
