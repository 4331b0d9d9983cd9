package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository/memory"
	"github.com/noah-isme/edusync-api/pkg/password"
)

func TestRunLoadsDemoSchool(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	hasher := password.NewBcrypt(4)

	loaded, err := Run(ctx, store, hasher, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, loaded)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	admin, err := store.GetUserByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, models.StatusApproved, admin.Status)
	ok, err := hasher.Verify(admin.Password, "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	branches, err := store.ListBranches(ctx)
	require.NoError(t, err)
	assert.Len(t, branches, 3)

	classes, err := store.ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 2)

	roster, err := store.ListStudentsByClass(ctx, classes[0].ID)
	require.NoError(t, err)
	assert.Len(t, roster, 3)

	timetable, err := store.ListTimetableByDay(ctx, "monday")
	require.NoError(t, err)
	assert.Len(t, timetable, 3)

	submissions, err := store.ListSubmissionsByAssignment(ctx, 1)
	require.NoError(t, err)
	require.Len(t, submissions, 3)
	assert.Equal(t, 70, *submissions[0].Marks)
	assert.Equal(t, models.SubmissionMarked, submissions[0].Status)

	attendance, err := store.ListAttendanceByDate(ctx, time.Date(2023, 8, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, attendance, 3)

	teacher, err := store.GetUserByEmail(ctx, "teacher@edusync.com")
	require.NoError(t, err)
	require.NotNil(t, teacher)
	tasks, err := store.ListTasksByUser(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	hasher := password.NewBcrypt(4)

	_, err := Run(ctx, store, hasher, nil)
	require.NoError(t, err)

	loaded, err := Run(ctx, store, hasher, nil)
	require.NoError(t, err)
	assert.False(t, loaded)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)
}
