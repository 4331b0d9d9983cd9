package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/models"
)

var userRowColumns = []string{"id", "email", "password", "first_name", "last_name", "role", "status", "profile_image", "created_at"}

func newMock(t *testing.T) (*DatabaseStorage, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	store := NewDatabaseStorage(sqlx.NewDb(db, "sqlmock"), nil)
	return store, mock, func() {
		db.Close()
	}
}

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func TestGetUserByEmail(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(1, "admin@edusync.com", "hash.salt", "Admin", "User", "admin", "approved", nil, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("admin@edusync.com").
		WillReturnRows(rows)

	user, err := store.GetUserByEmail(context.Background(), "admin@edusync.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, models.StatusApproved, user.Status)
	assert.Nil(t, user.ProfileImage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserAbsentReturnsNil(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	user, err := store.GetUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackendFailureIsConnectivity(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM users WHERE id = \\$1").WillReturnError(errors.New("connection refused"))

	user, err := store.GetUser(context.Background(), 1)
	assert.Nil(t, user)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectivity)
	assert.Contains(t, err.Error(), "get user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsersEmptyIsNonNil(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE status = $1 ORDER BY id")).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	users, err := store.ListUsersByStatus(context.Background(), models.StatusPending)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserReturnsGeneratedFields(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (email, password, first_name, last_name, role, status, profile_image, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING " + userColumns)).
		WithArgs("james@edusync.com", "hash.salt", "James", "Wilson", "student", "pending", nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(7, "james@edusync.com", "hash.salt", "James", "Wilson", "student", "pending", nil, now))

	user, err := store.CreateUser(context.Background(), models.User{
		Email: "james@edusync.com", Password: "hash.salt", FirstName: "James", LastName: "Wilson",
		Role: models.RoleStudent, Status: models.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserBuildsSetClause(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET first_name = $1, status = $2 WHERE id = $3 RETURNING " + userColumns)).
		WithArgs("Jim", "approved", int64(7)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(7, "james@edusync.com", "hash.salt", "Jim", "Wilson", "student", "approved", nil, now))

	name := "Jim"
	status := models.StatusApproved
	user, err := store.UpdateUser(context.Background(), 7, models.UserPatch{FirstName: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Jim", user.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithEmptyPatchIsLookup(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + branchColumns + " FROM branches WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(3, "Mechanical Engineering", "ME Branch"))

	branch, err := store.UpdateBranch(context.Background(), 3, models.BranchPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Engineering", branch.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnknownIDReturnsNil(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks SET completed = $1 WHERE id = $2 RETURNING " + taskColumns)).
		WithArgs(true, int64(99)).
		WillReturnError(sql.ErrNoRows)

	done := true
	task, err := store.UpdateTask(context.Background(), 99, models.TaskPatch{Completed: &done})
	require.NoError(t, err)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReportsRowsAffected(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subjects WHERE id = $1")).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subjects WHERE id = $1")).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := store.DeleteSubject(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.DeleteSubject(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStudentsByClassJoinsOnTriple(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "user_id", "student_id", "year_level", "branch_id", "section_id", "documents"}).
		AddRow(1, 3, "ST20230001", 1, 1, 1, []byte(`{}`)).
		AddRow(2, 4, "ST20230002", 1, 1, 1, []byte(`{}`))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN classes c ON s.year_level = c.year_level AND s.branch_id = c.branch_id AND s.section_id = c.section_id WHERE c.id = $1 ORDER BY s.id")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	students, err := store.ListStudentsByClass(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "ST20230002", students[1].StudentID)
	assert.Equal(t, "{}", students[0].Documents.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAttendanceByDateUsesUTCDayRange(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	day := time.Date(2023, 8, 7, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + attendanceColumns + " FROM attendance WHERE date >= $1 AND date < $2 ORDER BY id")).
		WithArgs(day, day.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "subject_assignment_id", "date", "status", "notes"}).
			AddRow(1, 1, 1, day, "present", nil))

	records, err := store.ListAttendanceByDate(context.Background(), time.Date(2023, 8, 7, 15, 4, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendancePresent, records[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAnnouncementsByRoleIncludesAll(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE target_role = $1 OR target_role = $2 ORDER BY id")).
		WithArgs("student", "all").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "content", "target_role", "target_class_id", "created_at"}))

	list, err := store.ListAnnouncementsByRole(context.Background(), "student")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObserverReceivesQueryLabels(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	obs := &recordingObserver{}
	store := NewDatabaseStorage(sqlx.NewDb(db, "sqlmock"), obs)

	mock.ExpectQuery("SELECT .* FROM sections ORDER BY id").WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Section A"))

	sections, err := store.ListSections(context.Background())
	require.NoError(t, err)
	assert.Len(t, sections, 1)
	assert.Equal(t, []string{"list sections"}, obs.labels)
}

func TestPatchAssignments(t *testing.T) {
	title := "Quiz"
	marks := 50
	sets, args := patchAssignments(models.AssignmentPatch{Title: &title, MaxMarks: &marks})
	assert.Equal(t, []string{"title = $1", "max_marks = $2"}, sets)
	assert.Equal(t, []interface{}{"Quiz", 50}, args)

	sets, args = patchAssignments(models.AssignmentPatch{})
	assert.Empty(t, sets)
	assert.Empty(t, args)

	sets, _ = patchAssignments(&models.UserPatch{Password: &title})
	assert.Equal(t, []string{"password = $1"}, sets)
}

func TestDatabaseSessionStore(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now().UTC()
	session := models.Session{ID: "sid", UserID: 1, Role: models.RoleAdmin, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions (id, user_id, role, created_at, expires_at)")).
		WithArgs("sid", int64(1), "admin", now, now.Add(time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + sessionColumns + " FROM sessions WHERE id = $1 AND expires_at > $2")).
		WithArgs("sid", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE user_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SaveSession(context.Background(), session))
	got, err := store.GetSession(context.Background(), "sid")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, store.DeleteUserSessions(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignmentMapsColumns(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now().UTC()
	due := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	desc, url, maxMarks := "Chapter 3", "https://files.test/ps.pdf", 50
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO assignments (title, description, subject_assignment_id, due_date, max_marks, resource_url, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING " + assignmentColumns)).
		WithArgs("Problem Set", &desc, int64(1), &due, &maxMarks, &url, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "subject_assignment_id", "due_date", "max_marks", "resource_url", "created_at"}).
			AddRow(5, "Problem Set", desc, 1, due, maxMarks, url, now))

	a, err := store.CreateAssignment(context.Background(), models.Assignment{
		Title: "Problem Set", Description: &desc, SubjectAssignmentID: 1, DueDate: &due, MaxMarks: &maxMarks, ResourceURL: &url,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.ID)
	require.NotNil(t, a.MaxMarks)
	assert.Equal(t, 50, *a.MaxMarks)
	assert.Equal(t, due, *a.DueDate)
	assert.Equal(t, now, a.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubmissionDefaultsStatus(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO submissions (assignment_id, student_id, submission_url, submitted_at, marks, feedback, status) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING " + submissionColumns)).
		WithArgs(int64(1), int64(2), nil, sqlmock.AnyArg(), nil, nil, models.SubmissionSubmitted).
		WillReturnRows(sqlmock.NewRows([]string{"id", "assignment_id", "student_id", "submission_url", "submitted_at", "marks", "feedback", "status"}).
			AddRow(9, 1, 2, nil, now, nil, nil, "submitted"))

	sub, err := store.CreateSubmission(context.Background(), models.Submission{AssignmentID: 1, StudentID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(9), sub.ID)
	assert.Equal(t, models.SubmissionSubmitted, sub.Status)
	assert.Nil(t, sub.Marks)
	assert.Equal(t, now, sub.SubmittedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateResourceMapsColumns(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now().UTC()
	kind := "pdf"
	subject := int64(3)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO resources (name, description, url, type, uploaded_by, subject_id, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING " + resourceColumns)).
		WithArgs("Notes", nil, "https://files.test/notes.pdf", &kind, int64(2), &subject, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "url", "type", "uploaded_by", "subject_id", "created_at"}).
			AddRow(4, "Notes", nil, "https://files.test/notes.pdf", kind, 2, subject, now))

	r, err := store.CreateResource(context.Background(), models.Resource{Name: "Notes", URL: "https://files.test/notes.pdf", Type: &kind, UploadedBy: 2, SubjectID: &subject})
	require.NoError(t, err)
	assert.Equal(t, int64(4), r.ID)
	assert.Nil(t, r.Description)
	require.NotNil(t, r.SubjectID)
	assert.Equal(t, subject, *r.SubjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStudentDocumentMapsColumns(t *testing.T) {
	store, mock, cleanup := newMock(t)
	defer cleanup()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO student_documents (student_id, name, type, url, uploaded_at) VALUES ($1, $2, $3, $4, $5) RETURNING " + studentDocumentColumns)).
		WithArgs(int64(1), "Transcript", "pdf", "https://files.test/t.pdf", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "name", "type", "url", "uploaded_at"}).
			AddRow(2, 1, "Transcript", "pdf", "https://files.test/t.pdf", now))

	doc, err := store.CreateStudentDocument(context.Background(), models.StudentDocument{StudentID: 1, Name: "Transcript", Type: "pdf", URL: "https://files.test/t.pdf"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.ID)
	assert.Equal(t, now, doc.UploadedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
