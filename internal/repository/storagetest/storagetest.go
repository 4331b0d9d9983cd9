// Package storagetest holds the behaviour every repository.Storage backend
// must share. Backends call Run from their own tests.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
)

// Factory returns a storage for one subtest.
type Factory func(t *testing.T) repository.Storage

// Run executes the contract suite against storages produced by newStorage.
func Run(t *testing.T, newStorage Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s repository.Storage)
	}{
		{"CreateThenGet", testCreateThenGet},
		{"EveryEntityRoundTrips", testEveryEntityRoundTrips},
		{"AbsentLookups", testAbsentLookups},
		{"IDsIncreaseAndAreNotReused", testIDsIncrease},
		{"EmptyPatchIsIdentity", testEmptyPatch},
		{"PatchMergesFields", testPatchMerges},
		{"UpdateUnknownID", testUpdateUnknown},
		{"DeleteOnce", testDeleteOnce},
		{"ListsAreNeverNil", testListsNonNil},
		{"ClassMembershipFollowsTriple", testClassMembership},
		{"ApprovalTransitions", testApproval},
		{"AttendanceByCalendarDate", testAttendanceByDate},
		{"AnnouncementsByRole", testAnnouncementsByRole},
		{"FilteredLookups", testFilteredLookups},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newStorage(t))
		})
	}
}

func uniqueEmail(prefix string) string {
	return prefix + "+" + uuid.NewString()[:8] + "@edusync.com"
}

func newUser(t *testing.T, s repository.Storage, role models.UserRole, status models.UserStatus) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.User{
		Email:     uniqueEmail(string(role)),
		Password:  "hash.salt",
		FirstName: "Test",
		LastName:  string(role),
		Role:      role,
		Status:    status,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func testCreateThenGet(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	u := newUser(t, s, models.RoleStudent, models.StatusPending)
	assert.Positive(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, models.StatusPending, got.Status)

	byEmail, err := s.GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	st, err := s.CreateStudent(ctx, models.Student{UserID: u.ID, StudentID: "ST1", YearLevel: 1, BranchID: 1, SectionID: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, st.Documents.String())

	byUser, err := s.GetStudentByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byUser)
	assert.Equal(t, st.ID, byUser.ID)
}

// entityCase creates one record of an entity type and exposes its lookup
// and delete by id.
type entityCase struct {
	name   string
	create func(ctx context.Context) (int64, interface{}, error)
	get    func(ctx context.Context, id int64) (interface{}, error)
	delete func(ctx context.Context, id int64) (bool, error)
}

// roundTrip adapts typed storage calls into an entityCase.
func roundTrip[T any](name string, id func(*T) int64,
	create func(context.Context) (*T, error),
	get func(context.Context, int64) (*T, error),
	del func(context.Context, int64) (bool, error),
) entityCase {
	return entityCase{
		name: name,
		create: func(ctx context.Context) (int64, interface{}, error) {
			v, err := create(ctx)
			if err != nil || v == nil {
				return 0, v, err
			}
			return id(v), v, nil
		},
		get: func(ctx context.Context, id int64) (interface{}, error) {
			return get(ctx, id)
		},
		delete: del,
	}
}

func testEveryEntityRoundTrips(t *testing.T, s repository.Storage) {
	str := func(v string) *string { return &v }
	num := func(v int) *int { return &v }
	id64 := func(v int64) *int64 { return &v }
	due := time.Date(2031, 9, 1, 0, 0, 0, 0, time.UTC)
	day := time.Date(2031, 8, 7, 0, 0, 0, 0, time.UTC)

	cases := []entityCase{
		roundTrip("user", func(v *models.User) int64 { return v.ID },
			func(ctx context.Context) (*models.User, error) {
				return s.CreateUser(ctx, models.User{Email: uniqueEmail("rt"), Password: "hash.salt", FirstName: "Round", LastName: "Trip", Role: models.RoleStudent, Status: models.StatusPending, ProfileImage: str("https://img.test/u.png")})
			}, s.GetUser, s.DeleteUser),
		roundTrip("student", func(v *models.Student) int64 { return v.ID },
			func(ctx context.Context) (*models.Student, error) {
				return s.CreateStudent(ctx, models.Student{UserID: 1, StudentID: "RT1", YearLevel: 2, BranchID: 3, SectionID: 4, Documents: types.JSONText(`{"id":"https://files.test/id.pdf"}`)})
			}, s.GetStudent, s.DeleteStudent),
		roundTrip("teacher", func(v *models.Teacher) int64 { return v.ID },
			func(ctx context.Context) (*models.Teacher, error) {
				return s.CreateTeacher(ctx, models.Teacher{UserID: 2, TeacherID: "TRT1", Specialization: str("Mathematics")})
			}, s.GetTeacher, s.DeleteTeacher),
		roundTrip("branch", func(v *models.Branch) int64 { return v.ID },
			func(ctx context.Context) (*models.Branch, error) {
				return s.CreateBranch(ctx, models.Branch{Name: "Civil", Description: str("Civil Engineering")})
			}, s.GetBranch, s.DeleteBranch),
		roundTrip("section", func(v *models.Section) int64 { return v.ID },
			func(ctx context.Context) (*models.Section, error) {
				return s.CreateSection(ctx, models.Section{Name: "Section C"})
			}, s.GetSection, s.DeleteSection),
		roundTrip("class", func(v *models.Class) int64 { return v.ID },
			func(ctx context.Context) (*models.Class, error) {
				return s.CreateClass(ctx, models.Class{YearLevel: 3, BranchID: 1, SectionID: 2, Name: "CE Year 3 - C"})
			}, s.GetClass, s.DeleteClass),
		roundTrip("subject", func(v *models.Subject) int64 { return v.ID },
			func(ctx context.Context) (*models.Subject, error) {
				return s.CreateSubject(ctx, models.Subject{Name: "Chemistry", Code: "CHM101", Description: str("Basic Chemistry")})
			}, s.GetSubject, s.DeleteSubject),
		roundTrip("subject assignment", func(v *models.SubjectAssignment) int64 { return v.ID },
			func(ctx context.Context) (*models.SubjectAssignment, error) {
				return s.CreateSubjectAssignment(ctx, models.SubjectAssignment{TeacherID: 1, SubjectID: 2, ClassID: 3})
			}, s.GetSubjectAssignment, s.DeleteSubjectAssignment),
		roundTrip("attendance", func(v *models.Attendance) int64 { return v.ID },
			func(ctx context.Context) (*models.Attendance, error) {
				return s.CreateAttendance(ctx, models.Attendance{StudentID: 1, SubjectAssignmentID: 1, Date: day, Status: models.AttendanceLate, Notes: str("bus")})
			}, s.GetAttendance, s.DeleteAttendance),
		roundTrip("assignment", func(v *models.Assignment) int64 { return v.ID },
			func(ctx context.Context) (*models.Assignment, error) {
				return s.CreateAssignment(ctx, models.Assignment{Title: "Problem Set", Description: str("Chapter 3"), SubjectAssignmentID: 1, DueDate: &due, MaxMarks: num(50), ResourceURL: str("https://files.test/ps.pdf")})
			}, s.GetAssignment, s.DeleteAssignment),
		roundTrip("submission", func(v *models.Submission) int64 { return v.ID },
			func(ctx context.Context) (*models.Submission, error) {
				return s.CreateSubmission(ctx, models.Submission{AssignmentID: 1, StudentID: 1, SubmissionURL: str("https://files.test/answer.pdf"), Marks: num(42), Feedback: str("Good"), Status: models.SubmissionMarked})
			}, s.GetSubmission, s.DeleteSubmission),
		roundTrip("message", func(v *models.Message) int64 { return v.ID },
			func(ctx context.Context) (*models.Message, error) {
				return s.CreateMessage(ctx, models.Message{SenderID: 1, ReceiverID: 2, Message: "See me after class"})
			}, s.GetMessage, s.DeleteMessage),
		roundTrip("announcement", func(v *models.Announcement) int64 { return v.ID },
			func(ctx context.Context) (*models.Announcement, error) {
				return s.CreateAnnouncement(ctx, models.Announcement{UserID: 1, Title: "Trip", Content: "Friday", TargetRole: str("student"), TargetClassID: id64(1)})
			}, s.GetAnnouncement, s.DeleteAnnouncement),
		roundTrip("resource", func(v *models.Resource) int64 { return v.ID },
			func(ctx context.Context) (*models.Resource, error) {
				return s.CreateResource(ctx, models.Resource{Name: "Notes", Description: str("Week 1"), URL: "https://files.test/notes.pdf", Type: str("pdf"), UploadedBy: 2, SubjectID: id64(1)})
			}, s.GetResource, s.DeleteResource),
		roundTrip("student document", func(v *models.StudentDocument) int64 { return v.ID },
			func(ctx context.Context) (*models.StudentDocument, error) {
				return s.CreateStudentDocument(ctx, models.StudentDocument{StudentID: 1, Name: "Transcript", Type: "pdf", URL: "https://files.test/transcript.pdf"})
			}, s.GetStudentDocument, s.DeleteStudentDocument),
		roundTrip("timetable entry", func(v *models.TimetableEntry) int64 { return v.ID },
			func(ctx context.Context) (*models.TimetableEntry, error) {
				return s.CreateTimetableEntry(ctx, models.TimetableEntry{SubjectAssignmentID: 1, Day: "friday", StartTime: "10:00:00", EndTime: "11:00:00", Room: str("Lab 2")})
			}, s.GetTimetableEntry, s.DeleteTimetableEntry),
		roundTrip("task", func(v *models.Task) int64 { return v.ID },
			func(ctx context.Context) (*models.Task, error) {
				return s.CreateTask(ctx, models.Task{UserID: 1, Title: "Grade papers", Description: str("Year 1"), DueDate: &due, DueTime: str("17:00:00")})
			}, s.GetTask, s.DeleteTask),
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			id, created, err := tc.create(ctx)
			require.NoError(t, err)
			require.Positive(t, id)

			got, err := tc.get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, created, got)

			ok, err := tc.delete(ctx, id)
			require.NoError(t, err)
			assert.True(t, ok)
			ok, err = tc.delete(ctx, id)
			require.NoError(t, err)
			assert.False(t, ok)

			gone, err := tc.get(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, gone)
		})
	}
}

func testAbsentLookups(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	const missing = int64(987654321)

	u, err := s.GetUser(ctx, missing)
	assert.NoError(t, err)
	assert.Nil(t, u)

	byEmail, err := s.GetUserByEmail(ctx, uniqueEmail("nobody"))
	assert.NoError(t, err)
	assert.Nil(t, byEmail)

	c, err := s.GetClass(ctx, missing)
	assert.NoError(t, err)
	assert.Nil(t, c)

	task, err := s.GetTask(ctx, missing)
	assert.NoError(t, err)
	assert.Nil(t, task)
}

func testIDsIncrease(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	var last int64
	for i := 0; i < 3; i++ {
		b, err := s.CreateBranch(ctx, models.Branch{Name: "Branch"})
		require.NoError(t, err)
		assert.Greater(t, b.ID, last)
		last = b.ID
	}

	ok, err := s.DeleteBranch(ctx, last)
	require.NoError(t, err)
	require.True(t, ok)

	b, err := s.CreateBranch(ctx, models.Branch{Name: "After delete"})
	require.NoError(t, err)
	assert.Greater(t, b.ID, last)
}

func testEmptyPatch(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	desc := "Basic Physics"
	sub, err := s.CreateSubject(ctx, models.Subject{Name: "Physics", Code: "PHY101", Description: &desc})
	require.NoError(t, err)

	same, err := s.UpdateSubject(ctx, sub.ID, models.SubjectPatch{})
	require.NoError(t, err)
	assert.Equal(t, sub, same)
}

func testPatchMerges(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	u := newUser(t, s, models.RoleTeacher, models.StatusApproved)
	task, err := s.CreateTask(ctx, models.Task{UserID: u.ID, Title: "Prepare Assessment Questions"})
	require.NoError(t, err)
	assert.False(t, task.Completed)

	done := true
	desc := "Mathematics and Physics"
	updated, err := s.UpdateTask(ctx, task.ID, models.TaskPatch{Completed: &done, Description: &desc})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Prepare Assessment Questions", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)

	again, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, again)
}

func testUpdateUnknown(t *testing.T, s repository.Storage) {
	name := "Section Z"
	got, err := s.UpdateSection(context.Background(), 987654321, models.SectionPatch{Name: &name})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func testDeleteOnce(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	sec, err := s.CreateSection(ctx, models.Section{Name: "Section A"})
	require.NoError(t, err)

	ok, err := s.DeleteSection(ctx, sec.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteSection(ctx, sec.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	gone, err := s.GetSection(ctx, sec.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func testListsNonNil(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	const missing = int64(987654321)

	students, err := s.ListStudentsByClass(ctx, missing)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	msgs, err := s.ListMessagesByReceiver(ctx, missing)
	require.NoError(t, err)
	assert.NotNil(t, msgs)

	tasks, err := s.ListTasksByUser(ctx, missing)
	require.NoError(t, err)
	assert.NotNil(t, tasks)

	docs, err := s.ListStudentDocumentsByStudent(ctx, missing)
	require.NoError(t, err)
	assert.NotNil(t, docs)
}

func testClassMembership(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	branch, err := s.CreateBranch(ctx, models.Branch{Name: "Computer Science Engineering"})
	require.NoError(t, err)
	secA, err := s.CreateSection(ctx, models.Section{Name: "Section A"})
	require.NoError(t, err)
	secB, err := s.CreateSection(ctx, models.Section{Name: "Section B"})
	require.NoError(t, err)

	class, err := s.CreateClass(ctx, models.Class{YearLevel: 1, BranchID: branch.ID, SectionID: secA.ID, Name: "CSE Year 1 - A"})
	require.NoError(t, err)

	mk := func(code string, year int, section int64) *models.Student {
		u := newUser(t, s, models.RoleStudent, models.StatusApproved)
		st, err := s.CreateStudent(ctx, models.Student{UserID: u.ID, StudentID: code, YearLevel: year, BranchID: branch.ID, SectionID: section})
		require.NoError(t, err)
		return st
	}
	inA := mk("ST1", 1, secA.ID)
	inA2 := mk("ST2", 1, secA.ID)
	mk("ST3", 1, secB.ID)
	mk("ST4", 2, secA.ID)

	roster, err := s.ListStudentsByClass(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, inA.ID, roster[0].ID)
	assert.Equal(t, inA2.ID, roster[1].ID)

	_, err = s.UpdateStudent(ctx, inA2.ID, models.StudentPatch{SectionID: &secB.ID})
	require.NoError(t, err)

	roster, err = s.ListStudentsByClass(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, inA.ID, roster[0].ID)

	year := 2
	_, err = s.UpdateClass(ctx, class.ID, models.ClassPatch{YearLevel: &year})
	require.NoError(t, err)
	roster, err = s.ListStudentsByClass(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "ST4", roster[0].StudentID)
}

func testApproval(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	u := newUser(t, s, models.RoleTeacher, models.StatusPending)

	pending, err := s.ListUsersByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Contains(t, ids(pending), u.ID)

	approved, err := s.ApproveUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, approved)
	assert.Equal(t, models.StatusApproved, approved.Status)

	rejected, err := s.RejectUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)

	missing, err := s.ApproveUser(ctx, 987654321)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func testAttendanceByDate(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	day := time.Date(2031, 8, 7, 0, 0, 0, 0, time.UTC)
	morning, err := s.CreateAttendance(ctx, models.Attendance{StudentID: 1, SubjectAssignmentID: 1, Date: day.Add(9 * time.Hour), Status: models.AttendancePresent})
	require.NoError(t, err)
	_, err = s.CreateAttendance(ctx, models.Attendance{StudentID: 2, SubjectAssignmentID: 1, Date: day.AddDate(0, 0, 1), Status: models.AttendanceAbsent})
	require.NoError(t, err)

	records, err := s.ListAttendanceByDate(ctx, day.Add(20*time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, morning.ID, records[0].ID)

	byPair, err := s.ListAttendanceByStudentAndSubject(ctx, 1, 1)
	require.NoError(t, err)
	assert.Contains(t, attendanceIDs(byPair), morning.ID)
}

func testAnnouncementsByRole(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	author := newUser(t, s, models.RoleAdmin, models.StatusApproved)
	role := func(r string) *string { return &r }

	forStudents, err := s.CreateAnnouncement(ctx, models.Announcement{UserID: author.ID, Title: "Exams", Content: "Soon", TargetRole: role("student")})
	require.NoError(t, err)
	forAll, err := s.CreateAnnouncement(ctx, models.Announcement{UserID: author.ID, Title: "Holiday", Content: "Monday", TargetRole: role(models.AudienceAll)})
	require.NoError(t, err)
	forTeachers, err := s.CreateAnnouncement(ctx, models.Announcement{UserID: author.ID, Title: "Staff", Content: "Meeting", TargetRole: role("teacher")})
	require.NoError(t, err)

	list, err := s.ListAnnouncementsByRole(ctx, "student")
	require.NoError(t, err)
	got := announcementIDs(list)
	assert.Contains(t, got, forStudents.ID)
	assert.Contains(t, got, forAll.ID)
	assert.NotContains(t, got, forTeachers.ID)

	byUser, err := s.ListAnnouncementsByUser(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 3)
}

func testFilteredLookups(t *testing.T, s repository.Storage) {
	ctx := context.Background()
	teacherUser := newUser(t, s, models.RoleTeacher, models.StatusApproved)
	teacher, err := s.CreateTeacher(ctx, models.Teacher{UserID: teacherUser.ID, TeacherID: "TCH001"})
	require.NoError(t, err)

	byUser, err := s.GetTeacherByUserID(ctx, teacherUser.ID)
	require.NoError(t, err)
	require.NotNil(t, byUser)
	assert.Equal(t, teacher.ID, byUser.ID)

	sa, err := s.CreateSubjectAssignment(ctx, models.SubjectAssignment{TeacherID: teacher.ID, SubjectID: 11, ClassID: 12})
	require.NoError(t, err)
	list, err := s.ListSubjectAssignmentsByTeacher(ctx, teacher.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sa.ID, list[0].ID)

	room := "Room 101"
	entry, err := s.CreateTimetableEntry(ctx, models.TimetableEntry{SubjectAssignmentID: sa.ID, Day: "monday", StartTime: "08:00:00", EndTime: "09:30:00", Room: &room})
	require.NoError(t, err)
	slots, err := s.ListTimetableBySubjectAssignment(ctx, sa.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, entry.ID, slots[0].ID)
	assert.Equal(t, "08:00:00", slots[0].StartTime)

	docsPayload := types.JSONText(`{"transcript":"https://files.test/t.pdf"}`)
	u := newUser(t, s, models.RoleStudent, models.StatusApproved)
	st, err := s.CreateStudent(ctx, models.Student{UserID: u.ID, StudentID: "ST9", YearLevel: 1, BranchID: 1, SectionID: 1, Documents: docsPayload})
	require.NoError(t, err)
	assert.JSONEq(t, docsPayload.String(), st.Documents.String())

	msg, err := s.CreateMessage(ctx, models.Message{SenderID: teacherUser.ID, ReceiverID: u.ID, Message: "Hello"})
	require.NoError(t, err)
	assert.False(t, msg.Read)
	inbox, err := s.ListMessagesByReceiver(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	sent, err := s.ListMessagesBySender(ctx, teacherUser.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
}

func ids(users []models.User) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func attendanceIDs(list []models.Attendance) []int64 {
	out := make([]int64, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func announcementIDs(list []models.Announcement) []int64 {
	out := make([]int64, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}
