// Package memory implements repository.Storage with process-local tables.
// It never returns errors; the error results exist to satisfy the shared
// contract.
package memory

import (
	"context"
	"time"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
)

// Store holds one table per entity. Each Store is independent; create one
// per process (or per test) and inject it.
type Store struct {
	users              *table[models.User]
	students           *table[models.Student]
	teachers           *table[models.Teacher]
	branches           *table[models.Branch]
	sections           *table[models.Section]
	classes            *table[models.Class]
	subjects           *table[models.Subject]
	subjectAssignments *table[models.SubjectAssignment]
	attendance         *table[models.Attendance]
	assignments        *table[models.Assignment]
	submissions        *table[models.Submission]
	messages           *table[models.Message]
	announcements      *table[models.Announcement]
	resources          *table[models.Resource]
	studentDocuments   *table[models.StudentDocument]
	timetable          *table[models.TimetableEntry]
	tasks              *table[models.Task]

	now func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the timestamp source for generated fields.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		users:              newTable[models.User](models.User.Clone),
		students:           newTable[models.Student](models.Student.Clone),
		teachers:           newTable[models.Teacher](models.Teacher.Clone),
		branches:           newTable[models.Branch](models.Branch.Clone),
		sections:           newTable[models.Section](nil),
		classes:            newTable[models.Class](nil),
		subjects:           newTable[models.Subject](models.Subject.Clone),
		subjectAssignments: newTable[models.SubjectAssignment](nil),
		attendance:         newTable[models.Attendance](models.Attendance.Clone),
		assignments:        newTable[models.Assignment](models.Assignment.Clone),
		submissions:        newTable[models.Submission](models.Submission.Clone),
		messages:           newTable[models.Message](nil),
		announcements:      newTable[models.Announcement](models.Announcement.Clone),
		resources:          newTable[models.Resource](models.Resource.Clone),
		studentDocuments:   newTable[models.StudentDocument](nil),
		timetable:          newTable[models.TimetableEntry](models.TimetableEntry.Clone),
		tasks:              newTable[models.Task](models.Task.Clone),
		now:                func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ repository.Storage = (*Store)(nil)

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Users

func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	return s.users.get(id), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.users.first(func(u models.User) bool { return u.Email == email }), nil
}

func (s *Store) ListUsers(context.Context) ([]models.User, error) {
	return s.users.filter(nil), nil
}

func (s *Store) ListUsersByStatus(_ context.Context, status models.UserStatus) ([]models.User, error) {
	return s.users.filter(func(u models.User) bool { return u.Status == status }), nil
}

func (s *Store) CreateUser(_ context.Context, u models.User) (*models.User, error) {
	return s.users.insert(func(id int64) models.User {
		u.ID = id
		u.CreatedAt = s.now()
		return u
	}), nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	return s.users.update(id, patch.Apply), nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) (bool, error) {
	return s.users.delete(id), nil
}

func (s *Store) ApproveUser(ctx context.Context, id int64) (*models.User, error) {
	status := models.StatusApproved
	return s.UpdateUser(ctx, id, models.UserPatch{Status: &status})
}

func (s *Store) RejectUser(ctx context.Context, id int64) (*models.User, error) {
	status := models.StatusRejected
	return s.UpdateUser(ctx, id, models.UserPatch{Status: &status})
}

// Students

func (s *Store) GetStudent(_ context.Context, id int64) (*models.Student, error) {
	return s.students.get(id), nil
}

func (s *Store) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	return s.students.first(func(st models.Student) bool { return st.UserID == userID }), nil
}

func (s *Store) ListStudents(context.Context) ([]models.Student, error) {
	return s.students.filter(nil), nil
}

// ListStudentsByClass recomputes the roster from the class triple on every
// call, so it always reflects the current student and class records.
func (s *Store) ListStudentsByClass(_ context.Context, classID int64) ([]models.Student, error) {
	class := s.classes.get(classID)
	if class == nil {
		return []models.Student{}, nil
	}
	return s.students.filter(func(st models.Student) bool { return st.InClass(*class) }), nil
}

func (s *Store) CreateStudent(_ context.Context, st models.Student) (*models.Student, error) {
	if len(st.Documents) == 0 {
		st.Documents = models.EmptyDocuments()
	}
	return s.students.insert(func(id int64) models.Student {
		st.ID = id
		return st
	}), nil
}

func (s *Store) UpdateStudent(_ context.Context, id int64, patch models.StudentPatch) (*models.Student, error) {
	return s.students.update(id, patch.Apply), nil
}

func (s *Store) DeleteStudent(_ context.Context, id int64) (bool, error) {
	return s.students.delete(id), nil
}

// Teachers

func (s *Store) GetTeacher(_ context.Context, id int64) (*models.Teacher, error) {
	return s.teachers.get(id), nil
}

func (s *Store) GetTeacherByUserID(_ context.Context, userID int64) (*models.Teacher, error) {
	return s.teachers.first(func(t models.Teacher) bool { return t.UserID == userID }), nil
}

func (s *Store) ListTeachers(context.Context) ([]models.Teacher, error) {
	return s.teachers.filter(nil), nil
}

func (s *Store) CreateTeacher(_ context.Context, t models.Teacher) (*models.Teacher, error) {
	return s.teachers.insert(func(id int64) models.Teacher {
		t.ID = id
		return t
	}), nil
}

func (s *Store) UpdateTeacher(_ context.Context, id int64, patch models.TeacherPatch) (*models.Teacher, error) {
	return s.teachers.update(id, patch.Apply), nil
}

func (s *Store) DeleteTeacher(_ context.Context, id int64) (bool, error) {
	return s.teachers.delete(id), nil
}

// Branches, sections, classes and subjects

func (s *Store) GetBranch(_ context.Context, id int64) (*models.Branch, error) {
	return s.branches.get(id), nil
}

func (s *Store) ListBranches(context.Context) ([]models.Branch, error) {
	return s.branches.filter(nil), nil
}

func (s *Store) CreateBranch(_ context.Context, b models.Branch) (*models.Branch, error) {
	return s.branches.insert(func(id int64) models.Branch {
		b.ID = id
		return b
	}), nil
}

func (s *Store) UpdateBranch(_ context.Context, id int64, patch models.BranchPatch) (*models.Branch, error) {
	return s.branches.update(id, patch.Apply), nil
}

func (s *Store) DeleteBranch(_ context.Context, id int64) (bool, error) {
	return s.branches.delete(id), nil
}

func (s *Store) GetSection(_ context.Context, id int64) (*models.Section, error) {
	return s.sections.get(id), nil
}

func (s *Store) ListSections(context.Context) ([]models.Section, error) {
	return s.sections.filter(nil), nil
}

func (s *Store) CreateSection(_ context.Context, sec models.Section) (*models.Section, error) {
	return s.sections.insert(func(id int64) models.Section {
		sec.ID = id
		return sec
	}), nil
}

func (s *Store) UpdateSection(_ context.Context, id int64, patch models.SectionPatch) (*models.Section, error) {
	return s.sections.update(id, patch.Apply), nil
}

func (s *Store) DeleteSection(_ context.Context, id int64) (bool, error) {
	return s.sections.delete(id), nil
}

func (s *Store) GetClass(_ context.Context, id int64) (*models.Class, error) {
	return s.classes.get(id), nil
}

func (s *Store) ListClasses(context.Context) ([]models.Class, error) {
	return s.classes.filter(nil), nil
}

func (s *Store) ListClassesByBranch(_ context.Context, branchID int64) ([]models.Class, error) {
	return s.classes.filter(func(c models.Class) bool { return c.BranchID == branchID }), nil
}

func (s *Store) ListClassesByYear(_ context.Context, yearLevel int) ([]models.Class, error) {
	return s.classes.filter(func(c models.Class) bool { return c.YearLevel == yearLevel }), nil
}

func (s *Store) CreateClass(_ context.Context, c models.Class) (*models.Class, error) {
	return s.classes.insert(func(id int64) models.Class {
		c.ID = id
		return c
	}), nil
}

func (s *Store) UpdateClass(_ context.Context, id int64, patch models.ClassPatch) (*models.Class, error) {
	return s.classes.update(id, patch.Apply), nil
}

func (s *Store) DeleteClass(_ context.Context, id int64) (bool, error) {
	return s.classes.delete(id), nil
}

func (s *Store) GetSubject(_ context.Context, id int64) (*models.Subject, error) {
	return s.subjects.get(id), nil
}

func (s *Store) ListSubjects(context.Context) ([]models.Subject, error) {
	return s.subjects.filter(nil), nil
}

func (s *Store) CreateSubject(_ context.Context, sub models.Subject) (*models.Subject, error) {
	return s.subjects.insert(func(id int64) models.Subject {
		sub.ID = id
		return sub
	}), nil
}

func (s *Store) UpdateSubject(_ context.Context, id int64, patch models.SubjectPatch) (*models.Subject, error) {
	return s.subjects.update(id, patch.Apply), nil
}

func (s *Store) DeleteSubject(_ context.Context, id int64) (bool, error) {
	return s.subjects.delete(id), nil
}

// Subject assignments

func (s *Store) GetSubjectAssignment(_ context.Context, id int64) (*models.SubjectAssignment, error) {
	return s.subjectAssignments.get(id), nil
}

func (s *Store) ListSubjectAssignmentsByTeacher(_ context.Context, teacherID int64) ([]models.SubjectAssignment, error) {
	return s.subjectAssignments.filter(func(a models.SubjectAssignment) bool { return a.TeacherID == teacherID }), nil
}

func (s *Store) ListSubjectAssignmentsByClass(_ context.Context, classID int64) ([]models.SubjectAssignment, error) {
	return s.subjectAssignments.filter(func(a models.SubjectAssignment) bool { return a.ClassID == classID }), nil
}

func (s *Store) ListSubjectAssignmentsBySubject(_ context.Context, subjectID int64) ([]models.SubjectAssignment, error) {
	return s.subjectAssignments.filter(func(a models.SubjectAssignment) bool { return a.SubjectID == subjectID }), nil
}

func (s *Store) CreateSubjectAssignment(_ context.Context, sa models.SubjectAssignment) (*models.SubjectAssignment, error) {
	return s.subjectAssignments.insert(func(id int64) models.SubjectAssignment {
		sa.ID = id
		return sa
	}), nil
}

func (s *Store) UpdateSubjectAssignment(_ context.Context, id int64, patch models.SubjectAssignmentPatch) (*models.SubjectAssignment, error) {
	return s.subjectAssignments.update(id, patch.Apply), nil
}

func (s *Store) DeleteSubjectAssignment(_ context.Context, id int64) (bool, error) {
	return s.subjectAssignments.delete(id), nil
}

// Attendance

func (s *Store) GetAttendance(_ context.Context, id int64) (*models.Attendance, error) {
	return s.attendance.get(id), nil
}

func (s *Store) ListAttendanceByStudentAndSubject(_ context.Context, studentID, subjectAssignmentID int64) ([]models.Attendance, error) {
	return s.attendance.filter(func(a models.Attendance) bool {
		return a.StudentID == studentID && a.SubjectAssignmentID == subjectAssignmentID
	}), nil
}

func (s *Store) ListAttendanceByStudent(_ context.Context, studentID int64) ([]models.Attendance, error) {
	return s.attendance.filter(func(a models.Attendance) bool { return a.StudentID == studentID }), nil
}

func (s *Store) ListAttendanceBySubjectAssignment(_ context.Context, subjectAssignmentID int64) ([]models.Attendance, error) {
	return s.attendance.filter(func(a models.Attendance) bool { return a.SubjectAssignmentID == subjectAssignmentID }), nil
}

func (s *Store) ListAttendanceByDate(_ context.Context, date time.Time) ([]models.Attendance, error) {
	return s.attendance.filter(func(a models.Attendance) bool { return models.SameDay(a.Date, date) }), nil
}

func (s *Store) CreateAttendance(_ context.Context, a models.Attendance) (*models.Attendance, error) {
	return s.attendance.insert(func(id int64) models.Attendance {
		a.ID = id
		a.Date = a.Date.UTC()
		return a
	}), nil
}

func (s *Store) UpdateAttendance(_ context.Context, id int64, patch models.AttendancePatch) (*models.Attendance, error) {
	return s.attendance.update(id, patch.Apply), nil
}

func (s *Store) DeleteAttendance(_ context.Context, id int64) (bool, error) {
	return s.attendance.delete(id), nil
}

// Assignments and submissions

func (s *Store) GetAssignment(_ context.Context, id int64) (*models.Assignment, error) {
	return s.assignments.get(id), nil
}

func (s *Store) ListAssignmentsBySubjectAssignment(_ context.Context, subjectAssignmentID int64) ([]models.Assignment, error) {
	return s.assignments.filter(func(a models.Assignment) bool { return a.SubjectAssignmentID == subjectAssignmentID }), nil
}

func (s *Store) CreateAssignment(_ context.Context, a models.Assignment) (*models.Assignment, error) {
	return s.assignments.insert(func(id int64) models.Assignment {
		a.ID = id
		a.CreatedAt = s.now()
		return a
	}), nil
}

func (s *Store) UpdateAssignment(_ context.Context, id int64, patch models.AssignmentPatch) (*models.Assignment, error) {
	return s.assignments.update(id, patch.Apply), nil
}

func (s *Store) DeleteAssignment(_ context.Context, id int64) (bool, error) {
	return s.assignments.delete(id), nil
}

func (s *Store) GetSubmission(_ context.Context, id int64) (*models.Submission, error) {
	return s.submissions.get(id), nil
}

func (s *Store) ListSubmissionsByAssignment(_ context.Context, assignmentID int64) ([]models.Submission, error) {
	return s.submissions.filter(func(sub models.Submission) bool { return sub.AssignmentID == assignmentID }), nil
}

func (s *Store) ListSubmissionsByStudent(_ context.Context, studentID int64) ([]models.Submission, error) {
	return s.submissions.filter(func(sub models.Submission) bool { return sub.StudentID == studentID }), nil
}

func (s *Store) CreateSubmission(_ context.Context, sub models.Submission) (*models.Submission, error) {
	if sub.Status == "" {
		sub.Status = models.SubmissionSubmitted
	}
	return s.submissions.insert(func(id int64) models.Submission {
		sub.ID = id
		sub.SubmittedAt = s.now()
		return sub
	}), nil
}

func (s *Store) UpdateSubmission(_ context.Context, id int64, patch models.SubmissionPatch) (*models.Submission, error) {
	return s.submissions.update(id, patch.Apply), nil
}

func (s *Store) DeleteSubmission(_ context.Context, id int64) (bool, error) {
	return s.submissions.delete(id), nil
}

// Messages and announcements

func (s *Store) GetMessage(_ context.Context, id int64) (*models.Message, error) {
	return s.messages.get(id), nil
}

func (s *Store) ListMessagesBySender(_ context.Context, senderID int64) ([]models.Message, error) {
	return s.messages.filter(func(m models.Message) bool { return m.SenderID == senderID }), nil
}

func (s *Store) ListMessagesByReceiver(_ context.Context, receiverID int64) ([]models.Message, error) {
	return s.messages.filter(func(m models.Message) bool { return m.ReceiverID == receiverID }), nil
}

func (s *Store) CreateMessage(_ context.Context, m models.Message) (*models.Message, error) {
	return s.messages.insert(func(id int64) models.Message {
		m.ID = id
		m.SentAt = s.now()
		return m
	}), nil
}

func (s *Store) UpdateMessage(_ context.Context, id int64, patch models.MessagePatch) (*models.Message, error) {
	return s.messages.update(id, patch.Apply), nil
}

func (s *Store) DeleteMessage(_ context.Context, id int64) (bool, error) {
	return s.messages.delete(id), nil
}

func (s *Store) GetAnnouncement(_ context.Context, id int64) (*models.Announcement, error) {
	return s.announcements.get(id), nil
}

func (s *Store) ListAnnouncements(context.Context) ([]models.Announcement, error) {
	return s.announcements.filter(nil), nil
}

func (s *Store) ListAnnouncementsByUser(_ context.Context, userID int64) ([]models.Announcement, error) {
	return s.announcements.filter(func(a models.Announcement) bool { return a.UserID == userID }), nil
}

func (s *Store) ListAnnouncementsByRole(_ context.Context, role string) ([]models.Announcement, error) {
	return s.announcements.filter(func(a models.Announcement) bool {
		return a.TargetRole != nil && (*a.TargetRole == role || *a.TargetRole == models.AudienceAll)
	}), nil
}

func (s *Store) ListAnnouncementsByClass(_ context.Context, classID int64) ([]models.Announcement, error) {
	return s.announcements.filter(func(a models.Announcement) bool {
		return a.TargetClassID != nil && *a.TargetClassID == classID
	}), nil
}

func (s *Store) CreateAnnouncement(_ context.Context, a models.Announcement) (*models.Announcement, error) {
	return s.announcements.insert(func(id int64) models.Announcement {
		a.ID = id
		a.CreatedAt = s.now()
		return a
	}), nil
}

func (s *Store) UpdateAnnouncement(_ context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	return s.announcements.update(id, patch.Apply), nil
}

func (s *Store) DeleteAnnouncement(_ context.Context, id int64) (bool, error) {
	return s.announcements.delete(id), nil
}

// Resources and student documents

func (s *Store) GetResource(_ context.Context, id int64) (*models.Resource, error) {
	return s.resources.get(id), nil
}

func (s *Store) ListResources(context.Context) ([]models.Resource, error) {
	return s.resources.filter(nil), nil
}

func (s *Store) ListResourcesByUser(_ context.Context, userID int64) ([]models.Resource, error) {
	return s.resources.filter(func(r models.Resource) bool { return r.UploadedBy == userID }), nil
}

func (s *Store) ListResourcesBySubject(_ context.Context, subjectID int64) ([]models.Resource, error) {
	return s.resources.filter(func(r models.Resource) bool { return r.SubjectID != nil && *r.SubjectID == subjectID }), nil
}

func (s *Store) CreateResource(_ context.Context, r models.Resource) (*models.Resource, error) {
	return s.resources.insert(func(id int64) models.Resource {
		r.ID = id
		r.CreatedAt = s.now()
		return r
	}), nil
}

func (s *Store) UpdateResource(_ context.Context, id int64, patch models.ResourcePatch) (*models.Resource, error) {
	return s.resources.update(id, patch.Apply), nil
}

func (s *Store) DeleteResource(_ context.Context, id int64) (bool, error) {
	return s.resources.delete(id), nil
}

func (s *Store) GetStudentDocument(_ context.Context, id int64) (*models.StudentDocument, error) {
	return s.studentDocuments.get(id), nil
}

func (s *Store) ListStudentDocumentsByStudent(_ context.Context, studentID int64) ([]models.StudentDocument, error) {
	return s.studentDocuments.filter(func(d models.StudentDocument) bool { return d.StudentID == studentID }), nil
}

func (s *Store) CreateStudentDocument(_ context.Context, d models.StudentDocument) (*models.StudentDocument, error) {
	return s.studentDocuments.insert(func(id int64) models.StudentDocument {
		d.ID = id
		d.UploadedAt = s.now()
		return d
	}), nil
}

func (s *Store) UpdateStudentDocument(_ context.Context, id int64, patch models.StudentDocumentPatch) (*models.StudentDocument, error) {
	return s.studentDocuments.update(id, patch.Apply), nil
}

func (s *Store) DeleteStudentDocument(_ context.Context, id int64) (bool, error) {
	return s.studentDocuments.delete(id), nil
}

// Timetable and tasks

func (s *Store) GetTimetableEntry(_ context.Context, id int64) (*models.TimetableEntry, error) {
	return s.timetable.get(id), nil
}

func (s *Store) ListTimetableBySubjectAssignment(_ context.Context, subjectAssignmentID int64) ([]models.TimetableEntry, error) {
	return s.timetable.filter(func(e models.TimetableEntry) bool { return e.SubjectAssignmentID == subjectAssignmentID }), nil
}

func (s *Store) ListTimetableByDay(_ context.Context, day string) ([]models.TimetableEntry, error) {
	return s.timetable.filter(func(e models.TimetableEntry) bool { return e.Day == day }), nil
}

func (s *Store) CreateTimetableEntry(_ context.Context, e models.TimetableEntry) (*models.TimetableEntry, error) {
	return s.timetable.insert(func(id int64) models.TimetableEntry {
		e.ID = id
		return e
	}), nil
}

func (s *Store) UpdateTimetableEntry(_ context.Context, id int64, patch models.TimetableEntryPatch) (*models.TimetableEntry, error) {
	return s.timetable.update(id, patch.Apply), nil
}

func (s *Store) DeleteTimetableEntry(_ context.Context, id int64) (bool, error) {
	return s.timetable.delete(id), nil
}

func (s *Store) GetTask(_ context.Context, id int64) (*models.Task, error) {
	return s.tasks.get(id), nil
}

func (s *Store) ListTasksByUser(_ context.Context, userID int64) ([]models.Task, error) {
	return s.tasks.filter(func(t models.Task) bool { return t.UserID == userID }), nil
}

func (s *Store) CreateTask(_ context.Context, t models.Task) (*models.Task, error) {
	return s.tasks.insert(func(id int64) models.Task {
		t.ID = id
		t.CreatedAt = s.now()
		return t
	}), nil
}

func (s *Store) UpdateTask(_ context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	return s.tasks.update(id, patch.Apply), nil
}

func (s *Store) DeleteTask(_ context.Context, id int64) (bool, error) {
	return s.tasks.delete(id), nil
}
