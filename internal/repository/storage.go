package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/edusync-api/internal/models"
)

// ErrConnectivity marks failures of the storage backend itself, as opposed to
// absent records. Memory storage never returns it.
var ErrConnectivity = errors.New("storage backend unavailable")

func backendErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrConnectivity, err)
}

// Lookups return (nil, nil) for an absent record. Lists never return nil
// slices and are ordered by id. Update returns (nil, nil) for an unknown id
// and the unchanged record for an empty patch. Delete reports whether a
// record was removed.

type UserStore interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	ApproveUser(ctx context.Context, id int64) (*models.User, error)
	RejectUser(ctx context.Context, id int64) (*models.User, error)
}

type StudentStore interface {
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListStudentsByClass(ctx context.Context, classID int64) ([]models.Student, error)
	CreateStudent(ctx context.Context, student models.Student) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, patch models.StudentPatch) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) (bool, error)
}

type TeacherStore interface {
	GetTeacher(ctx context.Context, id int64) (*models.Teacher, error)
	GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
	CreateTeacher(ctx context.Context, teacher models.Teacher) (*models.Teacher, error)
	UpdateTeacher(ctx context.Context, id int64, patch models.TeacherPatch) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, id int64) (bool, error)
}

type BranchStore interface {
	GetBranch(ctx context.Context, id int64) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
	CreateBranch(ctx context.Context, branch models.Branch) (*models.Branch, error)
	UpdateBranch(ctx context.Context, id int64, patch models.BranchPatch) (*models.Branch, error)
	DeleteBranch(ctx context.Context, id int64) (bool, error)
}

type SectionStore interface {
	GetSection(ctx context.Context, id int64) (*models.Section, error)
	ListSections(ctx context.Context) ([]models.Section, error)
	CreateSection(ctx context.Context, section models.Section) (*models.Section, error)
	UpdateSection(ctx context.Context, id int64, patch models.SectionPatch) (*models.Section, error)
	DeleteSection(ctx context.Context, id int64) (bool, error)
}

type ClassStore interface {
	GetClass(ctx context.Context, id int64) (*models.Class, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListClassesByBranch(ctx context.Context, branchID int64) ([]models.Class, error)
	ListClassesByYear(ctx context.Context, yearLevel int) ([]models.Class, error)
	CreateClass(ctx context.Context, class models.Class) (*models.Class, error)
	UpdateClass(ctx context.Context, id int64, patch models.ClassPatch) (*models.Class, error)
	DeleteClass(ctx context.Context, id int64) (bool, error)
}

type SubjectStore interface {
	GetSubject(ctx context.Context, id int64) (*models.Subject, error)
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	CreateSubject(ctx context.Context, subject models.Subject) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id int64, patch models.SubjectPatch) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) (bool, error)
}

type SubjectAssignmentStore interface {
	GetSubjectAssignment(ctx context.Context, id int64) (*models.SubjectAssignment, error)
	ListSubjectAssignmentsByTeacher(ctx context.Context, teacherID int64) ([]models.SubjectAssignment, error)
	ListSubjectAssignmentsByClass(ctx context.Context, classID int64) ([]models.SubjectAssignment, error)
	ListSubjectAssignmentsBySubject(ctx context.Context, subjectID int64) ([]models.SubjectAssignment, error)
	CreateSubjectAssignment(ctx context.Context, sa models.SubjectAssignment) (*models.SubjectAssignment, error)
	UpdateSubjectAssignment(ctx context.Context, id int64, patch models.SubjectAssignmentPatch) (*models.SubjectAssignment, error)
	DeleteSubjectAssignment(ctx context.Context, id int64) (bool, error)
}

type AttendanceStore interface {
	GetAttendance(ctx context.Context, id int64) (*models.Attendance, error)
	ListAttendanceByStudentAndSubject(ctx context.Context, studentID, subjectAssignmentID int64) ([]models.Attendance, error)
	ListAttendanceByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error)
	ListAttendanceBySubjectAssignment(ctx context.Context, subjectAssignmentID int64) ([]models.Attendance, error)
	ListAttendanceByDate(ctx context.Context, date time.Time) ([]models.Attendance, error)
	CreateAttendance(ctx context.Context, a models.Attendance) (*models.Attendance, error)
	UpdateAttendance(ctx context.Context, id int64, patch models.AttendancePatch) (*models.Attendance, error)
	DeleteAttendance(ctx context.Context, id int64) (bool, error)
}

type AssignmentStore interface {
	GetAssignment(ctx context.Context, id int64) (*models.Assignment, error)
	ListAssignmentsBySubjectAssignment(ctx context.Context, subjectAssignmentID int64) ([]models.Assignment, error)
	CreateAssignment(ctx context.Context, a models.Assignment) (*models.Assignment, error)
	UpdateAssignment(ctx context.Context, id int64, patch models.AssignmentPatch) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, id int64) (bool, error)
}

type SubmissionStore interface {
	GetSubmission(ctx context.Context, id int64) (*models.Submission, error)
	ListSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error)
	ListSubmissionsByStudent(ctx context.Context, studentID int64) ([]models.Submission, error)
	CreateSubmission(ctx context.Context, s models.Submission) (*models.Submission, error)
	UpdateSubmission(ctx context.Context, id int64, patch models.SubmissionPatch) (*models.Submission, error)
	DeleteSubmission(ctx context.Context, id int64) (bool, error)
}

type MessageStore interface {
	GetMessage(ctx context.Context, id int64) (*models.Message, error)
	ListMessagesBySender(ctx context.Context, senderID int64) ([]models.Message, error)
	ListMessagesByReceiver(ctx context.Context, receiverID int64) ([]models.Message, error)
	CreateMessage(ctx context.Context, m models.Message) (*models.Message, error)
	UpdateMessage(ctx context.Context, id int64, patch models.MessagePatch) (*models.Message, error)
	DeleteMessage(ctx context.Context, id int64) (bool, error)
}

type AnnouncementStore interface {
	GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	ListAnnouncementsByUser(ctx context.Context, userID int64) ([]models.Announcement, error)
	// ListAnnouncementsByRole includes announcements targeted at every role.
	ListAnnouncementsByRole(ctx context.Context, role string) ([]models.Announcement, error)
	ListAnnouncementsByClass(ctx context.Context, classID int64) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, a models.Announcement) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) (bool, error)
}

type ResourceStore interface {
	GetResource(ctx context.Context, id int64) (*models.Resource, error)
	ListResources(ctx context.Context) ([]models.Resource, error)
	ListResourcesByUser(ctx context.Context, userID int64) ([]models.Resource, error)
	ListResourcesBySubject(ctx context.Context, subjectID int64) ([]models.Resource, error)
	CreateResource(ctx context.Context, r models.Resource) (*models.Resource, error)
	UpdateResource(ctx context.Context, id int64, patch models.ResourcePatch) (*models.Resource, error)
	DeleteResource(ctx context.Context, id int64) (bool, error)
}

type StudentDocumentStore interface {
	GetStudentDocument(ctx context.Context, id int64) (*models.StudentDocument, error)
	ListStudentDocumentsByStudent(ctx context.Context, studentID int64) ([]models.StudentDocument, error)
	CreateStudentDocument(ctx context.Context, d models.StudentDocument) (*models.StudentDocument, error)
	UpdateStudentDocument(ctx context.Context, id int64, patch models.StudentDocumentPatch) (*models.StudentDocument, error)
	DeleteStudentDocument(ctx context.Context, id int64) (bool, error)
}

type TimetableStore interface {
	GetTimetableEntry(ctx context.Context, id int64) (*models.TimetableEntry, error)
	ListTimetableBySubjectAssignment(ctx context.Context, subjectAssignmentID int64) ([]models.TimetableEntry, error)
	ListTimetableByDay(ctx context.Context, day string) ([]models.TimetableEntry, error)
	CreateTimetableEntry(ctx context.Context, e models.TimetableEntry) (*models.TimetableEntry, error)
	UpdateTimetableEntry(ctx context.Context, id int64, patch models.TimetableEntryPatch) (*models.TimetableEntry, error)
	DeleteTimetableEntry(ctx context.Context, id int64) (bool, error)
}

type TaskStore interface {
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	ListTasksByUser(ctx context.Context, userID int64) ([]models.Task, error)
	CreateTask(ctx context.Context, t models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

// Storage is the full persistence contract shared by the memory and
// PostgreSQL backends.
type Storage interface {
	UserStore
	StudentStore
	TeacherStore
	BranchStore
	SectionStore
	ClassStore
	SubjectStore
	SubjectAssignmentStore
	AttendanceStore
	AssignmentStore
	SubmissionStore
	MessageStore
	AnnouncementStore
	ResourceStore
	StudentDocumentStore
	TimetableStore
	TaskStore

	Ping(ctx context.Context) error
}

// SessionStore keeps server-side session records.
type SessionStore interface {
	SaveSession(ctx context.Context, session models.Session) error
	// GetSession returns (nil, nil) for unknown or expired sessions.
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID int64) error
}
