// Package seed loads the demo school used in development and tests.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	"github.com/noah-isme/edusync-api/pkg/password"
)

// AdminEmail identifies the seeded admin. Its presence marks the data set as loaded.
const AdminEmail = "admin@edusync.com"

const (
	adminPassword = "admin123"
	demoPassword  = "password123"
)

// Run loads the demo data set unless the admin account already exists. It
// reports whether anything was written.
func Run(ctx context.Context, store repository.Storage, hasher password.Hasher, logger *zap.Logger) (bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	existing, err := store.GetUserByEmail(ctx, AdminEmail)
	if err != nil {
		return false, fmt.Errorf("check seed admin: %w", err)
	}
	if existing != nil {
		logger.Info("demo data already present", zap.String("admin", AdminEmail))
		return false, nil
	}

	s := &seeder{ctx: ctx, store: store, hasher: hasher}
	s.load()
	if s.err != nil {
		return false, fmt.Errorf("seed demo data: %w", s.err)
	}
	logger.Info("demo data loaded", zap.String("admin", AdminEmail), zap.Int("users", s.users))
	return true, nil
}

// seeder keeps the first error and turns every later step into a no-op.
type seeder struct {
	ctx    context.Context
	store  repository.Storage
	hasher password.Hasher
	err    error
	users  int
}

func (s *seeder) load() {
	cse := s.branch("Computer Science Engineering", "CSE Branch")
	s.branch("Electronics & Communication Engineering", "ECE Branch")
	s.branch("Mechanical Engineering", "ME Branch")

	sectionA := s.section("Section A")
	s.section("Section B")

	class1A := s.class(models.Class{YearLevel: 1, BranchID: cse, SectionID: sectionA, Name: "CSE Year 1 - A"})
	s.class(models.Class{YearLevel: 2, BranchID: cse, SectionID: sectionA, Name: "CSE Year 2 - A"})

	math := s.subject("Mathematics", "MATH101", "Fundamental Mathematics")
	physics := s.subject("Physics", "PHY101", "Basic Physics")
	cs := s.subject("Computer Science", "CS101", "Introduction to Computer Science")

	s.user(AdminEmail, adminPassword, "Admin", "User", models.RoleAdmin, "0D8ABC")
	teacherUser := s.user("teacher@edusync.com", demoPassword, "Maureen", "Smith", models.RoleTeacher, "4F46E5")
	teacher := s.teacher(teacherUser, "TCH001", "Mathematics")

	var students []int64
	for i, u := range []struct{ email, first, last, color string }{
		{"james@edusync.com", "James", "Wilson", "22C55E"},
		{"brandy@edusync.com", "Brandy", "Johnson", "EAB308"},
		{"khloe@edusync.com", "Khloe", "Davis", "EF4444"},
	} {
		userID := s.user(u.email, demoPassword, u.first, u.last, models.RoleStudent, u.color)
		students = append(students, s.student(models.Student{
			UserID:    userID,
			StudentID: fmt.Sprintf("ST2023%04d", i+1),
			YearLevel: 1,
			BranchID:  cse,
			SectionID: sectionA,
		}))
	}

	mathSA := s.subjectAssignment(teacher, math, class1A)
	physicsSA := s.subjectAssignment(teacher, physics, class1A)
	csSA := s.subjectAssignment(teacher, cs, class1A)

	s.timetable(mathSA, "08:00:00", "09:30:00", "Room 101")
	s.timetable(physicsSA, "10:00:00", "11:30:00", "Room 102")
	s.timetable(csSA, "11:00:00", "12:30:00", "Lab 2")

	mathHW := s.assignment("Mathematics Assignment 1", mathSA, date(2023, 8, 15))
	s.assignment("Physics Assignment 1", physicsSA, date(2023, 8, 20))

	for i, marks := range []int{70, 48, 21} {
		if i < len(students) {
			s.submission(mathHW, students[i], fmt.Sprintf("https://example.com/submission%d", i+1), marks)
		}
	}

	for i, status := range []models.AttendanceStatus{models.AttendancePresent, models.AttendancePresent, models.AttendanceAbsent} {
		if i < len(students) {
			s.attendance(students[i], mathSA, date(2023, 8, 7), status)
		}
	}

	s.task(teacherUser, "Prepare Assessment Questions", "Set assessment questions for Mathematics and Physics assessment coming up on the 20th.", date(2023, 8, 10), "10:00:00")
	s.task(teacherUser, "Have a meeting with my Mentees", "Gather my mentees together and have a meeting with them by 12pm.", date(2023, 8, 7), "11:00:00")
	s.task(teacherUser, "Submit Report and Comments", "Finish up my reports and comments for the term and submit.", date(2023, 8, 7), "13:00:00")
	s.task(teacherUser, "Speak to the Maureen's Parent", "Call and schedule a meeting with Maureen's Parents.", date(2023, 8, 7), "15:00:00")
}

func (s *seeder) branch(name, description string) int64 {
	if s.err != nil {
		return 0
	}
	b, err := s.store.CreateBranch(s.ctx, models.Branch{Name: name, Description: &description})
	if s.fail(err) {
		return 0
	}
	return b.ID
}

func (s *seeder) section(name string) int64 {
	if s.err != nil {
		return 0
	}
	sec, err := s.store.CreateSection(s.ctx, models.Section{Name: name})
	if s.fail(err) {
		return 0
	}
	return sec.ID
}

func (s *seeder) class(c models.Class) int64 {
	if s.err != nil {
		return 0
	}
	created, err := s.store.CreateClass(s.ctx, c)
	if s.fail(err) {
		return 0
	}
	return created.ID
}

func (s *seeder) subject(name, code, description string) int64 {
	if s.err != nil {
		return 0
	}
	sub, err := s.store.CreateSubject(s.ctx, models.Subject{Name: name, Code: code, Description: &description})
	if s.fail(err) {
		return 0
	}
	return sub.ID
}

func (s *seeder) user(email, plain, first, last string, role models.UserRole, color string) int64 {
	if s.err != nil {
		return 0
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		s.err = fmt.Errorf("hash password for %s: %w", email, err)
		return 0
	}
	image := fmt.Sprintf("https://ui-avatars.com/api/?name=%s+%s&background=%s&color=fff", first, last, color)
	u, err := s.store.CreateUser(s.ctx, models.User{
		Email:        email,
		Password:     hash,
		FirstName:    first,
		LastName:     last,
		Role:         role,
		Status:       models.StatusApproved,
		ProfileImage: &image,
	})
	if s.fail(err) {
		return 0
	}
	s.users++
	return u.ID
}

func (s *seeder) teacher(userID int64, code, specialization string) int64 {
	if s.err != nil {
		return 0
	}
	t, err := s.store.CreateTeacher(s.ctx, models.Teacher{UserID: userID, TeacherID: code, Specialization: &specialization})
	if s.fail(err) {
		return 0
	}
	return t.ID
}

func (s *seeder) student(st models.Student) int64 {
	if s.err != nil {
		return 0
	}
	st.Documents = models.EmptyDocuments()
	created, err := s.store.CreateStudent(s.ctx, st)
	if s.fail(err) {
		return 0
	}
	return created.ID
}

func (s *seeder) subjectAssignment(teacherID, subjectID, classID int64) int64 {
	if s.err != nil {
		return 0
	}
	sa, err := s.store.CreateSubjectAssignment(s.ctx, models.SubjectAssignment{TeacherID: teacherID, SubjectID: subjectID, ClassID: classID})
	if s.fail(err) {
		return 0
	}
	return sa.ID
}

func (s *seeder) timetable(saID int64, start, end, room string) {
	if s.err != nil {
		return
	}
	_, s.err = s.store.CreateTimetableEntry(s.ctx, models.TimetableEntry{
		SubjectAssignmentID: saID,
		Day:                 "monday",
		StartTime:           start,
		EndTime:             end,
		Room:                &room,
	})
}

func (s *seeder) assignment(title string, saID int64, due time.Time) int64 {
	if s.err != nil {
		return 0
	}
	description := "Solve the given problems"
	maxMarks := 100
	a, err := s.store.CreateAssignment(s.ctx, models.Assignment{
		Title:               title,
		Description:         &description,
		SubjectAssignmentID: saID,
		DueDate:             &due,
		MaxMarks:            &maxMarks,
	})
	if s.fail(err) {
		return 0
	}
	return a.ID
}

func (s *seeder) submission(assignmentID, studentID int64, url string, marks int) {
	if s.err != nil {
		return
	}
	_, s.err = s.store.CreateSubmission(s.ctx, models.Submission{
		AssignmentID:  assignmentID,
		StudentID:     studentID,
		SubmissionURL: &url,
		Marks:         &marks,
		Status:        models.SubmissionMarked,
	})
}

func (s *seeder) attendance(studentID, saID int64, day time.Time, status models.AttendanceStatus) {
	if s.err != nil {
		return
	}
	_, s.err = s.store.CreateAttendance(s.ctx, models.Attendance{
		StudentID:           studentID,
		SubjectAssignmentID: saID,
		Date:                day,
		Status:              status,
	})
}

func (s *seeder) task(userID int64, title, description string, due time.Time, dueTime string) {
	if s.err != nil {
		return
	}
	_, s.err = s.store.CreateTask(s.ctx, models.Task{
		UserID:      userID,
		Title:       title,
		Description: &description,
		DueDate:     &due,
		DueTime:     &dueTime,
	})
}

func (s *seeder) fail(err error) bool {
	if err != nil {
		s.err = err
	}
	return s.err != nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
