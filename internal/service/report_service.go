package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/dto"
	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
	"github.com/noah-isme/edusync-api/pkg/export"
)

const reportCachePattern = "reports:*"

// reportInvalidator is notified after writes that change report inputs.
type reportInvalidator interface {
	Invalidate(ctx context.Context)
}

func invalidate(ctx context.Context, r reportInvalidator) {
	if r != nil {
		r.Invalidate(ctx)
	}
}

type reportStore interface {
	repository.AttendanceStore
	repository.AssignmentStore
	repository.SubmissionStore
	GetClass(ctx context.Context, id int64) (*models.Class, error)
	ListStudentsByClass(ctx context.Context, classID int64) ([]models.Student, error)
	GetSubjectAssignment(ctx context.Context, id int64) (*models.SubjectAssignment, error)
	ListSubjectAssignmentsByClass(ctx context.Context, classID int64) ([]models.SubjectAssignment, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// ReportService computes dashboard statistics over attendance and coursework.
type ReportService struct {
	store   reportStore
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportService constructs a ReportService. cache and metrics may be nil.
func NewReportService(store reportStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{store: store, cache: cache, metrics: metrics, logger: logger, now: time.Now}
}

// AttendanceStats counts attendance records by status.
func (s *ReportService) AttendanceStats(ctx context.Context, q dto.AttendanceStatsQuery) (models.AttendanceStats, error) {
	key := fmt.Sprintf("reports:attendance:%s:%s:%s", optionalID(q.StudentID), optionalID(q.SubjectAssignmentID), optionalDate(q.Date))
	stats, _, err := remember(ctx, s.cache, key, func() (models.AttendanceStats, error) {
		var (
			records []models.Attendance
			err     error
		)
		start := time.Now()
		switch {
		case q.StudentID != nil && q.SubjectAssignmentID != nil:
			records, err = s.store.ListAttendanceByStudentAndSubject(ctx, *q.StudentID, *q.SubjectAssignmentID)
		case q.Date != nil:
			records, err = s.store.ListAttendanceByDate(ctx, *q.Date)
		case q.StudentID != nil:
			records, err = s.store.ListAttendanceByStudent(ctx, *q.StudentID)
		case q.SubjectAssignmentID != nil:
			records, err = s.store.ListAttendanceBySubjectAssignment(ctx, *q.SubjectAssignmentID)
		default:
			return models.AttendanceStats{}, appErrors.Clone(appErrors.ErrValidation, "studentId, subjectAssignmentId or date is required")
		}
		if err != nil {
			return models.AttendanceStats{}, storageError(err, "failed to load attendance")
		}
		s.metrics.ObserveDBQuery("report_attendance_stats", time.Since(start))

		var stats models.AttendanceStats
		for _, r := range records {
			stats.Add(r.Status)
		}
		return stats, nil
	})
	return stats, err
}

// AssignmentStats compares an assignment's submissions against the roster of
// the class it was set for. Submissions from students outside the roster are
// not counted.
func (s *ReportService) AssignmentStats(ctx context.Context, assignmentID int64) (*models.AssignmentStats, error) {
	key := fmt.Sprintf("reports:assignment:%d", assignmentID)
	stats, _, err := remember(ctx, s.cache, key, func() (*models.AssignmentStats, error) {
		assignment, err := s.store.GetAssignment(ctx, assignmentID)
		if assignment, err = found(assignment, err, "assignment"); err != nil {
			return nil, err
		}
		roster, err := s.assignmentRoster(ctx, assignment)
		if err != nil {
			return nil, err
		}
		submissions, err := s.store.ListSubmissionsByAssignment(ctx, assignmentID)
		if err != nil {
			return nil, storageError(err, "failed to list submissions")
		}

		latest := latestByStudent(submissions)
		stats := &models.AssignmentStats{AssignmentID: assignmentID, TotalStudents: len(roster)}
		for _, st := range roster {
			sub, ok := latest[st.ID]
			if !ok || sub.Status == models.SubmissionDraft {
				continue
			}
			stats.Submitted++
			if isMarked(sub) {
				stats.Marked++
			}
		}
		stats.NotSubmitted = stats.TotalStudents - stats.Submitted
		stats.NotMarked = stats.Submitted - stats.Marked
		return stats, nil
	})
	return stats, err
}

// ClassPerformance averages each rostered student's marked submissions across
// every assignment set for the class.
func (s *ReportService) ClassPerformance(ctx context.Context, classID int64) (*dto.ClassPerformance, error) {
	key := fmt.Sprintf("reports:performance:%d", classID)
	perf, _, err := remember(ctx, s.cache, key, func() (*dto.ClassPerformance, error) {
		class, roster, err := s.classRoster(ctx, classID)
		if err != nil {
			return nil, err
		}
		assignments, err := s.classAssignments(ctx, classID)
		if err != nil {
			return nil, err
		}

		type tally struct {
			count int
			sum   float64
		}
		tallies := make(map[int64]*tally, len(roster))
		for _, st := range roster {
			tallies[st.ID] = &tally{}
		}
		for _, a := range assignments {
			submissions, err := s.store.ListSubmissionsByAssignment(ctx, a.ID)
			if err != nil {
				return nil, storageError(err, "failed to list submissions")
			}
			for _, sub := range latestByStudent(submissions) {
				t, ok := tallies[sub.StudentID]
				if !ok || sub.Marks == nil {
					continue
				}
				t.count++
				t.sum += percentage(*sub.Marks, a.MaxMarks)
			}
		}

		users := newUserSummaries(s.store)
		out := &dto.ClassPerformance{ClassID: class.ID, ClassName: class.Name, Students: make([]dto.StudentPerformance, 0, len(roster))}
		var (
			classSum   float64
			classCount int
		)
		for _, st := range roster {
			name, err := studentName(ctx, users, st)
			if err != nil {
				return nil, err
			}
			t := tallies[st.ID]
			row := dto.StudentPerformance{StudentID: st.ID, StudentCode: st.StudentID, Name: name, MarkedSubmissions: t.count}
			if t.count > 0 {
				row.AveragePercentage = round2(t.sum / float64(t.count))
				classSum += row.AveragePercentage
				classCount++
			}
			out.Students = append(out.Students, row)
		}
		if classCount > 0 {
			out.AveragePercentage = round2(classSum / float64(classCount))
		}
		return out, nil
	})
	return perf, err
}

// ClassAttendance tallies attendance per rostered student across the
// subjects taught to the class.
func (s *ReportService) ClassAttendance(ctx context.Context, classID int64) ([]dto.StudentAttendance, error) {
	_, roster, err := s.classRoster(ctx, classID)
	if err != nil {
		return nil, err
	}
	sas, err := s.store.ListSubjectAssignmentsByClass(ctx, classID)
	if err != nil {
		return nil, storageError(err, "failed to list subject assignments")
	}
	taught := make(map[int64]struct{}, len(sas))
	for _, sa := range sas {
		taught[sa.ID] = struct{}{}
	}

	users := newUserSummaries(s.store)
	out := make([]dto.StudentAttendance, 0, len(roster))
	for _, st := range roster {
		records, err := s.store.ListAttendanceByStudent(ctx, st.ID)
		if err != nil {
			return nil, storageError(err, "failed to load attendance")
		}
		var stats models.AttendanceStats
		for _, r := range records {
			if _, ok := taught[r.SubjectAssignmentID]; ok {
				stats.Add(r.Status)
			}
		}
		name, err := studentName(ctx, users, st)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.StudentAttendance{StudentID: st.ID, StudentCode: st.StudentID, Name: name, Stats: stats})
	}
	return out, nil
}

// ExportClassAttendance renders ClassAttendance as a CSV or PDF file.
func (s *ReportService) ExportClassAttendance(ctx context.Context, classID int64, rawFormat string) (*dto.ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnsupportedFormat.Code, appErrors.ErrUnsupportedFormat.Status, err.Error())
	}
	class, err := s.store.GetClass(ctx, classID)
	if class, err = found(class, err, "class"); err != nil {
		return nil, err
	}
	rows, err := s.ClassAttendance(ctx, classID)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   fmt.Sprintf("%s attendance (%s)", class.Name, s.now().UTC().Format("2006-01-02")),
		Columns: []string{"Student ID", "Name", "Present", "Absent", "Late", "Total"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.StudentCode,
			r.Name,
			strconv.Itoa(r.Stats.Present),
			strconv.Itoa(r.Stats.Absent),
			strconv.Itoa(r.Stats.Late),
			strconv.Itoa(r.Stats.Total),
		})
	}
	content, err := export.Render(format, table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("class-%d-attendance.%s", classID, format),
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

// Invalidate drops every cached report.
func (s *ReportService) Invalidate(ctx context.Context) {
	if s == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, reportCachePattern); err != nil {
		s.logger.Warn("invalidate report cache", zap.Error(err))
	}
}

func (s *ReportService) classRoster(ctx context.Context, classID int64) (*models.Class, []models.Student, error) {
	class, err := s.store.GetClass(ctx, classID)
	if class, err = found(class, err, "class"); err != nil {
		return nil, nil, err
	}
	roster, err := s.store.ListStudentsByClass(ctx, classID)
	if err != nil {
		return nil, nil, storageError(err, "failed to load roster")
	}
	return class, roster, nil
}

func (s *ReportService) assignmentRoster(ctx context.Context, a *models.Assignment) ([]models.Student, error) {
	sa, err := s.store.GetSubjectAssignment(ctx, a.SubjectAssignmentID)
	if err != nil {
		return nil, storageError(err, "failed to load subject assignment")
	}
	if sa == nil {
		return []models.Student{}, nil
	}
	roster, err := s.store.ListStudentsByClass(ctx, sa.ClassID)
	if err != nil {
		return nil, storageError(err, "failed to load roster")
	}
	return roster, nil
}

func (s *ReportService) classAssignments(ctx context.Context, classID int64) ([]models.Assignment, error) {
	sas, err := s.store.ListSubjectAssignmentsByClass(ctx, classID)
	if err != nil {
		return nil, storageError(err, "failed to list subject assignments")
	}
	var out []models.Assignment
	for _, sa := range sas {
		items, err := s.store.ListAssignmentsBySubjectAssignment(ctx, sa.ID)
		if err != nil {
			return nil, storageError(err, "failed to list assignments")
		}
		out = append(out, items...)
	}
	return out, nil
}

// latestByStudent keeps the most recent submission per student. Ids break
// ties on equal timestamps.
func latestByStudent(submissions []models.Submission) map[int64]models.Submission {
	out := make(map[int64]models.Submission, len(submissions))
	for _, sub := range submissions {
		prev, ok := out[sub.StudentID]
		if !ok || sub.SubmittedAt.After(prev.SubmittedAt) || (sub.SubmittedAt.Equal(prev.SubmittedAt) && sub.ID > prev.ID) {
			out[sub.StudentID] = sub
		}
	}
	return out
}

func isMarked(sub models.Submission) bool {
	return sub.Status == models.SubmissionMarked || sub.Marks != nil
}

// percentage scores marks out of max, treating a missing maximum as 100.
func percentage(marks int, max *int) float64 {
	total := 100
	if max != nil && *max > 0 {
		total = *max
	}
	return float64(marks) * 100 / float64(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func studentName(ctx context.Context, users *userSummaries, st models.Student) (string, error) {
	user, err := users.get(ctx, st.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return st.StudentID, nil
	}
	return models.User{FirstName: user.FirstName, LastName: user.LastName}.FullName(), nil
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02")
}
