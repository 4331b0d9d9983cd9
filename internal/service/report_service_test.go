package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/dto"
	"github.com/noah-isme/edusync-api/internal/models"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

// mapCache is an in-process CacheRepository keyed by exact key.
type mapCache struct {
	items       map[string][]byte
	gets, sets  int
	invalidated []string
}

func newMapCache() *mapCache { return &mapCache{items: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) error {
	c.gets++
	raw, ok := c.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = raw
	return nil
}

func (c *mapCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.invalidated = append(c.invalidated, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

func TestReportServiceAttendanceStats(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	day := time.Date(2023, 8, 7, 0, 0, 0, 0, time.UTC)
	for i, status := range []models.AttendanceStatus{models.AttendancePresent, models.AttendanceLate} {
		_, err := s.store.CreateAttendance(ctx, models.Attendance{StudentID: s.profiles[i].ID, SubjectAssignmentID: s.sa.ID, Date: day, Status: status})
		require.NoError(t, err)
	}
	_, err := s.store.CreateAttendance(ctx, models.Attendance{StudentID: s.profiles[0].ID, SubjectAssignmentID: s.sa.ID, Date: day.AddDate(0, 0, 1), Status: models.AttendanceAbsent})
	require.NoError(t, err)

	svc := NewReportService(s.store, nil, nil, nil)

	stats, err := svc.AttendanceStats(ctx, dto.AttendanceStatsQuery{StudentID: &s.profiles[0].ID, SubjectAssignmentID: &s.sa.ID})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStats{Present: 1, Absent: 1, Total: 2}, stats)

	stats, err = svc.AttendanceStats(ctx, dto.AttendanceStatsQuery{Date: &day})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStats{Present: 1, Late: 1, Total: 2}, stats)

	_, err = svc.AttendanceStats(ctx, dto.AttendanceStatsQuery{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestReportServiceAssignmentStatsUsesRoster(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	assignment, err := s.store.CreateAssignment(ctx, models.Assignment{Title: "HW", SubjectAssignmentID: s.sa.ID, MaxMarks: ptr(50)})
	require.NoError(t, err)

	// first student: a draft followed by a marked resubmission
	_, err = s.store.CreateSubmission(ctx, models.Submission{AssignmentID: assignment.ID, StudentID: s.profiles[0].ID, Status: models.SubmissionDraft})
	require.NoError(t, err)
	_, err = s.store.CreateSubmission(ctx, models.Submission{AssignmentID: assignment.ID, StudentID: s.profiles[0].ID, Marks: ptr(40)})
	require.NoError(t, err)
	// a student outside the class roster is ignored
	_, err = s.store.CreateSubmission(ctx, models.Submission{AssignmentID: assignment.ID, StudentID: 999})
	require.NoError(t, err)

	svc := NewReportService(s.store, nil, nil, nil)
	stats, err := svc.AssignmentStats(ctx, assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, &models.AssignmentStats{
		AssignmentID:  assignment.ID,
		TotalStudents: 2,
		Submitted:     1,
		NotSubmitted:  1,
		Marked:        1,
		NotMarked:     0,
	}, stats)

	_, err = svc.AssignmentStats(ctx, 404)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestReportServiceClassPerformance(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	hw1, err := s.store.CreateAssignment(ctx, models.Assignment{Title: "HW1", SubjectAssignmentID: s.sa.ID, MaxMarks: ptr(50)})
	require.NoError(t, err)
	hw2, err := s.store.CreateAssignment(ctx, models.Assignment{Title: "HW2", SubjectAssignmentID: s.sa.ID})
	require.NoError(t, err)

	for _, sub := range []models.Submission{
		{AssignmentID: hw1.ID, StudentID: s.profiles[0].ID, Marks: ptr(40)},
		{AssignmentID: hw2.ID, StudentID: s.profiles[0].ID, Marks: ptr(61)},
		{AssignmentID: hw1.ID, StudentID: s.profiles[1].ID},
	} {
		_, err := s.store.CreateSubmission(ctx, sub)
		require.NoError(t, err)
	}

	svc := NewReportService(s.store, nil, nil, nil)
	perf, err := svc.ClassPerformance(ctx, s.class.ID)
	require.NoError(t, err)
	assert.Equal(t, s.class.Name, perf.ClassName)
	require.Len(t, perf.Students, 2)
	assert.Equal(t, 2, perf.Students[0].MarkedSubmissions)
	assert.InDelta(t, 70.5, perf.Students[0].AveragePercentage, 0.001)
	assert.Equal(t, 0, perf.Students[1].MarkedSubmissions)
	assert.Zero(t, perf.Students[1].AveragePercentage)
	assert.InDelta(t, 70.5, perf.AveragePercentage, 0.001)

	_, err = svc.ClassPerformance(ctx, 404)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestReportServiceExportClassAttendance(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	day := time.Date(2023, 8, 7, 0, 0, 0, 0, time.UTC)
	_, err := s.store.CreateAttendance(ctx, models.Attendance{StudentID: s.profiles[0].ID, SubjectAssignmentID: s.sa.ID, Date: day, Status: models.AttendancePresent})
	require.NoError(t, err)
	// attendance for a subject not taught to the class is excluded
	_, err = s.store.CreateAttendance(ctx, models.Attendance{StudentID: s.profiles[0].ID, SubjectAssignmentID: 999, Date: day, Status: models.AttendanceAbsent})
	require.NoError(t, err)

	svc := NewReportService(s.store, nil, nil, nil)
	file, err := svc.ExportClassAttendance(ctx, s.class.ID, "csv")
	require.NoError(t, err)
	assert.Equal(t, "class-1-attendance.csv", file.Filename)
	assert.Contains(t, file.ContentType, "text/csv")

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Student ID", "Name", "Present", "Absent", "Late", "Total"}, records[0])
	assert.Equal(t, []string{"ST001", "ann Test", "1", "0", "0", "1"}, records[1])

	pdf, err := svc.ExportClassAttendance(ctx, s.class.ID, "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Content, []byte("%PDF-")))

	_, err = svc.ExportClassAttendance(ctx, s.class.ID, "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedFormat)
}

func TestReportServiceCachesAndInvalidates(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	repo := newMapCache()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	reports := NewReportService(s.store, cache, nil, nil)
	attendance := NewAttendanceService(s.store, nil, reports)

	q := dto.AttendanceStatsQuery{SubjectAssignmentID: &s.sa.ID}
	first, err := reports.AttendanceStats(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Total)
	assert.Equal(t, 1, repo.sets)

	_, err = attendance.Record(ctx, models.Attendance{StudentID: s.profiles[0].ID, SubjectAssignmentID: s.sa.ID, Date: time.Now().UTC(), Status: models.AttendancePresent})
	require.NoError(t, err)
	assert.Equal(t, []string{"reports:*"}, repo.invalidated)

	second, err := reports.AttendanceStats(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Total)
}

func TestReportServiceStorageOutage(t *testing.T) {
	s := newSchool(t)
	svc := NewReportService(offlineStore{s.store}, nil, nil, nil)
	_, err := svc.AttendanceStats(context.Background(), dto.AttendanceStatsQuery{StudentID: &s.profiles[0].ID})
	assert.ErrorIs(t, err, appErrors.ErrServiceUnavailable)
}
