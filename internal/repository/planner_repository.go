package repository

import (
	"context"

	"github.com/noah-isme/edusync-api/internal/models"
)

const (
	timetableColumns = "id, subject_assignment_id, day, start_time, end_time, room"
	taskColumns      = "id, user_id, title, description, due_date, due_time, completed, created_at"
)

func (s *DatabaseStorage) GetTimetableEntry(ctx context.Context, id int64) (*models.TimetableEntry, error) {
	return getOne[models.TimetableEntry](ctx, s, "get timetable entry", "SELECT "+timetableColumns+" FROM timetable WHERE id = $1", id)
}

func (s *DatabaseStorage) ListTimetableBySubjectAssignment(ctx context.Context, subjectAssignmentID int64) ([]models.TimetableEntry, error) {
	return selectMany[models.TimetableEntry](ctx, s, "list timetable by subject assignment", "SELECT "+timetableColumns+" FROM timetable WHERE subject_assignment_id = $1 ORDER BY id", subjectAssignmentID)
}

func (s *DatabaseStorage) ListTimetableByDay(ctx context.Context, day string) ([]models.TimetableEntry, error) {
	return selectMany[models.TimetableEntry](ctx, s, "list timetable by day", "SELECT "+timetableColumns+" FROM timetable WHERE day = $1 ORDER BY id", day)
}

func (s *DatabaseStorage) CreateTimetableEntry(ctx context.Context, e models.TimetableEntry) (*models.TimetableEntry, error) {
	const query = `INSERT INTO timetable (subject_assignment_id, day, start_time, end_time, room) VALUES ($1, $2, $3, $4, $5) RETURNING ` + timetableColumns
	return insertOne[models.TimetableEntry](ctx, s, "create timetable entry", query, e.SubjectAssignmentID, e.Day, e.StartTime, e.EndTime, e.Room)
}

func (s *DatabaseStorage) UpdateTimetableEntry(ctx context.Context, id int64, patch models.TimetableEntryPatch) (*models.TimetableEntry, error) {
	return updateOne[models.TimetableEntry](ctx, s, "update timetable entry", "timetable", timetableColumns, id, patch)
}

func (s *DatabaseStorage) DeleteTimetableEntry(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete timetable entry", "timetable", id)
}

func (s *DatabaseStorage) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	return getOne[models.Task](ctx, s, "get task", "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id)
}

func (s *DatabaseStorage) ListTasksByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	return selectMany[models.Task](ctx, s, "list tasks by user", "SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 ORDER BY id", userID)
}

func (s *DatabaseStorage) CreateTask(ctx context.Context, t models.Task) (*models.Task, error) {
	const query = `INSERT INTO tasks (user_id, title, description, due_date, due_time, completed, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + taskColumns
	return insertOne[models.Task](ctx, s, "create task", query, t.UserID, t.Title, t.Description, t.DueDate, t.DueTime, t.Completed, s.now())
}

func (s *DatabaseStorage) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	return updateOne[models.Task](ctx, s, "update task", "tasks", taskColumns, id, patch)
}

func (s *DatabaseStorage) DeleteTask(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete task", "tasks", id)
}
