package repository

import (
	"context"

	"github.com/noah-isme/edusync-api/internal/models"
)

const (
	assignmentColumns = "id, title, description, subject_assignment_id, due_date, max_marks, resource_url, created_at"
	submissionColumns = "id, assignment_id, student_id, submission_url, submitted_at, marks, feedback, status"
)

func (s *DatabaseStorage) GetAssignment(ctx context.Context, id int64) (*models.Assignment, error) {
	return getOne[models.Assignment](ctx, s, "get assignment", "SELECT "+assignmentColumns+" FROM assignments WHERE id = $1", id)
}

func (s *DatabaseStorage) ListAssignmentsBySubjectAssignment(ctx context.Context, subjectAssignmentID int64) ([]models.Assignment, error) {
	return selectMany[models.Assignment](ctx, s, "list assignments by subject assignment", "SELECT "+assignmentColumns+" FROM assignments WHERE subject_assignment_id = $1 ORDER BY id", subjectAssignmentID)
}

func (s *DatabaseStorage) CreateAssignment(ctx context.Context, a models.Assignment) (*models.Assignment, error) {
	const query = `INSERT INTO assignments (title, description, subject_assignment_id, due_date, max_marks, resource_url, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + assignmentColumns
	return insertOne[models.Assignment](ctx, s, "create assignment", query, a.Title, a.Description, a.SubjectAssignmentID, a.DueDate, a.MaxMarks, a.ResourceURL, s.now())
}

func (s *DatabaseStorage) UpdateAssignment(ctx context.Context, id int64, patch models.AssignmentPatch) (*models.Assignment, error) {
	return updateOne[models.Assignment](ctx, s, "update assignment", "assignments", assignmentColumns, id, patch)
}

func (s *DatabaseStorage) DeleteAssignment(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete assignment", "assignments", id)
}

func (s *DatabaseStorage) GetSubmission(ctx context.Context, id int64) (*models.Submission, error) {
	return getOne[models.Submission](ctx, s, "get submission", "SELECT "+submissionColumns+" FROM submissions WHERE id = $1", id)
}

func (s *DatabaseStorage) ListSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	return selectMany[models.Submission](ctx, s, "list submissions by assignment", "SELECT "+submissionColumns+" FROM submissions WHERE assignment_id = $1 ORDER BY id", assignmentID)
}

func (s *DatabaseStorage) ListSubmissionsByStudent(ctx context.Context, studentID int64) ([]models.Submission, error) {
	return selectMany[models.Submission](ctx, s, "list submissions by student", "SELECT "+submissionColumns+" FROM submissions WHERE student_id = $1 ORDER BY id", studentID)
}

func (s *DatabaseStorage) CreateSubmission(ctx context.Context, sub models.Submission) (*models.Submission, error) {
	if sub.Status == "" {
		sub.Status = models.SubmissionSubmitted
	}
	const query = `INSERT INTO submissions (assignment_id, student_id, submission_url, submitted_at, marks, feedback, status) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + submissionColumns
	return insertOne[models.Submission](ctx, s, "create submission", query, sub.AssignmentID, sub.StudentID, sub.SubmissionURL, s.now(), sub.Marks, sub.Feedback, sub.Status)
}

func (s *DatabaseStorage) UpdateSubmission(ctx context.Context, id int64, patch models.SubmissionPatch) (*models.Submission, error) {
	return updateOne[models.Submission](ctx, s, "update submission", "submissions", submissionColumns, id, patch)
}

func (s *DatabaseStorage) DeleteSubmission(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete submission", "submissions", id)
}
