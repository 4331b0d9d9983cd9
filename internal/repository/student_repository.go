package repository

import (
	"context"

	"github.com/noah-isme/edusync-api/internal/models"
)

const studentColumns = "id, user_id, student_id, year_level, branch_id, section_id, documents"

func (s *DatabaseStorage) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return getOne[models.Student](ctx, s, "get student", "SELECT "+studentColumns+" FROM students WHERE id = $1", id)
}

func (s *DatabaseStorage) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return getOne[models.Student](ctx, s, "get student by user", "SELECT "+studentColumns+" FROM students WHERE user_id = $1 ORDER BY id LIMIT 1", userID)
}

func (s *DatabaseStorage) ListStudents(ctx context.Context) ([]models.Student, error) {
	return selectMany[models.Student](ctx, s, "list students", "SELECT "+studentColumns+" FROM students ORDER BY id")
}

// ListStudentsByClass resolves the class roster from its (year, branch,
// section) triple. An unknown class joins nothing and yields an empty list.
func (s *DatabaseStorage) ListStudentsByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	const query = `SELECT s.id, s.user_id, s.student_id, s.year_level, s.branch_id, s.section_id, s.documents FROM students s JOIN classes c ON s.year_level = c.year_level AND s.branch_id = c.branch_id AND s.section_id = c.section_id WHERE c.id = $1 ORDER BY s.id`
	return selectMany[models.Student](ctx, s, "list students by class", query, classID)
}

func (s *DatabaseStorage) CreateStudent(ctx context.Context, st models.Student) (*models.Student, error) {
	if len(st.Documents) == 0 {
		st.Documents = models.EmptyDocuments()
	}
	const query = `INSERT INTO students (user_id, student_id, year_level, branch_id, section_id, documents) VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + studentColumns
	return insertOne[models.Student](ctx, s, "create student", query, st.UserID, st.StudentID, st.YearLevel, st.BranchID, st.SectionID, st.Documents)
}

func (s *DatabaseStorage) UpdateStudent(ctx context.Context, id int64, patch models.StudentPatch) (*models.Student, error) {
	return updateOne[models.Student](ctx, s, "update student", "students", studentColumns, id, patch)
}

func (s *DatabaseStorage) DeleteStudent(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete student", "students", id)
}
