package repository

import (
	"context"

	"github.com/noah-isme/edusync-api/internal/models"
)

const teacherColumns = "id, user_id, teacher_id, specialization"

func (s *DatabaseStorage) GetTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	return getOne[models.Teacher](ctx, s, "get teacher", "SELECT "+teacherColumns+" FROM teachers WHERE id = $1", id)
}

func (s *DatabaseStorage) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	return getOne[models.Teacher](ctx, s, "get teacher by user", "SELECT "+teacherColumns+" FROM teachers WHERE user_id = $1 ORDER BY id LIMIT 1", userID)
}

func (s *DatabaseStorage) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	return selectMany[models.Teacher](ctx, s, "list teachers", "SELECT "+teacherColumns+" FROM teachers ORDER BY id")
}

func (s *DatabaseStorage) CreateTeacher(ctx context.Context, t models.Teacher) (*models.Teacher, error) {
	const query = `INSERT INTO teachers (user_id, teacher_id, specialization) VALUES ($1, $2, $3) RETURNING ` + teacherColumns
	return insertOne[models.Teacher](ctx, s, "create teacher", query, t.UserID, t.TeacherID, t.Specialization)
}

func (s *DatabaseStorage) UpdateTeacher(ctx context.Context, id int64, patch models.TeacherPatch) (*models.Teacher, error) {
	return updateOne[models.Teacher](ctx, s, "update teacher", "teachers", teacherColumns, id, patch)
}

func (s *DatabaseStorage) DeleteTeacher(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete teacher", "teachers", id)
}
