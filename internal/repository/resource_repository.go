package repository

import (
	"context"

	"github.com/noah-isme/edusync-api/internal/models"
)

const (
	resourceColumns        = "id, name, description, url, type, uploaded_by, subject_id, created_at"
	studentDocumentColumns = "id, student_id, name, type, url, uploaded_at"
)

func (s *DatabaseStorage) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	return getOne[models.Resource](ctx, s, "get resource", "SELECT "+resourceColumns+" FROM resources WHERE id = $1", id)
}

func (s *DatabaseStorage) ListResources(ctx context.Context) ([]models.Resource, error) {
	return selectMany[models.Resource](ctx, s, "list resources", "SELECT "+resourceColumns+" FROM resources ORDER BY id")
}

func (s *DatabaseStorage) ListResourcesByUser(ctx context.Context, userID int64) ([]models.Resource, error) {
	return selectMany[models.Resource](ctx, s, "list resources by user", "SELECT "+resourceColumns+" FROM resources WHERE uploaded_by = $1 ORDER BY id", userID)
}

func (s *DatabaseStorage) ListResourcesBySubject(ctx context.Context, subjectID int64) ([]models.Resource, error) {
	return selectMany[models.Resource](ctx, s, "list resources by subject", "SELECT "+resourceColumns+" FROM resources WHERE subject_id = $1 ORDER BY id", subjectID)
}

func (s *DatabaseStorage) CreateResource(ctx context.Context, r models.Resource) (*models.Resource, error) {
	const query = `INSERT INTO resources (name, description, url, type, uploaded_by, subject_id, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + resourceColumns
	return insertOne[models.Resource](ctx, s, "create resource", query, r.Name, r.Description, r.URL, r.Type, r.UploadedBy, r.SubjectID, s.now())
}

func (s *DatabaseStorage) UpdateResource(ctx context.Context, id int64, patch models.ResourcePatch) (*models.Resource, error) {
	return updateOne[models.Resource](ctx, s, "update resource", "resources", resourceColumns, id, patch)
}

func (s *DatabaseStorage) DeleteResource(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete resource", "resources", id)
}

func (s *DatabaseStorage) GetStudentDocument(ctx context.Context, id int64) (*models.StudentDocument, error) {
	return getOne[models.StudentDocument](ctx, s, "get student document", "SELECT "+studentDocumentColumns+" FROM student_documents WHERE id = $1", id)
}

func (s *DatabaseStorage) ListStudentDocumentsByStudent(ctx context.Context, studentID int64) ([]models.StudentDocument, error) {
	return selectMany[models.StudentDocument](ctx, s, "list student documents", "SELECT "+studentDocumentColumns+" FROM student_documents WHERE student_id = $1 ORDER BY id", studentID)
}

func (s *DatabaseStorage) CreateStudentDocument(ctx context.Context, d models.StudentDocument) (*models.StudentDocument, error) {
	const query = `INSERT INTO student_documents (student_id, name, type, url, uploaded_at) VALUES ($1, $2, $3, $4, $5) RETURNING ` + studentDocumentColumns
	return insertOne[models.StudentDocument](ctx, s, "create student document", query, d.StudentID, d.Name, d.Type, d.URL, s.now())
}

func (s *DatabaseStorage) UpdateStudentDocument(ctx context.Context, id int64, patch models.StudentDocumentPatch) (*models.StudentDocument, error) {
	return updateOne[models.StudentDocument](ctx, s, "update student document", "student_documents", studentDocumentColumns, id, patch)
}

func (s *DatabaseStorage) DeleteStudentDocument(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete student document", "student_documents", id)
}
