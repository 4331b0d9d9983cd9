package repository

import (
	"context"

	"github.com/noah-isme/edusync-api/internal/models"
)

const (
	branchColumns            = "id, name, description"
	sectionColumns           = "id, name"
	classColumns             = "id, year_level, branch_id, section_id, name"
	subjectColumns           = "id, name, code, description"
	subjectAssignmentColumns = "id, teacher_id, subject_id, class_id"
)

func (s *DatabaseStorage) GetBranch(ctx context.Context, id int64) (*models.Branch, error) {
	return getOne[models.Branch](ctx, s, "get branch", "SELECT "+branchColumns+" FROM branches WHERE id = $1", id)
}

func (s *DatabaseStorage) ListBranches(ctx context.Context) ([]models.Branch, error) {
	return selectMany[models.Branch](ctx, s, "list branches", "SELECT "+branchColumns+" FROM branches ORDER BY id")
}

func (s *DatabaseStorage) CreateBranch(ctx context.Context, b models.Branch) (*models.Branch, error) {
	const query = `INSERT INTO branches (name, description) VALUES ($1, $2) RETURNING ` + branchColumns
	return insertOne[models.Branch](ctx, s, "create branch", query, b.Name, b.Description)
}

func (s *DatabaseStorage) UpdateBranch(ctx context.Context, id int64, patch models.BranchPatch) (*models.Branch, error) {
	return updateOne[models.Branch](ctx, s, "update branch", "branches", branchColumns, id, patch)
}

func (s *DatabaseStorage) DeleteBranch(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete branch", "branches", id)
}

func (s *DatabaseStorage) GetSection(ctx context.Context, id int64) (*models.Section, error) {
	return getOne[models.Section](ctx, s, "get section", "SELECT "+sectionColumns+" FROM sections WHERE id = $1", id)
}

func (s *DatabaseStorage) ListSections(ctx context.Context) ([]models.Section, error) {
	return selectMany[models.Section](ctx, s, "list sections", "SELECT "+sectionColumns+" FROM sections ORDER BY id")
}

func (s *DatabaseStorage) CreateSection(ctx context.Context, sec models.Section) (*models.Section, error) {
	const query = `INSERT INTO sections (name) VALUES ($1) RETURNING ` + sectionColumns
	return insertOne[models.Section](ctx, s, "create section", query, sec.Name)
}

func (s *DatabaseStorage) UpdateSection(ctx context.Context, id int64, patch models.SectionPatch) (*models.Section, error) {
	return updateOne[models.Section](ctx, s, "update section", "sections", sectionColumns, id, patch)
}

func (s *DatabaseStorage) DeleteSection(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete section", "sections", id)
}

func (s *DatabaseStorage) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	return getOne[models.Class](ctx, s, "get class", "SELECT "+classColumns+" FROM classes WHERE id = $1", id)
}

func (s *DatabaseStorage) ListClasses(ctx context.Context) ([]models.Class, error) {
	return selectMany[models.Class](ctx, s, "list classes", "SELECT "+classColumns+" FROM classes ORDER BY id")
}

func (s *DatabaseStorage) ListClassesByBranch(ctx context.Context, branchID int64) ([]models.Class, error) {
	return selectMany[models.Class](ctx, s, "list classes by branch", "SELECT "+classColumns+" FROM classes WHERE branch_id = $1 ORDER BY id", branchID)
}

func (s *DatabaseStorage) ListClassesByYear(ctx context.Context, yearLevel int) ([]models.Class, error) {
	return selectMany[models.Class](ctx, s, "list classes by year", "SELECT "+classColumns+" FROM classes WHERE year_level = $1 ORDER BY id", yearLevel)
}

func (s *DatabaseStorage) CreateClass(ctx context.Context, c models.Class) (*models.Class, error) {
	const query = `INSERT INTO classes (year_level, branch_id, section_id, name) VALUES ($1, $2, $3, $4) RETURNING ` + classColumns
	return insertOne[models.Class](ctx, s, "create class", query, c.YearLevel, c.BranchID, c.SectionID, c.Name)
}

func (s *DatabaseStorage) UpdateClass(ctx context.Context, id int64, patch models.ClassPatch) (*models.Class, error) {
	return updateOne[models.Class](ctx, s, "update class", "classes", classColumns, id, patch)
}

func (s *DatabaseStorage) DeleteClass(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete class", "classes", id)
}

func (s *DatabaseStorage) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	return getOne[models.Subject](ctx, s, "get subject", "SELECT "+subjectColumns+" FROM subjects WHERE id = $1", id)
}

func (s *DatabaseStorage) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return selectMany[models.Subject](ctx, s, "list subjects", "SELECT "+subjectColumns+" FROM subjects ORDER BY id")
}

func (s *DatabaseStorage) CreateSubject(ctx context.Context, sub models.Subject) (*models.Subject, error) {
	const query = `INSERT INTO subjects (name, code, description) VALUES ($1, $2, $3) RETURNING ` + subjectColumns
	return insertOne[models.Subject](ctx, s, "create subject", query, sub.Name, sub.Code, sub.Description)
}

func (s *DatabaseStorage) UpdateSubject(ctx context.Context, id int64, patch models.SubjectPatch) (*models.Subject, error) {
	return updateOne[models.Subject](ctx, s, "update subject", "subjects", subjectColumns, id, patch)
}

func (s *DatabaseStorage) DeleteSubject(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete subject", "subjects", id)
}

func (s *DatabaseStorage) GetSubjectAssignment(ctx context.Context, id int64) (*models.SubjectAssignment, error) {
	return getOne[models.SubjectAssignment](ctx, s, "get subject assignment", "SELECT "+subjectAssignmentColumns+" FROM subject_assignments WHERE id = $1", id)
}

func (s *DatabaseStorage) ListSubjectAssignmentsByTeacher(ctx context.Context, teacherID int64) ([]models.SubjectAssignment, error) {
	return selectMany[models.SubjectAssignment](ctx, s, "list subject assignments by teacher", "SELECT "+subjectAssignmentColumns+" FROM subject_assignments WHERE teacher_id = $1 ORDER BY id", teacherID)
}

func (s *DatabaseStorage) ListSubjectAssignmentsByClass(ctx context.Context, classID int64) ([]models.SubjectAssignment, error) {
	return selectMany[models.SubjectAssignment](ctx, s, "list subject assignments by class", "SELECT "+subjectAssignmentColumns+" FROM subject_assignments WHERE class_id = $1 ORDER BY id", classID)
}

func (s *DatabaseStorage) ListSubjectAssignmentsBySubject(ctx context.Context, subjectID int64) ([]models.SubjectAssignment, error) {
	return selectMany[models.SubjectAssignment](ctx, s, "list subject assignments by subject", "SELECT "+subjectAssignmentColumns+" FROM subject_assignments WHERE subject_id = $1 ORDER BY id", subjectID)
}

func (s *DatabaseStorage) CreateSubjectAssignment(ctx context.Context, sa models.SubjectAssignment) (*models.SubjectAssignment, error) {
	const query = `INSERT INTO subject_assignments (teacher_id, subject_id, class_id) VALUES ($1, $2, $3) RETURNING ` + subjectAssignmentColumns
	return insertOne[models.SubjectAssignment](ctx, s, "create subject assignment", query, sa.TeacherID, sa.SubjectID, sa.ClassID)
}

func (s *DatabaseStorage) UpdateSubjectAssignment(ctx context.Context, id int64, patch models.SubjectAssignmentPatch) (*models.SubjectAssignment, error) {
	return updateOne[models.SubjectAssignment](ctx, s, "update subject assignment", "subject_assignments", subjectAssignmentColumns, id, patch)
}

func (s *DatabaseStorage) DeleteSubjectAssignment(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete subject assignment", "subject_assignments", id)
}
