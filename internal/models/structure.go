package models

// Branch is an academic department, e.g. Computer Science Engineering.
type Branch struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name" validate:"required"`
	Description *string `db:"description" json:"description,omitempty"`
}

type BranchPatch struct {
	Name        *string `db:"name" json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `db:"description" json:"description,omitempty"`
}

func (p BranchPatch) IsEmpty() bool { return p == BranchPatch{} }

func (p BranchPatch) Apply(b *Branch) {
	assign(&b.Name, p.Name)
	assignOptional(&b.Description, p.Description)
}

// Section is a cohort label such as "Section A".
type Section struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name" validate:"required"`
}

type SectionPatch struct {
	Name *string `db:"name" json:"name,omitempty" validate:"omitempty,min=1"`
}

func (p SectionPatch) IsEmpty() bool { return p == SectionPatch{} }

func (p SectionPatch) Apply(s *Section) {
	assign(&s.Name, p.Name)
}

// Class is the (year, branch, section) grouping students belong to.
type Class struct {
	ID        int64  `db:"id" json:"id"`
	YearLevel int    `db:"year_level" json:"yearLevel" validate:"required,min=1"`
	BranchID  int64  `db:"branch_id" json:"branchId" validate:"required"`
	SectionID int64  `db:"section_id" json:"sectionId" validate:"required"`
	Name      string `db:"name" json:"name" validate:"required"`
}

type ClassPatch struct {
	YearLevel *int    `db:"year_level" json:"yearLevel,omitempty" validate:"omitempty,min=1"`
	BranchID  *int64  `db:"branch_id" json:"branchId,omitempty"`
	SectionID *int64  `db:"section_id" json:"sectionId,omitempty"`
	Name      *string `db:"name" json:"name,omitempty" validate:"omitempty,min=1"`
}

func (p ClassPatch) IsEmpty() bool { return p == ClassPatch{} }

func (p ClassPatch) Apply(c *Class) {
	assign(&c.YearLevel, p.YearLevel)
	assign(&c.BranchID, p.BranchID)
	assign(&c.SectionID, p.SectionID)
	assign(&c.Name, p.Name)
}

// Subject is a course offered by the institution.
type Subject struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name" validate:"required"`
	Code        string  `db:"code" json:"code" validate:"required"`
	Description *string `db:"description" json:"description,omitempty"`
}

type SubjectPatch struct {
	Name        *string `db:"name" json:"name,omitempty" validate:"omitempty,min=1"`
	Code        *string `db:"code" json:"code,omitempty" validate:"omitempty,min=1"`
	Description *string `db:"description" json:"description,omitempty"`
}

func (p SubjectPatch) IsEmpty() bool { return p == SubjectPatch{} }

func (p SubjectPatch) Apply(s *Subject) {
	assign(&s.Name, p.Name)
	assign(&s.Code, p.Code)
	assignOptional(&s.Description, p.Description)
}

// SubjectAssignment binds a teacher to teach a subject to a class.
type SubjectAssignment struct {
	ID        int64 `db:"id" json:"id"`
	TeacherID int64 `db:"teacher_id" json:"teacherId" validate:"required"`
	SubjectID int64 `db:"subject_id" json:"subjectId" validate:"required"`
	ClassID   int64 `db:"class_id" json:"classId" validate:"required"`
}

type SubjectAssignmentPatch struct {
	TeacherID *int64 `db:"teacher_id" json:"teacherId,omitempty"`
	SubjectID *int64 `db:"subject_id" json:"subjectId,omitempty"`
	ClassID   *int64 `db:"class_id" json:"classId,omitempty"`
}

func (p SubjectAssignmentPatch) IsEmpty() bool { return p == SubjectAssignmentPatch{} }

func (p SubjectAssignmentPatch) Apply(a *SubjectAssignment) {
	assign(&a.TeacherID, p.TeacherID)
	assign(&a.SubjectID, p.SubjectID)
	assign(&a.ClassID, p.ClassID)
}
