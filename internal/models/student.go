package models

import "github.com/jmoiron/sqlx/types"

// Student is the academic profile linked to a user with the student role.
// Class membership is derived from (YearLevel, BranchID, SectionID).
type Student struct {
	ID        int64          `db:"id" json:"id"`
	UserID    int64          `db:"user_id" json:"userId" validate:"required"`
	StudentID string         `db:"student_id" json:"studentId" validate:"required"`
	YearLevel int            `db:"year_level" json:"yearLevel" validate:"required,min=1"`
	BranchID  int64          `db:"branch_id" json:"branchId" validate:"required"`
	SectionID int64          `db:"section_id" json:"sectionId" validate:"required"`
	Documents types.JSONText `db:"documents" json:"documents" swaggertype:"object"`
}

// InClass reports whether the student's triple matches the class.
func (s Student) InClass(c Class) bool {
	return s.YearLevel == c.YearLevel && s.BranchID == c.BranchID && s.SectionID == c.SectionID
}

// StudentPatch carries a partial update for a student.
type StudentPatch struct {
	UserID    *int64          `db:"user_id" json:"userId,omitempty"`
	StudentID *string         `db:"student_id" json:"studentId,omitempty" validate:"omitempty,min=1"`
	YearLevel *int            `db:"year_level" json:"yearLevel,omitempty" validate:"omitempty,min=1"`
	BranchID  *int64          `db:"branch_id" json:"branchId,omitempty"`
	SectionID *int64          `db:"section_id" json:"sectionId,omitempty"`
	Documents *types.JSONText `db:"documents" json:"documents,omitempty" swaggertype:"object"`
}

func (p StudentPatch) IsEmpty() bool { return p == StudentPatch{} }

func (p StudentPatch) Apply(s *Student) {
	assign(&s.UserID, p.UserID)
	assign(&s.StudentID, p.StudentID)
	assign(&s.YearLevel, p.YearLevel)
	assign(&s.BranchID, p.BranchID)
	assign(&s.SectionID, p.SectionID)
	if p.Documents != nil {
		s.Documents = append(types.JSONText(nil), (*p.Documents)...)
	}
}

// EmptyDocuments is the default documents payload for new students.
func EmptyDocuments() types.JSONText {
	return types.JSONText(`{}`)
}
