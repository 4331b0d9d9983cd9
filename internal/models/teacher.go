package models

// Teacher is the staff profile linked to a user with the teacher role.
type Teacher struct {
	ID             int64   `db:"id" json:"id"`
	UserID         int64   `db:"user_id" json:"userId" validate:"required"`
	TeacherID      string  `db:"teacher_id" json:"teacherId" validate:"required"`
	Specialization *string `db:"specialization" json:"specialization,omitempty"`
}

// TeacherPatch carries a partial update for a teacher.
type TeacherPatch struct {
	UserID         *int64  `db:"user_id" json:"userId,omitempty"`
	TeacherID      *string `db:"teacher_id" json:"teacherId,omitempty" validate:"omitempty,min=1"`
	Specialization *string `db:"specialization" json:"specialization,omitempty"`
}

func (p TeacherPatch) IsEmpty() bool { return p == TeacherPatch{} }

func (p TeacherPatch) Apply(t *Teacher) {
	assign(&t.UserID, p.UserID)
	assign(&t.TeacherID, p.TeacherID)
	assignOptional(&t.Specialization, p.Specialization)
}
