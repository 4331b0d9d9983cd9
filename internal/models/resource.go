package models

import "time"

// Resource is a shared learning material link.
type Resource struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name" validate:"required"`
	Description *string   `db:"description" json:"description,omitempty"`
	URL         string    `db:"url" json:"url" validate:"required,url"`
	Type        *string   `db:"type" json:"type,omitempty"`
	UploadedBy  int64     `db:"uploaded_by" json:"uploadedBy" validate:"required"`
	SubjectID   *int64    `db:"subject_id" json:"subjectId,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type ResourcePatch struct {
	Name        *string `db:"name" json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `db:"description" json:"description,omitempty"`
	URL         *string `db:"url" json:"url,omitempty" validate:"omitempty,url"`
	Type        *string `db:"type" json:"type,omitempty"`
	SubjectID   *int64  `db:"subject_id" json:"subjectId,omitempty"`
}

func (p ResourcePatch) IsEmpty() bool { return p == ResourcePatch{} }

func (p ResourcePatch) Apply(r *Resource) {
	assign(&r.Name, p.Name)
	assignOptional(&r.Description, p.Description)
	assign(&r.URL, p.URL)
	assignOptional(&r.Type, p.Type)
	assignOptional(&r.SubjectID, p.SubjectID)
}

// StudentDocument is a file reference attached to a student profile.
type StudentDocument struct {
	ID         int64     `db:"id" json:"id"`
	StudentID  int64     `db:"student_id" json:"studentId" validate:"required"`
	Name       string    `db:"name" json:"name" validate:"required"`
	Type       string    `db:"type" json:"type" validate:"required"`
	URL        string    `db:"url" json:"url" validate:"required,url"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploadedAt"`
}

type StudentDocumentPatch struct {
	Name *string `db:"name" json:"name,omitempty" validate:"omitempty,min=1"`
	Type *string `db:"type" json:"type,omitempty" validate:"omitempty,min=1"`
	URL  *string `db:"url" json:"url,omitempty" validate:"omitempty,url"`
}

func (p StudentDocumentPatch) IsEmpty() bool { return p == StudentDocumentPatch{} }

func (p StudentDocumentPatch) Apply(d *StudentDocument) {
	assign(&d.Name, p.Name)
	assign(&d.Type, p.Type)
	assign(&d.URL, p.URL)
}
