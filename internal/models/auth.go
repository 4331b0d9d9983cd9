package models

import "time"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the session token and the user.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// RegisterRequest is the public sign-up payload. Admin accounts cannot be
// created through registration.
type RegisterRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6,max=72"`
	FirstName      string  `json:"firstName" validate:"required"`
	LastName       string  `json:"lastName" validate:"required"`
	Role           string  `json:"role" validate:"required,oneof=student teacher"`
	ProfileImage   *string `json:"profileImage,omitempty" validate:"omitempty,url"`
	StudentID      string  `json:"studentId,omitempty" validate:"required_if=Role student"`
	YearLevel      int     `json:"yearLevel,omitempty" validate:"required_if=Role student,gte=0"`
	BranchID       int64   `json:"branchId,omitempty" validate:"required_if=Role student"`
	SectionID      int64   `json:"sectionId,omitempty" validate:"required_if=Role student"`
	TeacherID      string  `json:"teacherId,omitempty" validate:"required_if=Role teacher"`
	Specialization *string `json:"specialization,omitempty"`
}

// RegisterResponse reports the created account and whether it awaits approval.
type RegisterResponse struct {
	User            User     `json:"user"`
	Student         *Student `json:"student,omitempty"`
	Teacher         *Teacher `json:"teacher,omitempty"`
	PendingApproval bool     `json:"pendingApproval"`
}

// CreateUserRequest is the admin-only payload creating an account of any role.
type CreateUserRequest struct {
	Email        string     `json:"email" validate:"required,email"`
	Password     string     `json:"password" validate:"required,min=6,max=72"`
	FirstName    string     `json:"firstName" validate:"required"`
	LastName     string     `json:"lastName" validate:"required"`
	Role         UserRole   `json:"role" validate:"required,oneof=admin teacher student"`
	Status       UserStatus `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	ProfileImage *string    `json:"profileImage,omitempty" validate:"omitempty,url"`
}

// ChangePasswordRequest payload for updating password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// Profile is the authenticated user together with their role profile.
type Profile struct {
	User    User     `json:"user"`
	Student *Student `json:"student,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`
}
