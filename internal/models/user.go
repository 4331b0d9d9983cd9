package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// UserStatus tracks the approval workflow of an account.
type UserStatus string

const (
	StatusPending  UserStatus = "pending"
	StatusApproved UserStatus = "approved"
	StatusRejected UserStatus = "rejected"
)

// User represents an application user stored in the users table.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Password     string     `db:"password" json:"-"`
	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	Role         UserRole   `db:"role" json:"role"`
	Status       UserStatus `db:"status" json:"status"`
	ProfileImage *string    `db:"profile_image" json:"profileImage,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserPatch carries a partial update for a user. Nil fields are left alone.
type UserPatch struct {
	Email        *string     `db:"email" json:"email,omitempty" validate:"omitempty,email"`
	Password     *string     `db:"password" json:"-"`
	FirstName    *string     `db:"first_name" json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName     *string     `db:"last_name" json:"lastName,omitempty"`
	Role         *UserRole   `db:"role" json:"role,omitempty" validate:"omitempty,oneof=admin teacher student"`
	Status       *UserStatus `db:"status" json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
	ProfileImage *string     `db:"profile_image" json:"profileImage,omitempty" validate:"omitempty,url"`
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool { return p == UserPatch{} }

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	assign(&u.Email, p.Email)
	assign(&u.Password, p.Password)
	assign(&u.FirstName, p.FirstName)
	assign(&u.LastName, p.LastName)
	assign(&u.Role, p.Role)
	assign(&u.Status, p.Status)
	assignOptional(&u.ProfileImage, p.ProfileImage)
}

// UserSummary is the public subset of a user embedded in composed views.
type UserSummary struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Role         UserRole `json:"role"`
	ProfileImage *string  `json:"profileImage,omitempty"`
}

// Summary projects u onto UserSummary.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
	}
}
