package repository

import (
	"context"

	"github.com/noah-isme/edusync-api/internal/models"
)

const userColumns = "id, email, password, first_name, last_name, role, status, profile_image, created_at"

// GetUser returns a user by identifier.
func (s *DatabaseStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return getOne[models.User](ctx, s, "get user", "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

// GetUserByEmail returns a user by email address.
func (s *DatabaseStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getOne[models.User](ctx, s, "get user by email", "SELECT "+userColumns+" FROM users WHERE email = $1 LIMIT 1", email)
}

func (s *DatabaseStorage) ListUsers(ctx context.Context) ([]models.User, error) {
	return selectMany[models.User](ctx, s, "list users", "SELECT "+userColumns+" FROM users ORDER BY id")
}

// ListUsersByStatus backs the pending approvals queue.
func (s *DatabaseStorage) ListUsersByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error) {
	return selectMany[models.User](ctx, s, "list users by status", "SELECT "+userColumns+" FROM users WHERE status = $1 ORDER BY id", status)
}

// CreateUser inserts a user. The caller supplies an already hashed password.
func (s *DatabaseStorage) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	const query = `INSERT INTO users (email, password, first_name, last_name, role, status, profile_image, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + userColumns
	return insertOne[models.User](ctx, s, "create user", query, u.Email, u.Password, u.FirstName, u.LastName, u.Role, u.Status, u.ProfileImage, s.now())
}

func (s *DatabaseStorage) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	return updateOne[models.User](ctx, s, "update user", "users", userColumns, id, patch)
}

func (s *DatabaseStorage) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete user", "users", id)
}

// ApproveUser moves a user to the approved status.
func (s *DatabaseStorage) ApproveUser(ctx context.Context, id int64) (*models.User, error) {
	status := models.StatusApproved
	return s.UpdateUser(ctx, id, models.UserPatch{Status: &status})
}

// RejectUser moves a user to the rejected status.
func (s *DatabaseStorage) RejectUser(ctx context.Context, id int64) (*models.User, error) {
	status := models.StatusRejected
	return s.UpdateUser(ctx, id, models.UserPatch{Status: &status})
}
