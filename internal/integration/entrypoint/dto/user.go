// Package dto defines data transfer objects for API requests and responses.
package dto

import "time"

// UpdateUserRequest represents a partial profile update. Omitted fields are
// left unchanged.
type UpdateUserRequest struct {
	Title       *string    `json:"title,omitempty"`
	Password    *string    `json:"password,omitempty"`
	WeddingDate *time.Time `json:"wedding_date,omitempty"`
}

// AdminUpdateUserRequest represents the admin update of another account. It
// extends the profile update with a role change.
type AdminUpdateUserRequest struct {
	Title       *string    `json:"title,omitempty"`
	Password    *string    `json:"password,omitempty"`
	Role        *string    `json:"role,omitempty"`
	WeddingDate *time.Time `json:"wedding_date,omitempty"`
}

// RenameUserRequest represents the request body for an owner rename.
type RenameUserRequest struct {
	NewUsername string `json:"new_username" binding:"required,min=3,max=50"`
}

// CreateUserRequest represents the admin request for creating an account.
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Password string  `json:"password" binding:"required,min=4"`
	Title    *string `json:"title,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// UserListResponse represents the admin user listing.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// FriendCodeResponse represents the resolved owner of a friend code.
type FriendCodeResponse struct {
	Username string `json:"username"`
	Title    string `json:"title"`
}
