// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the role of a registered user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultTitle is the display title assigned at registration.
const DefaultTitle = "Gelin Hanım"

// FriendCodeAlphabet is the symbol set for friend codes. O, I, 0 and 1 are
// excluded because they are easy to misread when codes are shared verbally.
const FriendCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// FriendCodeLength is the fixed length of a friend code.
const FriendCodeLength = 6

// User represents a registered owner of a checklist tree.
// Username is stored lowercase; lookups are case-insensitive.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Title        string
	FriendCode   string
	WeddingDate  *time.Time
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with default values.
func NewUser(username, passwordHash, friendCode string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Title:        DefaultTitle,
		FriendCode:   friendCode,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
