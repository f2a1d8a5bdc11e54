// Package error defines domain-specific errors for the Dowry Planner application.
package error

import "errors"

// Authentication and owner-lifecycle domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to register or rename to a taken username.
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrUsernameTooShort is returned when the username is below the minimum length.
	ErrUsernameTooShort = errors.New("username too short")

	// ErrWeakPassword is returned when the provided password does not meet requirements.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	// ErrFriendCodeNotFound is returned when no user holds the given friend code.
	ErrFriendCodeNotFound = errors.New("friend code not found")

	// ErrNotAdmin is returned when a non-admin calls an admin-only operation.
	ErrNotAdmin = errors.New("admin role required")

	// ErrMigrationIncomplete is returned when a rename migration fails after
	// some of the tree was already copied. Already-copied data is left in
	// place and the old record stays intact.
	ErrMigrationIncomplete = errors.New("rename migration incomplete")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Registration errors (01XXXX)
	ErrCodeUsernameExists   AuthErrorCode = "AUTH-010001"
	ErrCodeUsernameTooShort AuthErrorCode = "AUTH-010002"
	ErrCodeWeakPassword     AuthErrorCode = "AUTH-010003"
	ErrCodeMissingFields    AuthErrorCode = "AUTH-010004"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// Sharing errors (04XXXX)
	ErrCodeFriendCodeNotFound AuthErrorCode = "AUTH-040001"

	// Authorization errors (05XXXX)
	ErrCodeNotAdmin AuthErrorCode = "AUTH-050001"

	// Rename migration errors (06XXXX)
	ErrCodeMigrationIncomplete AuthErrorCode = "AUTH-060001"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
