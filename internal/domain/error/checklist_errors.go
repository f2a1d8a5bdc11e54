// Package error defines domain-specific errors for the Dowry Planner application.
package error

import (
	"errors"
	"fmt"
)

// Checklist domain errors.
var (
	// ErrGroupNotFound is returned when a group is not found in the system.
	ErrGroupNotFound = errors.New("group not found")

	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrProductNotFound is returned when a product is not found in the system.
	ErrProductNotFound = errors.New("product not found")

	// ErrNameRequired is returned when a required name field is empty.
	ErrNameRequired = errors.New("name is required")

	// ErrQuantityLimitExceeded is returned when adding a product would push the
	// category's purchased total past its target quantity.
	ErrQuantityLimitExceeded = errors.New("purchased quantity would exceed target")

	// ErrReadOnlyAccess is returned when a mutation is attempted through a
	// friend-code (read-only) grant.
	ErrReadOnlyAccess = errors.New("write not permitted for a read-only viewer")

	// ErrBackendUnavailable is returned when the storage backend cannot be
	// reached. It is retryable; the core never retries on its own.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrSubscriptionUnsupported is returned when subscribe is called on a
	// backend without change notification.
	ErrSubscriptionUnsupported = errors.New("backend does not support subscriptions")
)

// ChecklistErrorCode defines error codes for checklist errors.
// Format: CHK-XXYYYY where XX is category and YYYY is specific error.
type ChecklistErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeGroupNotFound    ChecklistErrorCode = "CHK-010001"
	ErrCodeCategoryNotFound ChecklistErrorCode = "CHK-010002"
	ErrCodeProductNotFound  ChecklistErrorCode = "CHK-010003"

	// Validation errors (02XXXX)
	ErrCodeNameRequired          ChecklistErrorCode = "CHK-020001"
	ErrCodeMissingChecklistField ChecklistErrorCode = "CHK-020002"

	// Conflict errors (03XXXX)
	ErrCodeQuantityLimitExceeded ChecklistErrorCode = "CHK-030001"

	// Authorization errors (04XXXX)
	ErrCodeReadOnlyAccess ChecklistErrorCode = "CHK-040001"

	// Backend errors (05XXXX)
	ErrCodeBackendUnavailable      ChecklistErrorCode = "CHK-050001"
	ErrCodeSubscriptionUnsupported ChecklistErrorCode = "CHK-050002"
)

// ChecklistError represents a checklist error with code and message.
type ChecklistError struct {
	Code    ChecklistErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ChecklistError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ChecklistError) Unwrap() error {
	return e.Err
}

// NewChecklistError creates a new ChecklistError with the given code and message.
func NewChecklistError(code ChecklistErrorCode, message string, err error) *ChecklistError {
	return &ChecklistError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// QuantityLimitError is the conflict raised when a new product would exceed a
// category's target quantity. It carries the figures the caller needs to build
// a meaningful message.
type QuantityLimitError struct {
	Target    int
	Purchased int
	Requested int
}

// Remaining returns how many units the category can still absorb.
func (e *QuantityLimitError) Remaining() int {
	remaining := e.Target - e.Purchased
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Error implements the error interface.
func (e *QuantityLimitError) Error() string {
	return fmt.Sprintf("target is %d, %d already purchased: adding %d exceeds the limit (remaining %d)",
		e.Target, e.Purchased, e.Requested, e.Remaining())
}

// Unwrap returns the sentinel error so errors.Is matches.
func (e *QuantityLimitError) Unwrap() error {
	return ErrQuantityLimitExceeded
}

// NewQuantityLimitError creates a QuantityLimitError.
func NewQuantityLimitError(target, purchased, requested int) *QuantityLimitError {
	return &QuantityLimitError{
		Target:    target,
		Purchased: purchased,
		Requested: requested,
	}
}

// NewBackendUnavailableError wraps a storage I/O failure in the retryable
// backend-unavailable taxonomy member.
func NewBackendUnavailableError(operation string, err error) *ChecklistError {
	return &ChecklistError{
		Code:    ErrCodeBackendUnavailable,
		Message: "storage backend unavailable during " + operation,
		Err:     errors.Join(ErrBackendUnavailable, err),
	}
}
