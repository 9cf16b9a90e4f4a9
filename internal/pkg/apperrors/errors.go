package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Errand errors
var (
	ErrErrandNotFound = errors.New("errand not found")
	// ErrErrandNotAvailable signals that an accept was attempted on an errand
	// that is no longer in the REQUESTED state.
	ErrErrandNotAvailable      = errors.New("errand not available for acceptance")
	ErrInvalidStatusTransition = errors.New("invalid errand status transition")
)

// Category errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryHasChildren blocks deleting a category that still has
	// subcategories; callers must delete or reparent the children first.
	ErrCategoryHasChildren = errors.New("category has subcategories and cannot be deleted")
	ErrCategoryCycle       = errors.New("category parent assignment would create a cycle")
)

// Service offering errors
var (
	ErrServiceOfferingNotFound = errors.New("service offering not found")
)

// Review errors
var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewTargetAmbiguous enforces the exactly-one-target invariant:
	// a review points at an errand or a service offering, never both or neither.
	ErrReviewTargetAmbiguous = errors.New("exactly one of errand id or service offering id must be provided")
)

// Image errors
var (
	ErrImageNotFound = errors.New("image not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}
