package apperrors

import "errors"

// Error taxonomy returned by services and repositories. Controllers never
// build HTTP responses from raw storage errors; everything is mapped onto
// one of these first.
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Generic resource errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidRole      = errors.New("invalid role")
)

// Uniqueness conflicts
var (
	ErrUsernameAlreadyExists      = errors.New("username already exists")
	ErrEmailAlreadyExists         = errors.New("email already exists")
	ErrStudentNumberAlreadyExists = errors.New("student number already exists")
	ErrTeacherNumberAlreadyExists = errors.New("teacher number already exists")
	ErrCourseCodeAlreadyExists    = errors.New("course code already exists")
	ErrAlreadyEnrolled            = errors.New("student is already enrolled in this course")
)

// Missing entities
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// IsConflict reports whether err is one of the uniqueness conflict errors.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUsernameAlreadyExists) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrStudentNumberAlreadyExists) ||
		errors.Is(err, ErrTeacherNumberAlreadyExists) ||
		errors.Is(err, ErrCourseCodeAlreadyExists) ||
		errors.Is(err, ErrAlreadyEnrolled)
}

// IsNotFound reports whether err is one of the missing-entity errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrTeacherNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound)
}

// CustomError carries an application error plus a user-safe message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a field-level message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
