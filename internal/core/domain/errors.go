package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidField       = errors.New("invalid field")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInUse              = errors.New("record is still referenced")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid task status")
)

// FieldError reports a single missing or malformed input field. It unwraps
// to ErrMissingField or ErrInvalidField.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return e.Err }

// MissingField builds the FieldError for an absent required field.
func MissingField(field string) *FieldError {
	return &FieldError{Field: field, Message: field + " is required", Err: ErrMissingField}
}

// InvalidField builds the FieldError for a present but unusable field.
func InvalidField(field, reason string) *FieldError {
	return &FieldError{Field: field, Message: field + " " + reason, Err: ErrInvalidField}
}
