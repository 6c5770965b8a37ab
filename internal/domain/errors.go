package domain

import "errors"

// Error kinds. Every failure surfaced by the CRM service carries exactly one of them.
var (
	// ErrValidation indicates bad or duplicate input (email taken, bad phone, missing field).
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a referenced customer or product does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint indicates a business rule violation such as an order without products.
	ErrConstraint = errors.New("constraint error")

	// ErrStorage indicates the persistence layer failed.
	ErrStorage = errors.New("storage error")
)

// Error is a classified failure with a human readable message.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the error kind so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func NewValidationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func NewConstraintError(msg string) error {
	return &Error{Kind: ErrConstraint, Message: msg}
}

// NewStorageError wraps a persistence failure; the message is the cause's text.
func NewStorageError(cause error) error {
	msg := "storage failure"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: ErrStorage, Message: msg, Cause: cause}
}

// Message returns the user facing text of err, unwrapping classified errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
