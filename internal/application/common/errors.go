package common

import "errors"

// ErrorKind classifies a failed operation so the transport layer can map it
// to a status code without parsing messages.
type ErrorKind int

const (
	ErrorKindInternal ErrorKind = iota
	ErrorKindValidation
	ErrorKindNotFound
	ErrorKindAuthorization
	ErrorKindConflict
	ErrorKindInvalidCredentials
	ErrorKindAccountInactive
	ErrorKindRateLimited
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: ErrorKindValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrorKindNotFound, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: ErrorKindAuthorization, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: ErrorKindConflict, Message: message}
}

// NewInvalidCredentialsError carries the same message for unknown emails and
// wrong passwords so login failures cannot be used to enumerate accounts.
func NewInvalidCredentialsError() *AppError {
	return &AppError{Kind: ErrorKindInvalidCredentials, Message: "invalid email or password"}
}

func NewAccountInactiveError() *AppError {
	return &AppError{Kind: ErrorKindAccountInactive, Message: "user account is not active"}
}

func NewRateLimitedError(message string) *AppError {
	return &AppError{Kind: ErrorKindRateLimited, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: ErrorKindInternal, Message: message, Err: err}
}

// KindOf extracts the error kind, defaulting to internal for untyped errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrorKindInternal
}
