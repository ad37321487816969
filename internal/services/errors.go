package services

import "fmt"

// ErrorKind classifies the business failures a service can report.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a business failure. Any other error returned by a service is
// unexpected and should be reported as an internal failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrInvalidCredentials is the only failure login reports, whatever the cause.
var ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid email or password"}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFoundError(msg string, cause error) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Err: cause}
}

func conflictError(msg string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: cause}
}
