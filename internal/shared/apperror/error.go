package apperror

import "fmt"

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	// CodeInvalidState rejects an operation the record's lifecycle does not
	// allow, e.g. processing a completed payroll run or approving a
	// rejected leave.
	CodeInvalidState = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	// Details is rendered as error.details in the response envelope.
	Details any
	Err     error

	base *AppError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether e was derived from target through WithDetails, so
// errors.Is keeps matching the package-level sentinel.
func (e *AppError) Is(target error) bool {
	for b := e.base; b != nil; b = b.base {
		if b == target {
			return true
		}
	}
	return false
}

// WithDetails returns a copy of e carrying details. The sentinel itself is
// never mutated.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	cp.base = e
	return &cp
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap returns nil when err is nil.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
