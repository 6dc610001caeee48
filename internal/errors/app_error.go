package errors

import (
	"errors"
	"net/http"
)

// AppError is the error every service returns to the HTTP layer. Err keeps the domain
// sentinel so callers can still match it with errors.Is.
type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeDuplicateEntry  = "DUPLICATE_ENTRY"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeThirdPartyError = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
)

var statusByCode = map[string]int{
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeDatabaseError:   http.StatusInternalServerError,
	ErrCodeDuplicateEntry:  http.StatusConflict,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeThirdPartyError: http.StatusInternalServerError,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
}

// New builds an AppError whose status follows from code. Unknown codes are 500.
func New(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	return &AppError{Code: code, Message: message, StatusCode: status}
}

func ValidationError(message string) *AppError { return New(ErrCodeValidation, message) }

func BadRequestError(message string) *AppError { return New(ErrCodeBadRequest, message) }

func NotFoundError(message string) *AppError { return New(ErrCodeNotFound, message) }

func UnauthorizedError(message string) *AppError { return New(ErrCodeUnauthorized, message) }

func ForbiddenError(message string) *AppError { return New(ErrCodeForbidden, message) }

func InternalError(message string) *AppError { return New(ErrCodeInternal, message) }

func DatabaseError(message string) *AppError { return New(ErrCodeDatabaseError, message) }

func DuplicateEntryError(message string) *AppError { return New(ErrCodeDuplicateEntry, message) }

// ConflictError reports a write that lost against the current state of a resource.
func ConflictError(message string) *AppError { return New(ErrCodeConflict, message) }

func ThirdPartyError(message string) *AppError { return New(ErrCodeThirdPartyError, message) }

func TooManyRequestsError(message string) *AppError { return New(ErrCodeTooManyRequests, message) }

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err carries an AppError with the given code anywhere in its chain.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == code
}
