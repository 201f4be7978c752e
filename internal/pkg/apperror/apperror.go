package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindCooldown           Kind = "cooldown"
	KindConflict           Kind = "conflict"
	KindUpstreamFailure    Kind = "upstream_failure"
	KindPersistenceFailure Kind = "persistence_failure"
)

// AppError is the error type crossing service boundaries. Handlers map
// Kind to a status code; DaysRemaining is only set for KindCooldown.
type AppError struct {
	Kind          Kind
	Message       string
	DaysRemaining int
	Err           error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Cooldown(daysRemaining int) *AppError {
	return &AppError{
		Kind:          KindCooldown,
		Message:       fmt.Sprintf("analysis available again in %d day(s)", daysRemaining),
		DaysRemaining: daysRemaining,
	}
}

func Upstream(message string, err error) *AppError {
	return &AppError{Kind: KindUpstreamFailure, Message: message, Err: err}
}

func Persistence(message string, err error) *AppError {
	return &AppError{Kind: KindPersistenceFailure, Message: message, Err: err}
}

// KindOf returns the kind of the first AppError in err's chain, or "" when
// err carries none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As is a shorthand for errors.As on *AppError.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
