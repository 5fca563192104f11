package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// ValidationError covers malformed or out-of-range caller input:
	// amounts below the minimum stake, zero-amount operations,
	// insufficient balance.
	ValidationError ErrorCode = "VALIDATION_ERROR"
	// StateError covers transitions rejected by the account's current
	// state: principal still locked, nothing to claim or withdraw.
	StateError ErrorCode = "STATE_ERROR"
	// TransferError covers failures reported by the underlying token
	// ledger. The whole transition is rolled back before it surfaces.
	TransferError ErrorCode = "TRANSFER_ERROR"
	// AuthorizationError covers non-owner calls to administrative
	// operations and deposits attempted while the pool is paused.
	AuthorizationError   ErrorCode = "AUTHORIZATION_ERROR"
	NotFound             ErrorCode = "NOT_FOUND"
	BadRequest           ErrorCode = "BAD_REQUEST"
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
)

// Error carries the HTTP status and internal error code alongside the
// wrapped cause, so API handlers can render it without re-classifying.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.ErrorCode.String()
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
		Err:        err,
	}
}
