package staking

import (
	"errors"
	"fmt"
)

// ValidationError rejects a transition before any mutation: amount below
// the minimum stake, zero-amount operations, insufficient balance.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// StateError rejects a transition the account's current state does not
// allow: principal still locked, nothing to claim, nothing staked.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

func IsStateError(err error) bool {
	var target *StateError
	return errors.As(err, &target)
}

// TransferError reports a failure of the underlying token ledger. The
// transition it aborted has been fully rolled back by the time the error
// surfaces.
type TransferError struct {
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s transfer failed: %s", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

func IsTransferError(err error) bool {
	var target *TransferError
	return errors.As(err, &target)
}

// AuthorizationError rejects operations gated by the access/pause
// collaborator: deposits while paused, admin calls by a non-owner.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func IsAuthorizationError(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}
