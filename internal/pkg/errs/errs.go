package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used for classification with errors.Is.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrObjectNotFound    = errors.New("object not found")
	ErrVersionConflict   = errors.New("version conflict")
	ErrConflict          = errors.New("conflict: concurrent update retries exhausted")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrAlreadySettled    = errors.New("order is already settled")
	ErrAmountMismatch    = errors.New("tendered amount does not cover the total")
)

// sanitize strips newlines from interpolated values so a single log line
// stays a single log line.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ValueIsRequiredError indicates a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error { return ErrValueIsRequired }

// ValueIsInvalidError indicates a value was present but malformed or
// out of the accepted domain.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error { return ErrValueIsInvalid }

// ObjectNotFoundError indicates that an entity could not be found by its id.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error { return ErrObjectNotFound }

// VersionConflictError indicates an optimistic compare-and-swap commit lost
// the race: the stored version no longer matches the version the caller read.
// Callers are expected to re-read the aggregate and reapply their delta.
type VersionConflictError struct {
	EntityType string
	ID         string
	Version    int64
}

func NewVersionConflictError(entityType, id string, version int64) *VersionConflictError {
	return &VersionConflictError{EntityType: entityType, ID: id, Version: version}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s at version %d", ErrVersionConflict, sanitize(e.EntityType), sanitize(e.ID), e.Version)
}

func (e *VersionConflictError) Unwrap() error { return ErrVersionConflict }

// ConflictError indicates the bounded retry policy around optimistic commits
// was exhausted without a successful write. The caller should surface a
// "try again" to the user rather than silently dropping the mutation.
type ConflictError struct {
	Operation string
	Attempts  int
	Cause     error
}

func NewConflictError(operation string, attempts int, cause error) *ConflictError {
	return &ConflictError{Operation: operation, Attempts: attempts, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s after %d attempts (cause: %s)",
			ErrConflict, sanitize(e.Operation), e.Attempts, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s after %d attempts", ErrConflict, sanitize(e.Operation), e.Attempts)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// InvalidTransitionError indicates an operation that is not legal from the
// entity's current state, e.g. settling an order that is still preparing.
type InvalidTransitionError struct {
	EntityType string
	From       string
	To         string
}

func NewInvalidTransitionError(entityType, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{EntityType: entityType, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot go from %s to %s",
		ErrInvalidTransition, sanitize(e.EntityType), sanitize(e.From), sanitize(e.To))
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// AlreadySettledError indicates an attempt to attach an order that is already
// referenced by a non-voided transaction.
type AlreadySettledError struct {
	OrderID       string
	TransactionID string
}

func NewAlreadySettledError(orderID, transactionID string) *AlreadySettledError {
	return &AlreadySettledError{OrderID: orderID, TransactionID: transactionID}
}

func (e *AlreadySettledError) Error() string {
	return fmt.Sprintf("%s: order %s is attached to transaction %s",
		ErrAlreadySettled, sanitize(e.OrderID), sanitize(e.TransactionID))
}

func (e *AlreadySettledError) Unwrap() error { return ErrAlreadySettled }

// AmountMismatchError indicates a capture whose tendered amount is below the
// computed settlement total. Amounts are in currency minor units.
type AmountMismatchError struct {
	Expected int64
	Tendered int64
}

func NewAmountMismatchError(expected, tendered int64) *AmountMismatchError {
	return &AmountMismatchError{Expected: expected, Tendered: tendered}
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d, tendered %d", ErrAmountMismatch, e.Expected, e.Tendered)
}

func (e *AmountMismatchError) Unwrap() error { return ErrAmountMismatch }
