// Package errs provides standardized error types for the orderflow application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//   - Input and lookup failures: ValueIsRequiredError, ValueIsInvalidError,
//     ObjectNotFoundError
//   - Coordination and business-rule failures: VersionConflictError,
//     ConflictError, InvalidTransitionError, AlreadySettledError,
//     AmountMismatchError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Callers classify errors with errors.Is against the sentinels; the structs
// carry the detail needed for logging and transport mapping.
package errs
