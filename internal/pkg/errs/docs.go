// Package errs provides standardized error types for the e-pharmacy application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside of its allowed range
//   - ObjectNotFoundError: For when an object cannot be found
//   - BusinessRuleError: For expected rejections that carry a stable reason code
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Value errors describe malformed input. Business rule errors describe a
// well-formed request the current state of the system does not allow
// (insufficient stock, invalid status transition) and are rendered to API
// clients through their Reason code.
package errs
