package ir

import (
	"errors"
	"fmt"
)

// Error represents a validation failure detected by a builder or the
// compiler.
//
// All failures are immediate, synchronous, and non-retryable: they surface
// to the caller of the function that detected them, and a failing compile
// produces no SQL text.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes query construction and compilation errors.
type ErrorCode string

const (
	// ErrCodeNoExistingFilter indicates And/Or was invoked with no prior
	// predicate on the active clause.
	ErrCodeNoExistingFilter ErrorCode = "NO_EXISTING_FILTER"

	// ErrCodeInvalidFilter indicates a bare boolean was passed where a
	// predicate was expected.
	ErrCodeInvalidFilter ErrorCode = "INVALID_FILTER"

	// ErrCodeInvalidOperation indicates an operation invalid for the
	// descriptor's shape: UPDATE/DELETE on a grouped or multi-source
	// descriptor, HAVING without GROUP, or an out-of-range limit.
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// ErrCodeInvalidJoinType indicates a join kind outside the enumerated
	// set.
	ErrCodeInvalidJoinType ErrorCode = "INVALID_JOIN_TYPE"

	// ErrCodeMissingSource indicates compilation was attempted with no
	// FROM target.
	ErrCodeMissingSource ErrorCode = "MISSING_SOURCE"

	// ErrCodeUnsupportedLiteral indicates literalization encountered a
	// value outside the supported set.
	ErrCodeUnsupportedLiteral ErrorCode = "UNSUPPORTED_LITERAL"

	// ErrCodeInvalidOperator indicates a BoolExpr operator outside the
	// supported set.
	ErrCodeInvalidOperator ErrorCode = "INVALID_OPERATOR"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates an Error with the given code and formatted message.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// HasCode returns true if err is (or wraps) an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code == code
	}
	return false
}

// IsNoExistingFilter returns true for NO_EXISTING_FILTER errors.
func IsNoExistingFilter(err error) bool { return HasCode(err, ErrCodeNoExistingFilter) }

// IsInvalidFilter returns true for INVALID_FILTER errors.
func IsInvalidFilter(err error) bool { return HasCode(err, ErrCodeInvalidFilter) }

// IsInvalidOperation returns true for INVALID_OPERATION errors.
func IsInvalidOperation(err error) bool { return HasCode(err, ErrCodeInvalidOperation) }

// IsInvalidJoinType returns true for INVALID_JOIN_TYPE errors.
func IsInvalidJoinType(err error) bool { return HasCode(err, ErrCodeInvalidJoinType) }

// IsMissingSource returns true for MISSING_SOURCE errors.
func IsMissingSource(err error) bool { return HasCode(err, ErrCodeMissingSource) }

// IsUnsupportedLiteral returns true for UNSUPPORTED_LITERAL errors.
func IsUnsupportedLiteral(err error) bool { return HasCode(err, ErrCodeUnsupportedLiteral) }

// IsInvalidOperator returns true for INVALID_OPERATOR errors.
func IsInvalidOperator(err error) bool { return HasCode(err, ErrCodeInvalidOperator) }
