package relq

import "github.com/roach88/relq/ir"

// Error is the structured failure value produced by builders and the
// compiler. See the ir package for the code constants.
type Error = ir.Error

// ErrorCode categorizes query construction and compilation errors.
type ErrorCode = ir.ErrorCode

// Predicate helpers re-exported for callers that only import relq.
var (
	IsNoExistingFilter   = ir.IsNoExistingFilter
	IsInvalidFilter      = ir.IsInvalidFilter
	IsInvalidOperation   = ir.IsInvalidOperation
	IsInvalidJoinType    = ir.IsInvalidJoinType
	IsMissingSource      = ir.IsMissingSource
	IsUnsupportedLiteral = ir.IsUnsupportedLiteral
	IsInvalidOperator    = ir.IsInvalidOperator
)
