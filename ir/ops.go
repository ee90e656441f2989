package ir

// Operator identifies a BoolExpr operator. The string value is the SQL
// keyword rendered between (or before) operands.
type Operator string

const (
	OpEq      Operator = "="
	OpNeq     Operator = "!="
	OpLt      Operator = "<"
	OpLte     Operator = "<="
	OpGt      Operator = ">"
	OpGte     Operator = ">="
	OpLike    Operator = "LIKE"
	OpNotLike Operator = "NOT LIKE"
	OpIs      Operator = "IS"
	OpIsNot   Operator = "IS NOT"
	OpIn      Operator = "IN"
	OpNotIn   Operator = "NOT IN"

	OpAnd Operator = "AND"
	OpOr  Operator = "OR"

	OpNot Operator = "NOT"
)

// BinaryOperators are operators taking exactly two operands, rendered
// "(lhs OP rhs)".
var BinaryOperators = map[Operator]bool{
	OpEq:      true,
	OpNeq:     true,
	OpLt:      true,
	OpLte:     true,
	OpGt:      true,
	OpGte:     true,
	OpLike:    true,
	OpNotLike: true,
	OpIs:      true,
	OpIsNot:   true,
	OpIn:      true,
	OpNotIn:   true,
}

// CompoundOperators are n-ary operators, rendered "(a OP b OP c)".
var CompoundOperators = map[Operator]bool{
	OpAnd: true,
	OpOr:  true,
}
