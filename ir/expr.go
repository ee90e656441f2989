package ir

import (
	"sort"
	"time"
)

// Expr is a sealed interface over the expression variants the compiler
// understands.
//
// Only types in this package implement it. The marker method pattern
// prevents external implementations and enables exhaustive type switches
// in the literalizer.
//
// Scalar literals (nil, string, bool, ints, floats, *apd.Decimal,
// time.Time, Date) are intentionally NOT Exprs: they are plain Go values
// accepted anywhere an operand is expected and rendered directly by the
// literalizer.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Raw is an already-rendered SQL fragment. It passes through literalization
// verbatim; the caller is responsible for its safety.
type Raw string

func (Raw) exprNode() {}

// Name is an undecoded column token using the compact naming convention:
//
//	"price"                  bare column
//	"items__price"           table-qualified column
//	"items__price___cost"    table-qualified column with alias
//	"price___cost"           bare column with alias
//
// Name is an input-compatibility shim. Builders decode it into a ColumnRef
// or QualifiedColumnRef immediately; only the literalizer ever renders one
// directly, by decoding it first.
type Name string

func (Name) exprNode() {}

// ColumnRef is a decoded column reference. Table and Alias may be empty.
type ColumnRef struct {
	Table  string
	Column string
	Alias  string
}

func (ColumnRef) exprNode() {}

// QualifiedColumnRef is a column reference bound to a specific source
// table. Unlike ColumnRef it can never be bare.
type QualifiedColumnRef struct {
	Table  string
	Column string
}

func (QualifiedColumnRef) exprNode() {}

// BoolExpr is an operator applied to an ordered list of operands.
//
// Binary operators take exactly two operands and render "(lhs OP rhs)".
// Compound operators (AND, OR) take any number and render
// "(a OP b OP c)". OpNot takes one and renders "NOT (operand)".
type BoolExpr struct {
	Op   Operator
	Args []any
}

func (BoolExpr) exprNode() {}

// Function is a function call expression, rendered "name(arg, arg)".
type Function struct {
	Name string
	Args []any
}

func (Function) exprNode() {}

// Subscript is an element access expression, rendered "base[i, j]".
type Subscript struct {
	Base    any
	Indices []any
}

func (Subscript) exprNode() {}

// Direction is the ordering direction of one ORDER BY element.
type Direction int

const (
	// NoDirection renders no suffix; ReverseOrder treats it as ascending.
	NoDirection Direction = iota
	Ascending
	Descending
)

// ColumnOrder pairs an expression with an ordering direction.
type ColumnOrder struct {
	Expr      any
	Direction Direction
}

func (ColumnOrder) exprNode() {}

// Reversed returns the order element with its direction flipped.
// DESC becomes ASC, ASC becomes DESC, and an unspecified direction
// becomes DESC.
func (o ColumnOrder) Reversed() ColumnOrder {
	switch o.Direction {
	case Descending:
		o.Direction = Ascending
	default:
		o.Direction = Descending
	}
	return o
}

// Selectable is anything that can compile itself to a SELECT statement.
// The root Dataset type implements it; the indirection lets a descriptor
// nest inside another descriptor's expression tree without an import cycle.
type Selectable interface {
	SelectSQL() (string, error)
}

// Subquery embeds a compiled-on-demand SELECT inside an expression tree.
// It renders as "(<compiled SELECT>)".
type Subquery struct {
	Query Selectable
}

func (Subquery) exprNode() {}

// Pair is one key/value element of the mapping-to-conjunction rule.
// A sequence whose elements are all Pairs literalizes as a conjunction
// rather than a tuple.
type Pair struct {
	Key   string
	Value any
}

// Range is an inclusive interval. As a Pair value it expands to
// (key >= Start) AND (key <= End).
type Range struct {
	Start any
	End   any
}

// Date is a calendar date literal, rendered "DATE 'YYYY-MM-DD'".
// A plain time.Time renders as a TIMESTAMP instead.
type Date time.Time

// Asc marks an expression as ascending for ORDER BY. A string operand is
// treated as a name token.
func Asc(expr any) ColumnOrder {
	return ColumnOrder{Expr: operand(expr), Direction: Ascending}
}

// Desc marks an expression as descending for ORDER BY.
func Desc(expr any) ColumnOrder {
	return ColumnOrder{Expr: operand(expr), Direction: Descending}
}

// operand normalizes a constructor argument: bare strings become Name
// tokens so they render as column references, not string literals.
func operand(v any) any {
	if s, ok := v.(string); ok {
		return Name(s)
	}
	return v
}

// Eq builds an equality test. The column side is a name token or
// expression; the value side is any literalizable value.
func Eq(col, value any) BoolExpr { return BoolExpr{Op: OpEq, Args: []any{operand(col), value}} }

// Neq builds an inequality test.
func Neq(col, value any) BoolExpr { return BoolExpr{Op: OpNeq, Args: []any{operand(col), value}} }

// Lt builds a less-than test.
func Lt(col, value any) BoolExpr { return BoolExpr{Op: OpLt, Args: []any{operand(col), value}} }

// Lte builds a less-than-or-equal test.
func Lte(col, value any) BoolExpr { return BoolExpr{Op: OpLte, Args: []any{operand(col), value}} }

// Gt builds a greater-than test.
func Gt(col, value any) BoolExpr { return BoolExpr{Op: OpGt, Args: []any{operand(col), value}} }

// Gte builds a greater-than-or-equal test.
func Gte(col, value any) BoolExpr { return BoolExpr{Op: OpGte, Args: []any{operand(col), value}} }

// Like builds a LIKE test.
func Like(col, pattern any) BoolExpr {
	return BoolExpr{Op: OpLike, Args: []any{operand(col), pattern}}
}

// In builds an inclusion test against a tuple or subquery.
func In(col, values any) BoolExpr { return BoolExpr{Op: OpIn, Args: []any{operand(col), values}} }

// IsNull builds an "IS NULL" test.
func IsNull(col any) BoolExpr { return BoolExpr{Op: OpIs, Args: []any{operand(col), nil}} }

// And builds a conjunction of the given predicates.
func And(exprs ...any) BoolExpr { return BoolExpr{Op: OpAnd, Args: exprs} }

// Or builds a disjunction of the given predicates.
func Or(exprs ...any) BoolExpr { return BoolExpr{Op: OpOr, Args: exprs} }

// Not wraps a predicate in a logical negation. Negating an already-negated
// expression wraps again; double negation is never collapsed.
func Not(expr any) BoolExpr { return BoolExpr{Op: OpNot, Args: []any{expr}} }

// PairExpr applies the mapping-to-conjunction rule to a single key/value
// pair:
//
//   - nil value        -> key IS NULL
//   - Range value      -> (key >= start) AND (key <= end)
//   - slice value      -> key IN (tuple)
//   - Selectable value -> key IN (subquery)
//   - anything else    -> key = value
func PairExpr(key string, value any) BoolExpr {
	col := Name(key)
	switch v := value.(type) {
	case nil:
		return BoolExpr{Op: OpIs, Args: []any{col, nil}}
	case Range:
		return And(Gte(col, v.Start), Lte(col, v.End))
	case []any:
		return BoolExpr{Op: OpIn, Args: []any{col, v}}
	case Selectable:
		return BoolExpr{Op: OpIn, Args: []any{col, v}}
	default:
		return BoolExpr{Op: OpEq, Args: []any{col, value}}
	}
}

// FromPairs builds a predicate from ordered key/value pairs using the
// mapping-to-conjunction rule. A single pair yields its predicate directly;
// multiple pairs yield their conjunction.
func FromPairs(pairs []Pair) BoolExpr {
	if len(pairs) == 1 {
		return PairExpr(pairs[0].Key, pairs[0].Value)
	}
	args := make([]any, len(pairs))
	for i, p := range pairs {
		args[i] = PairExpr(p.Key, p.Value)
	}
	return BoolExpr{Op: OpAnd, Args: args}
}

// FromMap builds a predicate from a mapping using the
// mapping-to-conjunction rule. Keys are visited in sorted order so output
// is deterministic.
func FromMap(m map[string]any) BoolExpr {
	return FromPairs(SortedPairs(m))
}

// SortedPairs converts a mapping to an ordered pair list with sorted keys.
func SortedPairs(m map[string]any) []Pair {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]Pair, len(keys))
	for i, k := range keys {
		pairs[i] = Pair{Key: k, Value: m[k]}
	}
	return pairs
}
