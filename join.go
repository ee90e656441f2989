package relq

import (
	"strings"

	"github.com/roach88/relq/internal/ref"
	"github.com/roach88/relq/ir"
)

// JoinType identifies a join kind. The set is closed; anything else fails
// with INVALID_JOIN_TYPE.
type JoinType string

const (
	InnerJoin      JoinType = "INNER JOIN"
	LeftOuterJoin  JoinType = "LEFT OUTER JOIN"
	RightOuterJoin JoinType = "RIGHT OUTER JOIN"
	FullOuterJoin  JoinType = "FULL OUTER JOIN"
)

var validJoinTypes = map[JoinType]bool{
	InnerJoin:      true,
	LeftOuterJoin:  true,
	RightOuterJoin: true,
	FullOuterJoin:  true,
}

// Join appends a join to the descriptor.
//
// The right-hand source is a table name string, a Table entity reference,
// or a nested descriptor, which receives an auto-generated alias t<N> from
// the descriptor's counter.
//
// Conditions are a map or ordered pair list comparing columns: each key is
// qualified against the newly joined table, and each bare name on the
// value side is qualified against the most recently joined table (or the
// primary source for the first join). An expression node is taken as a
// ready-made ON predicate.
//
// The rendered ON text appends to the accumulated join string; the
// compiler emits that string as-is and never re-parses it.
func (d *Dataset) Join(kind JoinType, rhs any, conds any) (*Dataset, error) {
	if !validJoinTypes[kind] {
		return nil, ir.NewError(ir.ErrCodeInvalidJoinType, "invalid join type %q", string(kind))
	}

	out := d.clone()
	lit := out.literalizer()

	// Resolve the right-hand source and the name future bare columns
	// qualify against.
	var rhsSQL, rhsName string
	switch v := rhs.(type) {
	case string:
		rhsName = v
		rhsSQL = out.dialect.QuoteIdent(v)
	case Table:
		rhsName = v.TableName()
		rhsSQL = out.dialect.QuoteIdent(rhsName)
	case ir.Selectable:
		sub, err := v.SelectSQL()
		if err != nil {
			return nil, err
		}
		rhsName = out.nextAlias()
		rhsSQL = "(" + sub + ") AS " + out.dialect.QuoteIdent(rhsName)
	default:
		return nil, ir.NewError(ir.ErrCodeInvalidOperation, "unsupported join source type %T", rhs)
	}

	// The table bare right-hand condition columns belong to.
	prior := out.c.lastJoined
	if prior == "" {
		prior = out.firstSourceTable()
	}

	on, err := out.joinCondition(conds, rhsName, prior)
	if err != nil {
		return nil, err
	}
	onSQL, err := lit.Literal(on)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(out.c.joins)
	b.WriteString(" ")
	b.WriteString(string(kind))
	b.WriteString(" ")
	b.WriteString(rhsSQL)
	b.WriteString(" ON ")
	b.WriteString(onSQL)

	out.c.joins = b.String()
	out.c.lastJoined = rhsName
	return out, nil
}

// joinCondition normalizes join conditions into a predicate expression.
func (d *Dataset) joinCondition(conds any, rhsTable, prior string) (any, error) {
	switch v := conds.(type) {
	case nil:
		return nil, ir.NewError(ir.ErrCodeInvalidOperation, "join requires a condition")
	case map[string]any:
		return joinPairs(ir.SortedPairs(v), rhsTable, prior), nil
	case []ir.Pair:
		return joinPairs(v, rhsTable, prior), nil
	case ir.Expr:
		return v, nil
	default:
		return nil, ir.NewError(ir.ErrCodeInvalidOperation, "unsupported join condition type %T", conds)
	}
}

// joinPairs builds the equi-join predicate for a condition pair list. Keys
// qualify against the new table; bare name values qualify against the
// prior table. Non-name values compare as literals.
func joinPairs(pairs []ir.Pair, rhsTable, prior string) any {
	exprs := make([]any, len(pairs))
	for i, p := range pairs {
		left := ref.Qualify(ir.Name(p.Key), rhsTable)
		var right any
		if name, ok := nameToken(p.Value); ok {
			right = ref.Qualify(name, prior)
		} else {
			right = p.Value
		}
		exprs[i] = ir.BoolExpr{Op: ir.OpEq, Args: []any{left, right}}
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return ir.And(exprs...)
}
