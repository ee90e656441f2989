package relq

import (
	"github.com/roach88/relq/ir"
)

// Where adds a filter predicate. The target clause is HAVING when the
// descriptor is already grouped, WHERE otherwise; a new predicate combines
// with any existing one via AND.
//
// Accepted condition kinds: expression nodes, a map (applying the
// mapping-to-conjunction rule), an ordered pair list, or a raw fragment.
// A bare boolean is rejected as a malformed filter.
func (d *Dataset) Where(conds ...any) (*Dataset, error) {
	expr, err := predicateFrom(conds)
	if err != nil {
		return nil, err
	}
	return d.addFilter(expr, false), nil
}

// Exclude adds the logical negation of a filter predicate, combined via
// AND. Negating an already-complex expression wraps it in NOT rather than
// simplifying; double negation is preserved literally.
func (d *Dataset) Exclude(conds ...any) (*Dataset, error) {
	expr, err := predicateFrom(conds)
	if err != nil {
		return nil, err
	}
	return d.addFilter(expr, true), nil
}

// And adds a predicate ANDed with the existing one. Unlike Where it
// requires a predicate to already exist on the active clause.
func (d *Dataset) And(conds ...any) (*Dataset, error) {
	if d.activeFilter() == nil {
		return nil, ir.NewError(ir.ErrCodeNoExistingFilter, "no existing filter to AND with")
	}
	return d.Where(conds...)
}

// Or adds a predicate ORed with the existing one. Requires a predicate to
// already exist on the active clause.
func (d *Dataset) Or(conds ...any) (*Dataset, error) {
	existing := d.activeFilter()
	if existing == nil {
		return nil, ir.NewError(ir.ErrCodeNoExistingFilter, "no existing filter to OR with")
	}
	expr, err := predicateFrom(conds)
	if err != nil {
		return nil, err
	}
	out := d.clone()
	combined := ir.Or(existing, expr)
	if len(out.c.group) > 0 {
		out.c.having = combined
	} else {
		out.c.where = combined
	}
	return out, nil
}

// Invert negates whichever of the WHERE and HAVING predicates are present.
// Each is wrapped in NOT; nothing is simplified or dropped.
func (d *Dataset) Invert() (*Dataset, error) {
	if d.c.where == nil && d.c.having == nil {
		return nil, ir.NewError(ir.ErrCodeInvalidOperation, "no filter to invert")
	}
	out := d.clone()
	if out.c.where != nil {
		out.c.where = ir.Not(out.c.where)
	}
	if out.c.having != nil {
		out.c.having = ir.Not(out.c.having)
	}
	return out, nil
}

// Having adds a HAVING predicate. The descriptor must already be grouped.
func (d *Dataset) Having(conds ...any) (*Dataset, error) {
	if len(d.c.group) == 0 {
		return nil, ir.NewError(ir.ErrCodeInvalidOperation, "HAVING requires a prior GROUP clause")
	}
	expr, err := predicateFrom(conds)
	if err != nil {
		return nil, err
	}
	out := d.clone()
	if out.c.having != nil {
		out.c.having = ir.And(out.c.having, expr)
	} else {
		out.c.having = expr
	}
	return out, nil
}

// Group replaces the GROUP BY columns. Bare name tokens are decoded; with
// a join present they are qualified against the primary source.
func (d *Dataset) Group(cols ...any) *Dataset {
	out := d.clone()
	out.c.group = make([]any, len(cols))
	for i, c := range cols {
		out.c.group[i] = d.qualifyGroupOrder(c)
	}
	return out
}

// GroupAppend adds GROUP BY columns to the existing list.
func (d *Dataset) GroupAppend(cols ...any) *Dataset {
	out := d.clone()
	existing := out.c.group
	grown := existing[:len(existing):len(existing)]
	for _, c := range cols {
		grown = append(grown, d.qualifyGroupOrder(c))
	}
	out.c.group = grown
	return out
}

// activeFilter returns the predicate of the clause Where would target:
// HAVING when grouped, WHERE otherwise.
func (d *Dataset) activeFilter() any {
	if len(d.c.group) > 0 {
		return d.c.having
	}
	return d.c.where
}

// addFilter combines a validated predicate (negated for Exclude) into the
// active clause.
func (d *Dataset) addFilter(expr any, negate bool) *Dataset {
	if negate {
		expr = ir.Not(expr)
	}
	out := d.clone()
	if len(out.c.group) > 0 {
		if out.c.having != nil {
			out.c.having = ir.And(out.c.having, expr)
		} else {
			out.c.having = expr
		}
	} else {
		if out.c.where != nil {
			out.c.where = ir.And(out.c.where, expr)
		} else {
			out.c.where = expr
		}
	}
	return out
}

// predicateFrom validates and normalizes filter arguments into a single
// predicate expression.
func predicateFrom(conds []any) (any, error) {
	if len(conds) == 0 {
		return nil, ir.NewError(ir.ErrCodeInvalidFilter, "no filter condition given")
	}
	exprs := make([]any, len(conds))
	for i, c := range conds {
		switch v := c.(type) {
		case bool:
			// A boolean literal is not a usable predicate; a caller
			// almost certainly meant a column comparison.
			return nil, ir.NewError(ir.ErrCodeInvalidFilter, "boolean literal %v is not a valid filter", v)
		case map[string]any:
			exprs[i] = ir.FromMap(v)
		case []ir.Pair:
			exprs[i] = ir.FromPairs(v)
		case ir.Expr:
			exprs[i] = v
		default:
			return nil, ir.NewError(ir.ErrCodeInvalidFilter, "unsupported filter argument type %T", c)
		}
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return ir.And(exprs...), nil
}
