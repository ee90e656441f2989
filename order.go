package relq

import "github.com/roach88/relq/ir"

// Order replaces the ORDER BY list. Elements are name tokens, expression
// nodes, or ir.ColumnOrder values from ir.Asc/ir.Desc; bare tokens carry
// no direction and render without a suffix.
func (d *Dataset) Order(cols ...any) *Dataset {
	out := d.clone()
	out.c.order = d.orderElements(cols)
	return out
}

// OrderAppend adds elements to the existing ORDER BY list.
func (d *Dataset) OrderAppend(cols ...any) *Dataset {
	out := d.clone()
	existing := out.c.order
	out.c.order = append(existing[:len(existing):len(existing)], d.orderElements(cols)...)
	return out
}

// ReverseOrder flips the direction of every ORDER BY element: DESC
// becomes ASC, ASC becomes DESC, and an unspecified direction becomes
// DESC. Applying it twice restores an explicit direction, so the toggle
// is involutive.
func (d *Dataset) ReverseOrder() *Dataset {
	out := d.clone()
	reversed := make([]ir.ColumnOrder, len(out.c.order))
	for i, o := range out.c.order {
		reversed[i] = o.Reversed()
	}
	out.c.order = reversed
	return out
}

func (d *Dataset) orderElements(cols []any) []ir.ColumnOrder {
	out := make([]ir.ColumnOrder, len(cols))
	for i, c := range cols {
		if o, ok := c.(ir.ColumnOrder); ok {
			out[i] = ir.ColumnOrder{Expr: d.qualifyGroupOrder(o.Expr), Direction: o.Direction}
			continue
		}
		out[i] = ir.ColumnOrder{Expr: d.qualifyGroupOrder(c)}
	}
	return out
}
