package relq

import (
	"strconv"
	"strings"

	"github.com/roach88/relq/ir"
)

// SelectSQL compiles the descriptor into a SELECT statement.
//
// Fragment order is fixed: SELECT [DISTINCT] columns FROM sources [joins]
// [WHERE] [GROUP BY] [ORDER BY] [HAVING] [LIMIT [OFFSET]] [set-ops].
// HAVING is emitted after ORDER BY; downstream consumers depend on that
// exact ordering. A raw-SQL override short-circuits and is returned
// verbatim.
func (d *Dataset) SelectSQL() (string, error) {
	if d.c.rawSQL != "" {
		return d.c.rawSQL, nil
	}
	if len(d.c.from) == 0 {
		return "", ir.NewError(ir.ErrCodeMissingSource, "no FROM source to select from")
	}

	lit := d.literalizer()
	var b strings.Builder

	b.WriteString("SELECT ")
	if d.c.distinct {
		b.WriteString("DISTINCT ")
	}
	if len(d.c.selectCols) == 0 {
		b.WriteString("*")
	} else {
		cols, err := d.literalList(d.c.selectCols)
		if err != nil {
			return "", err
		}
		b.WriteString(cols)
	}

	from, err := d.fromSQL()
	if err != nil {
		return "", err
	}
	b.WriteString(" FROM ")
	b.WriteString(from)

	b.WriteString(d.c.joins)

	if d.c.where != nil {
		s, err := lit.Literal(d.c.where)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE ")
		b.WriteString(s)
	}

	if len(d.c.group) > 0 {
		s, err := d.literalList(d.c.group)
		if err != nil {
			return "", err
		}
		b.WriteString(" GROUP BY ")
		b.WriteString(s)
	}

	if len(d.c.order) > 0 {
		parts := make([]string, len(d.c.order))
		for i, o := range d.c.order {
			s, err := lit.Literal(o)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}

	if d.c.having != nil {
		s, err := lit.Literal(d.c.having)
		if err != nil {
			return "", err
		}
		b.WriteString(" HAVING ")
		b.WriteString(s)
	}

	if d.c.limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*d.c.limit))
		if d.c.offset != nil {
			b.WriteString(" OFFSET ")
			b.WriteString(strconv.Itoa(*d.c.offset))
		}
	}

	for _, cp := range d.c.compounds {
		rhs, err := cp.ds.SelectSQL()
		if err != nil {
			return "", err
		}
		b.WriteString(" ")
		b.WriteString(cp.kind)
		if cp.all {
			b.WriteString(" ALL")
		}
		b.WriteString(" ")
		b.WriteString(rhs)
	}

	return b.String(), nil
}

// InsertSQL compiles an INSERT statement. With no values it emits a
// DEFAULT VALUES form; a map emits explicit columns (sorted) and values;
// a nested descriptor emits INSERT INTO table followed by its compiled
// SELECT; anything else is a positional value list.
func (d *Dataset) InsertSQL(values ...any) (string, error) {
	table, err := d.singleTable()
	if err != nil {
		return "", err
	}
	prefix := "INSERT INTO " + d.dialect.QuoteIdent(table)

	if len(values) == 0 {
		return prefix + " DEFAULT VALUES", nil
	}

	if len(values) == 1 {
		switch v := values[0].(type) {
		case map[string]any:
			return d.insertColumns(prefix, ir.SortedPairs(v))
		case []ir.Pair:
			return d.insertColumns(prefix, v)
		case *Dataset:
			sub, err := v.SelectSQL()
			if err != nil {
				return "", err
			}
			return prefix + " " + sub, nil
		case []any:
			vals, err := d.literalList(v)
			if err != nil {
				return "", err
			}
			return prefix + " VALUES (" + vals + ")", nil
		}
	}

	vals, err := d.literalList(values)
	if err != nil {
		return "", err
	}
	return prefix + " VALUES (" + vals + ")", nil
}

func (d *Dataset) insertColumns(prefix string, pairs []ir.Pair) (string, error) {
	lit := d.literalizer()
	cols := make([]string, len(pairs))
	vals := make([]string, len(pairs))
	for i, p := range pairs {
		cols[i] = d.dialect.QuoteIdent(p.Key)
		s, err := lit.Literal(p.Value)
		if err != nil {
			return "", err
		}
		vals[i] = s
	}
	return prefix + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(vals, ", ") + ")", nil
}

// UpdateSQL compiles an UPDATE statement from a column/value mapping.
// A grouped or multi-source descriptor (including any join) fails with
// INVALID_OPERATION before any rendering: ambiguous multi-table UPDATE
// targets are dialect-fragile.
func (d *Dataset) UpdateSQL(values map[string]any) (string, error) {
	table, err := d.modifiableTable("UPDATE")
	if err != nil {
		return "", err
	}
	lit := d.literalizer()

	pairs := ir.SortedPairs(values)
	sets := make([]string, len(pairs))
	for i, p := range pairs {
		v, err := lit.Literal(p.Value)
		if err != nil {
			return "", err
		}
		sets[i] = d.dialect.QuoteIdent(p.Key) + " = " + v
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(d.dialect.QuoteIdent(table))
	b.WriteString(" SET ")
	b.WriteString(strings.Join(sets, ", "))

	if d.c.where != nil {
		s, err := lit.Literal(d.c.where)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE ")
		b.WriteString(s)
	}
	return b.String(), nil
}

// DeleteSQL compiles a DELETE statement, with the same single-source
// guard as UpdateSQL.
func (d *Dataset) DeleteSQL() (string, error) {
	table, err := d.modifiableTable("DELETE")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(d.dialect.QuoteIdent(table))

	if d.c.where != nil {
		s, err := d.literalizer().Literal(d.c.where)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE ")
		b.WriteString(s)
	}
	return b.String(), nil
}

// ExistsSQL wraps the compiled SELECT as an EXISTS expression.
func (d *Dataset) ExistsSQL() (string, error) {
	sel, err := d.SelectSQL()
	if err != nil {
		return "", err
	}
	return "EXISTS (" + sel + ")", nil
}

// fromSQL renders the FROM sources.
func (d *Dataset) fromSQL() (string, error) {
	parts := make([]string, len(d.c.from))
	for i, s := range d.c.from {
		switch {
		case s.sub != nil:
			sub, err := s.sub.SelectSQL()
			if err != nil {
				return "", err
			}
			rendered := "(" + sub + ")"
			if s.alias != "" {
				rendered += " AS " + d.dialect.QuoteIdent(s.alias)
			}
			parts[i] = rendered
		default:
			rendered := d.dialect.QuoteIdent(s.name)
			if s.alias != "" {
				rendered += " AS " + d.dialect.QuoteIdent(s.alias)
			}
			parts[i] = rendered
		}
	}
	return strings.Join(parts, ", "), nil
}

// singleTable returns the sole named source, required by INSERT.
func (d *Dataset) singleTable() (string, error) {
	if len(d.c.from) == 0 {
		return "", ir.NewError(ir.ErrCodeMissingSource, "no table to insert into")
	}
	if len(d.c.from) > 1 || d.c.from[0].name == "" {
		return "", ir.NewError(ir.ErrCodeInvalidOperation, "INSERT requires a single named table source")
	}
	return d.c.from[0].name, nil
}

// modifiableTable validates the descriptor shape for UPDATE/DELETE: one
// named source, no joins, no grouping.
func (d *Dataset) modifiableTable(op string) (string, error) {
	if len(d.c.from) == 0 {
		return "", ir.NewError(ir.ErrCodeMissingSource, "no table to %s", op)
	}
	if len(d.c.group) > 0 {
		return "", ir.NewError(ir.ErrCodeInvalidOperation, "%s on a grouped dataset is not allowed", op)
	}
	if len(d.c.from) > 1 || d.c.joins != "" {
		return "", ir.NewError(ir.ErrCodeInvalidOperation, "%s spanning multiple tables is not allowed", op)
	}
	if d.c.from[0].name == "" {
		return "", ir.NewError(ir.ErrCodeInvalidOperation, "%s requires a named table source", op)
	}
	return d.c.from[0].name, nil
}

// literalList renders a comma-separated list of values.
func (d *Dataset) literalList(vals []any) (string, error) {
	lit := d.literalizer()
	parts := make([]string, len(vals))
	for i, v := range vals {
		s, err := lit.Literal(v)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}
