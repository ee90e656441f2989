// Package literal converts values and expression trees into exact SQL
// text under a dialect configuration.
package literal

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/relq/internal/ref"
	"github.com/roach88/relq/ir"
)

const (
	dateFormat      = "2006-01-02"
	timestampFormat = "2006-01-02 15:04:05"
)

// Literalizer renders values as SQL text. It is a value type: copying is
// cheap and the zero dialect must not be used directly (use New).
type Literalizer struct {
	Dialect ir.Dialect
}

// New returns a Literalizer for the given dialect.
func New(d ir.Dialect) Literalizer {
	return Literalizer{Dialect: d}
}

// Literal renders any supported value or expression node as SQL text.
//
// The function is total over the supported set and fails with an
// UNSUPPORTED_LITERAL error for anything else. Raw fragments pass through
// verbatim; everything else is escaped according to the dialect.
func (l Literalizer) Literal(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case ir.Raw:
		return string(val), nil
	case string:
		return l.literalString(val), nil
	case bool:
		if val {
			return l.Dialect.BooleanTrue, nil
		}
		return l.Dialect.BooleanFalse, nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case *apd.Decimal:
		// Fixed-point text, never exponential.
		return val.Text('f'), nil
	case ir.Date:
		return "DATE '" + time.Time(val).Format(dateFormat) + "'", nil
	case time.Time:
		return "TIMESTAMP '" + val.Format(timestampFormat) + "'", nil
	case ir.Name:
		return l.literalColumnRef(ref.Parse(val)), nil
	case ir.ColumnRef:
		return l.literalColumnRef(val), nil
	case ir.QualifiedColumnRef:
		return l.qualifiedIdent(val.Table, val.Column), nil
	case ir.BoolExpr:
		return l.literalBoolExpr(val)
	case ir.Function:
		return l.literalFunction(val)
	case ir.Subscript:
		return l.literalSubscript(val)
	case ir.ColumnOrder:
		return l.literalColumnOrder(val)
	case ir.Subquery:
		return l.literalSubquery(val.Query)
	case ir.Pair:
		return l.Literal(ir.PairExpr(val.Key, val.Value))
	case []ir.Pair:
		return l.Literal(ir.FromPairs(val))
	case map[string]any:
		return l.Literal(ir.FromMap(val))
	case []any:
		return l.literalSlice(val)
	case ir.Selectable:
		return l.literalSubquery(val)
	default:
		return "", ir.NewError(ir.ErrCodeUnsupportedLiteral, "cannot literalize value of type %T", v)
	}
}

// literalString escapes and quotes a string literal. Backslashes are
// doubled before quotes so a backslash preceding a quote is not
// mis-escaped.
func (l Literalizer) literalString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", "''")
	return "'" + s + "'"
}

func (l Literalizer) qualifiedIdent(table, column string) string {
	return l.Dialect.QuoteIdent(table) + "." + l.Dialect.QuoteIdent(column)
}

func (l Literalizer) literalColumnRef(c ir.ColumnRef) string {
	var b strings.Builder
	if c.Table != "" {
		b.WriteString(l.Dialect.QuoteIdent(c.Table))
		b.WriteString(".")
	}
	b.WriteString(l.Dialect.QuoteIdent(c.Column))
	if c.Alias != "" {
		b.WriteString(" AS ")
		b.WriteString(l.Dialect.QuoteIdent(c.Alias))
	}
	return b.String()
}

// literalSlice renders an ordered sequence: a sequence of pairs becomes a
// conjunction, an empty sequence the literal (NULL), anything else a
// parenthesized comma-separated tuple.
func (l Literalizer) literalSlice(vals []any) (string, error) {
	if len(vals) == 0 {
		return "(NULL)", nil
	}
	if pairs, ok := allPairs(vals); ok {
		return l.Literal(ir.FromPairs(pairs))
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		s, err := l.Literal(v)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

func allPairs(vals []any) ([]ir.Pair, bool) {
	pairs := make([]ir.Pair, len(vals))
	for i, v := range vals {
		p, ok := v.(ir.Pair)
		if !ok {
			return nil, false
		}
		pairs[i] = p
	}
	return pairs, true
}

func (l Literalizer) literalBoolExpr(e ir.BoolExpr) (string, error) {
	switch {
	case e.Op == ir.OpNot:
		if len(e.Args) != 1 {
			return "", ir.NewError(ir.ErrCodeInvalidOperator, "NOT takes exactly one operand, got %d", len(e.Args))
		}
		inner, err := l.Literal(e.Args[0])
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(inner, "(") {
			return "NOT " + inner, nil
		}
		return "NOT (" + inner + ")", nil

	case ir.BinaryOperators[e.Op]:
		if len(e.Args) != 2 {
			return "", ir.NewError(ir.ErrCodeInvalidOperator, "operator %s takes exactly two operands, got %d", e.Op, len(e.Args))
		}
		lhs, err := l.Literal(e.Args[0])
		if err != nil {
			return "", err
		}
		rhs, err := l.Literal(e.Args[1])
		if err != nil {
			return "", err
		}
		return "(" + lhs + " " + string(e.Op) + " " + rhs + ")", nil

	case ir.CompoundOperators[e.Op]:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			s, err := l.Literal(a)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "(" + strings.Join(parts, " "+string(e.Op)+" ") + ")", nil

	default:
		return "", ir.NewError(ir.ErrCodeInvalidOperator, "unknown operator %q", string(e.Op))
	}
}

func (l Literalizer) literalFunction(f ir.Function) (string, error) {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		s, err := l.Literal(a)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")", nil
}

func (l Literalizer) literalSubscript(s ir.Subscript) (string, error) {
	base, err := l.Literal(s.Base)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(s.Indices))
	for i, idx := range s.Indices {
		v, err := l.Literal(idx)
		if err != nil {
			return "", err
		}
		parts[i] = v
	}
	return base + "[" + strings.Join(parts, ", ") + "]", nil
}

func (l Literalizer) literalColumnOrder(o ir.ColumnOrder) (string, error) {
	s, err := l.Literal(o.Expr)
	if err != nil {
		return "", err
	}
	switch o.Direction {
	case ir.Ascending:
		return s + " ASC", nil
	case ir.Descending:
		return s + " DESC", nil
	default:
		return s, nil
	}
}

func (l Literalizer) literalSubquery(q ir.Selectable) (string, error) {
	sel, err := q.SelectSQL()
	if err != nil {
		return "", err
	}
	return "(" + sel + ")", nil
}
