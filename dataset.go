package relq

import (
	"strconv"

	"github.com/roach88/relq/internal/literal"
	"github.com/roach88/relq/internal/ref"
	"github.com/roach88/relq/ir"
)

// Table is an entity reference usable wherever a bare table name is
// required in FROM or JOIN. ORM-layer table descriptors satisfy it.
type Table interface {
	TableName() string
}

// source is one normalized FROM entry: either a named table or an aliased
// subquery.
type source struct {
	name  string
	alias string
	sub   ir.Selectable
}

// compound is one stored set operation: the partner descriptor plus the
// keyword and ALL flag rendered after the left-hand SELECT.
type compound struct {
	kind string // "UNION", "INTERSECT", "EXCEPT"
	all  bool
	ds   *Dataset
}

// clauses is the clause store of one descriptor. It is copied by value on
// every derivation; slices and expression trees inside it are shared with
// ancestors and never edited in place.
type clauses struct {
	selectCols []any
	distinct   bool
	from       []source
	joins      string // accumulated compiled join text, leading space included
	where      any
	having     any
	group      []any
	order      []ir.ColumnOrder
	limit      *int
	offset     *int
	compounds  []compound
	rawSQL     string

	// aliasNum is the auto-alias counter. It is carried per descriptor and
	// only ever incremented in a derived copy.
	aliasNum int

	// lastJoined is the name (or alias) of the most recently joined table,
	// used to qualify bare right-hand join condition columns.
	lastJoined string
}

// Dataset is an immutable query descriptor. Builder methods derive new
// descriptors; compiling methods render SQL text. The dialect is captured
// at construction and shared by every descendant.
type Dataset struct {
	dialect ir.Dialect
	c       clauses
}

// New creates a descriptor selecting from the given base table.
func New(dialect ir.Dialect, table string) *Dataset {
	return &Dataset{
		dialect: dialect,
		c:       clauses{from: []source{{name: table}}},
	}
}

// Dialect returns the dialect configuration captured at construction.
func (d *Dataset) Dialect() ir.Dialect { return d.dialect }

// clone derives a descriptor sharing every unmodified clause value with
// its ancestor. Callers modify only the fields of the returned copy.
func (d *Dataset) clone() *Dataset {
	c := d.c
	return &Dataset{dialect: d.dialect, c: c}
}

// From replaces the descriptor's sources. Accepted source kinds: a table
// name string, a Table entity reference, or a nested descriptor (compiled
// as an auto-aliased subquery).
func (d *Dataset) From(sources ...any) (*Dataset, error) {
	out := d.clone()
	out.c.from = make([]source, 0, len(sources))
	for _, s := range sources {
		switch v := s.(type) {
		case string:
			out.c.from = append(out.c.from, source{name: v})
		case Table:
			out.c.from = append(out.c.from, source{name: v.TableName()})
		case ir.Selectable:
			alias := out.nextAlias()
			out.c.from = append(out.c.from, source{sub: v, alias: alias})
		default:
			return nil, ir.NewError(ir.ErrCodeInvalidOperation, "unsupported FROM source type %T", s)
		}
	}
	return out, nil
}

// FromSelf wraps the whole descriptor as the sole FROM source of a fresh
// descriptor, discarding every other clause. The alias counter carries
// forward so nested wrapping never reuses an alias.
func (d *Dataset) FromSelf() *Dataset {
	out := &Dataset{dialect: d.dialect}
	out.c.aliasNum = d.c.aliasNum
	alias := out.nextAlias()
	out.c.from = []source{{sub: d, alias: alias}}
	return out
}

// Select replaces the projected columns. Name strings decode through the
// table__column___alias convention.
func (d *Dataset) Select(cols ...any) *Dataset {
	out := d.clone()
	out.c.selectCols = normalizeCols(cols)
	return out
}

// SelectAppend adds projected columns to the existing list.
func (d *Dataset) SelectAppend(cols ...any) *Dataset {
	out := d.clone()
	existing := out.c.selectCols
	out.c.selectCols = append(existing[:len(existing):len(existing)], normalizeCols(cols)...)
	return out
}

// Distinct marks the SELECT as DISTINCT.
func (d *Dataset) Distinct() *Dataset {
	out := d.clone()
	out.c.distinct = true
	return out
}

// WithSQL sets a raw statement override. SelectSQL returns it verbatim,
// ignoring every other clause.
func (d *Dataset) WithSQL(sql string) *Dataset {
	out := d.clone()
	out.c.rawSQL = sql
	return out
}

// nextAlias increments the descriptor's auto-alias counter and returns the
// new alias. Must be called on a freshly cloned descriptor.
func (d *Dataset) nextAlias() string {
	d.c.aliasNum++
	return "t" + strconv.Itoa(d.c.aliasNum)
}

// firstSourceTable returns the name used to qualify bare columns against
// the primary source: the alias if one exists, else the table name. Empty
// when there is no usable source.
func (d *Dataset) firstSourceTable() string {
	if len(d.c.from) == 0 {
		return ""
	}
	s := d.c.from[0]
	if s.alias != "" {
		return s.alias
	}
	return s.name
}

func (d *Dataset) literalizer() literal.Literalizer {
	return literal.New(d.dialect)
}

// normalizeCols converts bare name strings in a column list into typed
// references; other expressions pass through.
func normalizeCols(cols []any) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		switch v := c.(type) {
		case string:
			out[i] = ref.Parse(ir.Name(v))
		case ir.Name:
			out[i] = ref.Parse(v)
		default:
			out[i] = c
		}
	}
	return out
}

// qualifyGroupOrder normalizes one group/order element: bare name tokens
// are decoded, and when the descriptor has a join they are qualified
// against the primary source to keep them unambiguous.
func (d *Dataset) qualifyGroupOrder(v any) any {
	name, ok := nameToken(v)
	if !ok {
		return v
	}
	cr := ref.Parse(name)
	if cr.Table == "" && cr.Alias == "" && d.c.joins != "" {
		if t := d.firstSourceTable(); t != "" {
			return ref.Qualify(name, t)
		}
	}
	return cr
}

func nameToken(v any) (ir.Name, bool) {
	switch n := v.(type) {
	case string:
		return ir.Name(n), true
	case ir.Name:
		return n, true
	default:
		return "", false
	}
}
