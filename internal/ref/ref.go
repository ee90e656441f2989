// Package ref decodes the compact column naming convention into typed
// expression nodes.
//
// A name token encodes up to three parts: a double underscore separates
// table from column, and a triple underscore introduces an alias. Decoding
// precedence, first match wins:
//
//  1. "table__column___alias" -> (table, column, alias)
//  2. "table___alias"         -> (, table, alias)   bare column with alias
//  3. "table__column"         -> (table, column, )
//  4. "name"                  -> (, name, )
//
// The raw token never travels past this package: callers receive ColumnRef
// or QualifiedColumnRef nodes and work with those.
package ref

import (
	"strings"

	"github.com/roach88/relq/ir"
)

const (
	qualifierSep = "__"
	aliasSep     = "___"
)

// Parse decodes a name token into a column reference.
func Parse(name ir.Name) ir.ColumnRef {
	table, column, alias := split(string(name))
	return ir.ColumnRef{Table: table, Column: column, Alias: alias}
}

// Qualify decodes a name token and binds it to the given table when the
// token carries no qualifier of its own. Any alias on the token is
// discarded: qualified references are used in join conditions and
// group/order normalization, where aliases are not legal.
func Qualify(name ir.Name, table string) ir.QualifiedColumnRef {
	t, column, _ := split(string(name))
	if t == "" {
		t = table
	}
	return ir.QualifiedColumnRef{Table: t, Column: column}
}

// split applies the decoding precedence to a raw token.
func split(s string) (table, column, alias string) {
	rest := s
	if i := strings.Index(s, aliasSep); i >= 0 {
		rest, alias = s[:i], s[i+len(aliasSep):]
	}
	if i := strings.Index(rest, qualifierSep); i >= 0 {
		table, column = rest[:i], rest[i+len(qualifierSep):]
		return table, column, alias
	}
	return "", rest, alias
}
