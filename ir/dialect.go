package ir

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dialect holds the quoting and escaping configuration for one SQL
// dialect. It is a plain value: captured at descriptor construction and
// never mutated afterwards, so descriptors sharing one are safe to use
// concurrently.
type Dialect struct {
	// QuoteChar is the identifier quote character, doubled when it appears
	// inside an identifier.
	QuoteChar string `yaml:"identifier_quote_char"`

	// QuoteIdentifiers enables identifier quoting for table and column
	// names.
	QuoteIdentifiers bool `yaml:"quote_identifiers"`

	// BooleanTrue and BooleanFalse are the rendered boolean literals,
	// stored in final form (quotes included when the dialect needs them).
	BooleanTrue  string `yaml:"boolean_true_literal"`
	BooleanFalse string `yaml:"boolean_false_literal"`
}

// DefaultDialect returns the standard configuration: double-quote
// identifier quoting (disabled), and 't'/'f' boolean literals.
func DefaultDialect() Dialect {
	return Dialect{
		QuoteChar:    `"`,
		BooleanTrue:  `'t'`,
		BooleanFalse: `'f'`,
	}
}

// LoadDialect reads a YAML dialect definition. Absent fields keep their
// defaults, so a file may override only what it needs:
//
//	quote_identifiers: true
//	boolean_true_literal: "TRUE"
//	boolean_false_literal: "FALSE"
func LoadDialect(r io.Reader) (Dialect, error) {
	d := DefaultDialect()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if err == io.EOF {
			return DefaultDialect(), nil
		}
		return Dialect{}, fmt.Errorf("load dialect: %w", err)
	}
	if d.QuoteChar == "" {
		d.QuoteChar = `"`
	}
	return d, nil
}

// QuoteIdent quotes one identifier part when quoting is enabled, doubling
// any embedded quote characters.
func (d Dialect) QuoteIdent(name string) string {
	if !d.QuoteIdentifiers {
		return name
	}
	return d.QuoteChar + strings.ReplaceAll(name, d.QuoteChar, d.QuoteChar+d.QuoteChar) + d.QuoteChar
}
