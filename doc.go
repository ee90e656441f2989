// Package relq compiles chains of relational operations into literal SQL
// text for a configured dialect.
//
// The central type is Dataset, an immutable query descriptor: every
// builder method returns a new descriptor and never mutates its receiver,
// so descriptors are safe to share across goroutines and to use as
// branching points for derived queries.
//
//	ds := relq.New(ir.DefaultDialect(), "items")
//	ds, _ = ds.Where(map[string]any{"category": "a"})
//	ds, _ = ds.Where(ir.Lt("price", 100))
//	sql, _ := ds.SelectSQL()
//	// SELECT * FROM items WHERE ((category = 'a') AND (price < 100))
//
// The core produces text only. Executing statements, mapping rows back to
// values, and managing connections belong to the caller.
package relq
