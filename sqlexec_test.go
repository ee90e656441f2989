package relq

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/relq/ir"
)

// TestCompiledStatementsExecute runs compiled statements against an
// in-memory SQLite database. The core only produces text; this test
// checks that the text is valid SQL end to end.
func TestCompiledStatementsExecute(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, category TEXT, price INTEGER)")
	require.NoError(t, err)

	d := ir.DefaultDialect()
	items := New(d, "items")

	ins, err := items.InsertSQL(map[string]any{"name": "widget", "category": "a", "price": 10})
	require.NoError(t, err)
	_, err = db.Exec(ins)
	require.NoError(t, err)

	ins, err = items.InsertSQL(map[string]any{"name": "gadget", "category": "a", "price": 200})
	require.NoError(t, err)
	_, err = db.Exec(ins)
	require.NoError(t, err)

	cheap, err := items.Where(map[string]any{"category": "a"})
	require.NoError(t, err)
	cheap, err = cheap.Where(ir.Lt("price", 100))
	require.NoError(t, err)
	sel, err := cheap.Select("name").Order("name").SelectSQL()
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow(sel).Scan(&name))
	assert.Equal(t, "widget", name)

	widget, err := items.Where(ir.Eq("name", "widget"))
	require.NoError(t, err)

	upd, err := widget.UpdateSQL(map[string]any{"price": 15})
	require.NoError(t, err)
	_, err = db.Exec(upd)
	require.NoError(t, err)

	var price int
	require.NoError(t, db.QueryRow("SELECT price FROM items WHERE name = 'widget'").Scan(&price))
	assert.Equal(t, 15, price)

	exists, err := widget.ExistsSQL()
	require.NoError(t, err)
	var found bool
	require.NoError(t, db.QueryRow("SELECT "+exists).Scan(&found))
	assert.True(t, found)

	del, err := widget.DeleteSQL()
	require.NoError(t, err)
	_, err = db.Exec(del)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM items").Scan(&count))
	assert.Equal(t, 1, count)

	// Joins and subqueries round-trip too.
	_, err = db.Exec("CREATE TABLE orders (id INTEGER PRIMARY KEY, item_id INTEGER)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO orders (item_id) VALUES ((SELECT id FROM items LIMIT 1))")
	require.NoError(t, err)

	joined, err := New(d, "orders").Join(InnerJoin, "items", map[string]any{"id": "item_id"})
	require.NoError(t, err)
	jsql, err := joined.Select(ir.QualifiedColumnRef{Table: "items", Column: "name"}).SelectSQL()
	require.NoError(t, err)
	require.NoError(t, db.QueryRow(jsql).Scan(&name))
	assert.Equal(t, "gadget", name)
}
