package relq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/relq/ir"
)

func TestSelectSQL_FragmentOrder(t *testing.T) {
	ds, err := newItems().Group("category").Having(ir.Gt(ir.Function{Name: "count", Args: []any{ir.Raw("*")}}, 1))
	require.NoError(t, err)
	ds = ds.Order("category")
	ds, err = ds.LimitRange(1, 5)
	require.NoError(t, err)

	sql, err := ds.SelectSQL()
	require.NoError(t, err)
	// HAVING renders after ORDER BY; that exact ordering is load-bearing
	// for downstream consumers.
	assert.Equal(t, "SELECT * FROM items GROUP BY category ORDER BY category HAVING (count(*) > 1) LIMIT 5 OFFSET 1", sql)
}

func TestSelectSQL_RawOverrideShortCircuits(t *testing.T) {
	ds, err := newItems().Where(ir.Eq("a", 1))
	require.NoError(t, err)

	sql, err := ds.WithSQL("SELECT 1").SelectSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", sql)
}

func TestSelectSQL_MissingSource(t *testing.T) {
	ds, err := newItems().From()
	require.NoError(t, err)

	sql, err := ds.SelectSQL()
	require.Error(t, err)
	assert.True(t, IsMissingSource(err))
	assert.Empty(t, sql, "a failing compile produces no SQL text")
}

func TestSelectSQL_SubqueryInPredicate(t *testing.T) {
	sold := New(ir.DefaultDialect(), "sold").Select("item_id")
	ds, err := newItems().Where(ir.In("id", sold))
	require.NoError(t, err)

	sql, err := ds.SelectSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM items WHERE (id IN (SELECT item_id FROM sold))", sql)
}

func TestInsertSQL_Forms(t *testing.T) {
	items := newItems()

	sql, err := items.InsertSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO items DEFAULT VALUES", sql)

	sql, err = items.InsertSQL(map[string]any{"price": 2, "name": "O'Brien"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO items (name, price) VALUES ('O''Brien', 2)", sql)

	sql, err = items.InsertSQL([]any{1, "a"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO items VALUES (1, 'a')", sql)

	sql, err = items.InsertSQL(1, "a")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO items VALUES (1, 'a')", sql)

	src := New(ir.DefaultDialect(), "old_items")
	sql, err = items.InsertSQL(src)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO items SELECT * FROM old_items", sql)
}

func TestInsertSQL_OrderedPairsKeepOrder(t *testing.T) {
	sql, err := newItems().InsertSQL([]ir.Pair{
		{Key: "name", Value: "widget"},
		{Key: "category", Value: "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO items (name, category) VALUES ('widget', 'a')", sql)
}

func TestInsertSQL_RequiresNamedTable(t *testing.T) {
	_, err := newItems().FromSelf().InsertSQL(map[string]any{"a": 1})
	require.Error(t, err)
	assert.True(t, IsInvalidOperation(err))
}

func TestUpdateSQL(t *testing.T) {
	ds, err := newItems().Where(ir.Eq("id", 1))
	require.NoError(t, err)

	sql, err := ds.UpdateSQL(map[string]any{"status": "done", "price": 2})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE items SET price = 2, status = 'done' WHERE (id = 1)", sql)
}

func TestUpdateSQL_GuardsMultiSourceAndGrouped(t *testing.T) {
	joined, err := newItems().Join(InnerJoin, "orders", map[string]any{"item_id": "id"})
	require.NoError(t, err)

	sql, err := joined.UpdateSQL(map[string]any{"price": 2})
	require.Error(t, err)
	assert.True(t, IsInvalidOperation(err))
	assert.Empty(t, sql, "no partial rendering on failure")

	sql, err = newItems().Group("category").UpdateSQL(map[string]any{"price": 2})
	require.Error(t, err)
	assert.True(t, IsInvalidOperation(err))
	assert.Empty(t, sql)

	multi, err := newItems().From("a", "b")
	require.NoError(t, err)
	_, err = multi.UpdateSQL(map[string]any{"price": 2})
	require.Error(t, err)
	assert.True(t, IsInvalidOperation(err))
}

func TestDeleteSQL(t *testing.T) {
	ds, err := newItems().Where(ir.Eq("id", 1))
	require.NoError(t, err)

	sql, err := ds.DeleteSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM items WHERE (id = 1)", sql)
}

func TestDeleteSQL_Guards(t *testing.T) {
	joined, err := newItems().Join(InnerJoin, "orders", map[string]any{"item_id": "id"})
	require.NoError(t, err)
	_, err = joined.DeleteSQL()
	require.Error(t, err)
	assert.True(t, IsInvalidOperation(err))

	_, err = newItems().Group("category").DeleteSQL()
	require.Error(t, err)
	assert.True(t, IsInvalidOperation(err))
}

func TestExistsSQL(t *testing.T) {
	ds, err := newItems().Where(ir.Eq("id", 1))
	require.NoError(t, err)

	sql, err := ds.ExistsSQL()
	require.NoError(t, err)
	assert.Equal(t, "EXISTS (SELECT * FROM items WHERE (id = 1))", sql)
}

func TestSelectSQL_QuotedIdentifiers(t *testing.T) {
	d := ir.DefaultDialect()
	d.QuoteIdentifiers = true

	ds, err := New(d, "items").Select("items__price___cost").Where(ir.Eq("price", 100))
	require.NoError(t, err)

	sql, err := ds.SelectSQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT "items"."price" AS "cost" FROM "items" WHERE ("price" = 100)`, sql)
}
