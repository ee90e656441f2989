package relq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/relq/ir"
)

func TestSetOperations(t *testing.T) {
	d := ir.DefaultDialect()
	a := New(d, "a")
	b := New(d, "b")

	testCases := []struct {
		name string
		ds   *Dataset
		want string
	}{
		{name: "union", ds: a.Union(b, false), want: "SELECT * FROM a UNION SELECT * FROM b"},
		{name: "union all", ds: a.Union(b, true), want: "SELECT * FROM a UNION ALL SELECT * FROM b"},
		{name: "intersect", ds: a.Intersect(b, false), want: "SELECT * FROM a INTERSECT SELECT * FROM b"},
		{name: "except all", ds: a.Except(b, true), want: "SELECT * FROM a EXCEPT ALL SELECT * FROM b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sql, err := tc.ds.SelectSQL()
			require.NoError(t, err)
			assert.Equal(t, tc.want, sql)
		})
	}
}

func TestSetOperations_ChainInCallOrder(t *testing.T) {
	d := ir.DefaultDialect()
	ds := New(d, "a").Union(New(d, "b"), false).Intersect(New(d, "c"), true)

	sql, err := ds.SelectSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM a UNION SELECT * FROM b INTERSECT ALL SELECT * FROM c", sql)
}

func TestSetOperations_RenderAfterLimit(t *testing.T) {
	d := ir.DefaultDialect()
	left, err := New(d, "a").Limit(5)
	require.NoError(t, err)

	sql, err := left.Union(New(d, "b"), false).SelectSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM a LIMIT 5 UNION SELECT * FROM b", sql)
}
