package sqlfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdg-go/bjson/bjson"
)

func TestWalkTreeIncludesRootAndDescendants(t *testing.T) {
	p := mustParseFn(t, `{"a":[1,2]}`)
	rows, err := WalkTree(p, nil)
	require.NoError(t, err)
	// root + "a" + two array elements = 4 rows
	require.Len(t, rows, 4)

	root := rows[0]
	assert.Nil(t, root.Key)
	assert.Equal(t, int64(-1), root.Parent)
	assert.Equal(t, "$", root.FullKey)

	a := rows[1]
	assert.Equal(t, "a", string(a.Key.Text()))
	assert.Equal(t, "$.a", a.FullKey)
	assert.Equal(t, root.ID, a.Parent)

	elem0 := rows[2]
	assert.Equal(t, int64(0), elem0.Key.Int64())
	assert.Equal(t, "$.a[0]", elem0.FullKey)
	assert.Equal(t, a.ID, elem0.Parent)
}

func TestWalkTreeOnScalarIsSingleRow(t *testing.T) {
	p := mustParseFn(t, `42`)
	rows, err := WalkTree(p, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotNil(t, rows[0].Atom)
}

func TestWalkTreeAtPathRoot(t *testing.T) {
	p := mustParseFn(t, `{"a":{"b":1}}`)
	path, err := bjson.ParsePath("$.a")
	require.NoError(t, err)
	rows, err := WalkTree(p, path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "$", rows[0].FullKey)
	assert.Equal(t, "b", string(rows[1].Key.Text()))
}
