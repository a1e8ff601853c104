package sqlfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdg-go/bjson/bjson"
)

func mustParseFn(t *testing.T, text string) *bjson.Parse {
	t.Helper()
	p, err := bjson.ParseText([]byte(text), bjson.ParseOptions{})
	require.NoError(t, err)
	return p
}

func TestWalkEachOverObject(t *testing.T) {
	p := mustParseFn(t, `{"a":1,"b":"x"}`)
	rows, err := WalkEach(p, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", string(rows[0].Key.Text()))
	assert.Equal(t, "$.a", rows[0].FullKey)
	assert.Equal(t, "$", rows[0].Path)
	assert.Equal(t, "integer", rows[0].Type)
	assert.Equal(t, "b", string(rows[1].Key.Text()))
	assert.Equal(t, "text", rows[1].Type)
}

func TestWalkEachOverArray(t *testing.T) {
	p := mustParseFn(t, `[10,20]`)
	rows, err := WalkEach(p, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(0), rows[0].Key.Int64())
	assert.Equal(t, "$[0]", rows[0].FullKey)
	assert.Equal(t, int64(1), rows[1].Key.Int64())
}

func TestWalkEachAtPathRoot(t *testing.T) {
	p := mustParseFn(t, `{"a":{"b":1,"c":2}}`)
	path, err := bjson.ParsePath("$.a")
	require.NoError(t, err)
	rows, err := WalkEach(p, path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", string(rows[0].Key.Text()))
}

func TestWalkEachOnScalarReturnsNoRows(t *testing.T) {
	p := mustParseFn(t, `42`)
	rows, err := WalkEach(p, nil)
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestWalkEachSetsAtomForScalars(t *testing.T) {
	p := mustParseFn(t, `[1,"s",[1,2]]`)
	rows, err := WalkEach(p, nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.NotNil(t, rows[0].Atom)
	assert.NotNil(t, rows[1].Atom)
	assert.Nil(t, rows[2].Atom, "containers have no atom value")
}

func TestWalkEachIDsAreSequential(t *testing.T) {
	p := mustParseFn(t, `[1,2,3]`)
	rows, err := WalkEach(p, nil)
	require.NoError(t, err)
	for i, r := range rows {
		assert.Equal(t, int64(i+1), r.ID)
		assert.Equal(t, int64(0), r.Parent)
	}
}
