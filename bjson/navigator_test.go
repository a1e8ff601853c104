package bjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigateObjectAndArray(t *testing.T) {
	p := mustParse(t, `{"a":{"b":[10,20,30]}}`)
	path, err := ParsePath("$.a.b[1]")
	require.NoError(t, err)

	off, found, err := Navigate(p.Bytes(), 0, path)
	require.NoError(t, err)
	require.True(t, found)

	out, err := RenderElement(p.Bytes(), off)
	require.NoError(t, err)
	assert.Equal(t, "20", string(out))
}

func TestNavigateNotFound(t *testing.T) {
	p := mustParse(t, `{"a":1}`)
	path, err := ParsePath("$.missing")
	require.NoError(t, err)

	_, found, err := Navigate(p.Bytes(), 0, path)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNavigateFromEnd(t *testing.T) {
	p := mustParse(t, `[1,2,3,4]`)
	path, err := ParsePath("$[#-1]")
	require.NoError(t, err)

	off, found, err := Navigate(p.Bytes(), 0, path)
	require.NoError(t, err)
	require.True(t, found)
	out, err := RenderElement(p.Bytes(), off)
	require.NoError(t, err)
	assert.Equal(t, "3", string(out))

	path, err = ParsePath("$[#]")
	require.NoError(t, err)
	off, found, err = Navigate(p.Bytes(), 0, path)
	require.NoError(t, err)
	require.True(t, found)
	out, err = RenderElement(p.Bytes(), off)
	require.NoError(t, err)
	assert.Equal(t, "4", string(out))
}

func TestArrayLength(t *testing.T) {
	p := mustParse(t, `[1,2,3]`)
	n, err := ArrayLength(p.Bytes(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	p = mustParse(t, `{"a":1}`)
	n, err = ArrayLength(p.Bytes(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
