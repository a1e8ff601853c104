package bjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathSteps(t *testing.T) {
	p, err := ParsePath(`$.a[1]."quoted key"[#-1]`)
	require.NoError(t, err)
	require.Len(t, p.Steps, 4)

	assert.True(t, p.Steps[0].IsKey)
	assert.Equal(t, "a", string(p.Steps[0].Label))

	assert.False(t, p.Steps[1].IsKey)
	assert.Equal(t, 1, p.Steps[1].Index)

	assert.True(t, p.Steps[2].IsKey)
	assert.Equal(t, "quoted key", string(p.Steps[2].Label))

	assert.True(t, p.Steps[3].IsLast)
	assert.True(t, p.Steps[3].FromEnd)
	assert.Equal(t, 1, p.Steps[3].EndDelta)
}

func TestParsePathRequiresDollar(t *testing.T) {
	_, err := ParsePath("a.b")
	assert.Error(t, err)
}

func TestParsePathRejectsMalformedBracket(t *testing.T) {
	_, err := ParsePath("$[")
	assert.Error(t, err)
	_, err = ParsePath("$[x]")
	assert.Error(t, err)
}

func TestParsePathAbbreviated(t *testing.T) {
	cases := map[string]string{
		"3":     "$[3]",
		"-1":    "$[-1]",
		"[2]":   "$[2]",
		"name":  "$.name",
		"$.a.b": "$.a.b",
	}
	for in, want := range cases {
		got, err := ParsePathAbbreviated(in)
		require.NoError(t, err, in)
		wantPath, err := ParsePath(want)
		require.NoError(t, err)
		assert.Equal(t, wantPath, got, in)
	}
}
