package bjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustElem(t *testing.T, text string) []byte {
	t.Helper()
	p := mustParse(t, text)
	return p.Bytes()
}

func TestApplySetOverwritesExisting(t *testing.T) {
	p := mustParse(t, `{"a":1,"b":2}`)
	path, err := ParsePath("$.a")
	require.NoError(t, err)

	require.NoError(t, p.Apply(path, OpSet, mustElem(t, "99")))
	assert.Equal(t, `{"a":99,"b":2}`, mustRender(t, p))
}

func TestApplySetCreatesMissingPath(t *testing.T) {
	p := mustParse(t, `{}`)
	path, err := ParsePath("$.a.b")
	require.NoError(t, err)

	require.NoError(t, p.Apply(path, OpSet, mustElem(t, `"hi"`)))
	assert.Equal(t, `{"a":{"b":"hi"}}`, mustRender(t, p))
}

func TestApplyInsertIsNoOpWhenPresent(t *testing.T) {
	p := mustParse(t, `{"a":1}`)
	path, err := ParsePath("$.a")
	require.NoError(t, err)

	require.NoError(t, p.Apply(path, OpInsert, mustElem(t, "99")))
	assert.Equal(t, `{"a":1}`, mustRender(t, p))
}

func TestApplyReplaceIsNoOpWhenMissing(t *testing.T) {
	p := mustParse(t, `{"a":1}`)
	path, err := ParsePath("$.b")
	require.NoError(t, err)

	require.NoError(t, p.Apply(path, OpReplace, mustElem(t, "99")))
	assert.Equal(t, `{"a":1}`, mustRender(t, p))
}

func TestApplyDeleteRemovesMemberAndLabel(t *testing.T) {
	p := mustParse(t, `{"a":1,"b":2,"c":3}`)
	path, err := ParsePath("$.b")
	require.NoError(t, err)

	require.NoError(t, p.Apply(path, OpDelete, nil))
	assert.Equal(t, `{"a":1,"c":3}`, mustRender(t, p))
}

func TestApplyDeleteNonExistentIsNoOp(t *testing.T) {
	p := mustParse(t, `{"a":1}`)
	path, err := ParsePath("$.missing")
	require.NoError(t, err)

	require.NoError(t, p.Apply(path, OpDelete, nil))
	assert.Equal(t, `{"a":1}`, mustRender(t, p))
}

func TestApplySetWidensContainerHeaderOnGrowth(t *testing.T) {
	p := mustParse(t, `[1]`)
	path, err := ParsePath("$[0]")
	require.NoError(t, err)

	big := make([]byte, 300)
	for i := range big {
		big[i] = 'x'
	}
	bigText := `"` + string(big) + `"`
	require.NoError(t, p.Apply(path, OpSet, mustElem(t, bigText)))
	assert.Equal(t, `[`+bigText+`]`, mustRender(t, p))
}

func TestApplySetOnArrayIndexCreatesByAppending(t *testing.T) {
	p := mustParse(t, `{"a":[1,2]}`)
	path, err := ParsePath("$.a[5]")
	require.NoError(t, err)

	require.NoError(t, p.Apply(path, OpSet, mustElem(t, "3")))
	assert.Equal(t, `{"a":[1,2,3]}`, mustRender(t, p))
}

func TestApplyDeleteNestedPropagatesDelta(t *testing.T) {
	p := mustParse(t, `{"outer":{"a":1,"b":2}}`)
	path, err := ParsePath("$.outer.a")
	require.NoError(t, err)

	require.NoError(t, p.Apply(path, OpDelete, nil))
	assert.Equal(t, `{"outer":{"b":2}}`, mustRender(t, p))
}
