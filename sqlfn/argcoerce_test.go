package sqlfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdg-go/bjson/bjson"
)

func TestArgCoerceNullYieldsAbsent(t *testing.T) {
	p, ok, err := ArgCoerce(nullValue(), nil, bjson.ParseOptions{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestArgCoerceJSONTextParses(t *testing.T) {
	p, ok, err := ArgCoerce(jsonValue(`{"a":1}`), nil, bjson.ParseOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	out, err := bjson.Render(p)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out))
}

func TestArgCoerceJSONTextUsesCache(t *testing.T) {
	cache := bjson.NewParseCache(bjson.ParseOptions{})
	p1, ok, err := ArgCoerce(jsonValue(`[1,2]`), cache, bjson.ParseOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	p2, ok, err := ArgCoerce(jsonValue(`[1,2]`), cache, bjson.ParseOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, p1, p2)
}

func TestArgCoerceRawTextWrapsAsTextRaw(t *testing.T) {
	p, ok, err := ArgCoerce(rawTextValue("hello"), nil, bjson.ParseOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	kind, err := bjson.ElementHeaderKind(p.Bytes(), 0)
	require.NoError(t, err)
	assert.Equal(t, bjson.KindTextRaw, kind)
}

func TestArgCoerceIntegerWraps(t *testing.T) {
	p, ok, err := ArgCoerce(intValueOf(42), nil, bjson.ParseOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	out, err := bjson.Render(p)
	require.NoError(t, err)
	assert.Equal(t, "42", string(out))
}

func TestArgCoerceRealWraps(t *testing.T) {
	p, ok, err := ArgCoerce(floatValueOf(2.5), nil, bjson.ParseOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	out, err := bjson.Render(p)
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(out))
}

func TestArgCoerceBlobRejectsGarbage(t *testing.T) {
	_, _, err := ArgCoerce(blobValue([]byte{0xFF, 0xFF, 0xFF}), nil, bjson.ParseOptions{})
	assert.Error(t, err)
}

func TestArgCoerceBlobAcceptsValidBJSON(t *testing.T) {
	src, err := bjson.ParseText([]byte(`{"a":1}`), bjson.ParseOptions{})
	require.NoError(t, err)
	p, ok, err := ArgCoerce(blobValue(src.Bytes()), nil, bjson.ParseOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	out, err := bjson.Render(p)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out))
}
