package sqlfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdg-go/bjson/bjson"
)

func testEnv() Env { return Env{Opts: bjson.ParseOptions{}} }

func TestMakeTextRendersJSON(t *testing.T) {
	r, err := testEnv().MakeText(jsonValue(`{"a":1}`), false)
	require.NoError(t, err)
	assert.Equal(t, ResultText, r.Kind)
	assert.Equal(t, `{"a":1}`, string(r.Text))
}

func TestMakeBlobRendersBJSON(t *testing.T) {
	r, err := testEnv().MakeText(jsonValue(`42`), true)
	require.NoError(t, err)
	assert.Equal(t, ResultBlob, r.Kind)
}

func TestMakeTextNullArgYieldsNullResult(t *testing.T) {
	r, err := testEnv().MakeText(nullValue(), false)
	require.NoError(t, err)
	assert.Equal(t, ResultNull, r.Kind)
}

func TestArrayBuildsFromHostValues(t *testing.T) {
	r, err := testEnv().Array([]Value{intValueOf(1), jsonValue(`"x"`), nullValue()}, false)
	require.NoError(t, err)
	assert.Equal(t, `[1,"x",null]`, string(r.Text))
}

func TestObjectBuildsFromPairs(t *testing.T) {
	r, err := testEnv().Object([]Value{jsonValue(`"a"`), intValueOf(1)}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(r.Text))
}

func TestObjectRejectsOddArity(t *testing.T) {
	_, err := testEnv().Object([]Value{jsonValue(`"a"`)}, false)
	assert.Error(t, err)
}

func TestObjectRejectsNonTextKey(t *testing.T) {
	_, err := testEnv().Object([]Value{intValueOf(1), intValueOf(2)}, false)
	assert.Error(t, err)
}

func TestArrayLengthCountsElements(t *testing.T) {
	r, err := testEnv().ArrayLength(jsonValue(`[1,2,3]`), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), r.Int)
}

func TestArrayLengthAtPath(t *testing.T) {
	path, err := bjson.ParsePath("$.a")
	require.NoError(t, err)
	r, err := testEnv().ArrayLength(jsonValue(`{"a":[1,2]}`), path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.Int)
}

func TestExtractSinglePath(t *testing.T) {
	path, err := bjson.ParsePath("$.a")
	require.NoError(t, err)
	r, err := testEnv().Extract(jsonValue(`{"a":42}`), []*bjson.Path{path}, false)
	require.NoError(t, err)
	assert.Equal(t, "42", string(r.Text))
}

func TestExtractMultiplePathsReturnsArray(t *testing.T) {
	pa, err := bjson.ParsePath("$.a")
	require.NoError(t, err)
	pb, err := bjson.ParsePath("$.b")
	require.NoError(t, err)
	r, err := testEnv().Extract(jsonValue(`{"a":1,"b":2}`), []*bjson.Path{pa, pb}, false)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(r.Text))
}

func TestArrowReturnsJSONText(t *testing.T) {
	r, err := testEnv().Arrow(jsonValue(`{"a":1}`), []byte("a"), false)
	require.NoError(t, err)
	assert.Equal(t, "1", string(r.Text))
}

func TestArrow2ForcesHostScalar(t *testing.T) {
	r, err := testEnv().Arrow(jsonValue(`{"a":5}`), []byte("a"), true)
	require.NoError(t, err)
	assert.Equal(t, ResultInt, r.Kind)
	assert.Equal(t, int64(5), r.Int)
}

func TestSetEditsAtPath(t *testing.T) {
	r, err := testEnv().Set(jsonValue(`{"a":1}`), []editArg{{path: []byte("$.a"), value: intValueOf(9)}}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":9}`, string(r.Text))
}

func TestInsertDoesNotOverwrite(t *testing.T) {
	r, err := testEnv().Insert(jsonValue(`{"a":1}`), []editArg{{path: []byte("$.a"), value: intValueOf(9)}}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(r.Text))
}

func TestReplaceOnlyOverwritesExisting(t *testing.T) {
	r, err := testEnv().Replace(jsonValue(`{"a":1}`), []editArg{{path: []byte("$.b"), value: intValueOf(9)}}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(r.Text))
}

func TestRemoveDeletesMember(t *testing.T) {
	r, err := testEnv().Remove(jsonValue(`{"a":1,"b":2}`), [][]byte{[]byte("$.a")}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(r.Text))
}

func TestPatchMergesIntoTarget(t *testing.T) {
	r, err := testEnv().Patch(jsonValue(`{"a":1}`), jsonValue(`{"b":2}`), false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2}`, string(r.Text))
}

func TestTypeReportsCollapsedKind(t *testing.T) {
	r, err := testEnv().Type(jsonValue(`"hi"`), nil)
	require.NoError(t, err)
	assert.Equal(t, "text", string(r.Text))

	r, err = testEnv().Type(jsonValue(`42`), nil)
	require.NoError(t, err)
	assert.Equal(t, "integer", string(r.Text))

	r, err = testEnv().Type(jsonValue(`3.5`), nil)
	require.NoError(t, err)
	assert.Equal(t, "real", string(r.Text))
}

func TestValidAcceptsWellFormedText(t *testing.T) {
	r, err := testEnv().Valid(jsonValue(`{"a":1}`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.Int)
}

func TestValidRejectsMalformedText(t *testing.T) {
	r, err := testEnv().Valid(jsonValue(`{"a":}`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), r.Int)
}

func TestValidRejectsOutOfRangeFlags(t *testing.T) {
	_, err := testEnv().Valid(jsonValue(`1`), 16)
	assert.Error(t, err)
}

func TestQuoteEncodesScalar(t *testing.T) {
	r, err := testEnv().Quote(rawTextValue(`he said "hi"`))
	require.NoError(t, err)
	assert.Equal(t, `"he said \"hi\""`, string(r.Text))
}

func TestErrorPositionReportsOffset(t *testing.T) {
	r, err := testEnv().ErrorPosition(rawTextValue(`{"a":}`))
	require.NoError(t, err)
	assert.Greater(t, r.Int, int64(0))
}

func TestErrorPositionZeroForValidText(t *testing.T) {
	r, err := testEnv().ErrorPosition(rawTextValue(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, int64(0), r.Int)
}

func TestBuildEditArgsPairsUpArguments(t *testing.T) {
	args, err := BuildEditArgs([]Value{rawTextValue("$.a"), intValueOf(1), rawTextValue("$.b"), intValueOf(2)})
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, "$.a", string(args[0].path))
}

func TestBuildEditArgsRejectsOddCount(t *testing.T) {
	_, err := BuildEditArgs([]Value{rawTextValue("$.a")})
	assert.Error(t, err)
}
