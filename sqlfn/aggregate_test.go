package sqlfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayAggAccumulates(t *testing.T) {
	a := NewArrayAgg(testEnv())
	require.NoError(t, a.Step(intValueOf(1)))
	require.NoError(t, a.Step(intValueOf(2)))
	require.NoError(t, a.Step(nullValue()))
	r, err := a.Value(false)
	require.NoError(t, err)
	assert.Equal(t, `[1,2,null]`, string(r.Text))
}

func TestArrayAggInverseDropsFirst(t *testing.T) {
	a := NewArrayAgg(testEnv())
	require.NoError(t, a.Step(intValueOf(1)))
	require.NoError(t, a.Step(intValueOf(2)))
	require.NoError(t, a.Step(intValueOf(3)))
	require.NoError(t, a.Inverse())
	r, err := a.Value(false)
	require.NoError(t, err)
	assert.Equal(t, `[2,3]`, string(r.Text))
}

func TestArrayAggInverseOnEmptyIsNoOp(t *testing.T) {
	a := NewArrayAgg(testEnv())
	require.NoError(t, a.Inverse())
	r, err := a.Value(false)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(r.Text))
}

func TestObjectAggAccumulates(t *testing.T) {
	a := NewObjectAgg(testEnv())
	require.NoError(t, a.Step(jsonValue(`"a"`), intValueOf(1)))
	require.NoError(t, a.Step(jsonValue(`"b"`), intValueOf(2)))
	r, err := a.Value(false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2}`, string(r.Text))
}

func TestObjectAggRejectsNonTextKey(t *testing.T) {
	a := NewObjectAgg(testEnv())
	err := a.Step(intValueOf(1), intValueOf(2))
	assert.Error(t, err)
}

func TestObjectAggInverseDropsFirstPair(t *testing.T) {
	a := NewObjectAgg(testEnv())
	require.NoError(t, a.Step(jsonValue(`"a"`), intValueOf(1)))
	require.NoError(t, a.Step(jsonValue(`"b"`), intValueOf(2)))
	require.NoError(t, a.Inverse())
	r, err := a.Value(false)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(r.Text))
}
