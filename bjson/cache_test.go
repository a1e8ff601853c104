package bjson

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCacheHitReturnsSameParse(t *testing.T) {
	c := NewParseCache(ParseOptions{})
	p1, err := c.Get([]byte(`{"a":1}`))
	require.NoError(t, err)
	p2, err := c.Get([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Same(t, p1, p2)
}

func TestParseCacheMissParsesFresh(t *testing.T) {
	c := NewParseCache(ParseOptions{})
	p, err := c.Get([]byte(`[1,2,3]`))
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, mustRender(t, p))
}

func TestParseCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewParseCache(ParseOptions{})
	var first *Parse
	for i := 0; i < cacheCapacity; i++ {
		p, err := c.Get([]byte(fmt.Sprintf(`%d`, i)))
		require.NoError(t, err)
		if i == 0 {
			first = p
		}
	}
	require.Len(t, c.entries, cacheCapacity)

	// one more insert evicts the least-recently-used (the first one).
	_, err := c.Get([]byte(fmt.Sprintf(`%d`, cacheCapacity)))
	require.NoError(t, err)
	require.Len(t, c.entries, cacheCapacity)

	p, err := c.Get([]byte(`0`))
	require.NoError(t, err)
	assert.NotSame(t, first, p, "evicted entry should be reparsed rather than reused")
}

func TestParseCacheTouchReordersMRU(t *testing.T) {
	c := NewParseCache(ParseOptions{})
	_, err := c.Get([]byte(`1`))
	require.NoError(t, err)
	_, err = c.Get([]byte(`2`))
	require.NoError(t, err)
	_, err = c.Get([]byte(`1`))
	require.NoError(t, err)
	assert.Equal(t, "1", string(c.entries[0].source.Bytes()))
}

func TestParseCacheResetClearsEntries(t *testing.T) {
	c := NewParseCache(ParseOptions{})
	_, err := c.Get([]byte(`1`))
	require.NoError(t, err)
	c.Reset()
	assert.Len(t, c.entries, 0)
}
