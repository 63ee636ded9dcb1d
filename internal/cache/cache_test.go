package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutUpdatesExistingEntryWithoutGrowing(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	c.Put("alpha", []byte("one"))
	c.Put("beta", []byte("value"))
	c.Put("alpha", []byte("two"))

	assert.Equal(t, 2, c.Len())
	got, hit := c.Get("alpha")
	require.True(t, hit)
	assert.Equal(t, "two", string(got))
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := New(1)
	require.NoError(t, err)

	c.Put("first", []byte("a"))
	c.Put("second", []byte("b"))

	_, hit := c.Get("first")
	assert.False(t, hit, "expected first to be evicted")
	got, hit := c.Get("second")
	require.True(t, hit)
	assert.Equal(t, "b", string(got))
}

func TestDisabledCacheIsNilSafe(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)
	require.Nil(t, c)

	c.Put("key", []byte("value"))
	_, hit := c.Get("key")
	assert.False(t, hit)
	assert.Zero(t, c.Len())
	c.Purge()
}

func TestPurge(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Purge()

	assert.Zero(t, c.Len())
}
