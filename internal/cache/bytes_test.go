package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutThenGet(t *testing.T) {
	c := NewBytes(0)
	c.Put("k", []byte("bytes"))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("bytes"), got)
}

func TestStoredBlobIsNotAliased(t *testing.T) {
	c := NewBytes(0)
	src := []byte("poster")
	c.Put("k", src)
	src[0] = 'X'

	got, ok := c.Get("k")
	require.True(t, ok)
	got[1] = 'Y'

	again, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "poster", string(again))
}

func TestGetMissing(t *testing.T) {
	c := NewBytes(0)

	got, ok := c.Get("absent")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestPutOverwrites(t *testing.T) {
	c := NewBytes(0)
	c.Put("k", []byte("one"))
	c.Put("k", []byte("three"))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("three"), got)
	assert.Equal(t, 1, c.Len())
	assert.EqualValues(t, 5, c.Size())
}

func TestBudgetEvictsOldest(t *testing.T) {
	c := NewBytes(10)
	c.Put("a", []byte("aaaa"))
	c.Put("b", []byte("bbbb"))
	c.Put("c", []byte("cccc"))

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.EqualValues(t, 8, c.Size())
}

func TestOverwriteRefreshesAge(t *testing.T) {
	c := NewBytes(8)
	c.Put("a", []byte("aaaa"))
	c.Put("b", []byte("bbbb"))
	c.Put("a", []byte("AAAA"))
	c.Put("c", []byte("cccc"))

	_, ok := c.Get("b")
	assert.False(t, ok)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("AAAA"), got)
}

func TestGetDoesNotRefreshAge(t *testing.T) {
	c := NewBytes(8)
	c.Put("a", []byte("aaaa"))
	c.Put("b", []byte("bbbb"))
	_, ok := c.Get("a")
	require.True(t, ok)
	c.Put("c", []byte("cccc"))

	_, ok = c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestOversizedValueIsNotStored(t *testing.T) {
	c := NewBytes(4)
	c.Put("small", []byte("ok"))
	c.Put("big", []byte("too large"))

	_, ok := c.Get("big")
	assert.False(t, ok)
	_, ok = c.Get("small")
	assert.True(t, ok)
}

func TestPurge(t *testing.T) {
	c := NewBytes(0)
	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Purge()

	assert.Zero(t, c.Len())
	assert.Zero(t, c.Size())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := NewBytes(1 << 10)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 100; j++ {
				c.Put(key, []byte(key))
				if v, ok := c.Get(key); ok {
					assert.Equal(t, []byte(key), v)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 4)
}
