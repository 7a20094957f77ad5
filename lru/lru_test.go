package lru_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/arcache/lru"
)

func TestLRU_GetEmpty(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](10)

	v, ok := c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestLRU_PutAndGet(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](10)
	c.Put("foo", 42)

	v, ok := c.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestLRU_Overwrite(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](10)
	c.Put("a", 1)
	c.Put("a", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	// Touch a so that b becomes the LRU entry.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("c", 3)

	assert.False(t, c.Contains("b"), "b should be evicted")
	assert.True(t, c.Contains("a"))
	assert.True(t, c.Contains("c"))
}

func TestLRU_PutRefreshesRecency(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10) // a is MRU again
	c.Put("c", 3)  // evicts b

	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
}

func TestLRU_ContainsDoesNotPromote(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	require.True(t, c.Contains("a")) // must not refresh a
	c.Put("c", 3)                    // evicts a, still the LRU entry

	assert.False(t, c.Contains("a"))
	assert.True(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
}

func TestLRU_Remove(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](10)
	c.Put("a", 1)

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"), "second remove should report absence")
	assert.Equal(t, 0, c.Len())

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestLRU_ZeroCapacity(t *testing.T) {
	t.Parallel()

	c := lru.New[string, int](0)
	c.Put("a", 1)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := lru.New[int, int](128)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				k := (id*31 + i) % 512
				c.Put(k, i)
				c.Get(k)
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 128)
}

func TestLRUK_AdmitsAfterKAccesses(t *testing.T) {
	t.Parallel()

	c := lru.NewK[string, int](10, 20, 3)

	c.Put("a", 1) // observed once
	assert.Equal(t, 0, c.Len(), "one access must not admit")
	c.Put("a", 2) // twice
	assert.Equal(t, 0, c.Len())
	c.Put("a", 3) // third access admits

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, c.Len())
}

func TestLRUK_MissesCountTowardAdmission(t *testing.T) {
	t.Parallel()

	c := lru.NewK[string, int](10, 20, 2)

	_, ok := c.Get("a") // miss, but observed
	require.False(t, ok)
	c.Put("a", 1) // second observation admits

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLRUK_UpdatesAdmittedDirectly(t *testing.T) {
	t.Parallel()

	c := lru.NewK[string, int](10, 20, 2)
	c.Put("a", 1)
	c.Put("a", 2) // admitted with value 2

	c.Put("a", 3) // already admitted, applied directly
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestLRUK_HistoryBoundedAgesCandidates(t *testing.T) {
	t.Parallel()

	// History of 2: writing many distinct candidates evicts earlier
	// observations before they reach the admission threshold.
	c := lru.NewK[int, string](10, 2, 2)

	c.Put(1, "x")
	for i := 2; i <= 10; i++ {
		c.Put(i, "y"+strconv.Itoa(i))
	}
	c.Put(1, "x") // history forgot key 1; this is its first observation again

	assert.Equal(t, 0, c.Len(), "aged-out candidate must not be admitted")
}

func TestLRUK_KOneDegeneratesToLRU(t *testing.T) {
	t.Parallel()

	c := lru.NewK[string, int](10, 20, 0) // clamped to k=1
	c.Put("a", 1)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}
