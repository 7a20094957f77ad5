package sharded_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/arcache/arc"
	"github.com/IvanBrykalov/arcache/lru"
	"github.com/IvanBrykalov/arcache/sharded"
)

func newArcShards(capacity, n int) *sharded.Cache[string, int] {
	return sharded.New[string, int](capacity, n, func(per int) sharded.Store[string, int] {
		return arc.New[string, int](arc.Options[string, int]{Capacity: per})
	})
}

func TestSharded_PutAndGet(t *testing.T) {
	t.Parallel()

	c := newArcShards(64, 4)
	for i := 0; i < 32; i++ {
		c.Put("k"+strconv.Itoa(i), i)
	}
	for i := 0; i < 32; i++ {
		v, ok := c.Get("k" + strconv.Itoa(i))
		require.True(t, ok, "k%d", i)
		assert.Equal(t, i, v)
	}
}

func TestSharded_RoutingIsStable(t *testing.T) {
	t.Parallel()

	// The same key always lands on the same shard: an overwrite through
	// the wrapper must be visible to a subsequent read.
	c := newArcShards(64, 8)
	c.Put("k", 1)
	c.Put("k", 2)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestSharded_ShardCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, newArcShards(64, 4).Shards())
	// n <= 0 falls back to the CPU heuristic.
	assert.Greater(t, newArcShards(64, 0).Shards(), 0)
}

func TestSharded_CapacitySplitCeil(t *testing.T) {
	t.Parallel()

	// 10 entries over 4 shards: each shard gets ceil(10/4) = 3.
	var got []int
	sharded.New[string, int](10, 4, func(per int) sharded.Store[string, int] {
		got = append(got, per)
		return lru.New[string, int](per)
	})

	require.Len(t, got, 4)
	for _, per := range got {
		assert.Equal(t, 3, per)
	}
}

func TestSharded_WithLRUShards(t *testing.T) {
	t.Parallel()

	c := sharded.New[string, int](32, 4, func(per int) sharded.Store[string, int] {
		return lru.New[string, int](per)
	})
	c.Put("a", 1)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestSharded_Concurrent(t *testing.T) {
	t.Parallel()

	c := newArcShards(1024, 8)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				k := "k" + strconv.Itoa((id*7919+i)%4096)
				if i%4 == 0 {
					c.Put(k, i)
				} else {
					c.Get(k)
				}
			}
		}(w)
	}
	wg.Wait()
}
