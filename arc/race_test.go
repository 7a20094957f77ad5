package arc

import (
	"context"
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"
)

// A mixed workload of concurrent Put/Get/GetOrLoad on random keys. Should
// pass under `-race` without detector reports; also exercises concurrent
// ghost hits and capacity rebalances between the partitions.
func TestRace_Basic(t *testing.T) {
	c := New[string, []byte](Options[string, []byte]{
		Capacity: 2_048,
		Loader: func(_ context.Context, k string) ([]byte, error) {
			return []byte("loaded:" + k), nil
		},
	})
	t.Cleanup(func() { _ = c.Close() })

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 20_000 // well above capacity, so evictions and ghost hits are constant
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5%: GetOrLoad
					if _, err := c.GetOrLoad(context.Background(), k); err != nil {
						t.Errorf("GetOrLoad: %v", err)
						return
					}
				case 5, 6, 7, 8, 9, 10, 11, 12, 13, 14: // ~10%: Put
					c.Put(k, []byte("x"))
				default: // ~85%: Get
					c.Get(k)
				}
			}
		}(w)
	}
	wg.Wait()

	// The relaxed cross-partition ordering may leave a key dual-resident,
	// but neither partition may ever exceed its capacity.
	st := c.Stats()
	if st.RecencyLen > st.RecencyCapacity {
		t.Fatalf("recency over capacity: %d/%d", st.RecencyLen, st.RecencyCapacity)
	}
	if st.FrequencyLen > st.FrequencyCapacity {
		t.Fatalf("frequency over capacity: %d/%d", st.FrequencyLen, st.FrequencyCapacity)
	}
}

// One hundred goroutines call GetOrLoad on the same key concurrently.
// The Loader should run at most once (singleflight coalescing).
func TestRace_GetOrLoad(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	c := New[string, string](Options[string, string]{
		Capacity: 1024,
		Loader: func(_ context.Context, k string) (string, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			time.Sleep(2 * time.Millisecond) // simulate I/O
			return "v:" + k, nil
		},
	})
	t.Cleanup(func() { _ = c.Close() })

	const goroutines = 100
	key := "same-key"

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := c.GetOrLoad(context.Background(), key)
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
				return
			}
			if v != "v:"+key {
				t.Errorf("unexpected value: %q", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	mu.Lock()
	got := calls
	mu.Unlock()
	if got > 1 {
		t.Fatalf("loader should run at most once, got %d", got)
	}

	// Subsequent call should be a pure cache hit.
	if v, err := c.GetOrLoad(context.Background(), key); err != nil || v != "v:"+key {
		t.Fatalf("second GetOrLoad failed: v=%q err=%v", v, err)
	}
}
