// Command bench drives synthetic workloads against the cache policies and
// exposes optional pprof/Prometheus endpoints.
//
// Two modes:
//   - default: a timed Zipf read/write load against one policy (-policy).
//   - -scenarios: hit-rate comparison of every policy under hot/cold,
//     loop-scan, and shifting-workload access patterns.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	arcv2 "github.com/hashicorp/golang-lru/arc/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IvanBrykalov/arcache/arc"
	"github.com/IvanBrykalov/arcache/lfu"
	"github.com/IvanBrykalov/arcache/lru"
	pmet "github.com/IvanBrykalov/arcache/metrics/prom"
	"github.com/IvanBrykalov/arcache/sharded"
)

// store is the surface every benched policy provides.
type store interface {
	Put(k int, v string)
	Get(k int) (string, bool)
}

// hcARC adapts the hashicorp ARC (external reference implementation) to store.
type hcARC struct{ c *arcv2.ARCCache[int, string] }

func (w hcARC) Put(k int, v string)      { w.c.Add(k, v) }
func (w hcARC) Get(k int) (string, bool) { return w.c.Get(k) }

var policyNames = []string{"lru", "lru-k", "lfu", "arc", "arc-sharded", "hashicorp-arc"}

func newStore(name string, capacity, shards int, met arc.Metrics) (store, error) {
	switch name {
	case "lru":
		return lru.New[int, string](capacity), nil
	case "lru-k":
		// History twice the capacity, admission after 2 accesses.
		return lru.NewK[int, string](capacity, 2*capacity, 2), nil
	case "lfu":
		return lfu.New[int, string](capacity), nil
	case "arc":
		return arc.New[int, string](arc.Options[int, string]{Capacity: capacity, Metrics: met}), nil
	case "arc-sharded":
		return sharded.New[int, string](capacity, shards, func(per int) sharded.Store[int, string] {
			return arc.New[int, string](arc.Options[int, string]{Capacity: per})
		}), nil
	case "hashicorp-arc":
		c, err := arcv2.NewARC[int, string](capacity)
		if err != nil {
			return nil, err
		}
		return hcARC{c}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

func main() {
	var (
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		shards   = flag.Int("shards", 0, "shards for arc-sharded (0=auto)")
		policy   = flag.String("policy", "arc", "policy: lru | lru-k | lfu | arc | arc-sharded | hashicorp-arc")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		scenarios = flag.Bool("scenarios", false, "run the policy-comparison scenario suite and exit")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	if *scenarios {
		runScenarios(*seed)
		return
	}

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	var met arc.Metrics
	if *metricsAddr != "" {
		met = pmet.New(nil, "arcache", "bench", nil)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", *metricsAddr)
			log.Println(http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	c, err := newStore(*policy, *capacity, *shards, met)
	if err != nil {
		log.Fatal(err)
	}

	// Preload half capacity to get a realistic hit-rate.
	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}
	for i := 0; i < pl; i++ {
		c.Put(i, "v"+strconv.Itoa(i))
	}

	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	var reads, writes, hits, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is not goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, *zipfS, *zipfV, keysMax)

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				k := int(localZipf.Uint64())
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					if _, ok := c.Get(k); ok {
						atomic.AddUint64(&hits, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					c.Put(k, "v"+strconv.Itoa(localR.Int()))
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	hitsN := atomic.LoadUint64(&hits)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("policy=%s cap=%d workers=%d keys=%d dur=%v seed=%d\n",
		*policy, *capacity, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d  hit-rate=%.2f%%\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, atomic.LoadUint64(&writes), hitRate)

	if ac, ok := c.(arc.Cache[int, string]); ok {
		st := ac.Stats()
		fmt.Printf("arc: ghost-hits=%d promotions=%d evictions=%d recency=%d/%d frequency=%d/%d\n",
			st.GhostHits, st.Promotions, st.Evictions,
			st.RecencyLen, st.RecencyCapacity, st.FrequencyLen, st.FrequencyCapacity)
	}
}
