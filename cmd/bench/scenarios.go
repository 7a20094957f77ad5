package main

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
)

// The scenario suite compares hit rates of every policy under access
// patterns with different recency/frequency character. Each policy gets
// its own cache and its own deterministic RNG stream, so the numbers are
// reproducible for a given seed.

type scenario struct {
	name     string
	capacity int
	run      func(c store, r *rand.Rand) (gets, hits int)
}

func runScenarios(seed int64) {
	suite := []scenario{
		{name: "hot/cold 70/30", capacity: 50, run: hotCold},
		{name: "loop scan", capacity: 50, run: loopScan},
		{name: "shifting workload", capacity: 4, run: workloadShift},
	}

	for _, sc := range suite {
		fmt.Printf("=== %s (capacity %d) ===\n", sc.name, sc.capacity)
		for i, name := range policyNames {
			c, err := newStore(name, sc.capacity, 1, nil)
			if err != nil {
				log.Fatal(err)
			}
			r := rand.New(rand.NewSource(seed + int64(i)*7919))
			gets, hits := sc.run(c, r)
			fmt.Printf("  %-14s hit-rate %6.2f%%  (%d/%d)\n",
				name, 100*float64(hits)/float64(gets), hits, gets)
		}
	}
}

// hotCold writes a 70% hot (20 keys) / 30% cold (5000 keys) mix, then
// measures hit rate over reads with the same distribution.
func hotCold(c store, r *rand.Rand) (gets, hits int) {
	const (
		operations = 500_000
		hotKeys    = 20
		coldKeys   = 5_000
	)
	pick := func(op int) int {
		if op%100 < 70 {
			return r.Intn(hotKeys)
		}
		return hotKeys + r.Intn(coldKeys)
	}

	for op := 0; op < operations; op++ {
		k := pick(op)
		c.Put(k, "value"+strconv.Itoa(k))
	}
	for op := 0; op < operations; op++ {
		gets++
		if _, ok := c.Get(pick(op)); ok {
			hits++
		}
	}
	return gets, hits
}

// loopScan fills a loop larger than the cache, then reads with 60%
// sequential scanning, 30% random jumps within the loop, and 10% probes
// outside it.
func loopScan(c store, r *rand.Rand) (gets, hits int) {
	const (
		loopSize   = 500
		operations = 200_000
	)
	for k := 0; k < loopSize; k++ {
		c.Put(k, "loop"+strconv.Itoa(k))
	}

	pos := 0
	for op := 0; op < operations; op++ {
		var k int
		switch {
		case op%100 < 60:
			k = pos
			pos = (pos + 1) % loopSize
		case op%100 < 90:
			k = r.Intn(loopSize)
		default:
			k = loopSize + r.Intn(loopSize)
		}
		gets++
		if _, ok := c.Get(k); ok {
			hits++
		}
	}
	return gets, hits
}

// workloadShift moves through five phases (tight hot set, wide random,
// sequential scan, drifting locality, mixed) interleaving reads with a
// 30% write rate.
func workloadShift(c store, r *rand.Rand) (gets, hits int) {
	const (
		operations = 80_000
		phaseLen   = operations / 5
	)
	for k := 0; k < 1000; k++ {
		c.Put(k, "init"+strconv.Itoa(k))
	}

	for op := 0; op < operations; op++ {
		var k int
		switch {
		case op < phaseLen:
			k = r.Intn(5)
		case op < 2*phaseLen:
			k = r.Intn(1000)
		case op < 3*phaseLen:
			k = (op - 2*phaseLen) % 100
		case op < 4*phaseLen:
			locality := (op / 1000) % 10
			k = locality*20 + r.Intn(20)
		default:
			switch x := r.Intn(100); {
			case x < 30:
				k = r.Intn(5)
			case x < 60:
				k = 5 + r.Intn(95)
			default:
				k = 100 + r.Intn(900)
			}
		}

		gets++
		if _, ok := c.Get(k); ok {
			hits++
		}
		if r.Intn(100) < 30 {
			c.Put(k, "new"+strconv.Itoa(k))
		}
	}
	return gets, hits
}
