package arc

import (
	"sync"

	"github.com/IvanBrykalov/arcache/internal/util"
)

// frequencyPart is the LFU-like half of the cache: a bounded main store
// bucketed by access count, a tracked minimum bucket, and a ghost record
// of recently evicted keys.
//
// Buckets are append-ordered, so eviction from the minimum bucket removes
// the oldest node at that count (FIFO tie-break among equally frequent
// nodes). An empty bucket is deleted from the map immediately; minFreq is
// recomputed opportunistically, not continuously.
type frequencyPart[K comparable, V any] struct {
	mu      sync.Mutex
	cap     int
	minFreq int

	main    map[K]*node[K, V]
	buckets map[int]*nodeList[K, V] // access count -> FIFO of nodes at that count
	ghost   ghostList[K]

	onEvict func(K, V)
	met     Metrics

	_      util.CacheLinePad
	evicts util.PaddedAtomicUint64
}

func newFrequencyPart[K comparable, V any](capacity int, met Metrics, onEvict func(K, V)) *frequencyPart[K, V] {
	return &frequencyPart[K, V]{
		cap:     capacity,
		main:    make(map[K]*node[K, V], capacity),
		buckets: make(map[int]*nodeList[K, V]),
		ghost:   newGhostList[K](capacity),
		onEvict: onEvict,
		met:     met,
	}
}

// put inserts or overwrites key. An overwrite counts as an access and
// re-buckets the node. Reports false only when the partition capacity is
// zero.
func (p *frequencyPart[K, V]) put(key K, val V) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap == 0 {
		return false
	}
	if n, ok := p.main[key]; ok {
		n.val = val
		p.bumpLocked(n)
		return true
	}
	if len(p.main) >= p.cap {
		p.evictLeastFrequentLocked()
	}
	n := &node[K, V]{key: key, val: val, count: 1}
	p.main[key] = n
	p.bucketLocked(1).pushBack(n)
	p.minFreq = 1
	return true
}

// get reports the value and residency. A hit re-buckets the node under
// its incremented access count.
func (p *frequencyPart[K, V]) get(key K) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, ok := p.main[key]
	if !ok {
		var zero V
		return zero, false
	}
	p.bumpLocked(n)
	return n.val, true
}

// contains reports main-store residency without re-bucketing.
func (p *frequencyPart[K, V]) contains(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.main[key]
	return ok
}

// checkGhost removes key from the ghost store if present and reports
// whether it was there.
func (p *frequencyPart[K, V]) checkGhost(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ghost.remove(key)
}

// grow adds one capacity unit.
func (p *frequencyPart[K, V]) grow() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cap++
}

// shrink mirrors the recency partition with one asymmetry kept from the
// reference behavior: at capacity zero it reports success without freeing
// anything, so the orchestrator still grants the unit to the recency
// partition at the boundary.
func (p *frequencyPart[K, V]) shrink() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap == 0 {
		return true
	}
	if len(p.main) == p.cap {
		p.evictLeastFrequentLocked()
	}
	p.cap--
	return true
}

func (p *frequencyPart[K, V]) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.main)
}

func (p *frequencyPart[K, V]) capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cap
}

func (p *frequencyPart[K, V]) ghostLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ghost.len()
}

// -------------------- internals (mu held) --------------------

// bucketLocked returns the bucket for count, creating it if missing.
func (p *frequencyPart[K, V]) bucketLocked(count int) *nodeList[K, V] {
	b, ok := p.buckets[count]
	if !ok {
		b = &nodeList[K, V]{}
		p.buckets[count] = b
	}
	return b
}

// bumpLocked moves n to the next access-count bucket. When the old bucket
// empties and was the tracked minimum, the minimum advances to the new
// count. Buckets below the new count that survived an earlier shrink are
// not rescanned here; the eviction path recomputes the true minimum.
func (p *frequencyPart[K, V]) bumpLocked(n *node[K, V]) {
	old := n.count
	if b, ok := p.buckets[old]; ok {
		b.remove(n)
		if b.len() == 0 {
			delete(p.buckets, old)
			if old == p.minFreq {
				p.minFreq = old + 1
			}
		}
	}
	n.count++
	p.bucketLocked(n.count).pushBack(n)
}

// evictLeastFrequentLocked moves the oldest node of the minimum bucket to
// the ghost store. A stale minimum pointing at a missing bucket makes this
// a silent no-op; the caller's insert then proceeds regardless.
func (p *frequencyPart[K, V]) evictLeastFrequentLocked() {
	b, ok := p.buckets[p.minFreq]
	if !ok || b.len() == 0 {
		return
	}
	n := b.front()
	b.remove(n)
	if b.len() == 0 {
		delete(p.buckets, p.minFreq)
		if next, ok := p.smallestBucketLocked(); ok {
			p.minFreq = next
		}
	}
	delete(p.main, n.key)
	p.ghost.pushBack(n.key)

	p.evicts.Add(1)
	p.met.Evict(Frequency)
	if p.onEvict != nil {
		p.onEvict(n.key, n.val)
	}
}

// smallestBucketLocked scans the bucket map for its smallest key.
func (p *frequencyPart[K, V]) smallestBucketLocked() (int, bool) {
	min, found := 0, false
	for f := range p.buckets {
		if !found || f < min {
			min, found = f, true
		}
	}
	return min, found
}
