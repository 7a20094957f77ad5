package arc

import (
	"sync"

	"github.com/IvanBrykalov/arcache/internal/util"
)

// recencyPart is the LRU-like half of the cache: a bounded main store
// ordered most-recently-used first, plus a ghost record of recently
// evicted keys.
//
// put never bumps the access count; get is the only operation that does.
// One mutex guards the main store, the ghost store, and the capacity
// counter for the duration of each method.
type recencyPart[K comparable, V any] struct {
	mu        sync.Mutex
	cap       int
	threshold int // access count at which get signals promotion

	main  map[K]*node[K, V]
	list  nodeList[K, V] // front = MRU, back = LRU
	ghost ghostList[K]

	onEvict func(K, V)
	met     Metrics

	_      util.CacheLinePad
	evicts util.PaddedAtomicUint64
}

func newRecencyPart[K comparable, V any](capacity, threshold int, met Metrics, onEvict func(K, V)) *recencyPart[K, V] {
	return &recencyPart[K, V]{
		cap:       capacity,
		threshold: threshold,
		main:      make(map[K]*node[K, V], capacity),
		ghost:     newGhostList[K](capacity),
		onEvict:   onEvict,
		met:       met,
	}
}

// put inserts or overwrites key. An overwrite moves the node to MRU
// without touching its access count. Reports false only when the
// partition capacity is zero (the write is declined, nothing changes).
func (p *recencyPart[K, V]) put(key K, val V) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap == 0 {
		return false
	}
	if n, ok := p.main[key]; ok {
		n.val = val
		p.list.moveToFront(n)
		return true
	}
	if len(p.main) >= p.cap {
		p.evictBackLocked()
	}
	n := &node[K, V]{key: key, val: val, count: 1}
	p.main[key] = n
	p.list.pushFront(n)
	return true
}

// get reports the value, whether this access crossed the promotion
// threshold, and whether the key was resident. A hit moves the node to
// MRU and bumps its access count.
func (p *recencyPart[K, V]) get(key K) (V, bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, ok := p.main[key]
	if !ok {
		var zero V
		return zero, false, false
	}
	p.list.moveToFront(n)
	n.count++
	return n.val, n.count >= p.threshold, true
}

// contains reports main-store residency without promoting.
func (p *recencyPart[K, V]) contains(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.main[key]
	return ok
}

// checkGhost removes key from the ghost store if present and reports
// whether it was there.
func (p *recencyPart[K, V]) checkGhost(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ghost.remove(key)
}

// grow adds one capacity unit.
func (p *recencyPart[K, V]) grow() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cap++
}

// shrink frees one capacity unit, force-evicting the LRU entry first when
// the main store sits exactly at capacity. At capacity zero there is
// nothing to give up and shrink reports failure, so the orchestrator does
// not grant the sibling partition a unit that was never freed.
func (p *recencyPart[K, V]) shrink() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cap == 0 {
		return false
	}
	if len(p.main) == p.cap {
		p.evictBackLocked()
	}
	p.cap--
	return true
}

func (p *recencyPart[K, V]) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.main)
}

func (p *recencyPart[K, V]) capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cap
}

func (p *recencyPart[K, V]) ghostLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ghost.len()
}

// evictBackLocked moves the LRU entry to the ghost store. mu held.
func (p *recencyPart[K, V]) evictBackLocked() {
	n := p.list.back()
	if n == nil {
		return
	}
	p.list.remove(n)
	delete(p.main, n.key)
	p.ghost.pushFront(n.key)

	p.evicts.Add(1)
	p.met.Evict(Recency)
	if p.onEvict != nil {
		// Called under the partition lock; keep callbacks lightweight.
		p.onEvict(n.key, n.val)
	}
}
