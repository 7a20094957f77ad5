package arc

import "container/list"

// ghostList is a bounded, keys-only record of recently evicted keys.
// Its capacity is fixed when the partition is built and does not follow
// later capacity transfers between partitions.
//
// The two partitions insert at opposite ends (recency at the front,
// frequency at the back); since ghosts only support existence checks and
// consuming removal, the end convention has no observable effect.
type ghostList[K comparable] struct {
	cap int
	ord *list.List          // element values are K
	idx map[K]*list.Element // key -> element in ord
}

func newGhostList[K comparable](capacity int) ghostList[K] {
	return ghostList[K]{
		cap: capacity,
		ord: list.New(),
		idx: make(map[K]*list.Element),
	}
}

// pushFront records key at the front, dropping the back entry when full.
func (g *ghostList[K]) pushFront(key K) {
	if g.cap <= 0 {
		return
	}
	if old := g.idx[key]; old != nil {
		g.ord.Remove(old)
	} else if g.ord.Len() >= g.cap {
		g.dropEnd(g.ord.Back())
	}
	g.idx[key] = g.ord.PushFront(key)
}

// pushBack records key at the back, dropping the front entry when full.
func (g *ghostList[K]) pushBack(key K) {
	if g.cap <= 0 {
		return
	}
	if old := g.idx[key]; old != nil {
		g.ord.Remove(old)
	} else if g.ord.Len() >= g.cap {
		g.dropEnd(g.ord.Front())
	}
	g.idx[key] = g.ord.PushBack(key)
}

// remove deletes key from the record if present (consuming check).
func (g *ghostList[K]) remove(key K) bool {
	el, ok := g.idx[key]
	if !ok {
		return false
	}
	g.ord.Remove(el)
	delete(g.idx, key)
	return true
}

func (g *ghostList[K]) len() int { return g.ord.Len() }

func (g *ghostList[K]) dropEnd(el *list.Element) {
	if el == nil {
		return
	}
	delete(g.idx, el.Value.(K))
	g.ord.Remove(el)
}
