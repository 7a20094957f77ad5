package arc

import "testing"

func newTestFrequency(capacity int) *frequencyPart[string, int] {
	return newFrequencyPart[string, int](capacity, NoopMetrics{}, nil)
}

// Eviction takes the oldest entry of the minimum bucket: a FIFO tie-break
// among equally frequent entries.
func TestFrequency_EvictsOldestOfMinBucket(t *testing.T) {
	t.Parallel()

	p := newTestFrequency(2)
	p.put("a", 1)
	p.put("b", 2)
	p.put("c", 3) // both count 1; a is older

	if p.contains("a") {
		t.Fatal("a must be evicted first")
	}
	if !p.contains("b") || !p.contains("c") {
		t.Fatal("b and c must survive")
	}
	if !p.checkGhost("a") {
		t.Fatal("a must be in the ghost store")
	}
}

// A get moves the entry one bucket up and shields it from eviction while
// lower buckets are non-empty.
func TestFrequency_GetRaisesBucket(t *testing.T) {
	t.Parallel()

	p := newTestFrequency(2)
	p.put("a", 1)
	p.put("b", 2)
	if v, ok := p.get("a"); !ok || v != 1 { // a now count 2
		t.Fatalf("get a = %d/%v", v, ok)
	}
	p.put("c", 3) // evicts b, the only count-1 entry

	if p.contains("b") {
		t.Fatal("b must be evicted")
	}
	if !p.contains("a") || !p.contains("c") {
		t.Fatal("a and c must survive")
	}
}

// Overwriting a resident key counts as an access.
func TestFrequency_PutOverwriteRebuckets(t *testing.T) {
	t.Parallel()

	p := newTestFrequency(2)
	p.put("a", 1)
	p.put("a", 10) // a count 2
	p.put("b", 2)
	p.put("c", 3) // evicts b (count 1), not a

	if !p.contains("a") || p.contains("b") {
		t.Fatal("overwritten a must outlive b")
	}
	if v, ok := p.get("a"); !ok || v != 10 {
		t.Fatalf("a = %d/%v, want 10/true", v, ok)
	}
}

// The ghost store inserts at the tail and drops from the head; bounded by
// the construction-time capacity.
func TestFrequency_GhostBounded(t *testing.T) {
	t.Parallel()

	p := newTestFrequency(1)
	p.put("a", 1)
	p.put("b", 2) // evicts a
	p.put("c", 3) // evicts b; ghost capacity 1 drops a

	if p.checkGhost("a") {
		t.Fatal("oldest ghost a must have been dropped")
	}
	if !p.checkGhost("b") {
		t.Fatal("b must be in the ghost store")
	}
	if p.ghostLen() != 0 {
		t.Fatalf("ghost len = %d, want 0", p.ghostLen())
	}
}

// shrink at capacity zero reports success: the asymmetry that makes the
// orchestrator grant the freed unit to the recency partition even at the
// boundary. The recency partition reports failure in the same spot.
func TestFrequency_ShrinkAtZeroSucceeds(t *testing.T) {
	t.Parallel()

	p := newTestFrequency(1)
	if !p.shrink() { // 1 -> 0, store empty
		t.Fatal("shrink must succeed")
	}
	if p.capacity() != 0 {
		t.Fatalf("capacity = %d, want 0", p.capacity())
	}
	if !p.shrink() {
		t.Fatal("shrink at capacity zero must still report success")
	}
	if p.capacity() != 0 {
		t.Fatal("no-op shrink must not drive capacity negative")
	}
}

// shrink at a full store force-evicts from the minimum bucket first.
func TestFrequency_ShrinkFullStoreEvicts(t *testing.T) {
	t.Parallel()

	p := newTestFrequency(2)
	p.put("a", 1)
	p.put("b", 2)
	p.get("b") // b count 2

	if !p.shrink() {
		t.Fatal("shrink must succeed")
	}
	if p.contains("a") {
		t.Fatal("shrink must evict the least frequent entry a")
	}
	if !p.contains("b") || p.capacity() != 1 {
		t.Fatalf("b resident=%v cap=%d, want true/1", p.contains("b"), p.capacity())
	}
}

func TestFrequency_ZeroCapacityPutDeclines(t *testing.T) {
	t.Parallel()

	p := newTestFrequency(0)
	if p.put("a", 1) {
		t.Fatal("put into zero-capacity partition must report false")
	}
}

// After the minimum bucket empties through eviction, the tracked minimum
// is recomputed from the remaining buckets.
func TestFrequency_MinRecomputedAfterEviction(t *testing.T) {
	t.Parallel()

	p := newTestFrequency(3)
	p.put("a", 1)
	p.get("a") // count 2
	p.get("a") // count 3
	p.put("b", 2)
	p.get("b") // count 2
	p.put("c", 3)

	p.put("d", 4) // evicts c (count 1); min must advance to 2

	if p.minFreq != 1 { // d was just inserted at count 1
		t.Fatalf("minFreq = %d, want 1 after insert", p.minFreq)
	}
	p.put("e", 5) // evicts d
	if p.minFreq != 1 {
		t.Fatalf("minFreq = %d, want 1 (e resident at count 1)", p.minFreq)
	}
	if p.contains("c") || p.contains("d") {
		t.Fatal("count-1 entries must be evicted before higher buckets")
	}
	if !p.contains("a") || !p.contains("b") {
		t.Fatal("higher-bucket entries must survive")
	}
}
