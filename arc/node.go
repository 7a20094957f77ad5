package arc

// node is the record shared by the two partitions' main structures.
// A node is linked into exactly one nodeList at a time: the recency main
// list or a single frequency bucket. Ghost stores record keys only, so a
// node is destroyed when its partition evicts it from the main store.
type node[K comparable, V any] struct {
	key   K
	val   V
	count int // access count; 1 on admission

	// Intrusive list links managed by nodeList.
	prev *node[K, V]
	next *node[K, V]
}

// nodeList is an intrusive doubly linked list over nodes. The recency
// partition uses it with front=MRU and back=LRU; each frequency bucket
// uses it append-ordered with front=oldest at that count. All operations
// are O(1).
type nodeList[K comparable, V any] struct {
	head *node[K, V]
	tail *node[K, V]
	n    int
}

// pushFront links n at the head.
func (l *nodeList[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.n++
}

// pushBack links n at the tail.
func (l *nodeList[K, V]) pushBack(n *node[K, V]) {
	n.next = nil
	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	}
	l.tail = n
	if l.head == nil {
		l.head = n
	}
	l.n++
}

// remove unlinks n. n must be an element of l.
func (l *nodeList[K, V]) remove(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if l.head == n {
		l.head = n.next
	}
	if l.tail == n {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.n--
}

// moveToFront promotes n to the head.
func (l *nodeList[K, V]) moveToFront(n *node[K, V]) {
	if l.head == n {
		return
	}
	l.remove(n)
	l.pushFront(n)
}

func (l *nodeList[K, V]) front() *node[K, V] { return l.head }
func (l *nodeList[K, V]) back() *node[K, V]  { return l.tail }
func (l *nodeList[K, V]) len() int           { return l.n }
