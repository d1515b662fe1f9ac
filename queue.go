package pathcore

import "container/heap"

// pqItem is one entry of the priority queue: a tile index and its current
// key, plus the slot container/heap uses to keep Swap cheap.
type pqItem struct {
	tile  int
	key   int
	index int
}

// pqHeap is the container/heap.Interface implementation backing
// priorityQueue, generalized from a one-shot build to support Replace
// (raise or lower an already-queued key) via an index map.
type pqHeap []*pqItem

func (h pqHeap) Len() int            { return len(h) }
func (h pqHeap) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h pqHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *pqHeap) Push(x any)         { item := x.(*pqItem); item.index = len(*h); *h = append(*h, item) }
func (h *pqHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// priorityQueue is the min-key priority queue over tile indices: insert,
// replace (lower or raise a key already present), remove-min, and
// peek-min-key, with at most one entry per tile. Ties are broken by the
// heap's internal layout, not by insertion order; that layout depends
// only on the sequence of operations, so it is deterministic.
type priorityQueue struct {
	h     pqHeap
	byTile map[int]*pqItem
}

func newPriorityQueue() *priorityQueue {
	return &priorityQueue{byTile: make(map[int]*pqItem)}
}

func (q *priorityQueue) Len() int { return len(q.h) }

func (q *priorityQueue) Contains(tile int) bool {
	_, ok := q.byTile[tile]
	return ok
}

// Insert adds tile with the given key. tile must not already be present.
func (q *priorityQueue) Insert(tile, key int) {
	item := &pqItem{tile: tile, key: key}
	heap.Push(&q.h, item)
	q.byTile[tile] = item
}

// Replace updates tile's key, re-heapifying regardless of whether the new
// key is an improvement. This keeps the queue correct even for key
// formulas that are not monotonic in the same direction as plain cost.
func (q *priorityQueue) Replace(tile, key int) {
	item, ok := q.byTile[tile]
	if !ok {
		q.Insert(tile, key)
		return
	}
	item.key = key
	heap.Fix(&q.h, item.index)
}

// RemoveMin pops and returns the tile with the smallest key.
func (q *priorityQueue) RemoveMin() (tile, key int, ok bool) {
	if len(q.h) == 0 {
		return 0, 0, false
	}
	item := heap.Pop(&q.h).(*pqItem)
	delete(q.byTile, item.tile)
	return item.tile, item.key, true
}

// PeekMinKey returns the smallest key currently queued, without removing
// it. The fuel finder uses it to choose between its regular and waited
// queues.
func (q *priorityQueue) PeekMinKey() (key int, ok bool) {
	if len(q.h) == 0 {
		return 0, false
	}
	return q.h[0].key, true
}
