package pathcore

import "testing"

func TestPriorityQueueOrdersByKey(t *testing.T) {
	q := newPriorityQueue()
	q.Insert(1, 30)
	q.Insert(2, 10)
	q.Insert(3, 20)

	wantOrder := []int{2, 3, 1}
	for _, want := range wantOrder {
		tile, _, ok := q.RemoveMin()
		if !ok || tile != want {
			t.Fatalf("RemoveMin() = %d,%v, want %d,true", tile, ok, want)
		}
	}
	if _, _, ok := q.RemoveMin(); ok {
		t.Error("queue should be empty")
	}
}

func TestPriorityQueueReplaceLowersKey(t *testing.T) {
	q := newPriorityQueue()
	q.Insert(1, 100)
	q.Insert(2, 50)
	q.Replace(1, 10)

	tile, key, ok := q.RemoveMin()
	if !ok || tile != 1 || key != 10 {
		t.Fatalf("RemoveMin() = %d,%d,%v, want 1,10,true", tile, key, ok)
	}
}

func TestPriorityQueueReplaceRaisesKey(t *testing.T) {
	q := newPriorityQueue()
	q.Insert(1, 5)
	q.Insert(2, 50)
	q.Replace(1, 100)

	tile, _, ok := q.RemoveMin()
	if !ok || tile != 2 {
		t.Fatalf("RemoveMin() = %d,%v, want 2,true", tile, ok)
	}
}

func TestPriorityQueueContains(t *testing.T) {
	q := newPriorityQueue()
	if q.Contains(1) {
		t.Error("empty queue should not contain tile 1")
	}
	q.Insert(1, 5)
	if !q.Contains(1) {
		t.Error("queue should contain tile 1 after Insert")
	}
	q.RemoveMin()
	if q.Contains(1) {
		t.Error("queue should not contain tile 1 after RemoveMin")
	}
}

func TestPriorityQueuePeekMinKeyDoesNotRemove(t *testing.T) {
	q := newPriorityQueue()
	q.Insert(1, 5)
	key, ok := q.PeekMinKey()
	if !ok || key != 5 {
		t.Fatalf("PeekMinKey() = %d,%v, want 5,true", key, ok)
	}
	if q.Len() != 1 {
		t.Errorf("PeekMinKey should not remove; Len() = %d, want 1", q.Len())
	}
}
