package parallel

import (
	"sync"
	"testing"
)

// =============================================================================
// ItemQueue Tests
// =============================================================================

func TestItemQueue_AscendingOrder(t *testing.T) {
	q := NewItemQueue(5)

	if q.Total() != 5 || q.Len() != 5 {
		t.Fatalf("Total() = %d, Len() = %d, want 5, 5", q.Total(), q.Len())
	}

	for want := range 5 {
		got, ok := q.Poll()
		if !ok {
			t.Fatalf("Poll() exhausted early at %d", want)
		}
		if got != want {
			t.Errorf("Poll() = %d, want %d", got, want)
		}
	}

	if _, ok := q.Poll(); ok {
		t.Error("Poll() on drained queue returned ok")
	}
	if q.Served() != 5 {
		t.Errorf("Served() = %d, want 5", q.Served())
	}
}

func TestItemQueue_Empty(t *testing.T) {
	for _, n := range []int{0, -3} {
		q := NewItemQueue(n)
		if q.Total() != 0 {
			t.Errorf("NewItemQueue(%d).Total() = %d, want 0", n, q.Total())
		}
		if _, ok := q.Poll(); ok {
			t.Errorf("NewItemQueue(%d).Poll() returned ok", n)
		}
	}
}

func TestItemQueue_ConcurrentPollServesEachOnce(t *testing.T) {
	const items = 10000
	const pollers = 16

	q := NewItemQueue(items)
	seen := make([][]int, pollers)

	var wg sync.WaitGroup
	for p := range pollers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				id, ok := q.Poll()
				if !ok {
					return
				}
				seen[p] = append(seen[p], id)
			}
		}()
	}
	wg.Wait()

	counts := make([]int, items)
	for _, ids := range seen {
		for _, id := range ids {
			counts[id]++
		}
	}
	for id, n := range counts {
		if n != 1 {
			t.Fatalf("id %d served %d times, want 1", id, n)
		}
	}
	if q.Served() != items {
		t.Errorf("Served() = %d, want %d", q.Served(), items)
	}
}
